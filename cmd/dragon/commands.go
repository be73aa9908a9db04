package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Neumenon/rle/internal/art"
	"github.com/Neumenon/rle/rle"
	"github.com/Neumenon/rle/stream"
)

type showCmd struct {
	CodecFlags
}

// Run prints the token listing of the built-in dragon, then the image
// decoded from those tokens.
func (c *showCmd) Run(app *appContext) error {
	opts, err := c.encodeOptions()
	if err != nil {
		return err
	}
	lines := art.Lines()
	tokens := rle.EncodeWithOptions(lines, opts)
	app.log.Debug("Encoded image",
		"lines", len(lines),
		"tokens", len(tokens),
		"breaks", rle.CountLineBreaks(tokens),
		"emptyLines", opts.EmptyLines.String())

	strs, err := rle.Emit(tokens, c.format())
	if err != nil {
		return errors.Wrap(err, "serialize tokens")
	}
	if _, err := io.WriteString(app.stdout, rle.Listing(strs)); err != nil {
		return err
	}

	// Decode from the serialized form so the printed image is exactly
	// what the listing carries.
	decoded, err := rle.ParseTokens(strs, c.format())
	if err != nil {
		return errors.Wrap(err, "parse tokens")
	}
	return rle.Render(app.stdout, decoded)
}

type encodeCmd struct {
	CodecFlags
	Builtin bool   `help:"Encode the built-in dragon instead of reading input"`
	Format  string `short:"f" enum:"list,yaml" default:"list" help:"Output format: list (bracketed listing with count) or yaml"`
	Framed  bool   `help:"Wrap the listing in a checksummed @rle frame"`
	Input   string `arg:"" optional:"" help:"File to encode, - or empty for stdin"`
}

func (c *encodeCmd) Run(app *appContext) error {
	opts, err := c.encodeOptions()
	if err != nil {
		return err
	}

	var lines []string
	if c.Builtin {
		lines = art.Lines()
	} else {
		r, closeFn, err := openInput(c.Input, app.stdin)
		if err != nil {
			return err
		}
		defer closeFn()
		lines, err = readLines(r)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
	}

	tokens := rle.EncodeWithOptions(lines, opts)
	app.log.Debug("Encoded input", "lines", len(lines), "tokens", len(tokens))
	if dropped := countEmpty(lines); dropped > 0 && opts.EmptyLines == rle.EmptyLinesCollapse {
		app.log.Warn("Empty lines will not survive decoding", "count", dropped)
	}

	if c.Framed {
		return errors.Wrap(stream.NewWriterWithCRC(app.stdout).WriteTokens(tokens, c.format()), "write frame")
	}

	strs, err := rle.Emit(tokens, c.format())
	if err != nil {
		return errors.Wrap(err, "serialize tokens")
	}
	switch c.Format {
	case "yaml":
		out, err := rle.MarshalListYAML(strs)
		if err != nil {
			return errors.Wrap(err, "marshal yaml")
		}
		_, err = app.stdout.Write(out)
		return err
	default:
		_, err := io.WriteString(app.stdout, rle.Listing(strs))
		return err
	}
}

type decodeCmd struct {
	Delimited bool   `help:"Runs are serialized as char:count"`
	Input     string `arg:"" optional:"" help:"Listing to decode, - or empty for stdin"`
}

func (c *decodeCmd) Run(app *appContext) error {
	r, closeFn, err := openInput(c.Input, app.stdin)
	if err != nil {
		return err
	}
	defer closeFn()

	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	var tokens []rle.Token
	if stream.IsFramed(data) {
		tokens, err = stream.NewReader(bytes.NewReader(data)).ReadTokens()
		if err != nil {
			return errors.Wrap(err, "read frames")
		}
	} else {
		strs, err := rle.ParseListing(data)
		if err != nil {
			return errors.Wrap(err, "parse listing")
		}
		f := rle.FormatConcat
		if c.Delimited {
			f = rle.FormatDelimited
		}
		tokens, err = rle.ParseTokens(strs, f)
		if err != nil {
			return errors.Wrap(err, "decode tokens")
		}
	}
	app.log.Debug("Decoding", "tokens", len(tokens), "lines", rle.CountLineBreaks(tokens))
	return rle.Render(app.stdout, tokens)
}

// openInput opens path, or returns stdin for "" and "-".
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}
	return f, func() { f.Close() }, nil
}

// readLines splits r into lines without their terminators.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

func countEmpty(lines []string) int {
	n := 0
	for _, l := range lines {
		if l == "" {
			n++
		}
	}
	return n
}
