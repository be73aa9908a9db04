// dragon - run-length encode and decode the ASCII-art dragon
//
// Usage:
//
//	dragon                          Encode the built-in dragon, print the token listing and the image
//	dragon encode [options] [file]  Encode text lines into a token listing
//	dragon decode [options] [file]  Decode a token listing (or framed document) into text
//	dragon version                  Print version info
//
// If no file is given, encode and decode read from stdin.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Neumenon/rle/internal/logutil"
	"github.com/Neumenon/rle/rle"
)

const libVersion = "1.0.0"

// CLI is the command line grammar. Running with no arguments selects show.
type CLI struct {
	Verbose  bool   `short:"v" help:"Log at debug level"`
	LogLevel string `name:"log-level" env:"DRAGON_LOG_LEVEL" placeholder:"LEVEL" help:"Log level (debug, info, warn, error)"`

	Show    showCmd    `cmd:"" default:"withargs" help:"Encode the built-in dragon, print the token listing and the decoded image"`
	Encode  encodeCmd  `cmd:"" help:"Encode text lines into a token listing"`
	Decode  decodeCmd  `cmd:"" help:"Decode a token listing back into text"`
	Version versionCmd `cmd:"" help:"Print version info"`
}

// CodecFlags are shared by every command that touches tokens.
type CodecFlags struct {
	EmptyLines string `name:"empty-lines" enum:"collapse,preserve" default:"collapse" env:"DRAGON_EMPTY_LINES" help:"What empty input lines encode to: nothing (collapse) or a bare line break (preserve)"`
	Delimited  bool   `help:"Serialize runs as char:count, which allows digit characters"`
}

func (c CodecFlags) encodeOptions() (rle.EncodeOptions, error) {
	opts := rle.DefaultEncodeOptions()
	policy, err := rle.ParseEmptyLinePolicy(c.EmptyLines)
	if err != nil {
		return opts, err
	}
	opts.EmptyLines = policy
	return opts, nil
}

func (c CodecFlags) format() rle.Format {
	if c.Delimited {
		return rle.FormatDelimited
	}
	return rle.FormatConcat
}

// appContext is bound into every command's Run method.
type appContext struct {
	stdin  io.Reader
	stdout io.Writer
	log    *slog.Logger
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "dragon: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("dragon"),
		kong.Description("Run-length encode and decode the ASCII-art dragon."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logutil.ParseLevel(cli.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if cli.Verbose {
		level = slog.LevelDebug
	}

	app := &appContext{
		stdin:  stdin,
		stdout: stdout,
		log:    logutil.New(stderr, level),
	}
	return ctx.Run(app)
}

type versionCmd struct{}

func (*versionCmd) Run(app *appContext) error {
	_, err := fmt.Fprintf(app.stdout, "dragon %s\n", libVersion)
	return err
}
