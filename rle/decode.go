package rle

import (
	"bufio"
	"io"
	"strings"
)

// Decode reconstructs lines from tokens. Runs after the last line break
// form a final, unterminated line.
func Decode(tokens []Token) ([]string, error) {
	var (
		lines []string
		sb    strings.Builder
		open  bool
	)
	for i, t := range tokens {
		if err := t.Validate(); err != nil {
			return nil, malformed(i, t.String(), err.Error())
		}
		if t.IsLineBreak() {
			lines = append(lines, sb.String())
			sb.Reset()
			open = false
			continue
		}
		writeRun(&sb, t) // strings.Builder never fails
		open = true
	}
	if open {
		lines = append(lines, sb.String())
	}
	return lines, nil
}

// DecodeStrings parses serialized tokens and decodes them.
func DecodeStrings(strs []string, f Format) ([]string, error) {
	tokens, err := ParseTokens(strs, f)
	if err != nil {
		return nil, err
	}
	return Decode(tokens)
}

// Render writes the decoded image to w: each run is expanded in place
// and each line break writes a newline.
func Render(w io.Writer, tokens []Token) error {
	bw := bufio.NewWriter(w)
	for i, t := range tokens {
		if err := t.Validate(); err != nil {
			return malformed(i, t.String(), err.Error())
		}
		if t.IsLineBreak() {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}
		if err := writeRun(bw, t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type runWriter interface {
	WriteRune(r rune) (int, error)
}

func writeRun(w runWriter, t Token) error {
	for i := 0; i < t.Count; i++ {
		if _, err := w.WriteRune(t.Char); err != nil {
			return err
		}
	}
	return nil
}
