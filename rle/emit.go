package rle

import (
	"fmt"
	"strconv"
	"unicode"
)

// Format selects the serialized form of run tokens.
type Format uint8

const (
	// FormatConcat writes a run as the character followed directly by
	// its count, e.g. "%12". Digit characters cannot be represented.
	FormatConcat Format = iota

	// FormatDelimited writes a run as "char:count", e.g. "%:12" or "5:3".
	FormatDelimited
)

// Delimiter separates character and count in FormatDelimited.
const Delimiter = ':'

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatConcat:
		return "concat"
	case FormatDelimited:
		return "delimited"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "concat", "":
		return FormatConcat, nil
	case "delimited":
		return FormatDelimited, nil
	default:
		return 0, fmt.Errorf("unknown token format %q", s)
	}
}

// EmitToken serializes a single token.
func EmitToken(t Token, f Format) (string, error) {
	return emitToken(-1, t, f)
}

// Emit serializes tokens in order.
func Emit(tokens []Token, f Format) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for i, t := range tokens {
		s, err := emitToken(i, t, f)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func emitToken(index int, t Token, f Format) (string, error) {
	if err := t.Validate(); err != nil {
		return "", malformed(index, t.String(), err.Error())
	}
	if t.IsLineBreak() {
		return LineBreakLiteral, nil
	}

	count := strconv.Itoa(t.Count)
	switch f {
	case FormatConcat:
		if unicode.IsDigit(t.Char) {
			return "", &MalformedTokenError{
				Index:  index,
				Token:  t.String(),
				Reason: "digit run character collides with count, use the delimited format",
				Err:    ErrAmbiguousRun,
			}
		}
		return string(t.Char) + count, nil
	case FormatDelimited:
		return string(t.Char) + string(Delimiter) + count, nil
	default:
		return "", fmt.Errorf("rle: unknown token format %d", f)
	}
}
