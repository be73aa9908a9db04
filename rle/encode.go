package rle

import "fmt"

// EmptyLinePolicy decides what an empty input line encodes to.
type EmptyLinePolicy uint8

const (
	// EmptyLinesCollapse drops empty lines entirely: no run, no line break.
	// Decoding therefore merges them away.
	EmptyLinesCollapse EmptyLinePolicy = iota

	// EmptyLinesPreserve emits a lone line break for each empty line so
	// that it decodes back to a blank line.
	EmptyLinesPreserve
)

// String returns the policy name as used on the command line.
func (p EmptyLinePolicy) String() string {
	switch p {
	case EmptyLinesCollapse:
		return "collapse"
	case EmptyLinesPreserve:
		return "preserve"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// ParseEmptyLinePolicy parses a policy name.
func ParseEmptyLinePolicy(s string) (EmptyLinePolicy, error) {
	switch s {
	case "collapse", "":
		return EmptyLinesCollapse, nil
	case "preserve":
		return EmptyLinesPreserve, nil
	default:
		return 0, fmt.Errorf("unknown empty line policy %q", s)
	}
}

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// EmptyLines controls how empty input lines are encoded.
	EmptyLines EmptyLinePolicy
}

// DefaultEncodeOptions returns options that reproduce the classic
// behavior, where empty lines vanish from the token stream.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		EmptyLines: EmptyLinesCollapse,
	}
}

// Encode run-length encodes lines with default options.
func Encode(lines []string) []Token {
	return EncodeWithOptions(lines, DefaultEncodeOptions())
}

// EncodeWithOptions run-length encodes lines. Every encoded line ends
// with a line break, the last one included. The returned slice is
// freshly allocated and never retained.
func EncodeWithOptions(lines []string, opts EncodeOptions) []Token {
	var tokens []Token
	for _, line := range lines {
		tokens = encodeLine(tokens, line, opts)
	}
	return tokens
}

// EncodeLine encodes a single line, including its trailing line break.
func EncodeLine(line string) []Token {
	return encodeLine(nil, line, DefaultEncodeOptions())
}

func encodeLine(dst []Token, line string, opts EncodeOptions) []Token {
	if line == "" {
		if opts.EmptyLines == EmptyLinesPreserve {
			dst = append(dst, LineBreak())
		}
		return dst
	}

	var cur rune
	count := 0
	for _, ch := range line {
		switch {
		case count == 0:
			cur, count = ch, 1
		case ch == cur:
			count++
		default:
			dst = append(dst, Run(cur, count))
			cur, count = ch, 1
		}
	}
	dst = append(dst, Run(cur, count))

	return append(dst, LineBreak())
}
