package rle

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MaxRunCount is the largest run count the parser accepts.
const MaxRunCount = 16 << 20

// ParseToken parses one serialized token.
func ParseToken(s string, f Format) (Token, error) {
	return parseToken(-1, s, f)
}

// ParseTokens parses serialized tokens in order. The first malformed
// token stops parsing and is reported with its index.
func ParseTokens(strs []string, f Format) ([]Token, error) {
	tokens := make([]Token, 0, len(strs))
	for i, s := range strs {
		t, err := parseToken(i, s, f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func parseToken(index int, s string, f Format) (Token, error) {
	// The marker is checked before any run parsing.
	if s == LineBreakLiteral {
		return LineBreak(), nil
	}
	if s == "" {
		return Token{}, malformed(index, s, "empty token")
	}

	ch, size := utf8.DecodeRuneInString(s)
	if ch == utf8.RuneError && size <= 1 {
		return Token{}, malformed(index, s, "invalid UTF-8")
	}
	rest := s[size:]

	switch f {
	case FormatConcat:
		if unicode.IsDigit(ch) {
			return Token{}, malformed(index, s, "no character prefix before count")
		}
		if rest == "" {
			return Run(ch, 1), nil
		}
	case FormatDelimited:
		if rest == "" || rest[0] != Delimiter {
			return Token{}, malformed(index, s, "missing "+strconv.QuoteRune(Delimiter)+" after run character")
		}
		rest = rest[1:]
		if rest == "" {
			return Token{}, malformed(index, s, "missing count")
		}
	default:
		return Token{}, malformed(index, s, "unknown token format "+f.String())
	}

	count, err := parseCount(rest)
	if err != nil {
		return Token{}, malformed(index, s, err.Error())
	}
	return Run(ch, count), nil
}

func parseCount(digits string) (int, error) {
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit %q in count", c)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("count %s out of range", digits)
	}
	if n == 0 {
		return 0, fmt.Errorf("zero count")
	}
	if n > MaxRunCount {
		return 0, fmt.Errorf("count too large: %d > %d", n, MaxRunCount)
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
