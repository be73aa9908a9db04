package rle

import (
	"fmt"
	"strconv"
)

// TokenKind represents the kind of an RLE token.
type TokenKind uint8

const (
	KindRun       TokenKind = iota // one character repeated Count times
	KindLineBreak                  // end of one encoded line
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case KindRun:
		return "RUN"
	case KindLineBreak:
		return "BREAK"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// LineBreakLiteral is the serialized form of a LineBreak token.
const LineBreakLiteral = "n"

// Token is a Run or a LineBreak marker.
// Char and Count are only meaningful for runs.
type Token struct {
	Kind  TokenKind
	Char  rune
	Count int
}

// Run returns a run token of count copies of ch.
func Run(ch rune, count int) Token {
	return Token{Kind: KindRun, Char: ch, Count: count}
}

// LineBreak returns a line break token.
func LineBreak() Token {
	return Token{Kind: KindLineBreak}
}

// IsRun reports whether t is a run token.
func (t Token) IsRun() bool {
	return t.Kind == KindRun
}

// IsLineBreak reports whether t is a line break token.
func (t Token) IsLineBreak() bool {
	return t.Kind == KindLineBreak
}

// Validate checks the token's payload against its kind.
func (t Token) Validate() error {
	switch t.Kind {
	case KindRun:
		if t.Count <= 0 {
			return fmt.Errorf("run of %q has non-positive count %d", t.Char, t.Count)
		}
		return nil
	case KindLineBreak:
		if t.Char != 0 || t.Count != 0 {
			return fmt.Errorf("line break carries payload %q/%d", t.Char, t.Count)
		}
		return nil
	default:
		return fmt.Errorf("unknown token kind %d", t.Kind)
	}
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Kind == KindLineBreak {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + strconv.QuoteRune(t.Char) + "x" + strconv.Itoa(t.Count) + ")"
}

// CountLineBreaks returns the number of line break tokens in tokens.
func CountLineBreaks(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.IsLineBreak() {
			n++
		}
	}
	return n
}
