package rle

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is wrapped by every token that cannot be split
	// into a character and a count.
	ErrMalformedToken = errors.New("malformed token")

	// ErrAmbiguousRun is wrapped when a digit run character would be
	// indistinguishable from its count in the concatenated format.
	ErrAmbiguousRun = errors.New("ambiguous run character")
)

// MalformedTokenError reports a token that could not be converted
// to or from its serialized form.
type MalformedTokenError struct {
	Index  int    // Position in the token sequence, -1 if unknown
	Token  string // Serialized token, or debug form when emitting
	Reason string
	Err    error // ErrMalformedToken or ErrAmbiguousRun
}

func (e *MalformedTokenError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("rle: token %d %q: %s", e.Index, e.Token, e.Reason)
	}
	return fmt.Sprintf("rle: token %q: %s", e.Token, e.Reason)
}

func (e *MalformedTokenError) Unwrap() error {
	return e.Err
}

// CountMismatchError is returned when a listing declares a token count
// that differs from the number of tokens it holds.
type CountMismatchError struct {
	Declared int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("rle: listing declares %d tokens, got %d", e.Declared, e.Got)
}

func malformed(index int, token, reason string) *MalformedTokenError {
	return &MalformedTokenError{Index: index, Token: token, Reason: reason, Err: ErrMalformedToken}
}
