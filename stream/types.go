// Package stream implements a framed text envelope for RLE token listings.
//
// A frame is a header line followed by the serialized token list:
//
//	@rle{v=1 fmt=concat lines=2 tokens=5 len=27 crc=1a2b3c4d}
//	["a3", "n", "b1", "c2", "n"]
//
// The header records enough to check the payload on the way back in:
// its byte length, a CRC-32 and the number of tokens and lines it holds.
package stream

import (
	"fmt"
	"hash/crc32"

	"github.com/Neumenon/rle/rle"
)

// Version is the frame format version.
const Version uint8 = 1

// headerPrefix opens every frame header.
const headerPrefix = "@rle{"

// MaxPayloadSize is the default maximum payload size (16 MiB).
const MaxPayloadSize = 16 * 1024 * 1024

// Frame is a single framed token listing.
type Frame struct {
	Version uint8
	Format  rle.Format
	Lines   int    // Number of line break tokens
	Tokens  int    // Number of tokens in Payload
	Payload []byte // FormatList output

	CRC *uint32 // CRC-32 of Payload, nil if not present
}

// NewFrame serializes tokens into a frame.
func NewFrame(tokens []rle.Token, f rle.Format) (*Frame, error) {
	strs, err := rle.Emit(tokens, f)
	if err != nil {
		return nil, err
	}
	payload := []byte(rle.FormatList(strs))
	crc := ComputeCRC(payload)
	return &Frame{
		Version: Version,
		Format:  f,
		Lines:   rle.CountLineBreaks(tokens),
		Tokens:  len(tokens),
		Payload: payload,
		CRC:     &crc,
	}, nil
}

// Decode parses the payload back into tokens and checks them against
// the header counts.
func (f *Frame) Decode() ([]rle.Token, error) {
	strs, err := rle.ParseListing(f.Payload)
	if err != nil {
		return nil, err
	}
	if len(strs) != f.Tokens {
		return nil, &rle.CountMismatchError{Declared: f.Tokens, Got: len(strs)}
	}
	tokens, err := rle.ParseTokens(strs, f.Format)
	if err != nil {
		return nil, err
	}
	if got := rle.CountLineBreaks(tokens); got != f.Lines {
		return nil, &ParseError{Reason: fmt.Sprintf("header declares %d lines, payload has %d", f.Lines, got), Offset: -1}
	}
	return tokens, nil
}

// ParseError reports a malformed frame.
type ParseError struct {
	Reason string
	Offset int
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("stream: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("stream: %s", e.Reason)
}

// CRCMismatchError is returned when CRC verification fails.
type CRCMismatchError struct {
	Expected uint32
	Got      uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("stream: CRC mismatch: expected %08x, got %08x", e.Expected, e.Got)
}

// ComputeCRC computes CRC-32 IEEE of data.
func ComputeCRC(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
