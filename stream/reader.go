package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Neumenon/rle/rle"
)

// Reader reads frames from an io.Reader.
type Reader struct {
	r          *bufio.Reader
	maxPayload int
	verifyCRC  bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPayload sets the maximum payload size (default: 16 MiB).
func WithMaxPayload(max int) ReaderOption {
	return func(r *Reader) {
		r.maxPayload = max
	}
}

// WithoutCRCVerification skips CRC checks.
func WithoutCRCVerification() ReaderOption {
	return func(r *Reader) {
		r.verifyCRC = false
	}
}

// NewReader creates a frame reader. CRCs are verified by default.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		r:          bufio.NewReader(r),
		maxPayload: MaxPayloadSize,
		verifyCRC:  true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// IsFramed reports whether data starts with a frame header.
func IsFramed(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(headerPrefix))
}

// Next reads and returns the next frame.
// Returns io.EOF when no more frames are available.
func (r *Reader) Next() (*Frame, error) {
	// Read header line
	var headerLine string
	for {
		line, err := r.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read header: %w", err)
		}
		// Blank lines between frames are skipped.
		if strings.TrimSpace(line) != "" {
			headerLine = line
			break
		}
		if err == io.EOF {
			return nil, io.EOF
		}
	}

	// Parse header
	frame, payloadLen, err := parseHeader(headerLine)
	if err != nil {
		return nil, err
	}
	if payloadLen > r.maxPayload {
		return nil, &ParseError{Reason: fmt.Sprintf("payload too large: %d > %d", payloadLen, r.maxPayload), Offset: -1}
	}

	// Read exact payload bytes
	if payloadLen > 0 {
		frame.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r.r, frame.Payload); err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
	}

	// Consume trailing newline (optional at EOF)
	if b, err := r.r.ReadByte(); err == nil && b != '\n' {
		// Part of the next frame
		r.r.UnreadByte()
	}

	// Verify CRC if present
	if r.verifyCRC && frame.CRC != nil {
		if computed := ComputeCRC(frame.Payload); computed != *frame.CRC {
			return nil, &CRCMismatchError{Expected: *frame.CRC, Got: computed}
		}
	}

	return frame, nil
}

// ReadAll reads all frames until EOF.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}

// ReadTokens reads every frame and concatenates their decoded tokens.
func (r *Reader) ReadTokens() ([]rle.Token, error) {
	frames, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	var tokens []rle.Token
	for i, f := range frames {
		ts, err := f.Decode()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		tokens = append(tokens, ts...)
	}
	return tokens, nil
}

// parseHeader parses the @rle{...} header line.
func parseHeader(line string) (*Frame, int, error) {
	line = strings.TrimSpace(line)

	// Check prefix
	if !strings.HasPrefix(line, headerPrefix) {
		return nil, 0, &ParseError{Reason: "expected " + headerPrefix, Offset: 0}
	}
	// Find closing brace
	if !strings.HasSuffix(line, "}") {
		return nil, 0, &ParseError{Reason: "missing closing }", Offset: len(line)}
	}
	content := line[len(headerPrefix) : len(line)-1]

	// Parse key=value pairs
	frame := &Frame{Version: Version}
	payloadLen := -1
	seenLines, seenTokens := false, false
	for _, pair := range strings.Fields(content) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		switch key {
		case "v":
			v, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid version", Offset: -1}
			}
			if uint8(v) != Version {
				return nil, 0, &ParseError{Reason: "unsupported version " + val, Offset: -1}
			}
			frame.Version = uint8(v)

		case "fmt":
			f, err := rle.ParseFormat(val)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid fmt: " + val, Offset: -1}
			}
			frame.Format = f

		case "lines":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return nil, 0, &ParseError{Reason: "invalid lines", Offset: -1}
			}
			frame.Lines = n
			seenLines = true

		case "tokens":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return nil, 0, &ParseError{Reason: "invalid tokens", Offset: -1}
			}
			frame.Tokens = n
			seenTokens = true

		case "len":
			l, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid len", Offset: -1}
			}
			payloadLen = int(l)

		case "crc":
			crc, ok := parseCRC(val)
			if !ok {
				return nil, 0, &ParseError{Reason: "invalid crc: " + val, Offset: -1}
			}
			frame.CRC = &crc
		}
	}

	// Required keys
	if payloadLen < 0 {
		return nil, 0, &ParseError{Reason: "missing len", Offset: -1}
	}
	if !seenLines {
		return nil, 0, &ParseError{Reason: "missing lines", Offset: -1}
	}
	if !seenTokens {
		return nil, 0, &ParseError{Reason: "missing tokens", Offset: -1}
	}
	return frame, payloadLen, nil
}

// parseCRC parses a CRC value: "crc32:XXXXXXXX" or "XXXXXXXX".
func parseCRC(val string) (uint32, bool) {
	val = strings.TrimPrefix(val, "crc32:")
	if len(val) != 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
