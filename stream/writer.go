package stream

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Neumenon/rle/rle"
)

// Writer writes frames to an io.Writer.
type Writer struct {
	w       io.Writer
	withCRC bool
}

// NewWriter creates a frame writer that omits CRCs unless the frame
// already carries one.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewWriterWithCRC creates a writer that computes a CRC for every frame.
func NewWriterWithCRC(w io.Writer) *Writer {
	return &Writer{w: w, withCRC: true}
}

// WriteFrame writes a single frame.
//
// Format:
//
//	@rle{v=1 fmt=F lines=N tokens=N len=N [crc=X]}\n
//	<payload bytes>\n
func (w *Writer) WriteFrame(f *Frame) error {
	var header strings.Builder
	header.WriteString(headerPrefix)

	header.WriteString("v=")
	if f.Version == 0 {
		header.WriteByte('1')
	} else {
		header.WriteString(strconv.Itoa(int(f.Version)))
	}

	header.WriteString(" fmt=")
	header.WriteString(f.Format.String())

	header.WriteString(" lines=")
	header.WriteString(strconv.Itoa(f.Lines))

	header.WriteString(" tokens=")
	header.WriteString(strconv.Itoa(f.Tokens))

	header.WriteString(" len=")
	header.WriteString(strconv.Itoa(len(f.Payload)))

	crc := f.CRC
	if crc == nil && w.withCRC {
		computed := ComputeCRC(f.Payload)
		crc = &computed
	}
	if crc != nil {
		header.WriteString(fmt.Sprintf(" crc=%08x", *crc))
	}

	header.WriteString("}\n")

	if _, err := io.WriteString(w.w, header.String()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(f.Payload) > 0 {
		if _, err := w.w.Write(f.Payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
	}
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}
	return nil
}

// WriteTokens serializes tokens in format f and writes them as one frame.
func (w *Writer) WriteTokens(tokens []rle.Token, f rle.Format) error {
	frame, err := NewFrame(tokens, f)
	if err != nil {
		return err
	}
	if !w.withCRC {
		frame.CRC = nil
	}
	return w.WriteFrame(frame)
}
