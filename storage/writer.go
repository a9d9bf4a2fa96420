package storage

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer with the buffered, error-wrapped helpers used
// by the CLI output paths (raw sector lines, packed EFM bits, EFM text).
type Writer struct {
	bw *bufio.Writer
}

// NewWriter returns a Writer around any io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64*1024)}
}

// WriteBytes writes p in full.
func (w *Writer) WriteBytes(p []byte) error {
	if _, err := w.bw.Write(p); err != nil {
		return errors.Wrap(err, "storage: WriteBytes failed")
	}
	return nil
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	if err := w.bw.WriteByte(b); err != nil {
		return errors.Wrap(err, "storage: WriteByte failed")
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.bw.Flush(), "storage: Flush failed")
}
