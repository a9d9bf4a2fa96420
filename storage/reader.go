// Package storage provides the shared byte/bit-level IO primitives used by
// every media reader and writer in this module: a peekable, error-wrapped
// reader for framed binary formats, and a bit-packed writer for formats
// (such as the EFM bitstream) that are not byte-aligned.
package storage

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Reader wraps an io.Reader with the peek/short-read helpers the media
// packages need to parse framed binary formats without pre-loading the
// whole file into memory.
type Reader struct {
	br *bufio.Reader
}

// NewReader returns a Reader around any io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Read implements io.Reader, so a *Reader can be passed directly to
// binary.Read.
func (r *Reader) Read(p []byte) (int, error) {
	return r.br.Read(p)
}

// ReadByte reads and returns the next byte. It panics on error: callers
// that need a recoverable error should check Peek first.
func (r *Reader) ReadByte() byte {
	b, err := r.br.ReadByte()
	if err != nil {
		panic(errors.Wrap(err, "storage: ReadByte failed"))
	}
	return b
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, errors.Wrapf(err, "storage: ReadBytes(%d) failed", n)
	}
	return buf, nil
}

// ReadShort reads a little-endian uint16.
func (r *Reader) ReadShort() (uint16, error) {
	var v uint16
	if err := binary.Read(r.br, binary.LittleEndian, &v); err != nil {
		return 0, errors.Wrap(err, "storage: ReadShort failed")
	}
	return v, nil
}

// Peek returns the next n bytes without advancing the reader.
func (r *Reader) Peek(n int) ([]byte, error) {
	b, err := r.br.Peek(n)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// PeekShort peeks the next two bytes as a little-endian uint16 without
// advancing the reader.
func (r *Reader) PeekShort() (uint16, error) {
	b, err := r.Peek(2)
	if err != nil {
		return 0, errors.Wrap(err, "storage: PeekShort failed")
	}
	return binary.LittleEndian.Uint16(b), nil
}
