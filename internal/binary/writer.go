package binary

import "io"

// Writer writes to an io.WriterAt, keeping its own position. It also
// implements io.Writer.
type Writer struct {
	w   io.WriterAt
	pos int64
}

// NewWriter creates a writer positioned at the start of w.
func NewWriter(w io.WriterAt) *Writer {
	return &Writer{w: w}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{w: w.w, pos: offset}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Write implements io.Writer at the current position.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.w.WriteAt(p, w.pos)
	w.pos += int64(n)
	return n, err
}

// WriteString writes s at the current position.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Buffer is an in-memory io.WriterAt that grows as needed.
type Buffer struct {
	buf []byte
}

// WriteAt implements io.WriterAt.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if end := int(off) + len(p); end > len(b.buf) {
		if end <= cap(b.buf) {
			b.buf = b.buf[:end]
		} else {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		}
	}
	copy(b.buf[off:], p)
	return len(p), nil
}

// Bytes returns the written bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written up to the highest offset.
func (b *Buffer) Len() int {
	return len(b.buf)
}
