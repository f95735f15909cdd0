package binary

import (
	"io"
	"math"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Stream reads the header words and payload of a data array from a
// sequential stream holding at most a known number of bytes. Reads beyond
// that bound fail before anything is allocated.
type Stream struct {
	r         io.Reader
	cfg       Config
	remaining int64
}

// NewStream creates a stream over r that holds at most limit bytes.
func NewStream(r io.Reader, cfg Config, limit int64) *Stream {
	return &Stream{r: r, cfg: cfg, remaining: max(limit, 0)}
}

// Remaining returns the number of bytes the stream may still hold.
func (s *Stream) Remaining() int64 {
	return s.remaining
}

// ReadFull fills p from the stream.
func (s *Stream) ReadFull(p []byte) error {
	if int64(len(p)) > s.remaining {
		return field.Errorf(field.ErrSize, "%d bytes requested, at most %d left", len(p), s.remaining)
	}
	if _, err := io.ReadFull(s.r, p); err != nil {
		return field.Errorf(field.ErrSize, "reading %d bytes: %v", len(p), err)
	}
	s.remaining -= int64(len(p))
	return nil
}

// ReadHeader reads n header words. Words that do not fit into an int are
// rejected.
func (s *Stream) ReadHeader(n int) ([]int, error) {
	size := int64(s.cfg.HeaderSize)
	if n < 0 || int64(n) > s.remaining/size {
		return nil, field.Errorf(field.ErrSize, "%d header words do not fit into %d bytes", n, s.remaining)
	}
	buf := make([]byte, n*s.cfg.HeaderSize)
	if err := s.ReadFull(buf); err != nil {
		return nil, err
	}
	words := make([]int, n)
	for i := range words {
		w := s.cfg.Header(buf[i*s.cfg.HeaderSize:])
		if w > math.MaxInt {
			return nil, field.Errorf(field.ErrValue, "header word %d out of range", w)
		}
		words[i] = int(w)
	}
	return words, nil
}
