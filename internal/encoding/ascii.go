package encoding

import (
	"bufio"
	"io"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/internal/dtype"
)

// ASCII writes elements as human-readable numbers.
type ASCII struct {
	Delimiter      string
	EntriesPerLine int // 0 writes every value on a single line
	LinePrefix     string
}

// DefaultASCII returns the ascii format used unless configured otherwise.
func DefaultASCII() ASCII {
	return ASCII{Delimiter: " ", EntriesPerLine: 10}
}

func (ASCII) Name() string { return NameASCII }

// Validate checks that values written in this layout can be read back.
// VTK splits ascii data on whitespace only, so the delimiter must be
// non-empty whitespace and the line prefix may hold nothing else.
func (a ASCII) Validate() error {
	if a.Delimiter == "" {
		return field.Errorf(field.ErrValue, "empty ascii delimiter")
	}
	for _, s := range []string{a.Delimiter, a.LinePrefix} {
		for i := 0; i < len(s); i++ {
			if !dtype.IsSpace(s[i]) {
				return field.Errorf(field.ErrValue, "ascii delimiter and line prefix must be whitespace, got %q", s)
			}
		}
	}
	return nil
}

func (a ASCII) NewStream(w io.Writer) Stream {
	return &asciiStream{format: a, w: bufio.NewWriter(w)}
}

type asciiStream struct {
	format  ASCII
	w       *bufio.Writer
	onLine  int
	scratch []byte
}

func (s *asciiStream) Write(data []byte, p field.Precision) error {
	appendValue, err := dtype.Formatter(p)
	if err != nil {
		return err
	}
	size := p.Size()
	if len(data)%size != 0 {
		return field.Errorf(field.ErrSize, "%d bytes are not a multiple of %v elements", len(data), p)
	}
	for off := 0; off < len(data); off += size {
		s.scratch = s.scratch[:0]
		if s.onLine == 0 {
			s.scratch = append(s.scratch, s.format.LinePrefix...)
		} else {
			s.scratch = append(s.scratch, s.format.Delimiter...)
		}
		s.scratch = appendValue(s.scratch, data[off:off+size])
		s.onLine++
		if s.format.EntriesPerLine > 0 && s.onLine == s.format.EntriesPerLine {
			s.scratch = append(s.scratch, '\n')
			s.onLine = 0
		}
		if _, err := s.w.Write(s.scratch); err != nil {
			return err
		}
	}
	return nil
}

func (s *asciiStream) Close() error {
	if s.onLine > 0 {
		if err := s.w.WriteByte('\n'); err != nil {
			return err
		}
		s.onLine = 0
	}
	return s.w.Flush()
}
