package encoding

import (
	"io"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Raw writes bytes unmodified. It is only valid for appended data.
type Raw struct{}

func (Raw) Name() string { return NameRaw }

func (Raw) NewStream(w io.Writer) Stream {
	return rawStream{w: w}
}

type rawStream struct {
	w io.Writer
}

func (s rawStream) Write(data []byte, _ field.Precision) error {
	_, err := s.w.Write(data)
	return err
}

func (rawStream) Close() error { return nil }

// NewDecoder returns a reader producing the bytes encoded with the named
// binary encoding.
func NewDecoder(name string, r io.Reader) (io.Reader, error) {
	switch name {
	case NameBase64:
		return newBase64Reader(r), nil
	case NameRaw:
		return r, nil
	case NameASCII:
		return nil, field.Errorf(field.ErrValue, "ascii data is parsed per value, not decoded as a stream")
	default:
		return nil, field.Errorf(field.ErrValue, "unknown encoding %q", name)
	}
}
