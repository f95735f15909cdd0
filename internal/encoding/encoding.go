// Package encoding implements the stream encodings of VTK-XML data arrays.
//
// An [Encoder] creates a [Stream] on top of an io.Writer. Every Write call
// receives the bytes of a run of elements together with their precision:
//
//   - [ASCII] writes delimiter separated numbers, a fixed count per line
//   - [Base64] writes padded base64 text, either per Write or once per stream
//   - [Raw] writes the bytes unchanged
//
// Binary encodings are read back through [NewDecoder].
package encoding

import (
	"io"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Encoder names.
const (
	NameASCII  = "ascii"
	NameBase64 = "base64"
	NameRaw    = "raw"
)

// Encoder creates encoding streams.
type Encoder interface {
	Name() string
	NewStream(w io.Writer) Stream
}

// Stream encodes element data onto an underlying writer.
type Stream interface {
	// Write encodes data, which holds native-order elements of precision p.
	Write(data []byte, p field.Precision) error
	// Close flushes pending output. It does not close the underlying writer.
	Close() error
}

// ByName returns the default encoder with the given name.
func ByName(name string) (Encoder, error) {
	switch name {
	case NameASCII:
		return DefaultASCII(), nil
	case NameBase64:
		return Base64{}, nil
	case NameRaw:
		return Raw{}, nil
	default:
		return nil, field.Errorf(field.ErrValue, "unknown encoder %q", name)
	}
}

// IsBinary reports whether the encoder writes binary element data, that is
// anything but ascii.
func IsBinary(e Encoder) bool {
	return e.Name() != NameASCII
}
