package vtk

import (
	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/internal/compression"
	"github.com/robert-malhotra/go-gridformat/internal/encoding"
)

// Encoder selects how data array bytes appear in the file.
type Encoder = encoding.Encoder

// Encoders.
var (
	ASCII  Encoder = encoding.DefaultASCII()
	Base64 Encoder = encoding.Base64{}
	Raw    Encoder = encoding.Raw{}
)

// Compressor selects the block compression of binary data arrays.
type Compressor = compression.Kind

// Compressors.
const (
	NoCompression = compression.None
	LZ4           = compression.LZ4
	ZLib          = compression.ZLib
	LZMA          = compression.LZMA
)

// DataFormat says where data array contents are placed.
type DataFormat int

const (
	// Inlined writes data inside the DataArray elements.
	Inlined DataFormat = iota + 1
	// Appended writes data to the AppendedData section and references it by
	// offset.
	Appended
)

func (f DataFormat) String() string {
	switch f {
	case Inlined:
		return "inlined"
	case Appended:
		return "appended"
	default:
		return "automatic"
	}
}

// Option is a setting that is either automatic or explicitly chosen.
type Option[T any] struct {
	value    T
	explicit bool
}

// Automatic returns an option left to resolution.
func Automatic[T any]() Option[T] { return Option[T]{} }

// Explicit returns an option fixed to v.
func Explicit[T any](v T) Option[T] { return Option[T]{value: v, explicit: true} }

// Get returns the chosen value and whether there is one.
func (o Option[T]) Get() (T, bool) { return o.value, o.explicit }

// IsAutomatic reports whether the option is left to resolution.
func (o Option[T]) IsAutomatic() bool { return !o.explicit }

// Options are the user's writer settings before resolution.
type Options struct {
	Encoder             Option[Encoder]
	Compressor          Option[Compressor]
	DataFormat          Option[DataFormat]
	CoordinatePrecision Option[field.Precision]
	HeaderPrecision     field.Precision
	BlockSize           int
	CompressionLevel    int
}

// DefaultOptions returns options with everything automatic.
func DefaultOptions() Options {
	return Options{
		HeaderPrecision:  field.Uint64,
		BlockSize:        compression.DefaultBlockSize,
		CompressionLevel: compression.DefaultLevel,
	}
}

// Settings are fully resolved writer options.
type Settings struct {
	Encoder             Encoder
	Compressor          Compressor
	DataFormat          DataFormat
	CoordinatePrecision field.Precision
	HeaderPrecision     field.Precision
	BlockSize           int
	CompressionLevel    int
}

// Resolve turns options into concrete settings. Grid coordinates keep their
// own precision unless one is chosen. The returned warnings describe choices
// that were overridden.
func Resolve(opts Options, coordinates field.Precision) (Settings, []string, error) {
	var warnings []string
	s := Settings{
		HeaderPrecision:  opts.HeaderPrecision,
		BlockSize:        opts.BlockSize,
		CompressionLevel: opts.CompressionLevel,
	}

	if s.HeaderPrecision != field.Uint32 && s.HeaderPrecision != field.Uint64 {
		return Settings{}, nil, field.Errorf(field.ErrValue, "header precision must be uint32 or uint64, got %v", s.HeaderPrecision)
	}
	if s.BlockSize <= 0 {
		return Settings{}, nil, field.Errorf(field.ErrValue, "block size must be positive, got %d", s.BlockSize)
	}

	var ok bool
	if s.Encoder, ok = opts.Encoder.Get(); !ok || s.Encoder == nil {
		s.Encoder = Base64
	}
	ascii := !encoding.IsBinary(s.Encoder)
	if a, isASCII := s.Encoder.(encoding.ASCII); isASCII {
		if err := a.Validate(); err != nil {
			return Settings{}, nil, err
		}
	}

	if s.DataFormat, ok = opts.DataFormat.Get(); !ok {
		s.DataFormat = Appended
		if ascii {
			s.DataFormat = Inlined
		}
	}
	switch {
	case s.DataFormat != Inlined && s.DataFormat != Appended:
		return Settings{}, nil, field.Errorf(field.ErrValue, "unknown data format %d", s.DataFormat)
	case s.DataFormat == Appended && ascii:
		return Settings{}, nil, field.Errorf(field.ErrValue, "ascii encoding cannot be used with appended data")
	case s.DataFormat == Inlined && s.Encoder.Name() == encoding.NameRaw:
		return Settings{}, nil, field.Errorf(field.ErrValue, "raw encoding can only be used with appended data")
	}

	chosen, explicit := opts.Compressor.Get()
	switch {
	case ascii:
		if explicit && chosen != NoCompression {
			warnings = append(warnings, "Ascii output cannot be compressed. Ignoring chosen compressor...")
		}
		s.Compressor = NoCompression
	case explicit:
		if chosen != NoCompression && !compression.Available(chosen) {
			return Settings{}, nil, field.Errorf(field.ErrNotImplemented, "%v compression is not available in this build", chosen)
		}
		s.Compressor = chosen
	default:
		s.Compressor = compression.Default()
	}

	if s.CoordinatePrecision, ok = opts.CoordinatePrecision.Get(); !ok {
		s.CoordinatePrecision = coordinates
	}
	if !s.CoordinatePrecision.IsFloat() {
		return Settings{}, nil, field.Errorf(field.ErrValue, "coordinate precision must be a float type, got %v", s.CoordinatePrecision)
	}
	return s, warnings, nil
}

// WriterOption configures a writer.
type WriterOption func(*Options)

// WithEncoder sets the encoder.
func WithEncoder(e Encoder) WriterOption {
	return func(o *Options) { o.Encoder = Explicit(e) }
}

// WithASCIIFormat selects ascii encoding with a custom layout.
func WithASCIIFormat(delimiter string, entriesPerLine int) WriterOption {
	return func(o *Options) {
		o.Encoder = Explicit[Encoder](encoding.ASCII{Delimiter: delimiter, EntriesPerLine: entriesPerLine})
	}
}

// WithBufferedBase64 selects base64 encoding of every array as one
// continuous stream instead of one padded stream per write.
func WithBufferedBase64() WriterOption {
	return func(o *Options) { o.Encoder = Explicit[Encoder](encoding.Base64{Buffered: true}) }
}

// WithCompressor sets the compressor. NoCompression disables compression.
func WithCompressor(c Compressor) WriterOption {
	return func(o *Options) { o.Compressor = Explicit(c) }
}

// WithDataFormat chooses between inlined and appended data.
func WithDataFormat(f DataFormat) WriterOption {
	return func(o *Options) { o.DataFormat = Explicit(f) }
}

// WithHeaderPrecision sets the width of size headers, uint32 or uint64.
func WithHeaderPrecision(p field.Precision) WriterOption {
	return func(o *Options) { o.HeaderPrecision = p }
}

// WithCoordinatePrecision sets the precision of point coordinates.
func WithCoordinatePrecision(p field.Precision) WriterOption {
	return func(o *Options) { o.CoordinatePrecision = Explicit(p) }
}

// WithBlockSize sets the uncompressed size of compression blocks.
func WithBlockSize(n int) WriterOption {
	return func(o *Options) { o.BlockSize = n }
}

// WithCompressionLevel sets the compressor level. Negative selects the
// compressor's default.
func WithCompressionLevel(level int) WriterOption {
	return func(o *Options) { o.CompressionLevel = level }
}
