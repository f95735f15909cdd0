package compression

import (
	"github.com/robert-malhotra/go-gridformat/field"
)

// DefaultBlockSize is the raw size of a full block unless configured otherwise.
const DefaultBlockSize = 1 << 15

// DefaultLevel selects each compressor's default compression level.
const DefaultLevel = -1

// Kind identifies a compressor.
type Kind int

// Compressor kinds.
const (
	None Kind = iota
	LZ4
	ZLib
	LZMA
)

var kindNames = map[Kind]string{
	None: "none",
	LZ4:  "lz4",
	ZLib: "zlib",
	LZMA: "lzma",
}

// vtkNames maps compressor kinds to the VTK compressor attribute.
var vtkNames = map[Kind]string{
	LZ4:  "vtkLZ4DataCompressor",
	ZLib: "vtkZLibDataCompressor",
	LZMA: "vtkLZMADataCompressor",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// VTKName returns the value of the VTK compressor attribute, or "" for None.
func (k Kind) VTKName() string {
	return vtkNames[k]
}

// ParseKind parses a compressor name as returned by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return None, field.Errorf(field.ErrValue, "unknown compressor %q", name)
}

// ParseVTKName parses a VTK compressor attribute value.
func ParseVTKName(name string) (Kind, error) {
	for k, n := range vtkNames {
		if n == name {
			return k, nil
		}
	}
	return None, field.Errorf(field.ErrValue, "unknown VTK compressor %q", name)
}

// Compressor compresses and decompresses single blocks.
type Compressor interface {
	// Kind returns the compressor kind.
	Kind() Kind

	// Compress returns the compressed form of a block.
	Compress(block []byte) ([]byte, error)

	// Decompress restores a block of rawSize bytes.
	Decompress(block []byte, rawSize int) ([]byte, error)
}

// Registry maps compressor kinds to constructors taking a compression level.
// Compressors register themselves unless excluded by a build tag.
var Registry = map[Kind]func(level int) Compressor{}

// preference is the order in which Default picks a compressor.
var preference = []Kind{LZ4, ZLib, LZMA}

// New creates a compressor of the given kind.
func New(k Kind, level int) (Compressor, error) {
	constructor, ok := Registry[k]
	if !ok {
		if name, known := kindNames[k]; known && k != None {
			return nil, field.Errorf(field.ErrNotImplemented, "%s compressor is not included in this build", name)
		}
		return nil, field.Errorf(field.ErrValue, "no compressor for kind %v", k)
	}
	return constructor(level), nil
}

// Available reports whether compressor k is included in this build.
func Available(k Kind) bool {
	_, ok := Registry[k]
	return ok
}

// Default returns the preferred available compressor, or None if the build
// includes no compressor.
func Default() Kind {
	for _, k := range preference {
		if Available(k) {
			return k
		}
	}
	return None
}
