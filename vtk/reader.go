package vtk

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/field"
	bin "github.com/robert-malhotra/go-gridformat/internal/binary"
	"github.com/robert-malhotra/go-gridformat/internal/compression"
	"github.com/robert-malhotra/go-gridformat/internal/dtype"
	"github.com/robert-malhotra/go-gridformat/internal/encoding"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
)

// Strategy describes how the bytes of a data array are stored.
type Strategy struct {
	Format          string // ascii, base64 or raw
	Compressor      Compressor
	HeaderPrecision field.Precision
	ByteOrder       binary.ByteOrder
}

func (s Strategy) header() bin.Config {
	return bin.Config{ByteOrder: s.ByteOrder, HeaderSize: s.HeaderPrecision.Size()}
}

// LazyField is a field backed by a data array in a file. Nothing beyond the
// size header is read until the field is serialized, and serialized data is
// not cached.
type LazyField struct {
	Path     string
	Offset   int64
	Strategy Strategy

	layout    field.Layout
	precision field.Precision
}

// NewLazyField creates a field reading the array at offset in path.
func NewLazyField(path string, offset int64, layout field.Layout, p field.Precision, s Strategy) *LazyField {
	return &LazyField{Path: path, Offset: offset, Strategy: s, layout: layout, precision: p}
}

func (l *LazyField) Layout() field.Layout       { return l.layout }
func (l *LazyField) Precision() field.Precision { return l.precision }

// Serialized reads and decodes the array.
func (l *LazyField) Serialized() (*field.Serialization, error) { return l.Resolve() }

// Resolve reads and decodes the array into native byte order.
func (l *LazyField) Resolve() (s *field.Serialization, err error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", l.Path)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", l.Path)
	}
	limit := info.Size() - l.Offset

	n := l.layout.NumberOfEntries()
	r := bufio.NewReader(bin.NewReader(f).At(l.Offset))
	if l.Strategy.Format == encoding.NameASCII {
		if int64(n) > limit {
			return nil, field.Errorf(field.ErrSize, "%s at offset %d: %d ascii values do not fit into %d bytes", l.Path, l.Offset, n, limit)
		}
		return dtype.ParseASCII(r, l.precision, n)
	}

	dec, err := encoding.NewDecoder(l.Strategy.Format, r)
	if err != nil {
		return nil, err
	}
	size := l.precision.Size()
	if s, err = decodeBinary(bin.NewStream(dec, l.Strategy.header(), limit), l.Strategy, n*size); err != nil {
		return nil, fmt.Errorf("%s at offset %d: %w", l.Path, l.Offset, err)
	}
	if err := dtype.ToNative(s.Bytes(), size, l.Strategy.ByteOrder); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeBinary reads a framed array of want raw bytes from a decoded binary
// stream.
func decodeBinary(s *bin.Stream, st Strategy, want int) (*field.Serialization, error) {
	if st.Compressor == NoCompression {
		words, err := s.ReadHeader(1)
		if err != nil {
			return nil, err
		}
		if words[0] != want {
			return nil, field.Errorf(field.ErrSize, "header announces %d bytes, expected %d", words[0], want)
		}
		out := field.NewSerialization(want)
		if err := s.ReadFull(out.Bytes()); err != nil {
			return nil, err
		}
		return out, nil
	}

	c, err := compression.New(st.Compressor, compression.DefaultLevel)
	if err != nil {
		return nil, err
	}
	blocks, err := readBlocks(s)
	if err != nil {
		return nil, err
	}
	if blocks.RawSize() != want {
		return nil, field.Errorf(field.ErrSize, "header announces %d bytes, expected %d", blocks.RawSize(), want)
	}
	data := make([]byte, blocks.CompressedSize())
	if err := s.ReadFull(data); err != nil {
		return nil, err
	}
	return compression.DecompressBlocks(c, data, blocks)
}

// readBlocks reads the block manifest of a compressed array.
func readBlocks(s *bin.Stream) (compression.Blocks, error) {
	words, err := s.ReadHeader(3)
	if err != nil {
		return compression.Blocks{}, err
	}
	sizes, err := s.ReadHeader(words[0])
	if err != nil {
		return compression.Blocks{}, err
	}
	blocks := compression.BlocksFromHeader(words[0], words[1], words[2], sizes)
	if err := blocks.Validate(); err != nil {
		return compression.Blocks{}, err
	}
	if int64(blocks.CompressedSize()) > s.Remaining() {
		return compression.Blocks{}, field.Errorf(field.ErrSize, "%d compressed bytes do not fit into %d bytes", blocks.CompressedSize(), s.Remaining())
	}
	return blocks, nil
}

// rawSize reads only the size header of a framed array.
func rawSize(s *bin.Stream, st Strategy) (int, error) {
	if st.Compressor == NoCompression {
		words, err := s.ReadHeader(1)
		if err != nil {
			return 0, err
		}
		if int64(words[0]) > s.Remaining() {
			return 0, field.Errorf(field.ErrSize, "header announces %d bytes, at most %d left", words[0], s.Remaining())
		}
		return words[0], nil
	}
	blocks, err := readBlocks(s)
	if err != nil {
		return 0, err
	}
	return blocks.RawSize(), nil
}

// DataArrayReader turns DataArray elements of a file into lazy fields.
type DataArrayReader struct {
	file *File
}

// Read creates the lazy field of a DataArray element.
func (r DataArrayReader) Read(e *xmltree.Element) (*LazyField, error) {
	name, _ := e.Attr("Name")
	lf, err := r.read(e)
	if err != nil {
		return nil, fmt.Errorf("DataArray %q: %w", name, err)
	}
	r.file.log.Debug("read data array",
		zap.String("name", name),
		zap.Stringer("layout", lf.layout),
		zap.Stringer("precision", lf.precision),
		zap.Int64("offset", lf.Offset))
	return lf, nil
}

func (r DataArrayReader) read(e *xmltree.Element) (*LazyField, error) {
	typeName, err := requireAttr(e, "type")
	if err != nil {
		return nil, err
	}
	p, err := dtype.ParseVTKName(typeName)
	if err != nil {
		return nil, err
	}
	format, err := requireAttr(e, "format")
	if err != nil {
		return nil, err
	}
	components, err := intAttr(e, "NumberOfComponents", 1)
	if err != nil {
		return nil, err
	}
	if components < 1 {
		return nil, field.Errorf(field.ErrValue, "invalid NumberOfComponents %d", components)
	}

	st := Strategy{ByteOrder: r.file.byteOrder, HeaderPrecision: r.file.headerPrecision}
	offset := e.ContentOffset
	switch format {
	case "ascii":
		st.Format = encoding.NameASCII
	case "binary":
		st.Format = encoding.NameBase64
		st.Compressor = r.file.compressor
	case "appended":
		if r.file.appendix == nil {
			return nil, field.Errorf(field.ErrValue, "appended array in a file without AppendedData")
		}
		v, err := requireAttr(e, "offset")
		if err != nil {
			return nil, err
		}
		off, err := strconv.ParseUint(strings.TrimSpace(v), 10, 63)
		if err != nil {
			return nil, field.Errorf(field.ErrValue, "invalid offset %q", v)
		}
		st.Format = r.file.appendix.encoding
		st.Compressor = r.file.compressor
		offset = r.file.appendix.start + int64(off)
	default:
		return nil, field.Errorf(field.ErrValue, "unknown format %q", format)
	}

	tuples, err := intAttr(e, "NumberOfTuples", -1)
	if err != nil {
		return nil, err
	}
	if p == field.String {
		if tuples > 1 {
			return nil, field.Errorf(field.ErrSize, "string arrays hold a single tuple, got %d", tuples)
		}
		chars, err := r.countEntries(offset, st, p)
		if err != nil {
			return nil, err
		}
		return NewLazyField(r.file.path, offset, field.NewLayout(chars), p, st), nil
	}

	if tuples < 0 {
		entries, err := r.countEntries(offset, st, p)
		if err != nil {
			return nil, err
		}
		if entries%components != 0 {
			return nil, field.Errorf(field.ErrValue, "%d values do not form tuples of %d components", entries, components)
		}
		tuples = entries / components
	}
	layout := field.NewLayout(tuples)
	if components > 1 {
		layout = field.NewLayout(tuples, components)
	}
	return NewLazyField(r.file.path, offset, layout, p, st), nil
}

// countEntries determines the number of values of an array from its size
// header, or by counting ascii values.
func (r DataArrayReader) countEntries(offset int64, st Strategy, p field.Precision) (n int, err error) {
	f, err := os.Open(r.file.path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", r.file.path)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "reading %s", r.file.path)
	}

	br := bufio.NewReader(bin.NewReader(f).At(offset))
	if st.Format == encoding.NameASCII {
		return dtype.CountASCII(br)
	}
	dec, err := encoding.NewDecoder(st.Format, br)
	if err != nil {
		return 0, err
	}
	size, err := rawSize(bin.NewStream(dec, st.header(), info.Size()-offset), st)
	if err != nil {
		return 0, err
	}
	if size%p.Size() != 0 {
		return 0, field.Errorf(field.ErrValue, "%d bytes do not hold whole %v values", size, p)
	}
	return size / p.Size(), nil
}

func intAttr(e *xmltree.Element, name string, def int) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, field.Errorf(field.ErrValue, "invalid %s %q", name, v)
	}
	return n, nil
}
