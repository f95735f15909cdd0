package vtk

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
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

// File is a parsed VTK XML file. Data arrays are not read until their
// fields are serialized.
type File struct {
	path            string
	root            *xmltree.Element
	dataType        string
	byteOrder       binary.ByteOrder
	headerPrecision field.Precision
	compressor      Compressor
	appendix        *appendix
	log             *zap.Logger
}

// appendix describes the AppendedData section.
type appendix struct {
	encoding string
	start    int64 // first byte after the '_' marker
}

// Open parses the XML structure of the file at path.
func Open(path string) (file *File, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	root, err := xmltree.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file = &File{path: path, root: root, log: zap.NewNop()}
	if err := file.readHeader(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if e := root.Child(xmltree.AppendedData); e != nil {
		if file.appendix, err = readAppendix(f, e); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return file, nil
}

func requireAttr(e *xmltree.Element, name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", field.Errorf(field.ErrValue, "<%s> is missing attribute %q", e.Name, name)
	}
	return v, nil
}

func (f *File) readHeader() error {
	if f.root.Name != "VTKFile" {
		return field.Errorf(field.ErrValue, "root element is <%s>, expected <VTKFile>", f.root.Name)
	}
	var err error
	if f.dataType, err = requireAttr(f.root, "type"); err != nil {
		return err
	}
	order, err := requireAttr(f.root, "byte_order")
	if err != nil {
		return err
	}
	if f.byteOrder, err = dtype.ParseByteOrder(order); err != nil {
		return err
	}

	f.headerPrecision = field.Uint32
	if name, ok := f.root.Attr("header_type"); ok {
		if f.headerPrecision, err = dtype.ParseVTKName(name); err != nil {
			return err
		}
		if f.headerPrecision != field.Uint32 && f.headerPrecision != field.Uint64 {
			return field.Errorf(field.ErrValue, "unsupported header_type %q", name)
		}
	}

	f.compressor = NoCompression
	if name, ok := f.root.Attr("compressor"); ok {
		if f.compressor, err = compression.ParseVTKName(name); err != nil {
			return err
		}
	}
	return nil
}

// readAppendix locates the '_' marker that precedes appended data.
func readAppendix(r io.ReaderAt, e *xmltree.Element) (*appendix, error) {
	name, err := requireAttr(e, "encoding")
	if err != nil {
		return nil, err
	}
	if name != encoding.NameBase64 && name != encoding.NameRaw {
		return nil, field.Errorf(field.ErrValue, "unsupported appended data encoding %q", name)
	}
	br := bufio.NewReader(bin.NewReader(r).At(e.ContentOffset))
	pos := e.ContentOffset
	for {
		c, err := br.ReadByte()
		if err != nil {
			return nil, field.Errorf(field.ErrValue, "appended data has no '_' marker")
		}
		pos++
		switch {
		case c == '_':
			return &appendix{encoding: name, start: pos}, nil
		case !dtype.IsSpace(c):
			return nil, field.Errorf(field.ErrValue, "appended data starts with %q instead of '_'", c)
		}
	}
}

// WithLogger sets the logger for debug output.
func (f *File) WithLogger(log *zap.Logger) {
	f.log = log.With(zap.String("component", "vtk-reader"), zap.String("path", f.path))
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Type returns the data set type, e.g. "UnstructuredGrid".
func (f *File) Type() string { return f.dataType }

// ByteOrder returns the byte order of binary data.
func (f *File) ByteOrder() binary.ByteOrder { return f.byteOrder }

// HeaderPrecision returns the precision of size headers.
func (f *File) HeaderPrecision() field.Precision { return f.headerPrecision }

// Compressor returns the compressor of binary data.
func (f *File) Compressor() Compressor { return f.compressor }

// AppendedEncoding returns the encoding of the AppendedData section, or an
// empty string if there is none.
func (f *File) AppendedEncoding() string {
	if f.appendix == nil {
		return ""
	}
	return f.appendix.encoding
}

func (f *File) dataSet() (*xmltree.Element, error) {
	e := f.root.Child(f.dataType)
	if e == nil {
		return nil, field.Errorf(field.ErrValue, "missing <%s> element", f.dataType)
	}
	return e, nil
}

// MetaDataNames returns the names of the field data arrays.
func (f *File) MetaDataNames() []string {
	e, err := f.dataSet()
	if err != nil {
		return nil
	}
	return arrayNames(e.Child("FieldData"))
}

// MetaData returns the named field data array.
func (f *File) MetaData(name string) (*LazyField, error) {
	e, err := f.dataSet()
	if err != nil {
		return nil, err
	}
	return f.namedArray(e.Child("FieldData"), "FieldData", name)
}

// MetaDataString returns the text of a string field data array.
func (f *File) MetaDataString(name string) (string, error) {
	lf, err := f.MetaData(name)
	if err != nil {
		return "", err
	}
	if lf.Precision() != field.String {
		return "", field.Errorf(field.ErrValue, "field data %q has type %v, not string", name, lf.Precision())
	}
	s, err := lf.Resolve()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(s.Bytes()), "\x00"), nil
}

// ArrayInfo describes a data array of the file.
type ArrayInfo struct {
	Section string // parent element, e.g. PointData
	Name    string
	Format  string
	Field   *LazyField
}

// Arrays lists every data array in document order.
func (f *File) Arrays() ([]ArrayInfo, error) {
	var out []ArrayInfo
	r := f.DataArrayReader()
	var walk func(e *xmltree.Element) error
	walk = func(e *xmltree.Element) error {
		for _, c := range e.Children {
			if c.Name != "DataArray" {
				if err := walk(c); err != nil {
					return err
				}
				continue
			}
			lf, err := r.Read(c)
			if err != nil {
				return err
			}
			name, _ := c.Attr("Name")
			format, _ := c.Attr("format")
			out = append(out, ArrayInfo{Section: e.Name, Name: name, Format: format, Field: lf})
		}
		return nil
	}
	if err := walk(f.root); err != nil {
		return nil, err
	}
	return out, nil
}

// DataArrayReader returns the reader for this file's data arrays.
func (f *File) DataArrayReader() DataArrayReader {
	return DataArrayReader{file: f}
}

func arrayNames(section *xmltree.Element) []string {
	if section == nil {
		return nil
	}
	var names []string
	for _, e := range section.ChildrenNamed("DataArray") {
		if name, ok := e.Attr("Name"); ok {
			names = append(names, name)
		}
	}
	return names
}

func (f *File) namedArray(section *xmltree.Element, sectionName, name string) (*LazyField, error) {
	if section != nil {
		for _, e := range section.ChildrenNamed("DataArray") {
			if n, _ := e.Attr("Name"); n == name {
				return f.DataArrayReader().Read(e)
			}
		}
	}
	return nil, field.Errorf(field.ErrValue, "no array %q in %s", name, sectionName)
}
