package vtk

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
	"github.com/robert-malhotra/go-gridformat/internal/binary"
	"github.com/robert-malhotra/go-gridformat/internal/dtype"
	"github.com/robert-malhotra/go-gridformat/internal/encoding"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
)

// version is the VTK XML file format version written.
const version = "2.0"

// offsetWidth is the width reserved for appended data offsets, enough for
// any 64-bit value.
const offsetWidth = 20

// fieldSet is an insertion ordered set of named fields.
type fieldSet struct {
	names  []string
	fields map[string]field.Field
}

func (s *fieldSet) set(name string, f field.Field) {
	if s.fields == nil {
		s.fields = make(map[string]field.Field)
	}
	if _, ok := s.fields[name]; !ok {
		s.names = append(s.names, name)
	}
	s.fields[name] = f
}

func (s *fieldSet) each(fn func(name string, f field.Field) error) error {
	for _, name := range s.names {
		if err := fn(name, s.fields[name]); err != nil {
			return err
		}
	}
	return nil
}

// writerBase holds what all grid writers share: options, the fields to
// write and a logger.
type writerBase struct {
	opts   Options
	log    *zap.Logger
	points fieldSet
	cells  fieldSet
	meta   fieldSet
}

func newWriterBase(opts []WriterOption) writerBase {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return writerBase{opts: o, log: zap.NewNop()}
}

// WithLogger sets the logger used for warnings and debug output.
func (w *writerBase) WithLogger(log *zap.Logger) {
	w.log = log.With(zap.String("component", "vtk-writer"))
}

// SetPointField adds or replaces a field with one entry per point.
func (w *writerBase) SetPointField(name string, f field.Field) { w.points.set(name, f) }

// SetCellField adds or replaces a field with one entry per cell.
func (w *writerBase) SetCellField(name string, f field.Field) { w.cells.set(name, f) }

// SetMetaData adds or replaces a field data array.
func (w *writerBase) SetMetaData(name string, f field.Field) { w.meta.set(name, f) }

// SetMetaDataString adds a string field data array.
func (w *writerBase) SetMetaDataString(name, text string) { w.meta.set(name, field.FromString(text)) }

// resolve resolves the options and logs the resulting warnings.
func (w *writerBase) resolve(coordinates field.Precision) (Settings, error) {
	s, warnings, err := Resolve(w.opts, coordinates)
	if err != nil {
		return Settings{}, err
	}
	for _, msg := range warnings {
		w.log.Warn(msg)
	}
	return s, nil
}

// newDocument starts a document of the given type. The returned grid
// element already holds the FieldData section.
func (w *writerBase) newDocument(gridType string, s Settings) (*document, *xmltree.Element, error) {
	d := &document{settings: s, log: w.log, root: xmltree.New("VTKFile")}
	headerType, err := dtype.VTKName(s.HeaderPrecision)
	if err != nil {
		return nil, nil, err
	}
	d.root.Set("type", gridType).
		Set("version", version).
		Set("byte_order", dtype.ByteOrderName(dtype.NativeOrder)).
		Set("header_type", headerType)
	if s.Compressor != NoCompression {
		d.root.Set("compressor", s.Compressor.VTKName())
	}

	g := d.root.Add(gridType)
	fieldData := g.Add("FieldData")
	err = w.meta.each(func(name string, f field.Field) error {
		return d.addFieldDataArray(fieldData, name, f)
	})
	if err != nil {
		return nil, nil, err
	}
	return d, g, nil
}

// addFields adds the point and cell data sections to a piece. Every field
// must have one entry per point or cell of g.
func (w *writerBase) addFields(d *document, piece *xmltree.Element, g mesh) error {
	pointData := piece.Add("PointData")
	if err := w.points.each(func(name string, f field.Field) error {
		if err := checkEntries(name, f, g.NumberOfPoints()); err != nil {
			return err
		}
		return d.addFieldArray(pointData, name, f)
	}); err != nil {
		return err
	}
	cellData := piece.Add("CellData")
	return w.cells.each(func(name string, f field.Field) error {
		if err := checkEntries(name, f, g.NumberOfCells()); err != nil {
			return err
		}
		return d.addFieldArray(cellData, name, f)
	})
}

type mesh interface {
	grid.PointSet
	grid.CellSet
}

func checkEntries(name string, f field.Field, n int) error {
	l := f.Layout()
	if l.Dimension() == 0 || l.Extent(0) != n {
		return field.Errorf(field.ErrSize, "field %q has layout %v, expected %d entries", name, l, n)
	}
	return nil
}

type appendedArray struct {
	name  string
	slot  *xmltree.Slot
	array *dataArray
}

// document is a VTK XML document under construction.
type document struct {
	settings Settings
	log      *zap.Logger
	root     *xmltree.Element
	appendix []appendedArray
}

func formatName(s Settings) string {
	switch {
	case s.DataFormat == Appended:
		return "appended"
	case encoding.IsBinary(s.Encoder):
		return "binary"
	default:
		return "ascii"
	}
}

// addArray adds a DataArray element for f and schedules its data.
func (d *document) addArray(parent *xmltree.Element, name string, f field.Field, attrs ...xmltree.Attr) (*xmltree.Element, error) {
	typeName, err := dtype.VTKName(f.Precision())
	if err != nil {
		return nil, errors.Wrapf(err, "array %q", name)
	}
	a, err := newDataArray(f, d.settings)
	if err != nil {
		return nil, err
	}

	e := parent.Add("DataArray")
	e.Set("type", typeName)
	if name != "" {
		e.Set("Name", name)
	}
	for _, attr := range attrs {
		e.Set(attr.Name, attr.Value)
	}
	e.Set("format", formatName(d.settings))

	if d.settings.DataFormat == Appended {
		d.appendix = append(d.appendix, appendedArray{name: name, slot: e.Reserve("offset", offsetWidth), array: a})
		return e, nil
	}
	e.Content = func(w io.Writer, indent string) error {
		return a.write(w, indent)
	}
	return e, nil
}

// addFieldArray adds a point or cell field. Vectors and tensors are
// extended to three components per dimension.
func (d *document) addFieldArray(parent *xmltree.Element, name string, f field.Field) error {
	f, err := field.ExtendAllTo(f, 3)
	if err != nil {
		return errors.Wrapf(err, "field %q", name)
	}
	_, err = d.addArray(parent, name, f, numberOfComponents(f.Layout()))
	return err
}

// addFieldDataArray adds a field data array, which also carries its number
// of tuples.
func (d *document) addFieldDataArray(parent *xmltree.Element, name string, f field.Field) error {
	if f.Precision() == field.String {
		return d.addStringArray(parent, name, f)
	}
	l := f.Layout()
	tuples := 1
	if l.Dimension() > 0 {
		tuples = l.Extent(0)
	}
	_, err := d.addArray(parent, name, f,
		xmltree.Attr{Name: "NumberOfTuples", Value: strconv.Itoa(tuples)},
		numberOfComponents(l))
	return err
}

// addStringArray writes text as one null terminated tuple.
func (d *document) addStringArray(parent *xmltree.Element, name string, f field.Field) error {
	s, err := field.Serialize(f)
	if err != nil {
		return err
	}
	text := append(s.Clone().Bytes(), 0)
	terminated := field.FromBytes(field.NewLayout(len(text)), field.String, text)
	_, err = d.addArray(parent, name, terminated, xmltree.Attr{Name: "NumberOfTuples", Value: "1"})
	return err
}

func numberOfComponents(l field.Layout) xmltree.Attr {
	n := 1
	if l.Dimension() > 1 {
		n = l.NumberOfEntriesFrom(1)
	}
	return xmltree.Attr{Name: "NumberOfComponents", Value: strconv.Itoa(n)}
}

// writeTo writes the document, appends the data section and patches the
// offsets of appended arrays.
func (d *document) writeTo(out *binary.Writer) error {
	x := xmltree.NewWriter(out)
	if d.settings.Encoder.Name() != encoding.NameRaw {
		if err := x.WriteHeader(); err != nil {
			return err
		}
	}

	offsets := make([]int64, len(d.appendix))
	if d.settings.DataFormat == Appended {
		appended := d.root.Add(xmltree.AppendedData)
		appended.Set("encoding", d.settings.Encoder.Name())
		appended.Content = func(w io.Writer, indent string) error {
			if _, err := io.WriteString(w, " _"); err != nil {
				return err
			}
			start := out.Pos()
			for i, a := range d.appendix {
				offsets[i] = out.Pos() - start
				if err := a.array.write(w, ""); err != nil {
					return errors.Wrapf(err, "appending array %q", a.name)
				}
				d.log.Debug("appended data array", zap.String("name", a.name), zap.Int64("offset", offsets[i]))
			}
			_, err := io.WriteString(w, "\n")
			return err
		}
	}

	if err := x.WriteElement(d.root, 0); err != nil {
		return err
	}
	for i, a := range d.appendix {
		if err := x.Patch(a.slot, strconv.FormatInt(offsets[i], 10)); err != nil {
			return err
		}
	}
	return nil
}

// writeDocument writes d to out, buffering it to allow offset patching.
func writeDocument(out io.Writer, d *document) error {
	var buf binary.Buffer
	if err := d.writeTo(binary.NewWriter(&buf)); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}

// createFile writes d to path, adding ext if path has a different one.
func createFile(path, ext string, d *document) (name string, err error) {
	name = withExtension(path, ext)
	f, err := os.Create(name)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", name)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if err := d.writeTo(binary.NewWriter(f)); err != nil {
		return "", errors.Wrapf(err, "writing %s", name)
	}
	return name, nil
}

func withExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}
