package vtk

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
	"github.com/robert-malhotra/go-gridformat/parallel"
)

// GridReader is the read access shared by the grid file readers.
type GridReader interface {
	Type() string
	NumberOfPoints() int
	NumberOfCells() int
	PointFieldNames() []string
	CellFieldNames() []string
	MetaDataNames() []string
	PointField(name string) (field.Field, error)
	CellField(name string) (field.Field, error)
	MetaData(name string) (*LazyField, error)
	MetaDataString(name string) (string, error)
}

// ReaderOption configures the readers of parallel and time series files.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	comm           parallel.Communicator
	mergeExceeding bool
	log            *zap.Logger
}

// WithCommunicator makes each rank read only its own piece of parallel
// files. Without it, all pieces are read.
func WithCommunicator(comm parallel.Communicator) ReaderOption {
	return func(o *readerOptions) { o.comm = comm }
}

// WithMergeExceedingPieces makes the last rank read every piece beyond the
// number of ranks.
func WithMergeExceedingPieces() ReaderOption {
	return func(o *readerOptions) { o.mergeExceeding = true }
}

// WithReaderLogger sets the logger for warnings.
func WithReaderLogger(log *zap.Logger) ReaderOption {
	return func(o *readerOptions) { o.log = log.With(zap.String("component", "vtk-reader")) }
}

func newReaderOptions(opts []ReaderOption) readerOptions {
	o := readerOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OpenGrid opens a .vtu, .vti or .pvtu file, choosing the reader by the
// file extension.
func OpenGrid(path string, opts ...ReaderOption) (GridReader, error) {
	var (
		r   GridReader
		err error
	)
	switch ext := filepath.Ext(path); ext {
	case ".vtu":
		r, err = openAs(OpenUnstructuredGrid, path)
	case ".vti":
		r, err = openAs(OpenImageGrid, path)
	case ".pvtu":
		r, err = openAs(func(path string) (*ParallelGridReader, error) {
			return OpenParallelUnstructuredGrid(path, opts...)
		}, path)
	default:
		return nil, field.Errorf(field.ErrValue, "%s: no reader for %q files", path, ext)
	}
	return r, err
}

func openAs[R GridReader](open func(string) (R, error), path string) (GridReader, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// parseIndex parses a file that only references other files and checks
// that it holds data of the given type.
func parseIndex(path, dataType string) (root *xmltree.Element, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if root, err = xmltree.Parse(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if root.Name != "VTKFile" {
		return nil, field.Errorf(field.ErrValue, "%s: root element is <%s>, expected <VTKFile>", path, root.Name)
	}
	if typ, _ := root.Attr("type"); typ != dataType {
		return nil, field.Errorf(field.ErrValue, "%s holds %q data, expected %s", path, typ, dataType)
	}
	if root.Child(dataType) == nil {
		return nil, field.Errorf(field.ErrValue, "%s: missing <%s> element", path, dataType)
	}
	return root, nil
}

// referencedPath resolves a file name found in index against the
// directory of the index file.
func referencedPath(index, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(index), name)
}

// ParallelGridReader reads .pvtu files and presents the pieces it reads as
// one grid. Point ids of later pieces are shifted by the points of the
// pieces before them.
type ParallelGridReader struct {
	path   string
	pieces []*UnstructuredGridReader
}

// OpenParallelUnstructuredGrid parses the .pvtu file at path and opens its
// pieces.
func OpenParallelUnstructuredGrid(path string, opts ...ReaderOption) (*ParallelGridReader, error) {
	o := newReaderOptions(opts)
	root, err := parseIndex(path, "PUnstructuredGrid")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range root.Child("PUnstructuredGrid").ChildrenNamed("Piece") {
		source, err := requireAttr(p, "Source")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, referencedPath(path, source))
	}
	if o.comm != nil {
		paths = rankPieces(paths, o)
	}

	r := &ParallelGridReader{path: path}
	for _, p := range paths {
		piece, err := OpenUnstructuredGrid(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r.pieces = append(r.pieces, piece)
	}
	for i, p := range r.pieces[min(1, len(r.pieces)):] {
		if !slices.Equal(p.PointFieldNames(), r.PointFieldNames()) {
			return nil, field.Errorf(field.ErrValue, "%s: piece %d defines point fields %v, expected %v", path, i+1, p.PointFieldNames(), r.PointFieldNames())
		}
		if !slices.Equal(p.CellFieldNames(), r.CellFieldNames()) {
			return nil, field.Errorf(field.ErrValue, "%s: piece %d defines cell fields %v, expected %v", path, i+1, p.CellFieldNames(), r.CellFieldNames())
		}
	}
	o.log.Debug("opened parallel grid", zap.String("path", path), zap.Int("pieces", len(r.pieces)))
	return r, nil
}

// rankPieces selects the pieces read by this rank: piece i belongs to rank
// i, and the last rank may take the pieces no rank exists for.
func rankPieces(paths []string, o readerOptions) []string {
	rank, size := o.comm.Rank(), o.comm.Size()
	if rank == 0 {
		switch {
		case len(paths) < size:
			o.log.Warn("fewer pieces than ranks, the grids on some ranks are empty",
				zap.Int("pieces", len(paths)), zap.Int("ranks", size))
		case len(paths) > size && !o.mergeExceeding:
			o.log.Warn("more pieces than ranks, reading only the first pieces",
				zap.Int("pieces", len(paths)), zap.Int("ranks", size))
		}
	}
	if rank >= len(paths) {
		return nil
	}
	end := rank + 1
	if rank == size-1 && o.mergeExceeding {
		end = len(paths)
	}
	return paths[rank:end]
}

// Path returns the .pvtu file path.
func (r *ParallelGridReader) Path() string { return r.path }

// Type returns "PUnstructuredGrid".
func (r *ParallelGridReader) Type() string { return "PUnstructuredGrid" }

// NumberOfPieces returns the number of pieces read.
func (r *ParallelGridReader) NumberOfPieces() int { return len(r.pieces) }

func (r *ParallelGridReader) NumberOfPoints() int {
	n := 0
	for _, p := range r.pieces {
		n += p.NumberOfPoints()
	}
	return n
}

func (r *ParallelGridReader) NumberOfCells() int {
	n := 0
	for _, p := range r.pieces {
		n += p.NumberOfCells()
	}
	return n
}

func (r *ParallelGridReader) first() (*UnstructuredGridReader, error) {
	if len(r.pieces) == 0 {
		return nil, field.Errorf(field.ErrValue, "%s: no piece was read", r.path)
	}
	return r.pieces[0], nil
}

func (r *ParallelGridReader) PointFieldNames() []string {
	if p, err := r.first(); err == nil {
		return p.PointFieldNames()
	}
	return nil
}

func (r *ParallelGridReader) CellFieldNames() []string {
	if p, err := r.first(); err == nil {
		return p.CellFieldNames()
	}
	return nil
}

func (r *ParallelGridReader) MetaDataNames() []string {
	if p, err := r.first(); err == nil {
		return p.MetaDataNames()
	}
	return nil
}

// MetaData returns the named field data array of the first piece.
func (r *ParallelGridReader) MetaData(name string) (*LazyField, error) {
	p, err := r.first()
	if err != nil {
		return nil, err
	}
	return p.MetaData(name)
}

// MetaDataString returns the text of a string field data array of the first
// piece.
func (r *ParallelGridReader) MetaDataString(name string) (string, error) {
	p, err := r.first()
	if err != nil {
		return "", err
	}
	return p.MetaDataString(name)
}

// merge concatenates a field of every piece. Without pieces the result is
// an empty Float64 field.
func (r *ParallelGridReader) merge(get func(*UnstructuredGridReader) (field.Field, error)) (field.Field, error) {
	if len(r.pieces) == 0 {
		return field.FromSlice([]float64{}), nil
	}
	fields := make([]field.Field, len(r.pieces))
	for i, p := range r.pieces {
		f, err := get(p)
		if err != nil {
			return nil, fmt.Errorf("piece %s: %w", p.Path(), err)
		}
		fields[i] = f
	}
	if len(fields) == 1 {
		return fields[0], nil
	}
	return field.Merge(fields...)
}

// PointField returns the named point data of all pieces.
func (r *ParallelGridReader) PointField(name string) (field.Field, error) {
	return r.merge(func(p *UnstructuredGridReader) (field.Field, error) { return p.PointField(name) })
}

// CellField returns the named cell data of all pieces.
func (r *ParallelGridReader) CellField(name string) (field.Field, error) {
	return r.merge(func(p *UnstructuredGridReader) (field.Field, error) { return p.CellField(name) })
}

// Points returns the coordinates of all pieces as a [n, 3] field.
func (r *ParallelGridReader) Points() (field.Field, error) {
	return r.merge(func(p *UnstructuredGridReader) (field.Field, error) {
		lf, err := p.Points()
		if err != nil {
			return nil, err
		}
		return lf, nil
	})
}

// Grid reads the points and cells of all pieces into one grid.
func (r *ParallelGridReader) Grid() (*grid.Unstructured, error) {
	var (
		points [][3]float64
		cells  []grid.Cell
	)
	for _, p := range r.pieces {
		g, err := p.Grid()
		if err != nil {
			return nil, fmt.Errorf("piece %s: %w", p.Path(), err)
		}
		offset := len(points)
		points = append(points, g.Points...)
		for _, c := range g.Cells {
			ids := make([]int, len(c.Points))
			for i, id := range c.Points {
				ids[i] = id + offset
			}
			cells = append(cells, grid.Cell{Type: c.Type, Points: ids})
		}
	}
	return grid.NewUnstructured(points, cells)
}
