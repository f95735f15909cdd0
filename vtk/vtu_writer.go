package vtk

import (
	"io"
	"strconv"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
)

// UnstructuredGridWriter writes .vtu files.
type UnstructuredGridWriter struct {
	writerBase
	grid grid.UnstructuredGrid
}

// NewUnstructuredGridWriter creates a writer for g.
func NewUnstructuredGridWriter(g grid.UnstructuredGrid, opts ...WriterOption) *UnstructuredGridWriter {
	return &UnstructuredGridWriter{writerBase: newWriterBase(opts), grid: g}
}

// Write writes the file contents to out.
func (w *UnstructuredGridWriter) Write(out io.Writer) error {
	d, err := w.document()
	if err != nil {
		return err
	}
	return writeDocument(out, d)
}

// WriteFile writes to path, adding the .vtu extension if missing, and
// returns the name of the written file.
func (w *UnstructuredGridWriter) WriteFile(path string) (string, error) {
	d, err := w.document()
	if err != nil {
		return "", err
	}
	return createFile(path, ".vtu", d)
}

func (w *UnstructuredGridWriter) document() (*document, error) {
	s, err := w.resolve(field.Float64)
	if err != nil {
		return nil, err
	}
	d, ug, err := w.newDocument("UnstructuredGrid", s)
	if err != nil {
		return nil, err
	}

	piece := ug.Add("Piece").
		Set("NumberOfPoints", strconv.Itoa(w.grid.NumberOfPoints())).
		Set("NumberOfCells", strconv.Itoa(w.grid.NumberOfCells()))
	if err := w.addFields(d, piece, w.grid); err != nil {
		return nil, err
	}

	points := field.Cast(pointCoordinates(w.grid), s.CoordinatePrecision)
	if _, err := d.addArray(piece.Add("Points"), "Coordinates", points, numberOfComponents(points.Layout())); err != nil {
		return nil, err
	}

	connectivity, offsets, types := cellArrays(w.grid)
	cells := piece.Add("Cells")
	for _, a := range []struct {
		name string
		f    field.Field
	}{
		{"connectivity", field.Cast(connectivity, s.HeaderPrecision)},
		{"offsets", field.Cast(offsets, s.HeaderPrecision)},
		{"types", types},
	} {
		if _, err := d.addArray(cells, a.name, a.f, xmltree.Attr{Name: "NumberOfComponents", Value: "1"}); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type coordinateGrid interface {
	grid.PointSet
	PointCoordinates(i int) [3]float64
}

func pointCoordinates(g coordinateGrid) field.Field {
	n := g.NumberOfPoints()
	flat := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		x := g.PointCoordinates(i)
		flat = append(flat, x[:]...)
	}
	f, _ := field.FromValues(field.NewLayout(n, 3), flat)
	return f
}

func cellArrays(g grid.UnstructuredGrid) (connectivity, offsets, types field.Field) {
	n := g.NumberOfCells()
	conn := make([]uint64, 0, n)
	offs := make([]uint64, n)
	typ := make([]uint8, n)
	for c := 0; c < n; c++ {
		for _, p := range g.CellPoints(c) {
			conn = append(conn, uint64(p))
		}
		offs[c] = uint64(len(conn))
		typ[c] = uint8(g.CellType(c))
	}
	return field.FromSlice(conn), field.FromSlice(offs), field.FromSlice(typ)
}
