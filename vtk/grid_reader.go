package vtk

import (
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
)

// pieceReader reads the point and cell data of the first piece of a file.
type pieceReader struct {
	*File
	piece *xmltree.Element
}

func openPiece(path, dataType string) (pieceReader, error) {
	f, err := Open(path)
	if err != nil {
		return pieceReader{}, err
	}
	if f.Type() != dataType {
		return pieceReader{}, field.Errorf(field.ErrValue, "%s holds %s data, expected %s", path, f.Type(), dataType)
	}
	piece := f.root.Find(dataType, "Piece")
	if piece == nil {
		return pieceReader{}, field.Errorf(field.ErrValue, "%s has no <Piece>", path)
	}
	return pieceReader{File: f, piece: piece}, nil
}

// PointFieldNames returns the names of the point data arrays.
func (r pieceReader) PointFieldNames() []string { return arrayNames(r.piece.Child("PointData")) }

// CellFieldNames returns the names of the cell data arrays.
func (r pieceReader) CellFieldNames() []string { return arrayNames(r.piece.Child("CellData")) }

// PointField returns the named point data array as a *LazyField.
func (r pieceReader) PointField(name string) (field.Field, error) {
	lf, err := r.namedArray(r.piece.Child("PointData"), "PointData", name)
	if err != nil {
		return nil, err
	}
	return lf, nil
}

// CellField returns the named cell data array as a *LazyField.
func (r pieceReader) CellField(name string) (field.Field, error) {
	lf, err := r.namedArray(r.piece.Child("CellData"), "CellData", name)
	if err != nil {
		return nil, err
	}
	return lf, nil
}

func (r pieceReader) count(name string) (int, error) {
	n, err := intAttr(r.piece, name, -1)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, field.Errorf(field.ErrValue, "<Piece> is missing attribute %q", name)
	}
	return n, nil
}

// UnstructuredGridReader reads .vtu files.
type UnstructuredGridReader struct {
	pieceReader
	numPoints, numCells int
}

// OpenUnstructuredGrid parses the .vtu file at path.
func OpenUnstructuredGrid(path string) (*UnstructuredGridReader, error) {
	p, err := openPiece(path, "UnstructuredGrid")
	if err != nil {
		return nil, err
	}
	r := &UnstructuredGridReader{pieceReader: p}
	if r.numPoints, err = p.count("NumberOfPoints"); err != nil {
		return nil, err
	}
	if r.numCells, err = p.count("NumberOfCells"); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UnstructuredGridReader) NumberOfPoints() int { return r.numPoints }
func (r *UnstructuredGridReader) NumberOfCells() int  { return r.numCells }

// Points returns the point coordinates as a [n, 3] field.
func (r *UnstructuredGridReader) Points() (*LazyField, error) {
	e := r.piece.Find("Points", "DataArray")
	if e == nil {
		return nil, field.Errorf(field.ErrValue, "missing <Points> array")
	}
	return r.DataArrayReader().Read(e)
}

// CellArray returns one of the connectivity, offsets or types arrays.
func (r *UnstructuredGridReader) CellArray(name string) (*LazyField, error) {
	return r.namedArray(r.piece.Child("Cells"), "Cells", name)
}

// Grid reads points and cells into memory.
func (r *UnstructuredGridReader) Grid() (*grid.Unstructured, error) {
	pf, err := r.Points()
	if err != nil {
		return nil, err
	}
	coords, err := field.Values[float64](pf)
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*r.numPoints {
		return nil, field.Errorf(field.ErrSize, "%d coordinates for %d points", len(coords), r.numPoints)
	}
	points := make([][3]float64, r.numPoints)
	for i := range points {
		copy(points[i][:], coords[3*i:])
	}

	var arrays [3][]int64
	for i, name := range []string{"connectivity", "offsets", "types"} {
		lf, err := r.CellArray(name)
		if err != nil {
			return nil, err
		}
		if arrays[i], err = field.Values[int64](lf); err != nil {
			return nil, err
		}
	}
	connectivity, offsets, types := arrays[0], arrays[1], arrays[2]
	if len(offsets) != r.numCells || len(types) != r.numCells {
		return nil, field.Errorf(field.ErrSize, "cell arrays do not match %d cells", r.numCells)
	}

	cells := make([]grid.Cell, r.numCells)
	begin := int64(0)
	for c := range cells {
		end := offsets[c]
		if end < begin || end > int64(len(connectivity)) {
			return nil, field.Errorf(field.ErrValue, "invalid offset %d for cell %d", end, c)
		}
		ids := make([]int, 0, end-begin)
		for _, id := range connectivity[begin:end] {
			ids = append(ids, int(id))
		}
		cells[c] = grid.Cell{Type: grid.CellType(types[c]), Points: ids}
		begin = end
	}
	return grid.NewUnstructured(points, cells)
}

// ImageGridReader reads .vti files.
type ImageGridReader struct {
	pieceReader
	extents []int
	origin  []float64
	spacing []float64
}

// OpenImageGrid parses the .vti file at path.
func OpenImageGrid(path string) (*ImageGridReader, error) {
	p, err := openPiece(path, "ImageData")
	if err != nil {
		return nil, err
	}
	img := p.root.Child("ImageData")
	r := &ImageGridReader{pieceReader: p}

	v, err := requireAttr(img, "WholeExtent")
	if err != nil {
		return nil, err
	}
	bounds, err := parseNumbers(v, 6, strconv.Atoi)
	if err != nil {
		return nil, err
	}
	r.extents = make([]int, 3)
	for d := range r.extents {
		r.extents[d] = bounds[2*d+1] - bounds[2*d]
		if r.extents[d] < 0 {
			return nil, field.Errorf(field.ErrValue, "invalid WholeExtent %q", v)
		}
	}
	for _, attr := range []struct {
		name string
		dst  *[]float64
		def  string
	}{{"Origin", &r.origin, "0 0 0"}, {"Spacing", &r.spacing, "1 1 1"}} {
		s, ok := img.Attr(attr.name)
		if !ok {
			s = attr.def
		}
		if *attr.dst, err = parseNumbers(s, 3, func(t string) (float64, error) {
			return strconv.ParseFloat(t, 64)
		}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parseNumbers[T any](s string, n int, parse func(string) (T, error)) ([]T, error) {
	tokens := strings.Fields(s)
	if len(tokens) != n {
		return nil, field.Errorf(field.ErrValue, "expected %d numbers in %q", n, s)
	}
	out := make([]T, n)
	for i, t := range tokens {
		v, err := parse(t)
		if err != nil {
			return nil, field.Errorf(field.ErrValue, "invalid number %q in %q", t, s)
		}
		out[i] = v
	}
	return out, nil
}

// Dimension returns the number of dimensions, ignoring trailing dimensions
// without cells.
func (r *ImageGridReader) Dimension() int {
	d := 3
	for d > 1 && r.extents[d-1] == 0 {
		d--
	}
	return d
}

// NumberOfPoints returns the number of image points.
func (r *ImageGridReader) NumberOfPoints() int {
	n := 1
	for _, e := range r.extents[:r.Dimension()] {
		n *= e + 1
	}
	return n
}

// NumberOfCells returns the number of image cells.
func (r *ImageGridReader) NumberOfCells() int {
	n := 1
	for _, e := range r.extents[:r.Dimension()] {
		n *= e
	}
	return n
}

// Grid returns the image grid.
func (r *ImageGridReader) Grid() (*grid.Image, error) {
	d := r.Dimension()
	return grid.NewImage(r.extents[:d], r.origin[:d], r.spacing[:d])
}
