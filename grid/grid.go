// Package grid defines what the VTK writers need to know about a mesh and
// provides simple image and unstructured grids.
package grid

import (
	"fmt"

	"github.com/robert-malhotra/go-gridformat/field"
)

// CellType identifies the shape of a cell by its VTK type number.
type CellType uint8

// Cell types.
const (
	Vertex        CellType = 1
	Segment       CellType = 3
	Triangle      CellType = 5
	Polygon       CellType = 7
	Quadrilateral CellType = 9
	Tetrahedron   CellType = 10
	Hexahedron    CellType = 12
)

var cellTypeNames = map[CellType]string{
	Vertex:        "vertex",
	Segment:       "segment",
	Triangle:      "triangle",
	Polygon:       "polygon",
	Quadrilateral: "quadrilateral",
	Tetrahedron:   "tetrahedron",
	Hexahedron:    "hexahedron",
}

func (c CellType) String() string {
	if name, ok := cellTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CellType(%d)", uint8(c))
}

// Valid reports whether c is a known cell type.
func (c CellType) Valid() bool {
	_, ok := cellTypeNames[c]
	return ok
}

// PointSet is anything with a number of points.
type PointSet interface {
	NumberOfPoints() int
}

// CellSet is anything with a number of cells.
type CellSet interface {
	NumberOfCells() int
}

// UnstructuredGrid is a mesh with explicit points and cells. Cell point ids
// index into the points.
type UnstructuredGrid interface {
	PointSet
	CellSet
	PointCoordinates(i int) [3]float64
	CellType(c int) CellType
	CellPoints(c int) []int
}

// ImageGrid is an axis-aligned grid of equally spaced points. Extents are
// cell counts per dimension, between one and three of them.
type ImageGrid interface {
	PointSet
	CellSet
	Extents() []int
	Origin() []float64
	Spacing() []float64
}

// PointField creates a scalar field with one value per point.
func PointField[T field.Number](g PointSet, value func(i int) T) field.Field {
	values := make([]T, g.NumberOfPoints())
	for i := range values {
		values[i] = value(i)
	}
	return field.FromSlice(values)
}

// CellField creates a scalar field with one value per cell.
func CellField[T field.Number](g CellSet, value func(c int) T) field.Field {
	values := make([]T, g.NumberOfCells())
	for c := range values {
		values[c] = value(c)
	}
	return field.FromSlice(values)
}

// PointVectorField creates a field of dim components per point.
func PointVectorField[T field.Number](g PointSet, dim int, value func(i int) []T) (field.Field, error) {
	return vectorField(g.NumberOfPoints(), dim, value)
}

// CellVectorField creates a field of dim components per cell.
func CellVectorField[T field.Number](g CellSet, dim int, value func(c int) []T) (field.Field, error) {
	return vectorField(g.NumberOfCells(), dim, value)
}

func vectorField[T field.Number](n, dim int, value func(i int) []T) (field.Field, error) {
	flat := make([]T, 0, n*dim)
	for i := 0; i < n; i++ {
		v := value(i)
		if len(v) != dim {
			return nil, field.Errorf(field.ErrSize, "entry %d has %d components, expected %d", i, len(v), dim)
		}
		flat = append(flat, v...)
	}
	return field.FromValues(field.NewLayout(n, dim), flat)
}
