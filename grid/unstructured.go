package grid

import "github.com/robert-malhotra/go-gridformat/field"

// Cell is a cell of an Unstructured grid.
type Cell struct {
	Type   CellType
	Points []int
}

// Unstructured is an in-memory unstructured grid.
type Unstructured struct {
	Points [][3]float64
	Cells  []Cell
}

// NewUnstructured creates a grid and checks that every cell references
// existing points and has a known type.
func NewUnstructured(points [][3]float64, cells []Cell) (*Unstructured, error) {
	for c, cell := range cells {
		if !cell.Type.Valid() {
			return nil, field.Errorf(field.ErrValue, "cell %d has unknown type %d", c, cell.Type)
		}
		for _, p := range cell.Points {
			if p < 0 || p >= len(points) {
				return nil, field.Errorf(field.ErrValue, "cell %d references point %d of %d", c, p, len(points))
			}
		}
	}
	return &Unstructured{Points: points, Cells: cells}, nil
}

func (g *Unstructured) NumberOfPoints() int               { return len(g.Points) }
func (g *Unstructured) NumberOfCells() int                { return len(g.Cells) }
func (g *Unstructured) PointCoordinates(i int) [3]float64 { return g.Points[i] }
func (g *Unstructured) CellType(c int) CellType           { return g.Cells[c].Type }
func (g *Unstructured) CellPoints(c int) []int            { return g.Cells[c].Points }
