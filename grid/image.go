package grid

import "github.com/robert-malhotra/go-gridformat/field"

// Image is an image grid of cells with constant spacing.
type Image struct {
	extents []int
	origin  []float64
	spacing []float64
}

// NewImage creates an image grid. Origin and spacing must have one entry
// per extent.
func NewImage(extents []int, origin, spacing []float64) (*Image, error) {
	if len(extents) < 1 || len(extents) > 3 {
		return nil, field.Errorf(field.ErrValue, "image grids have 1 to 3 dimensions, got %d", len(extents))
	}
	if len(origin) != len(extents) || len(spacing) != len(extents) {
		return nil, field.Errorf(field.ErrSize, "origin %v and spacing %v do not match extents %v", origin, spacing, extents)
	}
	for _, e := range extents {
		if e < 0 {
			return nil, field.Errorf(field.ErrValue, "negative extent in %v", extents)
		}
	}
	return &Image{
		extents: append([]int(nil), extents...),
		origin:  append([]float64(nil), origin...),
		spacing: append([]float64(nil), spacing...),
	}, nil
}

func (g *Image) Extents() []int     { return append([]int(nil), g.extents...) }
func (g *Image) Origin() []float64  { return append([]float64(nil), g.origin...) }
func (g *Image) Spacing() []float64 { return append([]float64(nil), g.spacing...) }

// NumberOfPoints returns the product of extents plus one.
func (g *Image) NumberOfPoints() int {
	n := 1
	for _, e := range g.extents {
		n *= e + 1
	}
	return n
}

// NumberOfCells returns the product of extents.
func (g *Image) NumberOfCells() int {
	n := 1
	for _, e := range g.extents {
		n *= e
	}
	return n
}

// PointCoordinates returns the position of point i, x varying fastest.
func (g *Image) PointCoordinates(i int) [3]float64 {
	var x [3]float64
	for d, e := range g.extents {
		x[d] = g.origin[d] + float64(i%(e+1))*g.spacing[d]
		i /= e + 1
	}
	return x
}

// CellCenter returns the center of cell c, x varying fastest.
func (g *Image) CellCenter(c int) [3]float64 {
	var x [3]float64
	for d, e := range g.extents {
		x[d] = g.origin[d] + (float64(c%e)+0.5)*g.spacing[d]
		c /= e
	}
	return x
}
