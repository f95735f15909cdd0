package grid

import (
	"testing"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage(t *testing.T) {
	img, err := NewImage([]int{2, 1}, []float64{1, 0}, []float64{0.5, 2})
	require.NoError(t, err)

	assert.Equal(t, 6, img.NumberOfPoints())
	assert.Equal(t, 2, img.NumberOfCells())
	assert.Equal(t, [3]float64{1, 0, 0}, img.PointCoordinates(0))
	assert.Equal(t, [3]float64{2, 0, 0}, img.PointCoordinates(2))
	assert.Equal(t, [3]float64{1, 2, 0}, img.PointCoordinates(3))
	assert.Equal(t, [3]float64{1.75, 1, 0}, img.CellCenter(1))

	_, err = NewImage([]int{1, 1, 1, 1}, nil, nil)
	assert.ErrorIs(t, err, field.ErrValue)
	_, err = NewImage([]int{1}, []float64{0, 0}, []float64{1})
	assert.ErrorIs(t, err, field.ErrSize)
}

func TestUnstructured(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	g, err := NewUnstructured(points, []Cell{{Type: Triangle, Points: []int{0, 1, 2}}})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumberOfPoints())
	assert.Equal(t, Triangle, g.CellType(0))
	assert.Equal(t, "triangle", g.CellType(0).String())

	_, err = NewUnstructured(points, []Cell{{Type: Triangle, Points: []int{0, 1, 3}}})
	assert.ErrorIs(t, err, field.ErrValue)
	_, err = NewUnstructured(points, []Cell{{Type: CellType(2), Points: []int{0}}})
	assert.ErrorIs(t, err, field.ErrValue)
}

func TestFieldHelpers(t *testing.T) {
	img, err := NewImage([]int{2}, []float64{0}, []float64{1})
	require.NoError(t, err)

	f := PointField(img, func(i int) float32 { return float32(img.PointCoordinates(i)[0]) })
	v, err := field.Values[float32](f)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 2}, v)

	c := CellField(img, func(c int) int32 { return int32(c * 10) })
	assert.Equal(t, []int{2}, c.Layout().Extents())

	vec, err := CellVectorField(img, 2, func(c int) []float64 { return []float64{float64(c), 1} })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, vec.Layout().Extents())

	_, err = PointVectorField(img, 2, func(i int) []float64 { return []float64{1} })
	assert.ErrorIs(t, err, field.ErrSize)
}
