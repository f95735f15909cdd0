package field

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues[T Number](t *testing.T, f Field) []T {
	t.Helper()
	v, err := Values[T](f)
	require.NoError(t, err)
	return v
}

func TestIdentityIdempotent(t *testing.T) {
	f := FromSlice([]float32{1, 2, 3})
	twice := Identity(Identity(f))

	assert.True(t, twice.Layout().Equal(f.Layout()))
	assert.Equal(t, f.Precision(), twice.Precision())

	want, err := Serialize(f)
	require.NoError(t, err)
	got, err := Serialize(twice)
	require.NoError(t, err)
	assert.Equal(t, want.Bytes(), got.Bytes())
}

func TestFlatten(t *testing.T) {
	f, err := FromVectors([][]int32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	flat := Flatten(f)
	assert.Equal(t, []int{6}, flat.Layout().Extents())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, mustValues[int32](t, flat))
}

func TestReshape(t *testing.T) {
	f := FromSlice([]int32{1, 2, 3, 4, 5, 6})

	r, err := Reshape(f, NewLayout(3, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, r.Layout().Extents())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, mustValues[int32](t, r))

	_, err = Reshape(f, NewLayout(4, 2))
	assert.ErrorIs(t, err, ErrSize)
}

func TestExtend(t *testing.T) {
	f, err := FromValues(NewLayout(2, 2), []int32{2, 3, 4, 5})
	require.NoError(t, err)

	e, err := Extend(f, NewLayout(3))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, e.Layout().Extents())
	assert.Equal(t, []int32{2, 3, 0, 4, 5, 0}, mustValues[int32](t, e))
}

func TestExtendTensor(t *testing.T) {
	f, err := FromTensors([][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	})
	require.NoError(t, err)

	e, err := ExtendAllTo(f, 3)
	require.NoError(t, err)
	want := []float64{
		1, 2, 0, 3, 4, 0, 0, 0, 0,
		5, 6, 0, 7, 8, 0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, mustValues[float64](t, e)); diff != "" {
		t.Errorf("extended tensor mismatch (-want +got):\n%s", diff)
	}
}

func TestExtendAllToKeepsScalars(t *testing.T) {
	f := FromSlice([]int8{1, 2})
	e, err := ExtendAllTo(f, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, e.Layout().Extents())
}

func TestExtendErrors(t *testing.T) {
	f, err := FromValues(NewLayout(2, 2), []int32{2, 3, 4, 5})
	require.NoError(t, err)

	_, err = Extend(f, NewLayout(1))
	assert.ErrorIs(t, err, ErrSize, "shrinking")
	_, err = Extend(f, NewLayout(3, 3))
	assert.ErrorIs(t, err, ErrSize, "dimension mismatch")
}

func TestSlice(t *testing.T) {
	f, err := FromValues(NewLayout(2, 2), []int32{2, 42, 2, 43})
	require.NoError(t, err)

	s, err := Slice(f, []int{0, 1}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, s.Layout().Extents())
	assert.Equal(t, []int32{42, 43}, mustValues[int32](t, s))
}

func TestSliceBlock(t *testing.T) {
	values := make([]uint16, 4*5*3)
	for i := range values {
		values[i] = uint16(i)
	}
	f, err := FromValues(NewLayout(4, 5, 3), values)
	require.NoError(t, err)

	s, err := Slice(f, []int{1, 2, 1}, []int{3, 4, 3})
	require.NoError(t, err)

	var want []uint16
	for i := 1; i < 3; i++ {
		for j := 2; j < 4; j++ {
			for k := 1; k < 3; k++ {
				want = append(want, uint16(i*15+j*3+k))
			}
		}
	}
	if diff := cmp.Diff(want, mustValues[uint16](t, s)); diff != "" {
		t.Errorf("slice mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceErrors(t *testing.T) {
	f := FromSlice([]int32{1, 2, 3})

	tests := []struct {
		name     string
		from, to []int
	}{
		{"dimension", []int{0, 0}, []int{1, 1}},
		{"reversed", []int{2}, []int{1}},
		{"out of range", []int{0}, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Slice(f, tt.from, tt.to)
			assert.ErrorIs(t, err, ErrSize)
		})
	}
}

func TestMerge(t *testing.T) {
	a, _ := FromVectors([][]int32{{1, 2}})
	b, _ := FromVectors([][]int32{{3, 4}, {5, 6}})

	m, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, m.Layout().Extents())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, mustValues[int32](t, m))
}

func TestMergeErrors(t *testing.T) {
	a, _ := FromValues(NewLayout(1, 1), []int32{1})
	b, _ := FromValues(NewLayout(1, 2), []int32{1, 2})
	_, err := Merge(a, b)
	assert.ErrorIs(t, err, ErrValue, "sub-layout mismatch")

	c, _ := FromValues(NewLayout(1, 1), []float64{1})
	_, err = Merge(a, c)
	assert.ErrorIs(t, err, ErrValue, "precision mismatch")

	_, err = Merge()
	assert.ErrorIs(t, err, ErrValue, "no fields")

	_, err = Merge(FromBytes(NewLayout(), Int32, nil))
	assert.ErrorIs(t, err, ErrValue, "no dimensions")
}

func TestTransformationsRecompute(t *testing.T) {
	counter := &countingField{Field: FromSlice([]int32{1, 2, 3, 4})}
	r, err := Reshape(counter, NewLayout(2, 2))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := r.Serialized()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, counter.calls)
}

func TestApply(t *testing.T) {
	f := FromSlice([]int32{1, 2, 3, 4})
	out, err := Apply(f,
		func(f Field) (Field, error) { return Reshape(f, NewLayout(2, 2)) },
		func(f Field) (Field, error) { return ExtendAllTo(f, 3) },
	)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 0, 3, 4, 0}, mustValues[int32](t, out))
}

type countingField struct {
	Field
	calls int
}

func (c *countingField) Serialized() (*Serialization, error) {
	c.calls++
	return c.Field.Serialized()
}
