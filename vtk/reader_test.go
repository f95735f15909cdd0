package vtk

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
)

func headerWords(values ...uint64) []byte {
	var b []byte
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, v)
	}
	return b
}

func appendedDoc(t *testing.T, attrs, array string, payload []byte) string {
	t.Helper()
	return writeDoc(t, `<?xml version="1.0"?>
<VTKFile type="UnstructuredGrid" version="1.0" byte_order="LittleEndian" header_type="UInt64"`+attrs+`>
  <UnstructuredGrid>
    <FieldData>
      `+array+`
    </FieldData>
  </UnstructuredGrid>
  <AppendedData encoding="raw">
   _`+string(payload)+`
  </AppendedData>
</VTKFile>
`)
}

func TestReadMalformedHeaders(t *testing.T) {
	const zlib = ` compressor="vtkZLibDataCompressor"`
	tests := []struct {
		name    string
		attrs   string
		tuples  string
		payload []byte
		want    error
	}{
		{"size above int range", "", "", headerWords(0xF000000000000000), field.ErrValue},
		{"size above int range with tuple count", "", `NumberOfTuples="1"`, headerWords(0xF000000000000000), field.ErrValue},
		{"size beyond end of file", "", "", headerWords(1 << 40), field.ErrSize},
		{"size disagrees with tuple count", "", `NumberOfTuples="1"`, append(headerWords(16), make([]byte, 16)...), field.ErrSize},
		{"block count beyond end of file", zlib, "", headerWords(1<<40, 8, 0), field.ErrSize},
		{"compressed size above int range", zlib, "", headerWords(1, 8, 0, math.MaxUint64), field.ErrValue},
		{"compressed sizes beyond end of file", zlib, "", headerWords(1, 8, 0, 1<<30), field.ErrSize},
		{"residual above block size", zlib, "", headerWords(1, 8, 9, 4), field.ErrValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := appendedDoc(t, tt.attrs,
				`<DataArray type="Float64" Name="x" format="appended" offset="0" `+tt.tuples+`/>`, tt.payload)
			f, err := Open(path)
			require.NoError(t, err)

			lf, err := f.MetaData("x")
			if tt.tuples == "" {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			_, err = lf.Resolve()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadASCIITupleCountBeyondFile(t *testing.T) {
	path := writeDoc(t, fieldDataDoc(`byte_order="LittleEndian"`,
		`<DataArray type="Float64" Name="x" NumberOfTuples="100000000000" format="ascii">1 2</DataArray>`))
	f, err := Open(path)
	require.NoError(t, err)
	lf, err := f.MetaData("x")
	require.NoError(t, err)
	_, err = lf.Resolve()
	assert.ErrorIs(t, err, field.ErrSize)
}

func TestReadASCIIAbuttingEndTag(t *testing.T) {
	for _, tuples := range []string{"", `NumberOfTuples="3"`} {
		path := writeDoc(t, fieldDataDoc(`byte_order="LittleEndian"`,
			`<DataArray type="Int32" Name="a" format="ascii" `+tuples+`>1 2 3</DataArray><DataArray type="Int32" Name="b" format="ascii">4</DataArray>`))
		f, err := Open(path)
		require.NoError(t, err)
		lf, err := f.MetaData("a")
		require.NoError(t, err)
		assert.Equal(t, []int{3}, lf.Layout().Extents())
		v, err := field.Values[int32](lf)
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2, 3}, v, tuples)
	}
}

func TestASCIIDelimiters(t *testing.T) {
	g := testGrid(t)
	for _, delimiter := range []string{" ", "\t", "\n", "  "} {
		for _, perLine := range []int{0, 1, 4} {
			w := NewUnstructuredGridWriter(g, WithASCIIFormat(delimiter, perLine))
			w.SetPointField("p", grid.PointField(g, func(i int) float64 { return 0.25 * float64(i) }))
			name, err := w.WriteFile(filepath.Join(t.TempDir(), "mesh"))
			require.NoError(t, err)

			r, err := OpenUnstructuredGrid(name)
			require.NoError(t, err)
			p, err := r.PointField("p")
			require.NoError(t, err)
			v, err := field.Values[float64](p)
			require.NoError(t, err)
			assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, v, "delimiter %q, %d per line", delimiter, perLine)
		}
	}

	w := NewUnstructuredGridWriter(g, WithASCIIFormat(",", 0))
	_, err := w.WriteFile(filepath.Join(t.TempDir(), "mesh"))
	assert.ErrorIs(t, err, field.ErrValue)
}
