package vtk

import (
	"io"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/grid"
)

// ImageGridWriter writes .vti files.
type ImageGridWriter struct {
	writerBase
	grid grid.ImageGrid
}

// NewImageGridWriter creates a writer for g.
func NewImageGridWriter(g grid.ImageGrid, opts ...WriterOption) *ImageGridWriter {
	return &ImageGridWriter{writerBase: newWriterBase(opts), grid: g}
}

// Write writes the file contents to out.
func (w *ImageGridWriter) Write(out io.Writer) error {
	d, err := w.document()
	if err != nil {
		return err
	}
	return writeDocument(out, d)
}

// WriteFile writes to path, adding the .vti extension if missing, and
// returns the name of the written file.
func (w *ImageGridWriter) WriteFile(path string) (string, error) {
	d, err := w.document()
	if err != nil {
		return "", err
	}
	return createFile(path, ".vti", d)
}

func (w *ImageGridWriter) document() (*document, error) {
	s, err := w.resolve(field.Float64)
	if err != nil {
		return nil, err
	}
	d, img, err := w.newDocument("ImageData", s)
	if err != nil {
		return nil, err
	}

	extent := extentString(w.grid.Extents())
	img.Set("WholeExtent", extent).
		Set("Origin", vector3String(w.grid.Origin())).
		Set("Spacing", vector3String(w.grid.Spacing()))
	piece := img.Add("Piece").Set("Extent", extent)
	if err := w.addFields(d, piece, w.grid); err != nil {
		return nil, err
	}
	return d, nil
}

// extentString formats cell counts as a VTK extent "0 nx 0 ny 0 nz".
func extentString(extents []int) string {
	parts := make([]string, 0, 6)
	for d := 0; d < 3; d++ {
		e := 0
		if d < len(extents) {
			e = extents[d]
		}
		parts = append(parts, "0", strconv.Itoa(e))
	}
	return strings.Join(parts, " ")
}

func vector3String(v []float64) string {
	parts := make([]string, 3)
	for d := range parts {
		x := 0.0
		if d < len(v) {
			x = v[d]
		}
		parts[d] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
