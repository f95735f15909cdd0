package vtk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/internal/binary"
	"github.com/robert-malhotra/go-gridformat/internal/dtype"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
	"github.com/robert-malhotra/go-gridformat/parallel"
)

// ParallelWriter writes one .vtu piece per rank and a .pvtu file on rank 0
// that references all pieces.
type ParallelWriter struct {
	*UnstructuredGridWriter
	comm parallel.Communicator
}

// NewParallelWriter wraps the writer of this rank's piece.
func NewParallelWriter(w *UnstructuredGridWriter, comm parallel.Communicator) *ParallelWriter {
	return &ParallelWriter{UnstructuredGridWriter: w, comm: comm}
}

// PieceName returns the file name of a rank's piece for the given .pvtu path.
func PieceName(path string, rank int) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "-" + strconv.Itoa(rank) + ".vtu"
}

// Write fails; parallel output consists of several files.
func (w *ParallelWriter) Write(io.Writer) error {
	return field.Errorf(field.ErrInvalidState, "parallel output cannot be written to a single stream, use WriteFile")
}

// WriteFile writes this rank's piece and, on rank 0, the .pvtu file. It
// must be called on all ranks and fails on all of them if any piece could
// not be written.
func (w *ParallelWriter) WriteFile(path string) (string, error) {
	path = withExtension(path, ".pvtu")
	rank := w.comm.Rank()

	_, pieceErr := w.UnstructuredGridWriter.WriteFile(PieceName(path, rank))
	status := uint64(0)
	if pieceErr != nil {
		status = 1
	}
	statuses, err := w.comm.Gather([]uint64{status}, 0)
	if err != nil {
		return "", err
	}

	result := []uint64{0}
	if rank == 0 {
		var failed []string
		for r, s := range statuses {
			if s[0] != 0 {
				failed = append(failed, strconv.Itoa(r))
			}
		}
		if len(failed) == 0 {
			if err := w.writeParallelFile(path); err != nil {
				w.log.Error("writing parallel file", zap.Error(err))
				result[0] = 1
			}
		} else {
			w.log.Error("pieces failed", zap.Strings("ranks", failed))
			result[0] = 1
		}
	}
	if result, err = w.comm.Broadcast(result, 0); err != nil {
		return "", err
	}

	switch {
	case pieceErr != nil:
		return "", fmt.Errorf("rank %d: %w", rank, pieceErr)
	case result[0] != 0:
		return "", field.Errorf(field.ErrInvalidState, "writing %s failed on another rank", path)
	}
	return path, nil
}

func (w *ParallelWriter) writeParallelFile(path string) (err error) {
	s, err := w.resolve(field.Float64)
	if err != nil {
		return err
	}
	root := xmltree.New("VTKFile").Set("type", "PUnstructuredGrid")
	g := root.Add("PUnstructuredGrid")
	format := formatName(s)

	addArrays := func(section *xmltree.Element, set *fieldSet) error {
		return set.each(func(name string, f field.Field) error {
			f, err := field.ExtendAllTo(f, 3)
			if err != nil {
				return err
			}
			typeName, err := dtype.VTKName(f.Precision())
			if err != nil {
				return err
			}
			components := numberOfComponents(f.Layout())
			section.Add("PDataArray").
				Set("Name", name).
				Set("type", typeName).
				Set(components.Name, components.Value).
				Set("format", format)
			return nil
		})
	}
	if err := addArrays(g.Add("PPointData"), &w.points); err != nil {
		return err
	}
	if err := addArrays(g.Add("PCellData"), &w.cells); err != nil {
		return err
	}

	coordType, err := dtype.VTKName(s.CoordinatePrecision)
	if err != nil {
		return err
	}
	g.Add("PPoints").Add("PDataArray").
		Set("NumberOfComponents", "3").
		Set("type", coordType)
	for r := 0; r < w.comm.Size(); r++ {
		g.Add("Piece").Set("Source", filepath.Base(PieceName(path, r)))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	x := xmltree.NewWriter(binary.NewWriter(f))
	if err := x.WriteHeader(); err != nil {
		return err
	}
	return x.WriteElement(root, 0)
}
