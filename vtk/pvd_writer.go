package vtk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/internal/binary"
	"github.com/robert-malhotra/go-gridformat/internal/xmltree"
)

// FileWriter writes a data set to a file and returns the file's name.
type FileWriter interface {
	WriteFile(path string) (string, error)
}

// TimeSeriesWriter writes a .pvd collection referencing one data set file
// per time step.
type TimeSeriesWriter struct {
	writer  FileWriter
	base    string
	pvdPath string
	root    *xmltree.Element
	log     *zap.Logger
}

// NewTimeSeriesWriter creates a writer producing base.pvd and one file per
// step named base-00000, base-00001 and so on.
func NewTimeSeriesWriter(w FileWriter, base string) *TimeSeriesWriter {
	root := xmltree.New("VTKFile").Set("type", "Collection").Set("version", "1.0")
	root.Add("Collection")
	return &TimeSeriesWriter{writer: w, base: base, pvdPath: base + ".pvd", root: root, log: zap.NewNop()}
}

// WithLogger sets the logger.
func (t *TimeSeriesWriter) WithLogger(log *zap.Logger) {
	t.log = log.With(zap.String("component", "pvd-writer"))
}

// Write writes the data set for the given time and rewrites the .pvd file,
// whose name is returned.
func (t *TimeSeriesWriter) Write(time float64) (string, error) {
	collection := t.root.Child("Collection")
	step := len(collection.Children)
	name, err := t.writer.WriteFile(fmt.Sprintf("%s-%05d", t.base, step))
	if err != nil {
		return "", fmt.Errorf("time step %d: %w", step, err)
	}
	if rel, err := filepath.Rel(filepath.Dir(t.pvdPath), name); err == nil {
		name = rel
	}
	collection.Add("DataSet").
		Set("timestep", strconv.FormatFloat(time, 'g', -1, 64)).
		Set("group", "").
		Set("part", "0").
		Set("name", "").
		Set("file", name)
	t.log.Debug("wrote time step", zap.Int("step", step), zap.Float64("time", time), zap.String("file", name))

	if err := t.writeCollection(); err != nil {
		return "", err
	}
	return t.pvdPath, nil
}

func (t *TimeSeriesWriter) writeCollection() (err error) {
	f, err := os.Create(t.pvdPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", t.pvdPath)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	x := xmltree.NewWriter(binary.NewWriter(f))
	if err := x.WriteHeader(); err != nil {
		return err
	}
	return x.WriteElement(t.root, 0)
}
