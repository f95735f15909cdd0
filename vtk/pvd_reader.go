package vtk

import (
	"fmt"
	"strconv"

	"github.com/robert-malhotra/go-gridformat/field"
)

// TimeStep is one data set of a time series.
type TimeStep struct {
	Time float64
	Path string
}

// TimeSeriesReader reads .pvd collections. Step files are opened on demand
// with OpenGrid.
type TimeSeriesReader struct {
	path  string
	steps []TimeStep
	opts  []ReaderOption
}

// OpenTimeSeries parses the .pvd file at path. The options are passed on to
// the readers of the step files.
func OpenTimeSeries(path string, opts ...ReaderOption) (*TimeSeriesReader, error) {
	root, err := parseIndex(path, "Collection")
	if err != nil {
		return nil, err
	}
	r := &TimeSeriesReader{path: path, opts: opts}
	for i, e := range root.Child("Collection").ChildrenNamed("DataSet") {
		file, err := requireAttr(e, "file")
		if err != nil {
			return nil, fmt.Errorf("%s: data set %d: %w", path, i, err)
		}
		v, err := requireAttr(e, "timestep")
		if err != nil {
			return nil, fmt.Errorf("%s: data set %d: %w", path, i, err)
		}
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, field.Errorf(field.ErrValue, "%s: data set %d has invalid timestep %q", path, i, v)
		}
		r.steps = append(r.steps, TimeStep{Time: t, Path: referencedPath(path, file)})
	}
	return r, nil
}

// Path returns the .pvd file path.
func (r *TimeSeriesReader) Path() string { return r.path }

// NumberOfSteps returns the number of time steps.
func (r *TimeSeriesReader) NumberOfSteps() int { return len(r.steps) }

// Steps returns the time steps in file order.
func (r *TimeSeriesReader) Steps() []TimeStep {
	return append([]TimeStep(nil), r.steps...)
}

// OpenStep opens the grid file of step i.
func (r *TimeSeriesReader) OpenStep(i int) (GridReader, error) {
	if i < 0 || i >= len(r.steps) {
		return nil, field.Errorf(field.ErrValue, "step %d out of range [0, %d)", i, len(r.steps))
	}
	return OpenGrid(r.steps[i].Path, r.opts...)
}
