package field

// Field is a named array's data: a layout, a precision and bytes produced on
// demand.
type Field interface {
	Layout() Layout
	Precision() Precision
	Serialized() (*Serialization, error)
}

// Serialize returns f's bytes after checking that their size matches the
// layout and precision f reports.
func Serialize(f Field) (*Serialization, error) {
	s, err := f.Serialized()
	if err != nil {
		return nil, err
	}
	want := f.Layout().NumberOfEntries() * f.Precision().Size()
	if s.Size() != want {
		return nil, Errorf(ErrSize, "field with layout %v and precision %v serialized to %d bytes, expected %d",
			f.Layout(), f.Precision(), s.Size(), want)
	}
	return s, nil
}

// raw is an in-memory field. Serialized returns a copy of its bytes.
type raw struct {
	layout    Layout
	precision Precision
	data      []byte
}

func (r *raw) Layout() Layout       { return r.layout }
func (r *raw) Precision() Precision { return r.precision }

func (r *raw) Serialized() (*Serialization, error) {
	return SerializationOf(r.data), nil
}

// FromBytes creates a field from already serialized data. The size of data is
// only checked by Serialize.
func FromBytes(layout Layout, p Precision, data []byte) Field {
	return &raw{layout: layout, precision: p, data: append([]byte(nil), data...)}
}

// FromSlice creates a one-dimensional field holding a copy of values.
func FromSlice[T Number](values []T) Field {
	return FromBytes(NewLayout(len(values)), PrecisionOf[T](), bytesOf(values))
}

// FromValues creates a field of the given layout from flat row-major values.
func FromValues[T Number](layout Layout, values []T) (Field, error) {
	if layout.NumberOfEntries() != len(values) {
		return nil, Errorf(ErrSize, "%d values do not fill layout %v", len(values), layout)
	}
	return FromBytes(layout, PrecisionOf[T](), bytesOf(values)), nil
}

// FromVectors creates a field of layout [len(vectors), k] where every vector
// must have the same length k.
func FromVectors[T Number](vectors [][]T) (Field, error) {
	k := 0
	if len(vectors) > 0 {
		k = len(vectors[0])
	}
	flat := make([]T, 0, len(vectors)*k)
	for i, v := range vectors {
		if len(v) != k {
			return nil, Errorf(ErrSize, "vector %d has %d components, expected %d", i, len(v), k)
		}
		flat = append(flat, v...)
	}
	return FromValues(NewLayout(len(vectors), k), flat)
}

// FromTensors creates a field of layout [len(tensors), rows, cols].
func FromTensors[T Number](tensors [][][]T) (Field, error) {
	rows, cols := 0, 0
	if len(tensors) > 0 {
		rows = len(tensors[0])
		if rows > 0 {
			cols = len(tensors[0][0])
		}
	}
	flat := make([]T, 0, len(tensors)*rows*cols)
	for i, t := range tensors {
		if len(t) != rows {
			return nil, Errorf(ErrSize, "tensor %d has %d rows, expected %d", i, len(t), rows)
		}
		for _, row := range t {
			if len(row) != cols {
				return nil, Errorf(ErrSize, "tensor %d has a row of %d columns, expected %d", i, len(row), cols)
			}
			flat = append(flat, row...)
		}
	}
	return FromValues(NewLayout(len(tensors), rows, cols), flat)
}

// Scalar creates a field holding the single value v.
func Scalar[T Number](v T) Field {
	return FromSlice([]T{v})
}

// FromString creates a String field holding the characters of s.
func FromString(s string) Field {
	return FromBytes(NewLayout(len(s)), String, []byte(s))
}

// Values exports f's data as a slice of T, converting each element from f's
// precision.
func Values[T Number](f Field) ([]T, error) {
	if p := PrecisionOf[T](); f.Precision() != p {
		f = Cast(f, p)
	}
	s, err := Serialize(f)
	if err != nil {
		return nil, err
	}
	v, err := View[T](s)
	if err != nil {
		return nil, err
	}
	return append([]T(nil), v...), nil
}
