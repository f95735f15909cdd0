package field

// Transformation maps a field to a new field.
type Transformation func(Field) (Field, error)

// Apply runs the transformations in order.
func Apply(f Field, ts ...Transformation) (Field, error) {
	var err error
	for _, t := range ts {
		if f, err = t(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Identity returns a field that forwards everything to f.
func Identity(f Field) Field {
	return &identity{inner: f}
}

type identity struct {
	inner Field
}

func (t *identity) Layout() Layout                      { return t.inner.Layout() }
func (t *identity) Precision() Precision                { return t.inner.Precision() }
func (t *identity) Serialized() (*Serialization, error) { return Serialize(t.inner) }

// Flatten returns f with a one-dimensional layout of all its entries.
func Flatten(f Field) Field {
	return &reshaped{inner: f, layout: NewLayout(f.Layout().NumberOfEntries())}
}

// Reshape returns f with the given layout, which must have the same number
// of entries.
func Reshape(f Field, target Layout) (Field, error) {
	if n := f.Layout().NumberOfEntries(); n != target.NumberOfEntries() {
		return nil, Errorf(ErrSize, "cannot reshape layout %v into %v", f.Layout(), target)
	}
	return &reshaped{inner: f, layout: target}, nil
}

type reshaped struct {
	inner  Field
	layout Layout
}

func (t *reshaped) Layout() Layout                      { return t.layout }
func (t *reshaped) Precision() Precision                { return t.inner.Precision() }
func (t *reshaped) Serialized() (*Serialization, error) { return Serialize(t.inner) }

// Extend zero-pads every dimension but the first up to the extents of sub.
// The first dimension is preserved.
func Extend(f Field, sub Layout) (Field, error) {
	l := f.Layout()
	if l.Dimension() != sub.Dimension()+1 {
		return nil, Errorf(ErrSize, "cannot extend layout %v to sub-layout %v", l, sub)
	}
	for i := 0; i < sub.Dimension(); i++ {
		if sub.Extent(i) < l.Extent(i+1) {
			return nil, Errorf(ErrSize, "cannot shrink layout %v to sub-layout %v", l, sub)
		}
	}
	return &extended{inner: f, layout: NewLayout(append([]int{l.Extent(0)}, sub.extents...)...)}, nil
}

// ExtendAllTo extends every dimension but the first to n. Fields with less
// than two dimensions are returned unchanged.
func ExtendAllTo(f Field, n int) (Field, error) {
	dim := f.Layout().Dimension()
	if dim < 2 {
		return f, nil
	}
	extents := make([]int, dim-1)
	for i := range extents {
		extents[i] = n
	}
	return Extend(f, NewLayout(extents...))
}

type extended struct {
	inner  Field
	layout Layout
}

func (t *extended) Layout() Layout       { return t.layout }
func (t *extended) Precision() Precision { return t.inner.Precision() }

func (t *extended) Serialized() (*Serialization, error) {
	s, err := Serialize(t.inner)
	if err != nil {
		return nil, err
	}
	size := t.inner.Precision().Size()
	s.Resize(t.layout.NumberOfEntries() * size)
	buf := s.Bytes()
	walkBackward(t.inner.Layout(), t.layout, 0, func(src, dst int) {
		if src == dst {
			return
		}
		copy(buf[dst*size:(dst+1)*size], buf[src*size:(src+1)*size])
		clear(buf[src*size : (src+1)*size])
	})
	return s, nil
}

// Slice extracts the hyper-rectangle [from, to) of f.
func Slice(f Field, from, to []int) (Field, error) {
	l := f.Layout()
	if len(from) != l.Dimension() || len(to) != l.Dimension() {
		return nil, Errorf(ErrSize, "slice bounds %v..%v do not match layout %v", from, to, l)
	}
	extents := make([]int, l.Dimension())
	for i := range extents {
		if from[i] < 0 || to[i] < from[i] || to[i] > l.Extent(i) {
			return nil, Errorf(ErrSize, "slice bounds %v..%v out of range for layout %v", from, to, l)
		}
		extents[i] = to[i] - from[i]
	}
	origin := 0
	for i, s := range l.strides() {
		origin += from[i] * s
	}
	return &sliced{inner: f, layout: NewLayout(extents...), origin: origin}, nil
}

type sliced struct {
	inner  Field
	layout Layout
	origin int
}

func (t *sliced) Layout() Layout       { return t.layout }
func (t *sliced) Precision() Precision { return t.inner.Precision() }

func (t *sliced) Serialized() (*Serialization, error) {
	in, err := Serialize(t.inner)
	if err != nil {
		return nil, err
	}
	size := t.inner.Precision().Size()
	out := NewSerialization(t.layout.NumberOfEntries() * size)
	src, dst := in.Bytes(), out.Bytes()
	walkBackward(t.layout, t.inner.Layout(), t.origin, func(o, i int) {
		copy(dst[o*size:(o+1)*size], src[i*size:(i+1)*size])
	})
	return out, nil
}

// Merge concatenates fields along their first dimension. All fields must
// share precision and the extents of every other dimension.
func Merge(fields ...Field) (Field, error) {
	if len(fields) == 0 {
		return nil, Errorf(ErrValue, "merge needs at least one field")
	}
	first := fields[0].Layout()
	if first.Dimension() < 1 {
		return nil, Errorf(ErrValue, "cannot merge fields without dimensions")
	}
	sub := NewLayout(first.extents[1:]...)
	prec := fields[0].Precision()
	total := 0
	for i, f := range fields {
		l := f.Layout()
		if l.Dimension() != first.Dimension() {
			return nil, Errorf(ErrValue, "field %d has layout %v, expected dimension %d", i, l, first.Dimension())
		}
		for d := 1; d < l.Dimension(); d++ {
			if l.Extent(d) != first.Extent(d) {
				return nil, Errorf(ErrValue, "field %d has layout %v, expected sub-layout %v", i, l, sub)
			}
		}
		if f.Precision() != prec {
			return nil, Errorf(ErrValue, "field %d has precision %v, expected %v", i, f.Precision(), prec)
		}
		total += l.Extent(0)
	}
	return &merged{
		fields: append([]Field(nil), fields...),
		layout: NewLayout(append([]int{total}, sub.extents...)...),
	}, nil
}

type merged struct {
	fields []Field
	layout Layout
}

func (t *merged) Layout() Layout       { return t.layout }
func (t *merged) Precision() Precision { return t.fields[0].Precision() }

func (t *merged) Serialized() (*Serialization, error) {
	out := NewSerialization(0)
	for _, f := range t.fields {
		s, err := Serialize(f)
		if err != nil {
			return nil, err
		}
		out.Append(s)
	}
	return out, nil
}
