package field

// Cast returns a field presenting the values of f converted to precision p.
// Conversions follow Go's numeric conversion rules.
func Cast(f Field, p Precision) Field {
	return &cast{inner: f, to: p}
}

type cast struct {
	inner Field
	to    Precision
}

func (c *cast) Layout() Layout       { return c.inner.Layout() }
func (c *cast) Precision() Precision { return c.to }

func (c *cast) Serialized() (*Serialization, error) {
	s, err := Serialize(c.inner)
	if err != nil {
		return nil, err
	}
	from := c.inner.Precision()
	if from == c.to {
		return s, nil
	}
	switch {
	case c.to.IsFloat():
		return convert[float64](s, from, c.to)
	case c.to.IsSigned():
		return convert[int64](s, from, c.to)
	default:
		return convert[uint64](s, from, c.to)
	}
}

type wide interface {
	int64 | uint64 | float64
}

// convert widens every element to W and narrows it to the target precision.
func convert[W wide](s *Serialization, from, to Precision) (*Serialization, error) {
	values, err := Visit[[]W](from, widener[W]{s: s})
	if err != nil {
		return nil, err
	}
	return Visit[*Serialization](to, narrower[W]{values: values})
}

type widener[W wide] struct {
	s *Serialization
}

func (v widener[W]) Int8() ([]W, error)    { return widen[int8, W](v.s) }
func (v widener[W]) Int16() ([]W, error)   { return widen[int16, W](v.s) }
func (v widener[W]) Int32() ([]W, error)   { return widen[int32, W](v.s) }
func (v widener[W]) Int64() ([]W, error)   { return widen[int64, W](v.s) }
func (v widener[W]) Uint8() ([]W, error)   { return widen[uint8, W](v.s) }
func (v widener[W]) Uint16() ([]W, error)  { return widen[uint16, W](v.s) }
func (v widener[W]) Uint32() ([]W, error)  { return widen[uint32, W](v.s) }
func (v widener[W]) Uint64() ([]W, error)  { return widen[uint64, W](v.s) }
func (v widener[W]) Float32() ([]W, error) { return widen[float32, W](v.s) }
func (v widener[W]) Float64() ([]W, error) { return widen[float64, W](v.s) }
func (v widener[W]) Chars() ([]W, error)   { return widen[uint8, W](v.s) }

func widen[S Number, W wide](s *Serialization) ([]W, error) {
	src, err := View[S](s)
	if err != nil {
		return nil, err
	}
	out := make([]W, len(src))
	for i, x := range src {
		out[i] = W(x)
	}
	return out, nil
}

type narrower[W wide] struct {
	values []W
}

func (v narrower[W]) Int8() (*Serialization, error)    { return narrow[W, int8](v.values), nil }
func (v narrower[W]) Int16() (*Serialization, error)   { return narrow[W, int16](v.values), nil }
func (v narrower[W]) Int32() (*Serialization, error)   { return narrow[W, int32](v.values), nil }
func (v narrower[W]) Int64() (*Serialization, error)   { return narrow[W, int64](v.values), nil }
func (v narrower[W]) Uint8() (*Serialization, error)   { return narrow[W, uint8](v.values), nil }
func (v narrower[W]) Uint16() (*Serialization, error)  { return narrow[W, uint16](v.values), nil }
func (v narrower[W]) Uint32() (*Serialization, error)  { return narrow[W, uint32](v.values), nil }
func (v narrower[W]) Uint64() (*Serialization, error)  { return narrow[W, uint64](v.values), nil }
func (v narrower[W]) Float32() (*Serialization, error) { return narrow[W, float32](v.values), nil }
func (v narrower[W]) Float64() (*Serialization, error) { return narrow[W, float64](v.values), nil }
func (v narrower[W]) Chars() (*Serialization, error)   { return narrow[W, uint8](v.values), nil }

func narrow[W wide, D Number](values []W) *Serialization {
	out := make([]D, len(values))
	for i, x := range values {
		out[i] = D(x)
	}
	return SerializationOf(bytesOf(out))
}
