package field

import "unsafe"

// Serialization is an owned, resizable byte buffer holding a field's data.
type Serialization struct {
	buf []byte
}

// NewSerialization returns a zero-filled buffer of size bytes.
func NewSerialization(size int) *Serialization {
	return &Serialization{buf: make([]byte, size)}
}

// SerializationOf returns a buffer holding a copy of data.
func SerializationOf(data []byte) *Serialization {
	s := NewSerialization(len(data))
	copy(s.buf, data)
	return s
}

// Size returns the number of bytes held.
func (s *Serialization) Size() int {
	return len(s.buf)
}

// Bytes returns the underlying buffer. It stays valid until the next call
// that changes the size.
func (s *Serialization) Bytes() []byte {
	return s.buf
}

// Resize changes the size to n, zero-filling any new bytes.
func (s *Serialization) Resize(n int) {
	if n <= len(s.buf) {
		s.buf = s.buf[:n]
		return
	}
	if n <= cap(s.buf) {
		old := len(s.buf)
		s.buf = s.buf[:n]
		clear(s.buf[old:])
		return
	}
	grown := make([]byte, n)
	copy(grown, s.buf)
	s.buf = grown
}

// Append copies the bytes of other to the end of s.
func (s *Serialization) Append(other *Serialization) {
	s.buf = append(s.buf, other.buf...)
}

// CutFront removes the first n bytes.
func (s *Serialization) CutFront(n int) error {
	if n < 0 || n > len(s.buf) {
		return Errorf(ErrSize, "cannot cut %d bytes from a buffer of %d", n, len(s.buf))
	}
	// Copy instead of reslicing so typed views keep their alignment.
	rest := make([]byte, len(s.buf)-n)
	copy(rest, s.buf[n:])
	s.buf = rest
	return nil
}

// Clone returns an independent copy of s.
func (s *Serialization) Clone() *Serialization {
	return SerializationOf(s.buf)
}

// View reinterprets the buffer as a slice of T sharing its memory.
func View[T Number](s *Serialization) ([]T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(s.buf)%size != 0 {
		return nil, Errorf(ErrSize, "buffer of %d bytes is not a multiple of element size %d", len(s.buf), size)
	}
	if len(s.buf) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&s.buf[0])), len(s.buf)/size), nil
}

// ViewAs is View with a check that T matches the precision p.
func ViewAs[T Number](s *Serialization, p Precision) ([]T, error) {
	if got := PrecisionOf[T](); got != p && !(p == String && got == Uint8) {
		return nil, Errorf(ErrValue, "cannot view %v data as %v", p, got)
	}
	return View[T](s)
}

// bytesOf returns the memory of values as a byte slice.
func bytesOf[T Number](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
}
