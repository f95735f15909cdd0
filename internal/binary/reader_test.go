package binary

import (
	"io"
	"testing"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestReaderAt(t *testing.T) {
	r := NewReader(bytesReaderAt{0, 1, 2, 3, 4, 5, 6, 7})

	r2 := r.At(4)
	b := make([]byte, 2)
	if _, err := io.ReadFull(r2, b); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if b[0] != 4 || b[1] != 5 {
		t.Errorf("expected [4 5], got %v", b)
	}
	if r2.Pos() != 6 {
		t.Errorf("expected position 6, got %d", r2.Pos())
	}
	if r.Pos() != 0 {
		t.Errorf("expected original position 0, got %d", r.Pos())
	}
}

func TestReaderAsIOReader(t *testing.T) {
	r := NewReader(bytesReaderAt("hello world")).At(6)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "world" {
		t.Errorf("expected world, got %q", got)
	}
}
