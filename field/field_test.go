package field

import (
	"errors"
	"testing"
)

func TestSerializeChecksSize(t *testing.T) {
	f := FromBytes(NewLayout(3), Float32, make([]byte, 8))
	if _, err := Serialize(f); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}

	ok := FromBytes(NewLayout(2), Float32, make([]byte, 8))
	if _, err := Serialize(ok); err != nil {
		t.Errorf("Serialize failed: %v", err)
	}
}

func TestRawFieldReturnsCopies(t *testing.T) {
	f := FromSlice([]uint8{1, 2, 3})
	s, err := f.Serialized()
	if err != nil {
		t.Fatalf("Serialized failed: %v", err)
	}
	s.Bytes()[0] = 9

	again, _ := f.Serialized()
	if again.Bytes()[0] != 1 {
		t.Error("mutating a serialization changed the field")
	}
}

func TestFromVectorsRagged(t *testing.T) {
	if _, err := FromVectors([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
	if _, err := FromTensors([][][]float64{{{1}}, {{1, 2}}}); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
}

func TestFromString(t *testing.T) {
	f := FromString("hello")
	if f.Precision() != String || f.Layout().NumberOfEntries() != 5 {
		t.Fatalf("unexpected field: %v %v", f.Layout(), f.Precision())
	}
	v, err := Values[uint8](f)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if string(v) != "hello" {
		t.Errorf("expected hello, got %q", v)
	}
}

func TestScalar(t *testing.T) {
	f := Scalar(float64(2.5))
	if f.Layout().NumberOfEntries() != 1 {
		t.Errorf("expected one entry, got %v", f.Layout())
	}
}
