package field

import (
	"errors"
	"testing"
)

func TestPrecisionSize(t *testing.T) {
	tests := []struct {
		p        Precision
		size     int
		integral bool
		signed   bool
	}{
		{Int8, 1, true, true},
		{Int16, 2, true, true},
		{Int32, 4, true, true},
		{Int64, 8, true, true},
		{Uint8, 1, true, false},
		{Uint16, 2, true, false},
		{Uint32, 4, true, false},
		{Uint64, 8, true, false},
		{Float32, 4, false, true},
		{Float64, 8, false, true},
		{String, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if tt.p.Size() != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, tt.p.Size())
			}
			if tt.p.IsIntegral() != tt.integral {
				t.Errorf("expected IsIntegral %v", tt.integral)
			}
			if tt.p.IsSigned() != tt.signed {
				t.Errorf("expected IsSigned %v", tt.signed)
			}
		})
	}
}

func TestPrecisionOf(t *testing.T) {
	checks := map[Precision]Precision{
		PrecisionOf[int8]():    Int8,
		PrecisionOf[int16]():   Int16,
		PrecisionOf[int32]():   Int32,
		PrecisionOf[int64]():   Int64,
		PrecisionOf[uint8]():   Uint8,
		PrecisionOf[uint16]():  Uint16,
		PrecisionOf[uint32]():  Uint32,
		PrecisionOf[uint64]():  Uint64,
		PrecisionOf[float32](): Float32,
		PrecisionOf[float64](): Float64,
	}
	if len(checks) != 10 {
		t.Fatalf("expected 10 distinct precisions, got %d", len(checks))
	}
	for got, want := range checks {
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

type nameVisitor struct{}

func (nameVisitor) Int8() (string, error)    { return "int8", nil }
func (nameVisitor) Int16() (string, error)   { return "int16", nil }
func (nameVisitor) Int32() (string, error)   { return "int32", nil }
func (nameVisitor) Int64() (string, error)   { return "int64", nil }
func (nameVisitor) Uint8() (string, error)   { return "uint8", nil }
func (nameVisitor) Uint16() (string, error)  { return "uint16", nil }
func (nameVisitor) Uint32() (string, error)  { return "uint32", nil }
func (nameVisitor) Uint64() (string, error)  { return "uint64", nil }
func (nameVisitor) Float32() (string, error) { return "float32", nil }
func (nameVisitor) Float64() (string, error) { return "float64", nil }
func (nameVisitor) Chars() (string, error)   { return "string", nil }

func TestVisit(t *testing.T) {
	for _, p := range append(Numeric, String) {
		got, err := Visit[string](p, nameVisitor{})
		if err != nil {
			t.Fatalf("Visit(%v) failed: %v", p, err)
		}
		if got != p.String() {
			t.Errorf("Visit(%v) dispatched to %s", p, got)
		}
	}

	if _, err := Visit[string](Invalid, nameVisitor{}); !errors.Is(err, ErrValue) {
		t.Errorf("expected ErrValue for Invalid, got %v", err)
	}
}
