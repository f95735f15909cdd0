package dtype

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/robert-malhotra/go-gridformat/field"
)

func TestVTKNames(t *testing.T) {
	tests := []struct {
		p    field.Precision
		name string
	}{
		{field.Int8, "Int8"},
		{field.Uint8, "UInt8"},
		{field.Int64, "Int64"},
		{field.Uint32, "UInt32"},
		{field.Float32, "Float32"},
		{field.Float64, "Float64"},
		{field.String, "String"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VTKName(tt.p)
			if err != nil {
				t.Fatalf("VTKName failed: %v", err)
			}
			if got != tt.name {
				t.Errorf("expected %s, got %s", tt.name, got)
			}
			back, err := ParseVTKName(got)
			if err != nil {
				t.Fatalf("ParseVTKName failed: %v", err)
			}
			if back != tt.p {
				t.Errorf("expected %v, got %v", tt.p, back)
			}
		})
	}

	if _, err := ParseVTKName("Float16"); !errors.Is(err, field.ErrValue) {
		t.Errorf("expected ErrValue, got %v", err)
	}
}

func TestByteOrder(t *testing.T) {
	if ByteOrderName(binary.BigEndian) != BigEndian {
		t.Error("expected BigEndian")
	}
	if ByteOrderName(binary.LittleEndian) != LittleEndian {
		t.Error("expected LittleEndian")
	}
	if _, err := ParseByteOrder("MiddleEndian"); !errors.Is(err, field.ErrValue) {
		t.Errorf("expected ErrValue, got %v", err)
	}
}

func TestToNative(t *testing.T) {
	var foreign binary.ByteOrder = binary.BigEndian
	if ByteOrderName(NativeOrder) == BigEndian {
		foreign = binary.LittleEndian
	}

	data := make([]byte, 8)
	foreign.PutUint32(data, 0x01020304)
	foreign.PutUint32(data[4:], 0x05060708)

	if err := ToNative(data, 4, foreign); err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}
	if NativeOrder.Uint32(data) != 0x01020304 || NativeOrder.Uint32(data[4:]) != 0x05060708 {
		t.Errorf("unexpected bytes after conversion: %v", data)
	}

	if err := ToNative(data, 4, NativeOrder); err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}
	if NativeOrder.Uint32(data) != 0x01020304 {
		t.Error("native conversion changed data")
	}

	if err := SwapBytes(make([]byte, 6), 4); !errors.Is(err, field.ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
}

func TestASCIIRoundTrip(t *testing.T) {
	fields := []field.Field{
		field.FromSlice([]int8{-128, 0, 127}),
		field.FromSlice([]uint8{0, 42, 255}),
		field.FromSlice([]int16{-300, 300}),
		field.FromSlice([]uint32{0, 4294967295}),
		field.FromSlice([]int64{-9223372036854775808, 9223372036854775807}),
		field.FromSlice([]uint64{18446744073709551615}),
		field.FromSlice([]float32{0.1, -3.5e-20, 1e30}),
		field.FromSlice([]float64{0.1, 1.0 / 3.0, -2.5e300}),
		field.FromString("vtk"),
	}

	for _, f := range fields {
		t.Run(f.Precision().String(), func(t *testing.T) {
			format, err := Formatter(f.Precision())
			if err != nil {
				t.Fatalf("Formatter failed: %v", err)
			}
			s, err := field.Serialize(f)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			size := f.Precision().Size()
			var text []byte
			for off := 0; off < s.Size(); off += size {
				text = format(text, s.Bytes()[off:off+size])
				text = append(text, ' ')
			}

			n := f.Layout().NumberOfEntries()
			back, err := ParseASCII(bytes.NewReader(text), f.Precision(), n)
			if err != nil {
				t.Fatalf("ParseASCII(%q) failed: %v", text, err)
			}
			if !bytes.Equal(back.Bytes(), s.Bytes()) {
				t.Errorf("round trip of %q mismatch:\ngot:  %v\nwant: %v", text, back.Bytes(), s.Bytes())
			}
		})
	}
}

func TestParseASCIIErrors(t *testing.T) {
	if _, err := ParseASCII(strings.NewReader("1 2"), field.Int32, 3); !errors.Is(err, field.ErrSize) {
		t.Errorf("expected ErrSize for missing values, got %v", err)
	}
	if _, err := ParseASCII(strings.NewReader("256"), field.Uint8, 1); !errors.Is(err, field.ErrValue) {
		t.Errorf("expected ErrValue for overflow, got %v", err)
	}
	if _, err := ParseASCII(strings.NewReader("-129"), field.Int8, 1); !errors.Is(err, field.ErrValue) {
		t.Errorf("expected ErrValue for overflow, got %v", err)
	}
	if _, err := ParseASCII(strings.NewReader("abc"), field.Float64, 1); !errors.Is(err, field.ErrValue) {
		t.Errorf("expected ErrValue for garbage, got %v", err)
	}
}

func TestParseASCIIMultiline(t *testing.T) {
	s, err := ParseASCII(strings.NewReader("\n  1 2\n\t3\n"), field.Int16, 3)
	if err != nil {
		t.Fatalf("ParseASCII failed: %v", err)
	}
	v, _ := field.View[int16](s)
	if len(v) != 3 || v[0] != 1 || v[2] != 3 {
		t.Errorf("unexpected values %v", v)
	}
}

func TestParseASCIIStopsAtTag(t *testing.T) {
	s, err := ParseASCII(strings.NewReader("1 2 3</DataArray>"), field.Int32, 3)
	if err != nil {
		t.Fatalf("ParseASCII failed: %v", err)
	}
	v, _ := field.View[int32](s)
	if len(v) != 3 || v[2] != 3 {
		t.Errorf("unexpected values %v", v)
	}

	if _, err := ParseASCII(strings.NewReader("1 2</DataArray> 3"), field.Int32, 3); !errors.Is(err, field.ErrSize) {
		t.Errorf("expected ErrSize for values behind the tag, got %v", err)
	}
}

func TestCountASCII(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  \n", 0},
		{"1 2 3", 3},
		{"\n  1 2\n\t3\n  </DataArray>", 3},
		{"1 2 3</DataArray>4 5", 3},
		{"<", 0},
	}
	for _, tt := range tests {
		n, err := CountASCII(strings.NewReader(tt.in))
		if err != nil {
			t.Fatalf("CountASCII(%q) failed: %v", tt.in, err)
		}
		if n != tt.want {
			t.Errorf("CountASCII(%q) = %d, want %d", tt.in, n, tt.want)
		}
	}
}
