package dtype

import (
	"encoding/binary"
	"fmt"

	"github.com/robert-malhotra/go-gridformat/field"
)

// VTK byte order attribute values.
const (
	LittleEndian = "LittleEndian"
	BigEndian    = "BigEndian"
)

var vtkNames = map[field.Precision]string{
	field.Int8:    "Int8",
	field.Int16:   "Int16",
	field.Int32:   "Int32",
	field.Int64:   "Int64",
	field.Uint8:   "UInt8",
	field.Uint16:  "UInt16",
	field.Uint32:  "UInt32",
	field.Uint64:  "UInt64",
	field.Float32: "Float32",
	field.Float64: "Float64",
	field.String:  "String",
}

// VTKName returns the VTK type attribute value for p.
func VTKName(p field.Precision) (string, error) {
	name, ok := vtkNames[p]
	if !ok {
		return "", field.Errorf(field.ErrValue, "precision %v has no VTK type", p)
	}
	return name, nil
}

// ParseVTKName returns the precision named by a VTK type attribute.
func ParseVTKName(name string) (field.Precision, error) {
	for p, n := range vtkNames {
		if n == name {
			return p, nil
		}
	}
	return field.Invalid, field.Errorf(field.ErrValue, "unsupported VTK type %q", name)
}

// NativeOrder is the byte order of the running machine.
var NativeOrder binary.ByteOrder = binary.NativeEndian

// ByteOrderName returns the VTK name of the given byte order.
func ByteOrderName(order binary.ByteOrder) string {
	if isBig(order) {
		return BigEndian
	}
	return LittleEndian
}

// ParseByteOrder parses a VTK byte_order attribute value.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case LittleEndian:
		return binary.LittleEndian, nil
	case BigEndian:
		return binary.BigEndian, nil
	default:
		return nil, field.Errorf(field.ErrValue, "unsupported byte order %q", name)
	}
}

// ToNative converts elements of the given size from order to the native byte
// order in place.
func ToNative(data []byte, size int, order binary.ByteOrder) error {
	if isBig(order) == isBig(NativeOrder) || size == 1 {
		return nil
	}
	return SwapBytes(data, size)
}

// SwapBytes reverses the bytes of every element in place.
func SwapBytes(data []byte, size int) error {
	if size <= 0 || len(data)%size != 0 {
		return fmt.Errorf("cannot swap %d bytes in elements of %d: %w", len(data), size, field.ErrSize)
	}
	for off := 0; off < len(data); off += size {
		elem := data[off : off+size]
		for i, j := 0, size-1; i < j; i, j = i+1, j-1 {
			elem[i], elem[j] = elem[j], elem[i]
		}
	}
	return nil
}

func isBig(order binary.ByteOrder) bool {
	var buf [2]byte
	order.PutUint16(buf[:], 1)
	return buf[1] == 1
}
