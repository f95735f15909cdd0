// Package binary provides positioned I/O over io.ReaderAt and io.WriterAt
// and the header words of configurable width that frame VTK-XML data arrays.
package binary

import "encoding/binary"

// Config holds the byte order and width of header words.
type Config struct {
	ByteOrder  binary.ByteOrder
	HeaderSize int // 4 or 8 bytes
}

// PutHeader encodes v into the first HeaderSize bytes of buf.
func (c Config) PutHeader(buf []byte, v uint64) {
	putUint(c.ByteOrder, buf, v, c.HeaderSize)
}

// AppendHeader appends the encoding of every value to dst.
func (c Config) AppendHeader(dst []byte, values ...uint64) []byte {
	for _, v := range values {
		var word [8]byte
		c.PutHeader(word[:], v)
		dst = append(dst, word[:c.HeaderSize]...)
	}
	return dst
}

// Header decodes one header word from the start of buf.
func (c Config) Header(buf []byte) uint64 {
	return getUint(c.ByteOrder, buf, c.HeaderSize)
}

func putUint(order binary.ByteOrder, buf []byte, v uint64, size int) {
	switch size {
	case 1:
		buf[0] = uint8(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	default:
		order.PutUint64(buf, v)
	}
}

func getUint(order binary.ByteOrder, buf []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	default:
		return order.Uint64(buf)
	}
}
