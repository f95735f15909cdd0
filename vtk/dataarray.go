package vtk

import (
	"fmt"
	"io"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/internal/binary"
	"github.com/robert-malhotra/go-gridformat/internal/compression"
	"github.com/robert-malhotra/go-gridformat/internal/dtype"
	"github.com/robert-malhotra/go-gridformat/internal/encoding"
)

// dataArray writes the encoded contents of one DataArray element.
type dataArray struct {
	field      field.Field
	encoder    Encoder
	compressor compression.Compressor // nil writes uncompressed
	blockSize  int
	header     binary.Config
}

func newDataArray(f field.Field, s Settings) (*dataArray, error) {
	a := &dataArray{
		field:     f,
		encoder:   s.Encoder,
		blockSize: s.BlockSize,
		header:    binary.Config{ByteOrder: dtype.NativeOrder, HeaderSize: s.HeaderPrecision.Size()},
	}
	if s.Compressor != NoCompression && encoding.IsBinary(s.Encoder) {
		c, err := compression.New(s.Compressor, s.CompressionLevel)
		if err != nil {
			return nil, err
		}
		a.compressor = c
	}
	return a, nil
}

// write encodes the array onto w. Inlined arrays pass the indentation of
// their lines as prefix, appended arrays pass an empty prefix.
func (a *dataArray) write(w io.Writer, prefix string) error {
	s, err := field.Serialize(a.field)
	if err != nil {
		return err
	}
	p := a.field.Precision()

	if ascii, ok := a.encoder.(encoding.ASCII); ok {
		ascii.LinePrefix = prefix
		stream := ascii.NewStream(w)
		if err := stream.Write(s.Bytes(), p); err != nil {
			return err
		}
		return stream.Close()
	}

	if _, err := io.WriteString(w, prefix); err != nil {
		return err
	}
	stream := a.encoder.NewStream(w)
	if err := a.writeBinary(stream, s, p); err != nil {
		return err
	}
	if err := stream.Close(); err != nil {
		return err
	}
	if prefix != "" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// writeBinary frames the payload with its size header. Header and payload go
// through separate writes.
func (a *dataArray) writeBinary(stream encoding.Stream, s *field.Serialization, p field.Precision) error {
	hp := field.Uint32
	if a.header.HeaderSize == 8 {
		hp = field.Uint64
	}
	if a.compressor == nil {
		if err := stream.Write(a.header.AppendHeader(nil, uint64(s.Size())), hp); err != nil {
			return err
		}
		return stream.Write(s.Bytes(), p)
	}

	blocks, compressed, err := compression.CompressBlocks(a.compressor, s, a.blockSize)
	if err != nil {
		return fmt.Errorf("compressing array: %w", err)
	}
	if err := stream.Write(a.header.AppendHeader(nil, blocks.Header()...), hp); err != nil {
		return err
	}
	return stream.Write(compressed.Bytes(), p)
}
