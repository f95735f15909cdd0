//go:build !gridformat_nozlib

package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

func init() {
	Registry[ZLib] = func(level int) Compressor { return NewZLib(level) }
}

// ZLibCompressor writes one zlib stream per block.
type ZLibCompressor struct {
	level int
}

// NewZLib creates a zlib compressor with the given level (0-9, or DefaultLevel).
func NewZLib(level int) *ZLibCompressor {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		level = zlib.DefaultCompression
	}
	return &ZLibCompressor{level: level}
}

func (c *ZLibCompressor) Kind() Kind {
	return ZLib
}

func (c *ZLibCompressor) Compress(block []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(block); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *ZLibCompressor) Decompress(block []byte, rawSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	output := make([]byte, rawSize)
	if _, err := io.ReadFull(r, output); err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return output, nil
}
