//go:build !gridformat_nolz4

package compression

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

func init() {
	Registry[LZ4] = func(level int) Compressor { return NewLZ4(level) }
}

// LZ4Compressor writes LZ4 blocks without frame headers, as LZ4_compress_default does.
type LZ4Compressor struct {
	level lz4.CompressionLevel
}

// NewLZ4 creates an LZ4 compressor. Levels above zero select the slower
// high-compression mode.
func NewLZ4(level int) *LZ4Compressor {
	c := &LZ4Compressor{level: lz4.Fast}
	if level > 0 {
		c.level = lz4.CompressionLevel(1 << (8 + min(level, 9)))
	}
	return c
}

func (c *LZ4Compressor) Kind() Kind {
	return LZ4
}

func (c *LZ4Compressor) Compress(block []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(block)))
	var (
		n   int
		err error
	)
	if c.level == lz4.Fast {
		n, err = lz4.CompressBlock(block, dst, nil)
	} else {
		n, err = lz4.CompressBlockHC(block, dst, c.level, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return dst[:n], nil
}

func (c *LZ4Compressor) Decompress(block []byte, rawSize int) ([]byte, error) {
	dst := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(block, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return dst[:n], nil
}
