//go:build !gridformat_nolzma

package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	Registry[LZMA] = func(level int) Compressor { return NewLZMA(level) }
}

// LZMACompressor writes one xz container with a CRC64 check per block, the
// output of liblzma's easy encoder that VTK uses.
type LZMACompressor struct {
	dictCap int
}

// NewLZMA creates an LZMA compressor. The level selects the dictionary size
// as the liblzma presets do.
func NewLZMA(level int) *LZMACompressor {
	if level < 0 || level > 9 {
		level = 6
	}
	dict := []int{18, 20, 21, 22, 22, 23, 23, 24, 25, 26}[level]
	return &LZMACompressor{dictCap: 1 << dict}
}

func (c *LZMACompressor) Kind() Kind {
	return LZMA
}

func (c *LZMACompressor) Compress(block []byte) ([]byte, error) {
	var buf bytes.Buffer
	// A dictionary larger than the block gains nothing.
	cfg := xz.WriterConfig{DictCap: min(c.dictCap, max(len(block), 1<<12)), CheckSum: xz.CRC64}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma writer: %w", err)
	}
	if _, err := w.Write(block); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *LZMACompressor) Decompress(block []byte, rawSize int) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("lzma reader: %w", err)
	}
	output := make([]byte, rawSize)
	if _, err := io.ReadFull(r, output); err != nil {
		return nil, fmt.Errorf("lzma decompress: %w", err)
	}
	return output, nil
}
