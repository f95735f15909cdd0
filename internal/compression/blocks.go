package compression

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Blocks is the manifest of a block-compressed array.
type Blocks struct {
	NumberOfBlocks       int
	BlockSize            int
	ResidualBlockSize    int // 0 or BlockSize if every block is full
	CompressedBlockSizes []int
}

// NewBlocks computes the block counts for rawSize bytes split into blocks of
// blockSize. Compressed sizes are left empty.
func NewBlocks(rawSize, blockSize int) Blocks {
	return Blocks{
		NumberOfBlocks:    (rawSize + blockSize - 1) / blockSize,
		BlockSize:         blockSize,
		ResidualBlockSize: rawSize % blockSize,
	}
}

// RawSize returns the total uncompressed size.
func (b Blocks) RawSize() int {
	if b.NumberOfBlocks == 0 {
		return 0
	}
	if b.ResidualBlockSize == 0 {
		return b.BlockSize * b.NumberOfBlocks
	}
	return b.BlockSize*(b.NumberOfBlocks-1) + b.ResidualBlockSize
}

// RawBlockSize returns the uncompressed size of block i.
func (b Blocks) RawBlockSize(i int) int {
	if i == b.NumberOfBlocks-1 && b.ResidualBlockSize != 0 {
		return b.ResidualBlockSize
	}
	return b.BlockSize
}

// CompressedSize returns the sum of all compressed block sizes.
func (b Blocks) CompressedSize() int {
	total := 0
	for _, s := range b.CompressedBlockSizes {
		total += s
	}
	return total
}

// Header returns the header words of the manifest.
func (b Blocks) Header() []uint64 {
	words := make([]uint64, 0, 3+len(b.CompressedBlockSizes))
	words = append(words, uint64(b.NumberOfBlocks), uint64(b.BlockSize), uint64(b.ResidualBlockSize))
	for _, s := range b.CompressedBlockSizes {
		words = append(words, uint64(s))
	}
	return words
}

// Validate checks the manifest's internal consistency. A residual block
// size equal to the block size describes a full last block.
func (b Blocks) Validate() error {
	switch {
	case b.NumberOfBlocks < 0 || b.BlockSize < 0 || b.ResidualBlockSize < 0:
		return field.Errorf(field.ErrValue, "negative block header %v", b.Header())
	case b.NumberOfBlocks > 0 && b.BlockSize == 0:
		return field.Errorf(field.ErrValue, "%d blocks of size zero", b.NumberOfBlocks)
	case b.ResidualBlockSize > b.BlockSize:
		return field.Errorf(field.ErrValue, "residual block size %d exceeds block size %d", b.ResidualBlockSize, b.BlockSize)
	case len(b.CompressedBlockSizes) != b.NumberOfBlocks:
		return field.Errorf(field.ErrValue, "%d compressed sizes for %d blocks", len(b.CompressedBlockSizes), b.NumberOfBlocks)
	}
	if b.NumberOfBlocks > 0 && b.NumberOfBlocks-1 > (math.MaxInt-b.RawBlockSize(b.NumberOfBlocks-1))/b.BlockSize {
		return field.Errorf(field.ErrValue, "%d blocks of %d bytes overflow", b.NumberOfBlocks, b.BlockSize)
	}
	total := 0
	for i, s := range b.CompressedBlockSizes {
		if s < 0 {
			return field.Errorf(field.ErrValue, "negative compressed size %d of block %d", s, i)
		}
		if s > math.MaxInt-total {
			return field.Errorf(field.ErrValue, "compressed block sizes overflow")
		}
		total += s
	}
	return nil
}

// CompressBlocks splits s into blocks of blockSize bytes and compresses each.
// It returns the manifest and the concatenated compressed blocks.
func CompressBlocks(c Compressor, s *field.Serialization, blockSize int) (Blocks, *field.Serialization, error) {
	if blockSize <= 0 {
		return Blocks{}, nil, field.Errorf(field.ErrValue, "invalid block size %d", blockSize)
	}
	data := s.Bytes()
	blocks := NewBlocks(len(data), blockSize)
	blocks.CompressedBlockSizes = make([]int, 0, blocks.NumberOfBlocks)

	out := make([]byte, 0, len(data)/2)
	for i := 0; i < blocks.NumberOfBlocks; i++ {
		start := i * blockSize
		compressed, err := c.Compress(data[start : start+blocks.RawBlockSize(i)])
		if err != nil {
			return Blocks{}, nil, fmt.Errorf("%v block %d: %w", c.Kind(), i, err)
		}
		blocks.CompressedBlockSizes = append(blocks.CompressedBlockSizes, len(compressed))
		out = append(out, compressed...)
	}
	return blocks, field.SerializationOf(out), nil
}

// DecompressBlocks restores the raw bytes of data compressed as described by
// blocks.
func DecompressBlocks(c Compressor, data []byte, blocks Blocks) (*field.Serialization, error) {
	if err := blocks.Validate(); err != nil {
		return nil, err
	}
	if len(data) < blocks.CompressedSize() {
		return nil, field.Errorf(field.ErrSize, "compressed data holds %d bytes, header announces %d", len(data), blocks.CompressedSize())
	}

	out := field.NewSerialization(blocks.RawSize())
	raw := out.Bytes()
	in, pos := 0, 0
	for i, size := range blocks.CompressedBlockSizes {
		n := blocks.RawBlockSize(i)
		block, err := c.Decompress(data[in:in+size], n)
		if err != nil {
			return nil, fmt.Errorf("%v block %d: %w", c.Kind(), i, err)
		}
		if len(block) != n {
			return nil, field.Errorf(field.ErrSize, "%v block %d decompressed to %d bytes, expected %d", c.Kind(), i, len(block), n)
		}
		copy(raw[pos:], block)
		in += size
		pos += n
	}
	return out, nil
}

// BlocksFromHeader builds a manifest from the three leading header words and
// the compressed block sizes that follow them.
func BlocksFromHeader(nblocks, blockSize, residual int, sizes []int) Blocks {
	return Blocks{
		NumberOfBlocks:       nblocks,
		BlockSize:            blockSize,
		ResidualBlockSize:    residual,
		CompressedBlockSizes: sizes,
	}
}
