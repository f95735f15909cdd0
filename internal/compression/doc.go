// Package compression implements the block compressors of VTK-XML data
// arrays.
//
// Array data is split into blocks of a fixed size, the last one possibly
// shorter, and every block is compressed independently. The resulting
// [Blocks] manifest records the block counts and each compressed size; it is
// written in front of the compressed data as the array header.
//
// # Supported Compressors
//
//   - LZ4 (vtkLZ4DataCompressor): LZ4 block format via github.com/pierrec/lz4/v4.
//   - ZLib (vtkZLibDataCompressor): zlib streams via github.com/klauspost/compress.
//   - LZMA (vtkLZMADataCompressor): xz containers with a CRC64 check via
//     github.com/ulikunitz/xz, matching liblzma's easy encoder.
//
// Each compressor is optional at build time. Building with the tags
// gridformat_nolz4, gridformat_nozlib or gridformat_nolzma leaves it out of
// the [Registry]; [New] then fails with field.ErrNotImplemented and
// [Available] reports false.
//
// # Block Header
//
// The header of a compressed array is
//
//	[number of blocks][block size][residual block size][compressed size of each block]
//
// where the residual block size is zero if every block is full.
package compression
