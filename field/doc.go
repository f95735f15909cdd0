// Package field provides the data model shared by every grid file format:
// shapes, numeric element types, owned byte buffers and fields.
//
// # Layouts
//
// A [Layout] is an ordered list of extents in row-major order, the last
// dimension varying fastest. A scalar field over n points has layout [n], a
// 3-vector field [n, 3] and a rank-2 tensor field [n, 3, 3]. A layout of
// dimension 0 has no entries.
//
// # Precisions
//
// [Precision] tags the element type of serialized data. The numeric kinds are
// Int8 through Float64; [String] is an opaque one-byte character used for
// string metadata. Code that needs the concrete Go type dispatches through
// [Visit], whose [Visitor] interface has one method per kind.
//
// # Fields
//
// A [Field] reports its layout and precision and produces its bytes on
// demand:
//
//	f, _ := field.FromVectors([][]float64{{1, 2}, {3, 4}})
//	f3, _ := field.ExtendAllTo(f, 3) // [2, 3], zero padded
//	s, err := field.Serialize(f3)
//
// Transformations such as [Flatten], [Reshape], [Extend], [Slice] and
// [Merge] wrap their inner fields and recompute the result on every call to
// Serialized; nothing is cached.
//
// # Errors
//
// Failures are reported through four sentinels: [ErrSize] for byte, length
// and shape mismatches, [ErrValue] for malformed input, [ErrInvalidState] for
// operations invoked in a mode that forbids them and [ErrNotImplemented] for
// optional features missing from the build. Match them with errors.Is.
package field
