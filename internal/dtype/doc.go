// Package dtype maps field precisions onto their VTK representations.
//
// It provides:
//
//   - VTK type names for every precision ("Float32", "UInt8", "String")
//   - byte order names and in-place correction to the native byte order
//   - ascii formatting and parsing of single elements
//
// # Type Mapping
//
//	Precision | VTK type
//	----------|---------
//	Int8..64  | Int8..Int64
//	Uint8..64 | UInt8..UInt64
//	Float32   | Float32
//	Float64   | Float64
//	String    | String
//
// # ASCII Values
//
// Integers are written in decimal and floats in the shortest form that parses
// back to the same value. When reading, every integer is parsed into a 64-bit
// value first and then range-checked against its precision, so byte-sized
// integers read as numbers rather than characters.
package dtype
