// Package dtype provides CBF element type handling and Go type conversion.
//
// A CBF binary section declares its element type as a MIME header value such
// as "signed 32-bit integer" or "signed 64-bit real IEEE", and its byte order
// as LITTLE_ENDIAN or BIG_ENDIAN. This package turns those strings into an
// [Element] description and converts raw element bytes to and from Go values.
//
// # Type Mapping Strategy
//
//	CBF element type            | Go Type
//	----------------------------|------------------
//	signed N-bit integer        | int8/16/32/64
//	unsigned N-bit integer      | uint8/16/32/64
//	signed 32-bit real IEEE     | float32
//	signed 64-bit real IEEE     | float64
//
// Complex element types are recognised but not convertible.
//
// # Reading Data
//
// Use [ToSlice] to convert raw bytes to a typed slice:
//
//	values, err := dtype.ToSlice[int32](elem, binary.LittleEndian, raw, n)
//
// # Writing Data
//
// Use [Encode] to convert Go values to raw bytes:
//
//	data, err := dtype.Encode(elem, binary.BigEndian, []uint16{1, 2, 3})
//
// # Key Functions
//
//   - [ParseElementType]: Parses an X-Binary-Element-Type value
//   - [ParseByteOrder]: Parses an X-Binary-Element-Byte-Order value
//   - [ToSlice]: Converts element bytes to Go values
//   - [Encode]: Converts Go values to element bytes
//   - [GoType]: Returns the reflect.Type for an element
package dtype
