// Package codec defines the decoding service that turns the encoded payload
// of a CBF binary section into a flat stream of elements.
//
// A [Codec] receives a [Request] describing the compression tag, the encoded
// bytes, the source element type and the requested destination width, and
// writes decoded elements into a caller-sized buffer. It reports the number of
// elements actually produced; callers decide whether a short count is an
// error.
//
// # Registry
//
// A [Registry] maps compression tags to codecs. Registries are plain values
// owned by whoever builds them, so two documents can use different codec sets
// in the same process:
//
//	reg := codec.NewRegistry()
//	reg.Register(codec.ByteOffset, myByteOffsetCodec)
//	h, err := cbf.Open(path, cbf.WithCodec(reg))
//
// [NewRegistry] pre-registers [None] for uncompressed payloads. The
// compression algorithms themselves (byte-offset, packed, canonical) are
// outside this package; register implementations for them as needed.
//
// # Output Layout
//
// Decoded elements are written little-endian, Width bytes each, in file order
// (fastest axis varies fastest).
package codec
