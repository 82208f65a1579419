package codec

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-cbf/internal/binary"
	"github.com/robert-malhotra/go-cbf/internal/dtype"
)

// NoneCodec decodes uncompressed payloads. Elements are read at the source
// width and byte order and widened to the requested destination width.
type NoneCodec struct{}

// Decode implements Codec.
func (NoneCodec) Decode(req Request, dst []byte) (int, error) {
	if err := req.Validate(dst); err != nil {
		return 0, err
	}
	src := req.Source
	if src.Complex {
		return 0, fmt.Errorf("%w: complex elements", ErrArgument)
	}
	if src.Real && !req.Real {
		return 0, fmt.Errorf("%w: real elements cannot be read as integers", ErrArgument)
	}
	if src.Size <= 0 {
		return 0, fmt.Errorf("%w: element size %d", ErrArgument, src.Size)
	}

	elems := binpkg.NewElements(req.Payload, src.Size, req.ByteOrder)
	order := elems.Order()
	dest := req.Dest()
	n := 0
	for n < req.Count && elems.Remaining() > 0 {
		out := dst[n*req.Width : (n+1)*req.Width]
		if !src.Real && !src.Signed && !req.Real {
			u, err := elems.Uint()
			if err != nil {
				return n, err
			}
			dtype.PutUint(dest, binary.LittleEndian, out, u)
			n++
			continue
		}
		raw, err := elems.Next()
		if err != nil {
			return n, err
		}
		switch {
		case src.Real:
			dtype.PutFloat(dest, binary.LittleEndian, out, dtype.Float(src, order, raw))
		case req.Real:
			dtype.PutFloat(dest, binary.LittleEndian, out, float64(dtype.Int(src, order, raw)))
		default:
			dtype.PutUint(dest, binary.LittleEndian, out, uint64(dtype.Int(src, order, raw)))
		}
		n++
	}
	return n, nil
}
