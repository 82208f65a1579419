package dtype

// Conversion works element by element: each element is read as a 64-bit
// integer or float according to its Element description and byte order, then
// converted to the destination Go type. Integers are sign-extended only when
// the element is signed.

import (
	"encoding/binary"
	"fmt"
	"math"

	binpkg "github.com/robert-malhotra/go-cbf/internal/binary"
)

// Number is the set of Go types elements convert to and from.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Uint reads one integer element as its unsigned bit pattern.
func Uint(e Element, order binary.ByteOrder, b []byte) uint64 {
	return binpkg.Uint(b[:e.Size], order)
}

// Int reads one integer element, sign-extending when e.Signed.
func Int(e Element, order binary.ByteOrder, b []byte) int64 {
	u := Uint(e, order, b)
	if !e.Signed {
		return int64(u)
	}
	switch e.Size {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

// Float reads one real element.
func Float(e Element, order binary.ByteOrder, b []byte) float64 {
	if e.Size == 4 {
		return float64(math.Float32frombits(order.Uint32(b)))
	}
	return math.Float64frombits(order.Uint64(b))
}

// PutUint writes the low e.Size bytes of v.
func PutUint(e Element, order binary.ByteOrder, b []byte, v uint64) {
	switch e.Size {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	default:
		order.PutUint64(b, v)
	}
}

// PutFloat writes one real element.
func PutFloat(e Element, order binary.ByteOrder, b []byte, v float64) {
	if e.Size == 4 {
		order.PutUint32(b, math.Float32bits(float32(v)))
		return
	}
	order.PutUint64(b, math.Float64bits(v))
}

// ToSlice converts n elements of raw data to a newly allocated slice.
func ToSlice[T Number](e Element, order binary.ByteOrder, data []byte, n int) ([]T, error) {
	if e.Complex {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, e)
	}
	if e.Size <= 0 {
		return nil, fmt.Errorf("invalid element size: %d", e.Size)
	}
	if n*e.Size > len(data) {
		return nil, fmt.Errorf("need %d bytes for %d elements, have %d", n*e.Size, n, len(data))
	}

	result := make([]T, n)
	for i := range result {
		elem := data[i*e.Size : (i+1)*e.Size]
		switch {
		case e.Real:
			result[i] = T(Float(e, order, elem))
		case e.Signed:
			result[i] = T(Int(e, order, elem))
		default:
			result[i] = T(Uint(e, order, elem))
		}
	}
	return result, nil
}

// Encode converts Go values to raw element bytes.
func Encode[T Number](e Element, order binary.ByteOrder, values []T) ([]byte, error) {
	if e.Complex {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, e)
	}
	if e.Size <= 0 {
		return nil, fmt.Errorf("invalid element size: %d", e.Size)
	}

	buf := make([]byte, len(values)*e.Size)
	for i, v := range values {
		elem := buf[i*e.Size : (i+1)*e.Size]
		if e.Real {
			PutFloat(e, order, elem, float64(v))
		} else {
			PutUint(e, order, elem, uint64(int64(v)))
		}
	}
	return buf, nil
}
