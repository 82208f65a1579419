package cbf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robert-malhotra/go-cbf/internal/dtype"
)

// Materialized element widths.
const (
	integerWidth = 4
	realWidth    = 8
)

// Binary decodes the binary cell under the cursor. The result is a
// *Dense[uint32], *Dense[int32] or *Dense[float64] according to
// ArrayParameters.Branch.
func (h *Handle) Binary() (Array, error) {
	r, err := h.resolveCell()
	if err != nil {
		return nil, err
	}
	switch r.Branch() {
	case BranchUnsigned:
		return asArray(materialize[uint32](h, r, r.Shape))
	case BranchSigned:
		return asArray(materialize[int32](h, r, r.Shape))
	default:
		return asArray(materialize[float64](h, r, r.Shape))
	}
}

// IntegerArray decodes the binary cell under the cursor as shape.Len()
// 32-bit integers.
func (h *Handle) IntegerArray(shape Shape, signed bool) (Array, error) {
	r, err := h.resolveCell()
	if err != nil {
		return nil, err
	}
	if signed {
		return asArray(materialize[int32](h, r, shape))
	}
	return asArray(materialize[uint32](h, r, shape))
}

func asArray[T Element](d *Dense[T], err error) (Array, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}

// RealArray decodes the binary cell under the cursor as shape.Len() 64-bit
// reals.
func (h *Handle) RealArray(shape Shape) (*Dense[float64], error) {
	r, err := h.resolveCell()
	if err != nil {
		return nil, err
	}
	return materialize[float64](h, r, shape)
}

// materialize requests exactly shape.Len() elements from the codec. Any codec
// error, or a count other than the one requested, is a fault. Shapes the
// section cannot fill fail before anything is allocated.
func materialize[T Element](h *Handle, r resolved, shape Shape) (*Dense[T], error) {
	want, ok := shape.size()
	if !ok {
		return nil, check(opArray, LevelRow, statusFormat, "", -1,
			fmt.Errorf("invalid shape %v", []int(shape)))
	}
	if limit, known := r.supply(); known && want > limit {
		return nil, check(opArray, LevelRow, statusFormat, "", -1,
			fmt.Errorf("shape %v needs %d elements, binary section holds %d", []int(shape), want, limit))
	}
	req := r.request
	req.Count = want

	var zero T
	switch any(zero).(type) {
	case float64:
		req.Width, req.Signed, req.Real = realWidth, true, true
	case int32:
		req.Width, req.Signed = integerWidth, true
	default:
		req.Width = integerWidth
	}

	if want > math.MaxInt/req.Width {
		return nil, check(opArray, LevelRow, statusFormat, "", -1,
			fmt.Errorf("shape %v is too large", []int(shape)))
	}
	buf := make([]byte, want*req.Width)
	got, err := h.codec.Decode(req, buf)
	if err != nil {
		return nil, check(opArray, LevelRow, statusArgument, "", -1, err)
	}
	if got != want {
		return nil, check(opArray, LevelRow, statusFormat, "", -1,
			fmt.Errorf("codec produced %d elements, expected %d", got, want))
	}

	data, err := dtype.ToSlice[T](req.Dest(), binary.LittleEndian, buf, want)
	if err != nil {
		return nil, check(opArray, LevelRow, statusArgument, "", -1, err)
	}

	d := &Dense[T]{shape: append(Shape(nil), shape...), data: data}
	h.log.Debug().
		Int("binary_id", r.BinaryID).
		Stringer("compression", r.Compression).
		Str("dtype", d.DType()).
		Ints("shape", shape).
		Msg("materialized array")
	return d, nil
}
