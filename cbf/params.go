package cbf

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-cbf/codec"
	"github.com/robert-malhotra/go-cbf/internal/cif"
	"github.com/robert-malhotra/go-cbf/internal/dtype"
)

// Shape is the axis lengths of an array, slowest axis first.
type Shape []int

// ShapeOf derives the shape from the axis sizes. The first nonzero size
// from the slowest side sets the rank; with no sizes the array is flat.
func ShapeOf(slow, mid, fast, elements int) Shape {
	switch {
	case slow != 0:
		return Shape{slow, mid, fast}
	case mid != 0:
		return Shape{mid, fast}
	case fast != 0:
		return Shape{fast}
	default:
		return Shape{elements}
	}
}

// size returns the element count, or false when an axis is negative or the
// product does not fit in an int.
func (s Shape) size() (int, bool) {
	n := 1
	for _, d := range s {
		if d < 0 || (d != 0 && n > math.MaxInt/d) {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Len returns the number of elements.
func (s Shape) Len() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Branch is the element type an array materializes to.
type Branch int

const (
	BranchSigned Branch = iota
	BranchUnsigned
	BranchReal
)

func (b Branch) String() string {
	switch b {
	case BranchUnsigned:
		return "uint32"
	case BranchReal:
		return "float64"
	default:
		return "int32"
	}
}

// ArrayParameters describes the binary cell under the cursor.
type ArrayParameters struct {
	Compression codec.Compression
	BinaryID    int
	ElementSize int
	Signed      bool
	Unsigned    bool
	Real        bool
	ByteOrder   string
	Elements    int
	DimFast     int
	DimMid      int
	DimSlow     int
	Padding     int
	// The MIME header carries no element range, so these stay zero.
	MinElement int
	MaxElement int

	Shape Shape
}

// Branch selects unsigned, then signed, then real.
func (p ArrayParameters) Branch() Branch {
	switch {
	case p.Unsigned:
		return BranchUnsigned
	case p.Signed:
		return BranchSigned
	default:
		return BranchReal
	}
}

// resolved pairs the public parameters with what the codec needs.
type resolved struct {
	ArrayParameters
	request codec.Request
}

// supply returns the most elements a decode of this section can produce: the
// payload length for uncompressed data, otherwise the declared element
// count. It reports false when a compressed section declares no count.
func (r resolved) supply() (int, bool) {
	if r.Compression == codec.None {
		return len(r.request.Payload) / r.request.Source.Size, true
	}
	return r.Elements, r.Elements > 0
}

func resolve(b *cif.Binary) (resolved, error) {
	h := b.Header
	comp, err := codec.ParseCompression(h.Conversions)
	if err != nil {
		return resolved{}, err
	}
	elem, err := dtype.ParseElementType(h.ElementType)
	if err != nil {
		return resolved{}, err
	}
	order, err := dtype.ParseByteOrder(h.ByteOrder)
	if err != nil {
		return resolved{}, err
	}

	p := ArrayParameters{
		Compression: comp,
		BinaryID:    h.ID,
		ElementSize: elem.Size,
		Signed:      elem.Signed && !elem.Real,
		Unsigned:    !elem.Signed && !elem.Real,
		Real:        elem.Real,
		ByteOrder:   dtype.OrderName(order),
		Elements:    h.Elements,
		DimFast:     h.Fastest,
		DimMid:      h.Second,
		DimSlow:     h.Third,
		Padding:     h.Padding,
	}
	p.Shape = ShapeOf(p.DimSlow, p.DimMid, p.DimFast, p.Elements)

	return resolved{
		ArrayParameters: p,
		request: codec.Request{
			Compression: comp,
			Payload:     b.Payload,
			Source:      elem,
			ByteOrder:   order,
		},
	}, nil
}

// binaryCell returns the binary value under the cursor.
func (h *Handle) binaryCell(op opKind) (*cif.Binary, error) {
	v, err := h.cell(op)
	if err != nil {
		return nil, err
	}
	if v.Kind != cif.KindBinary {
		return nil, check(op, LevelRow, statusASCII, "", -1, nil)
	}
	return v.Binary, nil
}

func (h *Handle) resolveCell() (resolved, error) {
	b, err := h.binaryCell(opArray)
	if err != nil {
		return resolved{}, err
	}
	r, err := resolve(b)
	if err != nil {
		return resolved{}, check(opArray, LevelRow, statusArgument, "", -1, fmt.Errorf("binary section %d: %w", b.Header.ID, err))
	}
	return r, nil
}

// ArrayParameters returns the parameters of the binary cell under the
// cursor. It fails with ErrNotBinaryValue for other cells.
func (h *Handle) ArrayParameters() (ArrayParameters, error) {
	r, err := h.resolveCell()
	if err != nil {
		return ArrayParameters{}, err
	}
	return r.ArrayParameters, nil
}
