package cbf

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// Element is the set of element types arrays materialize to.
type Element interface {
	int32 | uint32 | float64
}

// Array is a decoded binary cell.
type Array interface {
	Shape() Shape
	Len() int
	// DType is "int32", "uint32" or "float64".
	DType() string
	// Bytes returns the elements little endian.
	Bytes() []byte
}

// Dense is a row-major array.
type Dense[T Element] struct {
	shape Shape
	data  []T
}

// NewDense wraps data. It panics if len(data) does not match the shape.
func NewDense[T Element](shape Shape, data []T) *Dense[T] {
	if shape.Len() != len(data) {
		panic(fmt.Sprintf("cbf: shape %v holds %d elements, got %d", shape, shape.Len(), len(data)))
	}
	return &Dense[T]{shape: shape, data: data}
}

func (d *Dense[T]) Shape() Shape { return append(Shape(nil), d.shape...) }

func (d *Dense[T]) Len() int { return len(d.data) }

// Data returns the elements in row-major order. The slice is shared.
func (d *Dense[T]) Data() []T { return d.data }

func (d *Dense[T]) DType() string {
	var zero T
	switch any(zero).(type) {
	case int32:
		return "int32"
	case uint32:
		return "uint32"
	default:
		return "float64"
	}
}

// At returns the element at the given index, one value per axis.
func (d *Dense[T]) At(idx ...int) T {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("cbf: %d indexes for rank %d array", len(idx), len(d.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= d.shape[i] {
			panic(fmt.Sprintf("cbf: index %d out of range for axis %d of length %d", x, i, d.shape[i]))
		}
		off = off*d.shape[i] + x
	}
	return d.data[off]
}

func (d *Dense[T]) Bytes() []byte {
	var zero T
	switch any(zero).(type) {
	case float64:
		out := make([]byte, 8*len(d.data))
		for i, v := range d.data {
			binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(float64(v)))
		}
		return out
	default:
		out := make([]byte, 4*len(d.data))
		for i, v := range d.data {
			binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
		}
		return out
	}
}

// MarshalJSON encodes the array as {"shape": [...], "dtype": "...", "data": [...]}.
func (d *Dense[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Shape Shape  `json:"shape"`
		DType string `json:"dtype"`
		Data  []T    `json:"data"`
	}{d.shape, d.DType(), d.data})
}
