// Package binary steps through the fixed-width elements of a binary section
// payload.
package binary

import (
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned when no complete element remains.
var ErrShortRead = errors.New("short read")

// Elements iterates the elements of a payload. A trailing partial element
// is never returned.
type Elements struct {
	payload []byte
	size    int
	order   binary.ByteOrder
	next    int
}

// NewElements returns an iterator over size-byte elements of payload. A nil
// order means little endian.
func NewElements(payload []byte, size int, order binary.ByteOrder) *Elements {
	if order == nil {
		order = binary.LittleEndian
	}
	if size < 1 {
		size = 1
	}
	return &Elements{payload: payload, size: size, order: order}
}

// Len returns the number of complete elements in the payload.
func (e *Elements) Len() int {
	return len(e.payload) / e.size
}

// Remaining returns the number of elements not yet read.
func (e *Elements) Remaining() int {
	return e.Len() - e.next
}

// Order returns the payload byte order.
func (e *Elements) Order() binary.ByteOrder {
	return e.order
}

// Next returns the raw bytes of the next element. The slice aliases the
// payload.
func (e *Elements) Next() ([]byte, error) {
	if e.Remaining() <= 0 {
		return nil, ErrShortRead
	}
	off := e.next * e.size
	e.next++
	return e.payload[off : off+e.size : off+e.size], nil
}

// Uint reads the next element as an unsigned integer of up to 8 bytes.
func (e *Elements) Uint() (uint64, error) {
	raw, err := e.Next()
	if err != nil {
		return 0, err
	}
	if len(raw) > 8 {
		return 0, errors.New("element wider than 8 bytes")
	}
	return Uint(raw, e.order), nil
}

// Uint decodes an unsigned integer of any width from 1 to 8 bytes.
func Uint(raw []byte, order binary.ByteOrder) uint64 {
	switch len(raw) {
	case 2:
		return uint64(order.Uint16(raw))
	case 4:
		return uint64(order.Uint32(raw))
	case 8:
		return order.Uint64(raw)
	}
	var v uint64
	if order == binary.BigEndian {
		for _, b := range raw {
			v = v<<8 | uint64(b)
		}
		return v
	}
	for i := len(raw) - 1; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v
}
