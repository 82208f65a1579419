package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnsupported is returned for element types that cannot be converted.
var ErrUnsupported = errors.New("unsupported element type")

// Element describes one array element of a binary section.
type Element struct {
	Size    int // bytes per element
	Signed  bool
	Real    bool
	Complex bool
}

// Common elements.
var (
	Int32   = Element{Size: 4, Signed: true}
	Uint32  = Element{Size: 4}
	Float64 = Element{Size: 8, Signed: true, Real: true}
)

// ParseElementType parses an X-Binary-Element-Type header value.
//
// Accepted forms are "signed N-bit integer", "unsigned N-bit integer",
// "signed N-bit real IEEE" and "signed N-bit complex IEEE", case-insensitive,
// optionally surrounded by double quotes.
func ParseElementType(s string) (Element, error) {
	fields := strings.Fields(strings.ToLower(strings.Trim(strings.TrimSpace(s), `"`)))
	if len(fields) < 3 {
		return Element{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}

	var e Element
	switch fields[0] {
	case "signed":
		e.Signed = true
	case "unsigned":
	default:
		return Element{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}

	bits, ok := strings.CutSuffix(fields[1], "-bit")
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	n, err := strconv.Atoi(bits)
	if err != nil || n%8 != 0 || n <= 0 {
		return Element{}, fmt.Errorf("%w: bad bit width in %q", ErrUnsupported, s)
	}
	e.Size = n / 8

	switch fields[2] {
	case "integer":
		if e.Size != 1 && e.Size != 2 && e.Size != 4 && e.Size != 8 {
			return Element{}, fmt.Errorf("%w: %d-bit integer", ErrUnsupported, n)
		}
	case "real":
		if e.Size != 4 && e.Size != 8 {
			return Element{}, fmt.Errorf("%w: %d-bit real", ErrUnsupported, n)
		}
		e.Real = true
	case "complex":
		e.Real = true
		e.Complex = true
	default:
		return Element{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}

	return e, nil
}

// String returns the canonical X-Binary-Element-Type spelling.
func (e Element) String() string {
	sign := "unsigned"
	if e.Signed {
		sign = "signed"
	}
	kind := "integer"
	switch {
	case e.Complex:
		kind = "complex IEEE"
	case e.Real:
		kind = "real IEEE"
	}
	return fmt.Sprintf("%s %d-bit %s", sign, e.Size*8, kind)
}

// ParseByteOrder parses an X-Binary-Element-Byte-Order header value.
// An empty value means little endian, which is the CBF default.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "LITTLE_ENDIAN":
		return binary.LittleEndian, nil
	case "BIG_ENDIAN":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}

// OrderName returns "little_endian" or "big_endian".
func OrderName(order binary.ByteOrder) string {
	if order == binary.BigEndian {
		return "big_endian"
	}
	return "little_endian"
}

// GoType returns the Go reflect.Type that corresponds to the element.
func GoType(e Element) (reflect.Type, error) {
	if e.Complex {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, e)
	}
	if e.Real {
		switch e.Size {
		case 4:
			return reflect.TypeOf(float32(0)), nil
		case 8:
			return reflect.TypeOf(float64(0)), nil
		}
		return nil, fmt.Errorf("unsupported float size: %d", e.Size)
	}

	switch e.Size {
	case 1:
		if e.Signed {
			return reflect.TypeOf(int8(0)), nil
		}
		return reflect.TypeOf(uint8(0)), nil
	case 2:
		if e.Signed {
			return reflect.TypeOf(int16(0)), nil
		}
		return reflect.TypeOf(uint16(0)), nil
	case 4:
		if e.Signed {
			return reflect.TypeOf(int32(0)), nil
		}
		return reflect.TypeOf(uint32(0)), nil
	case 8:
		if e.Signed {
			return reflect.TypeOf(int64(0)), nil
		}
		return reflect.TypeOf(uint64(0)), nil
	default:
		return nil, fmt.Errorf("unsupported integer size: %d", e.Size)
	}
}
