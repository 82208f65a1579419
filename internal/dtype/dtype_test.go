package dtype

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestParseElementType(t *testing.T) {
	tests := []struct {
		in      string
		want    Element
		wantErr bool
	}{
		{`"signed 32-bit integer"`, Element{Size: 4, Signed: true}, false},
		{"unsigned 16-bit integer", Element{Size: 2}, false},
		{"Unsigned 8-bit Integer", Element{Size: 1}, false},
		{"signed 64-bit integer", Element{Size: 8, Signed: true}, false},
		{"signed 32-bit real IEEE", Element{Size: 4, Signed: true, Real: true}, false},
		{"signed 64-bit real IEEE", Element{Size: 8, Signed: true, Real: true}, false},
		{"signed 64-bit complex IEEE", Element{Size: 8, Signed: true, Real: true, Complex: true}, false},
		{"signed 24-bit integer", Element{}, true},
		{"signed 16-bit real IEEE", Element{}, true},
		{"maybe 32-bit integer", Element{}, true},
		{"signed 32 integer", Element{}, true},
		{"", Element{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseElementType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("expected ErrUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseElementType failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestElementString(t *testing.T) {
	tests := []struct {
		e    Element
		want string
	}{
		{Int32, "signed 32-bit integer"},
		{Uint32, "unsigned 32-bit integer"},
		{Float64, "signed 64-bit real IEEE"},
		{Element{Size: 2}, "unsigned 16-bit integer"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := ParseElementType(tt.want)
		if err != nil || back != tt.e {
			t.Errorf("ParseElementType(%q) = %+v, %v", tt.want, back, err)
		}
	}
}

func TestParseByteOrder(t *testing.T) {
	tests := []struct {
		in   string
		want binary.ByteOrder
	}{
		{"LITTLE_ENDIAN", binary.LittleEndian},
		{"little_endian", binary.LittleEndian},
		{"", binary.LittleEndian},
		{"BIG_ENDIAN", binary.BigEndian},
	}
	for _, tt := range tests {
		got, err := ParseByteOrder(tt.in)
		if err != nil {
			t.Fatalf("ParseByteOrder(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseByteOrder(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseByteOrder("MIDDLE_ENDIAN"); err == nil {
		t.Error("expected error for unknown byte order")
	}
	if OrderName(binary.BigEndian) != "big_endian" || OrderName(binary.LittleEndian) != "little_endian" {
		t.Error("OrderName mismatch")
	}
}

func TestGoType(t *testing.T) {
	tests := []struct {
		name     string
		e        Element
		expected reflect.Type
	}{
		{"int8", Element{Size: 1, Signed: true}, reflect.TypeOf(int8(0))},
		{"uint8", Element{Size: 1}, reflect.TypeOf(uint8(0))},
		{"int16", Element{Size: 2, Signed: true}, reflect.TypeOf(int16(0))},
		{"uint16", Element{Size: 2}, reflect.TypeOf(uint16(0))},
		{"int32", Int32, reflect.TypeOf(int32(0))},
		{"uint32", Uint32, reflect.TypeOf(uint32(0))},
		{"int64", Element{Size: 8, Signed: true}, reflect.TypeOf(int64(0))},
		{"uint64", Element{Size: 8}, reflect.TypeOf(uint64(0))},
		{"float32", Element{Size: 4, Signed: true, Real: true}, reflect.TypeOf(float32(0))},
		{"float64", Float64, reflect.TypeOf(float64(0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoType(tt.e)
			if err != nil {
				t.Fatalf("GoType failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if _, err := GoType(Element{Size: 8, Real: true, Complex: true}); err == nil {
		t.Error("expected error for complex element")
	}
}

func TestToSliceInt16BigEndian(t *testing.T) {
	data := []byte{0xFF, 0xFE, 0x00, 0x07, 0x80, 0x00}
	e := Element{Size: 2, Signed: true}

	got, err := ToSlice[int32](e, binary.BigEndian, data, 3)
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	want := []int32{-2, 7, -32768}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	unsigned, err := ToSlice[uint32](Element{Size: 2}, binary.BigEndian, data, 3)
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if !reflect.DeepEqual(unsigned, []uint32{65534, 7, 32768}) {
		t.Errorf("unsigned got %v", unsigned)
	}
}

func TestToSliceFloat32ToFloat64(t *testing.T) {
	e := Element{Size: 4, Signed: true, Real: true}
	raw, err := Encode(e, binary.LittleEndian, []float32{1.5, -2.25})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := ToSlice[float64](e, binary.LittleEndian, raw, 2)
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	if got[0] != 1.5 || got[1] != -2.25 {
		t.Errorf("got %v", got)
	}
}

func TestToSliceShortData(t *testing.T) {
	_, err := ToSlice[int32](Int32, binary.LittleEndian, []byte{1, 2, 3}, 1)
	if err == nil {
		t.Error("expected error for short data")
	}
}

func TestEncodeRoundtrip(t *testing.T) {
	values := []int32{0, 1, -1, math.MaxInt32, math.MinInt32}
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		raw, err := Encode(Int32, order, values)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if len(raw) != 20 {
			t.Fatalf("expected 20 bytes, got %d", len(raw))
		}
		back, err := ToSlice[int32](Int32, order, raw, len(values))
		if err != nil {
			t.Fatalf("ToSlice failed: %v", err)
		}
		if !reflect.DeepEqual(back, values) {
			t.Errorf("%v: got %v, want %v", order, back, values)
		}
	}
}
