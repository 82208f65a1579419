// Package cbftest builds CBF documents in memory for tests.
package cbftest

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/dtype"
	"github.com/robert-malhotra/go-cbf/internal/mime"
)

// Array describes a binary section to embed.
type Array struct {
	Element dtype.Element
	Order   binary.ByteOrder // nil means little endian
	Payload []byte
	// Elements defaults to len(Payload)/Element.Size.
	Elements int
	// Fastest, Second and Third are the axis sizes; zero means absent.
	Fastest, Second, Third int
	Padding                int
	Conversions            string // defaults to x-CBF_NONE
	Base64                 bool
	// BadDigest writes a Content-MD5 that does not match the payload.
	BadDigest bool
}

// Int32s returns an uncompressed signed 32-bit array.
func Int32s(values ...int32) Array {
	return mustArray(dtype.Int32, values)
}

// Uint16s returns an uncompressed unsigned 16-bit array.
func Uint16s(values ...uint16) Array {
	return mustArray(dtype.Element{Size: 2}, values)
}

// Float64s returns an uncompressed 64-bit real array.
func Float64s(values ...float64) Array {
	return mustArray(dtype.Float64, values)
}

func mustArray[T dtype.Number](e dtype.Element, values []T) Array {
	payload, err := dtype.Encode(e, binary.LittleEndian, values)
	if err != nil {
		panic(err)
	}
	return Array{Element: e, Payload: payload}
}

// Dims sets the axis sizes, fastest first.
func (a Array) Dims(fastest, second, third int) Array {
	a.Fastest, a.Second, a.Third = fastest, second, third
	return a
}

// Builder writes CIF text.
type Builder struct {
	buf    bytes.Buffer
	nextID int
}

// New returns a builder with the CBF magic comment.
func New() *Builder {
	b := &Builder{}
	b.buf.WriteString("###CBF: VERSION 1.5\n")
	return b
}

// Block starts a data block.
func (b *Builder) Block(name string) *Builder {
	fmt.Fprintf(&b.buf, "\ndata_%s\n\n", name)
	return b
}

// Save opens a save frame, or closes the open one when name is empty.
func (b *Builder) Save(name string) *Builder {
	fmt.Fprintf(&b.buf, "save_%s\n", name)
	return b
}

// Item writes a single tag-value pair. value is written verbatim, so quotes
// and text fields are the caller's choice.
func (b *Builder) Item(tag, value string) *Builder {
	if strings.HasPrefix(value, ";") {
		fmt.Fprintf(&b.buf, "%s\n%s\n", tag, value)
		return b
	}
	fmt.Fprintf(&b.buf, "%s %s\n", tag, value)
	return b
}

// Loop writes a loop with the given tags and rows. Values are written
// verbatim; text fields start on their own line.
func (b *Builder) Loop(tags []string, rows ...[]string) *Builder {
	b.buf.WriteString("loop_\n")
	for _, t := range tags {
		fmt.Fprintf(&b.buf, "%s\n", t)
	}
	for _, row := range rows {
		for _, v := range row {
			if strings.HasPrefix(v, ";") {
				b.buf.WriteByte('\n')
				b.buf.WriteString(v)
				continue
			}
			b.buf.WriteString(v + " ")
		}
		b.buf.WriteByte('\n')
	}
	return b
}

// Raw appends text unchanged.
func (b *Builder) Raw(s string) *Builder {
	b.buf.WriteString(s)
	return b
}

// Binary writes tag followed by a binary section.
func (b *Builder) Binary(tag string, a Array) *Builder {
	fmt.Fprintf(&b.buf, "%s\n", tag)
	b.buf.WriteString(b.Section(a))
	return b
}

// Section returns a binary section as a text field, usable as a loop value.
func (b *Builder) Section(a Array) string {
	b.nextID++

	order := a.Order
	if order == nil {
		order = binary.LittleEndian
	}
	conversions := a.Conversions
	if conversions == "" {
		conversions = "x-CBF_NONE"
	}
	elements := a.Elements
	if elements == 0 && a.Element.Size > 0 {
		elements = len(a.Payload) / a.Element.Size
	}
	digest := mime.Digest(a.Payload)
	if a.BadDigest {
		digest = mime.Digest(append(bytes.Clone(a.Payload), 0xFF))
	}

	h := mime.Header{
		Conversions:      conversions,
		TransferEncoding: mime.EncodingBinary,
		Size:             len(a.Payload),
		ID:               b.nextID,
		ElementType:      a.Element.String(),
		ByteOrder:        strings.ToUpper(dtype.OrderName(order)),
		MD5:              digest,
		Elements:         elements,
		Fastest:          a.Fastest,
		Second:           a.Second,
		Third:            a.Third,
		Padding:          a.Padding,
	}
	if a.Base64 {
		h.TransferEncoding = mime.EncodingBase64
	}

	var s strings.Builder
	s.WriteString(";\n")
	s.WriteString(mime.Boundary + "\r\n")
	s.WriteString(h.Format())
	if a.Base64 {
		enc := base64.StdEncoding.EncodeToString(a.Payload)
		for len(enc) > 76 {
			s.WriteString(enc[:76] + "\r\n")
			enc = enc[76:]
		}
		s.WriteString(enc + "\r\n")
	} else {
		s.Write(mime.Marker)
		s.Write(a.Payload)
		s.Write(make([]byte, a.Padding))
		s.WriteString("\r\n")
	}
	s.WriteString(mime.Terminator + "\r\n;\n")
	return s.String()
}

// Bytes returns the document.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// String returns the document as text.
func (b *Builder) String() string {
	return b.buf.String()
}
