package mime

import (
	"crypto/md5"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Section delimiters.
const (
	Boundary   = "--CIF-BINARY-FORMAT-SECTION--"
	Terminator = "--CIF-BINARY-FORMAT-SECTION----"
)

// Marker precedes the payload of a BINARY transfer-encoded section.
var Marker = []byte{0x0C, 0x1A, 0x04, 0xD5}

// Transfer encodings.
const (
	EncodingBinary = "BINARY"
	EncodingBase64 = "BASE64"
)

var (
	// ErrMalformed is returned for header lines that cannot be parsed.
	ErrMalformed = errors.New("malformed binary section header")
	// ErrDigest is returned when Content-MD5 does not match the payload.
	ErrDigest = errors.New("binary section digest mismatch")
)

// Header holds the fields of a binary section header.
type Header struct {
	ContentType      string
	Conversions      string
	TransferEncoding string
	Size             int
	ID               int
	ElementType      string
	ByteOrder        string
	MD5              string
	Elements         int
	Fastest          int
	Second           int
	Third            int
	Padding          int
}

// Parse parses header lines up to (not including) the blank separator line.
// Continuation lines begin with whitespace.
func Parse(lines []string) (Header, error) {
	var h Header
	h.TransferEncoding = EncodingBinary

	var fields []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(fields) == 0 {
				return Header{}, fmt.Errorf("%w: continuation before first field", ErrMalformed)
			}
			fields[len(fields)-1] += " " + strings.TrimSpace(line)
			continue
		}
		fields = append(fields, strings.TrimRight(line, " \t\r"))
	}

	for _, f := range fields {
		name, value, ok := strings.Cut(f, ":")
		if !ok {
			return Header{}, fmt.Errorf("%w: %q", ErrMalformed, f)
		}
		value = strings.TrimSpace(value)

		var err error
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "content-type":
			h.ContentType, h.Conversions = parseContentType(value)
		case "content-transfer-encoding":
			h.TransferEncoding = strings.ToUpper(value)
		case "content-md5":
			h.MD5 = value
		case "x-binary-size":
			h.Size, err = atoi(name, value)
		case "x-binary-id":
			h.ID, err = atoi(name, value)
		case "x-binary-element-type":
			h.ElementType = strings.Trim(value, `"`)
		case "x-binary-element-byte-order":
			h.ByteOrder = value
		case "x-binary-number-of-elements":
			h.Elements, err = atoi(name, value)
		case "x-binary-size-fastest-dimension":
			h.Fastest, err = atoi(name, value)
		case "x-binary-size-second-dimension":
			h.Second, err = atoi(name, value)
		case "x-binary-size-third-dimension":
			h.Third, err = atoi(name, value)
		case "x-binary-size-padding":
			h.Padding, err = atoi(name, value)
		}
		if err != nil {
			return Header{}, err
		}
	}

	return h, nil
}

func atoi(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %q", ErrMalformed, name, value)
	}
	return n, nil
}

// parseContentType splits "application/octet-stream; conversions=..." into
// the media type and the conversions parameter.
func parseContentType(value string) (string, string) {
	parts := strings.Split(value, ";")
	mediaType := strings.TrimSpace(parts[0])
	var conversions string
	for _, p := range parts[1:] {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "conversions") {
			conversions = strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return mediaType, conversions
}

// Digest returns the Content-MD5 value for payload.
func Digest(payload []byte) string {
	sum := md5.Sum(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyDigest checks payload against h.MD5. A header without a digest
// always verifies.
func (h Header) VerifyDigest(payload []byte) error {
	if h.MD5 == "" {
		return nil
	}
	if got := Digest(payload); got != h.MD5 {
		return fmt.Errorf("%w: header %s, payload %s", ErrDigest, h.MD5, got)
	}
	return nil
}

// Format writes the header lines, each terminated by "\r\n", followed by the
// blank separator line.
func (h Header) Format() string {
	var b strings.Builder
	contentType := h.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if h.Conversions != "" {
		fmt.Fprintf(&b, "Content-Type: %s;\r\n     conversions=\"%s\"\r\n", contentType, h.Conversions)
	} else {
		fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	}
	encoding := h.TransferEncoding
	if encoding == "" {
		encoding = EncodingBinary
	}
	fmt.Fprintf(&b, "Content-Transfer-Encoding: %s\r\n", encoding)
	fmt.Fprintf(&b, "X-Binary-Size: %d\r\n", h.Size)
	fmt.Fprintf(&b, "X-Binary-ID: %d\r\n", h.ID)
	if h.ElementType != "" {
		fmt.Fprintf(&b, "X-Binary-Element-Type: \"%s\"\r\n", h.ElementType)
	}
	if h.ByteOrder != "" {
		fmt.Fprintf(&b, "X-Binary-Element-Byte-Order: %s\r\n", h.ByteOrder)
	}
	if h.MD5 != "" {
		fmt.Fprintf(&b, "Content-MD5: %s\r\n", h.MD5)
	}
	fmt.Fprintf(&b, "X-Binary-Number-of-Elements: %d\r\n", h.Elements)
	if h.Fastest != 0 {
		fmt.Fprintf(&b, "X-Binary-Size-Fastest-Dimension: %d\r\n", h.Fastest)
	}
	if h.Second != 0 {
		fmt.Fprintf(&b, "X-Binary-Size-Second-Dimension: %d\r\n", h.Second)
	}
	if h.Third != 0 {
		fmt.Fprintf(&b, "X-Binary-Size-Third-Dimension: %d\r\n", h.Third)
	}
	if h.Padding != 0 {
		fmt.Fprintf(&b, "X-Binary-Size-Padding: %d\r\n", h.Padding)
	}
	b.WriteString("\r\n")
	return b.String()
}
