package codec

import (
	"fmt"
	"strings"
)

// Compression identifies the conversion applied to a binary section.
// Values match the CBFlib compression constants.
type Compression uint32

// Compression tags.
const (
	None         Compression = 0x0040
	Canonical    Compression = 0x0050
	Packed       Compression = 0x0060
	ByteOffset   Compression = 0x0070
	Predictor    Compression = 0x0080
	PackedV2     Compression = 0x0090
	NibbleOffset Compression = 0x00A0
)

var compressionNames = map[Compression]string{
	None:         "x-CBF_NONE",
	Canonical:    "x-CBF_CANONICAL",
	Packed:       "x-CBF_PACKED",
	ByteOffset:   "x-CBF_BYTE_OFFSET",
	Predictor:    "x-CBF_PREDICTOR",
	PackedV2:     "x-CBF_PACKED_V2",
	NibbleOffset: "x-CBF_NIBBLE_OFFSET",
}

// String returns the MIME conversions spelling of the tag.
func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("compression(0x%04x)", uint32(c))
}

// ParseCompression parses the conversions parameter of a binary section's
// Content-Type header. An empty value means no compression.
func ParseCompression(conversions string) (Compression, error) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(conversions), `"`))
	if s == "" {
		return None, nil
	}
	// Flags such as ",uncorrelated_sections" follow the scheme name.
	scheme, _, _ := strings.Cut(s, ",")
	scheme = strings.TrimSpace(scheme)
	for c, name := range compressionNames {
		if strings.EqualFold(scheme, name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: conversions %q", ErrUnsupported, conversions)
}
