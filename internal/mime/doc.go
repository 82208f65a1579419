// Package mime parses the MIME header block that opens a CBF binary section.
//
// A binary section is a CIF text field of the form
//
//	;
//	--CIF-BINARY-FORMAT-SECTION--
//	Content-Type: application/octet-stream;
//	     conversions="x-CBF_BYTE_OFFSET"
//	Content-Transfer-Encoding: BINARY
//	X-Binary-Size: 6182
//	X-Binary-ID: 1
//	X-Binary-Element-Type: "signed 32-bit integer"
//	X-Binary-Element-Byte-Order: LITTLE_ENDIAN
//	Content-MD5: jUOBGcRPYgbL5Q8UKnHhJQ==
//	X-Binary-Number-of-Elements: 6224001
//	X-Binary-Size-Fastest-Dimension: 2463
//	X-Binary-Size-Second-Dimension: 2527
//	X-Binary-Size-Padding: 4095
//
//	<0C 1A 04 D5><payload>
//	--CIF-BINARY-FORMAT-SECTION----
//	;
//
// This package handles the header lines only; locating the payload is the
// parser's job. [Header.Format] writes the same layout back out.
package mime
