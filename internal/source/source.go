// Package source reads CBF inputs, transparently removing gzip, bzip2 and xz
// container compression.
package source

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Container identifies an outer compression format.
type Container int

const (
	Plain Container = iota
	Gzip
	Bzip2
	XZ
)

func (c Container) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	default:
		return "plain"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect identifies the container from the leading bytes.
func Detect(head []byte) Container {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return XZ
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, bzip2Magic):
		return Bzip2
	default:
		return Plain
	}
}

// Read returns the full decompressed contents of r.
func Read(r io.Reader) ([]byte, Container, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, Plain, fmt.Errorf("reading header: %w", err)
	}

	c := Detect(head)
	var body io.Reader = br
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		body = zr
	case Bzip2:
		body = bzip2.NewReader(br)
	case XZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("opening xz stream: %w", err)
		}
		body = xr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, c, fmt.Errorf("reading %s stream: %w", c, err)
	}
	return data, c, nil
}

// ReadFile reads and decompresses the file at path.
func ReadFile(path string) ([]byte, Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Plain, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
