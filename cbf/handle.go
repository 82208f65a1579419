package cbf

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-cbf/codec"
	"github.com/robert-malhotra/go-cbf/internal/cif"
	"github.com/robert-malhotra/go-cbf/internal/source"
)

// Handle is an open document with its cursors. A Handle is not safe for
// concurrent use.
type Handle struct {
	doc    *cif.Document
	codec  codec.Codec
	log    zerolog.Logger
	closed bool
	cur    cursors
}

// Open reads and parses the file at path. Files compressed with gzip, bzip2
// or xz are decompressed first.
func Open(path string, opts ...Option) (*Handle, error) {
	data, container, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := ParseBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	h.log.Debug().Str("path", path).Stringer("container", container).Msg("opened")
	return h, nil
}

// Parse reads r to the end and parses it.
func Parse(r io.Reader, opts ...Option) (*Handle, error) {
	data, _, err := source.Read(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, opts...)
}

// ParseBytes parses an uncompressed document.
func ParseBytes(data []byte, opts ...Option) (*Handle, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	doc, err := cif.Parse(data, cif.Options{VerifyDigest: o.verifyDigest})
	if err != nil {
		return nil, err
	}

	h := &Handle{
		doc:   doc,
		codec: o.codec,
		log:   o.logger,
		cur:   initialCursors(),
	}
	h.log.Debug().Int("bytes", len(data)).Int("datablocks", len(doc.Blocks)).Msg("parsed document")
	return h, nil
}

// Close releases the document. Closing twice is a no-op; any other use after
// Close fails with ErrClosed.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.doc = nil
	return nil
}
