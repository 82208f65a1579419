package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-cbf/internal/dtype"
)

// Errors reported by codecs.
var (
	ErrUnsupported = errors.New("unsupported compression")
	ErrArgument    = errors.New("invalid decode request")
)

// Request describes one decode call.
type Request struct {
	Compression Compression
	Payload     []byte

	// Source describes the elements as stored in the payload.
	Source    dtype.Element
	ByteOrder binary.ByteOrder

	// Count is the number of elements requested.
	Count int
	// Width is the destination element width in bytes.
	Width int
	// Signed and Real select the destination element kind.
	Signed bool
	Real   bool
}

// Dest returns the destination element description.
func (r Request) Dest() dtype.Element {
	return dtype.Element{Size: r.Width, Signed: r.Signed || r.Real, Real: r.Real}
}

// Validate checks the request against a destination buffer.
func (r Request) Validate(dst []byte) error {
	switch {
	case r.Count < 0:
		return fmt.Errorf("%w: negative count %d", ErrArgument, r.Count)
	case r.Real && r.Width != 4 && r.Width != 8:
		return fmt.Errorf("%w: real width %d", ErrArgument, r.Width)
	case !r.Real && r.Width != 1 && r.Width != 2 && r.Width != 4 && r.Width != 8:
		return fmt.Errorf("%w: integer width %d", ErrArgument, r.Width)
	case r.Count > len(dst)/r.Width:
		return fmt.Errorf("%w: buffer holds %d bytes, need %d elements of %d", ErrArgument, len(dst), r.Count, r.Width)
	}
	return nil
}

// Codec decodes the payload of a binary section.
type Codec interface {
	// Decode writes up to req.Count elements into dst and returns the number
	// of elements written.
	Decode(req Request, dst []byte) (int, error)
}

// Func adapts a function to the Codec interface.
type Func func(req Request, dst []byte) (int, error)

// Decode calls f.
func (f Func) Decode(req Request, dst []byte) (int, error) {
	return f(req, dst)
}

// Registry dispatches decode requests by compression tag.
type Registry struct {
	codecs map[Compression]Codec
}

// NewRegistry returns a registry with the None codec registered.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[Compression]Codec)}
	r.Register(None, NoneCodec{})
	return r
}

// Register installs c for the compression tag, replacing any previous codec.
func (r *Registry) Register(tag Compression, c Codec) {
	if r.codecs == nil {
		r.codecs = make(map[Compression]Codec)
	}
	r.codecs[tag] = c
}

// Lookup returns the codec registered for tag.
func (r *Registry) Lookup(tag Compression) (Codec, bool) {
	c, ok := r.codecs[tag]
	return c, ok
}

// Decode dispatches to the codec registered for req.Compression.
func (r *Registry) Decode(req Request, dst []byte) (int, error) {
	c, ok := r.Lookup(req.Compression)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, req.Compression)
	}
	return c.Decode(req, dst)
}
