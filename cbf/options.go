package cbf

import (
	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-cbf/codec"
)

// Option configures a Handle.
type Option func(*options)

type options struct {
	codec        codec.Codec
	logger       zerolog.Logger
	verifyDigest bool
}

func defaultOptions() *options {
	return &options{
		codec:  codec.NewRegistry(),
		logger: zerolog.Nop(),
	}
}

// WithCodec sets the codec used to decode binary sections. The default is a
// fresh codec.Registry with only uncompressed data supported.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets the logger for parse and decode events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDigestCheck verifies each binary section against its Content-MD5
// header while parsing.
func WithDigestCheck() Option {
	return func(o *options) {
		o.verifyDigest = true
	}
}
