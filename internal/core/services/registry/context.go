package registry

import (
	stderrors "errors"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
)

var errNoContext = stderrors.New("no compression context")

// Context is a compressor bound to one id and, for zlib, one level.
// It is meant to live for one message or one handshake. Distinct contexts
// may be used concurrently; a single context must not be.
type Context struct {
	codec   ports.CompressionPort
	metrics ports.MetricsPort
}

// CompressorID is the id to write in front of the compressed payload.
func (c *Context) CompressorID() domain.CompressorID {
	return c.codec.ID()
}

// Level is the bound zlib level, or 0 for snappy.
func (c *Context) Level() int {
	return c.codec.Level()
}

// Compress encodes the whole buffer in a single library call. Library
// failures surface as errors.ErrCompressionFailed.
func (c *Context) Compress(data []byte) ([]byte, error) {
	out, err := c.codec.Compress(data)
	if err != nil {
		err = errors.NewCompressionError(errors.CategoryCompressionFailed, "compress", c.codec.ID().String(), err)
		out = nil
	}

	c.metrics.ObserveCompress(c.codec.ID(), len(data), len(out), err)
	return out, err
}
