//go:build !nozlib

package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
	"github.com/iamNilotpal/wirecompress/pkg/pool"
	"github.com/klauspost/compress/zlib"
)

const zlibAvailable = true

var zlibBuffers = pool.NewBufferPool(pool.DefaultBufferSize)

// ZlibCompression encodes RFC 1950 zlib streams at a fixed level. Every call
// builds its own writer or reader, so no stream state is shared between calls.
type ZlibCompression struct {
	level   int // Compression level in [MinZlibLevel, MaxZlibLevel].
	maxSize int // Largest decoded payload Decompress accepts.
}

// NewZlibCompression returns a zlib codec for the level.
// The level must be between MinZlibLevel and MaxZlibLevel.
func NewZlibCompression(level int) (*ZlibCompression, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, errors.NewCompressionError(errors.CategoryOutOfRange, "new codec", level, err)
	}
	return &ZlibCompression{level: level, maxSize: DefaultMaxDecompressedSize}, nil
}

// ID returns the zlib wire id.
func (z *ZlibCompression) ID() domain.CompressorID {
	return domain.CompressorZlib
}

// Compress writes the whole buffer through a zlib writer into a pooled buffer
// and returns a detached copy of the stream.
func (z *ZlibCompression) Compress(data []byte) ([]byte, error) {
	buf := zlibBuffers.Get()

	w, err := zlib.NewWriterLevel(buf, z.level)
	if err != nil {
		zlibBuffers.Put(buf)
		return nil, fmt.Errorf("zlib writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		zlibBuffers.Put(buf)
		return nil, fmt.Errorf("zlib write: %w", err)
	}

	// Close flushes the final block and the adler32 trailer.
	if err := w.Close(); err != nil {
		zlibBuffers.Put(buf)
		return nil, fmt.Errorf("zlib close: %w", err)
	}

	return zlibBuffers.Detach(buf), nil
}

// Decompress inflates a complete zlib stream into a pooled buffer and returns
// a detached copy. Reading stops one byte past the size limit, so an
// oversized stream fails without being inflated in full.
func (z *ZlibCompression) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	buf := zlibBuffers.Get()
	if _, err := buf.ReadFrom(io.LimitReader(r, int64(z.maxSize)+1)); err != nil {
		zlibBuffers.Put(buf)
		return nil, fmt.Errorf("zlib read: %w", err)
	}

	if buf.Len() > z.maxSize {
		zlibBuffers.Put(buf)
		return nil, sizeExceeded(z.maxSize)
	}

	return zlibBuffers.Detach(buf), nil
}

// Level returns the compression level the codec was built with.
func (z *ZlibCompression) Level() int {
	return z.level
}

func (z *ZlibCompression) setMaxDecompressedSize(n int) {
	z.maxSize = n
}
