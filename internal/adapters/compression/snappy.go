//go:build !nosnappy

package compression

import (
	"fmt"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/klauspost/compress/snappy"
)

const snappyAvailable = true

// SnappyCompression encodes with the snappy block format. It is not modified
// after construction, so one value may be shared between goroutines.
type SnappyCompression struct {
	maxSize int // Largest decoded payload Decompress accepts.
}

// NewSnappyCompression returns the snappy codec.
func NewSnappyCompression() (*SnappyCompression, error) {
	return &SnappyCompression{maxSize: DefaultMaxDecompressedSize}, nil
}

// ID returns the snappy wire id.
func (s *SnappyCompression) ID() domain.CompressorID {
	return domain.CompressorSnappy
}

// Compress encodes data as a single snappy block. Encoding cannot fail.
func (s *SnappyCompression) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress decodes a snappy block. The decoded length in the block header
// is checked against the size limit before anything is allocated.
func (s *SnappyCompression) Decompress(data []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	if n > s.maxSize {
		return nil, sizeExceeded(s.maxSize)
	}

	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return out, nil
}

// Level always returns 0; snappy has no levels.
func (s *SnappyCompression) Level() int {
	return 0
}

func (s *SnappyCompression) setMaxDecompressedSize(n int) {
	s.maxSize = n
}
