// Package compression provides the wire codecs the registry dispatches to:
// snappy block compression and zlib, both backed by klauspost/compress.
//
// Each codec lives behind a build tag (nosnappy, nozlib). A binary built with
// the tag does not link the library, and Capabilities reports it missing.
package compression

import (
	"fmt"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
)

// Zlib level bounds. -1 selects the library default (6).
const (
	MinZlibLevel     = -1
	MaxZlibLevel     = 9
	DefaultZlibLevel = domain.ZlibDefaultLevel
)

// DefaultMaxDecompressedSize caps decoded payloads at the largest message a
// server accepts.
const DefaultMaxDecompressedSize = 48_000_000

// Options configures codec construction.
type Options struct {
	// ZlibLevel is the zlib compression level, between MinZlibLevel and MaxZlibLevel.
	ZlibLevel int
	// MaxDecompressedSize bounds the bytes Decompress may produce. Zero or
	// less selects DefaultMaxDecompressedSize.
	MaxDecompressedSize int
}

// DefaultOptions returns Options using the library default zlib level.
func DefaultOptions() *Options {
	return &Options{ZlibLevel: DefaultZlibLevel, MaxDecompressedSize: DefaultMaxDecompressedSize}
}

// Capabilities reports which codecs were compiled into this binary.
func Capabilities() domain.Capabilities {
	return domain.Capabilities{
		Snappy: snappyAvailable,
		Zlib:   zlibAvailable,
	}
}

// ValidateLevel checks a zlib level against the supported bounds.
func ValidateLevel(level int) error {
	if level < MinZlibLevel || level > MaxZlibLevel {
		return fmt.Errorf("zlib compression level must be between %d and %d, got %d", MinZlibLevel, MaxZlibLevel, level)
	}
	return nil
}

// New returns the codec for the id. The switch is exhaustive over the
// protocol's compressor ids; any other id is reported as unknown.
func New(id domain.CompressorID, opts *Options) (ports.CompressionPort, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	limit := opts.MaxDecompressedSize
	if limit <= 0 {
		limit = DefaultMaxDecompressedSize
	}

	switch id {
	case domain.CompressorSnappy:
		codec, err := NewSnappyCompression()
		if err != nil {
			return nil, err
		}
		return withLimit(codec, limit), nil
	case domain.CompressorZlib:
		codec, err := NewZlibCompression(opts.ZlibLevel)
		if err != nil {
			return nil, err
		}
		return withLimit(codec, limit), nil
	default:
		return nil, errors.NewCompressionError(errors.CategoryUnknownCompressorID, "new codec", uint8(id), nil)
	}
}

func missingDependency(name domain.CompressorName) error {
	return errors.NewCompressionError(
		errors.CategoryMissingDependency,
		"new codec",
		string(name),
		fmt.Errorf("%s support was not compiled into this binary", name),
	)
}

func sizeExceeded(limit int) error {
	return errors.NewCompressionError(
		errors.CategoryOutOfRange,
		"decompress",
		limit,
		fmt.Errorf("decompressed size exceeds the limit of %d bytes", limit),
	)
}

func withLimit(codec ports.CompressionPort, limit int) ports.CompressionPort {
	if l, ok := codec.(interface{ setMaxDecompressedSize(int) }); ok {
		l.setMaxDecompressedSize(limit)
	}
	return codec
}
