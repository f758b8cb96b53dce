package ports

import "github.com/iamNilotpal/wirecompress/internal/core/domain"

// Defines the interface every wire compressor implements.
// The registry only talks to codecs through this port, so a codec can be
// compiled out of the binary without touching the dispatch logic.
type CompressionPort interface {
	// ID returns the wire id the codec encodes with.
	ID() domain.CompressorID

	// Compress encodes the whole buffer in one call.
	// Returns compressed data and any error reported by the library.
	Compress(data []byte) ([]byte, error)

	// Decompress restores data produced by Compress.
	// Returns decompressed data and any error reported by the library.
	Decompress(data []byte) ([]byte, error)

	// Level returns the compression level, or 0 for codecs without one.
	Level() int
}
