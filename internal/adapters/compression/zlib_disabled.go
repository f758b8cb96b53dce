//go:build nozlib

package compression

import (
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
)

const zlibAvailable = false

// NewZlibCompression always fails in builds without zlib support.
func NewZlibCompression(level int) (ports.CompressionPort, error) {
	return nil, missingDependency(domain.Zlib)
}
