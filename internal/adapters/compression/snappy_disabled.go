//go:build nosnappy

package compression

import (
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
)

const snappyAvailable = false

// NewSnappyCompression always fails in builds without snappy support.
func NewSnappyCompression() (ports.CompressionPort, error) {
	return nil, missingDependency(domain.Snappy)
}
