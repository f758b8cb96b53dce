package registry

import (
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
	"go.uber.org/zap"
)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithCapabilities overrides the library availability table. The default is
// whatever the codecs compiled into the binary report.
func WithCapabilities(caps domain.Capabilities) Option {
	return func(r *Registry) {
		r.caps = caps
	}
}

// WithLogger sets the logger used for validation warnings.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records every compress and decompress call on m.
func WithMetrics(m ports.MetricsPort) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithMaxDecompressedSize bounds the bytes Decompress may produce. Values of
// zero or less keep compression.DefaultMaxDecompressedSize.
func WithMaxDecompressedSize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveCompress(domain.CompressorID, int, int, error)   {}
func (nopMetrics) ObserveDecompress(domain.CompressorID, int, int, error) {}
