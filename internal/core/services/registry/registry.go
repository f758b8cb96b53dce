// Package registry validates compressor configuration and dispatches
// compress and decompress calls to the codec a peer negotiated.
package registry

import (
	"github.com/iamNilotpal/wirecompress/internal/adapters/compression"
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
	"github.com/iamNilotpal/wirecompress/pkg/logger"
	"go.uber.org/zap"
)

// Registry is the single entry point for compressor handling. It holds no
// mutable state after New returns and is safe for concurrent use.
type Registry struct {
	caps    domain.Capabilities // Libraries available to this process.
	logger  *zap.SugaredLogger  // Receives validation warnings.
	metrics ports.MetricsPort   // Observes every compress/decompress call.
	maxSize int                 // Upper bound on decompressed payloads.
}

// New creates a Registry. Without options it uses the codecs compiled into
// the binary, a no-op logger and no metrics.
func New(opts ...Option) *Registry {
	r := &Registry{
		caps:    compression.Capabilities(),
		logger:  logger.Nop(),
		metrics: nopMetrics{},
		maxSize: compression.DefaultMaxDecompressedSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Capabilities returns the availability table the registry validates against.
func (r *Registry) Capabilities() domain.Capabilities {
	return r.caps
}

// NewSettings validates both options and builds the settings connections use.
func (r *Registry) NewSettings(rawCompressors string, rawLevel any) (*domain.CompressionSettings, error) {
	names, err := r.ValidateCompressors(rawCompressors)
	if err != nil {
		return nil, err
	}

	level, err := r.ValidateZlibLevel(rawLevel)
	if err != nil {
		return nil, err
	}

	return domain.NewCompressionSettings(names, level), nil
}

// SelectContext binds a compression context to the first compressor in peer
// that is configured in settings and available to this process. peer is
// normally the result of settings.Negotiate, in which case this is simply its
// first entry.
//
// It returns false when nothing qualifies; the message is then sent
// uncompressed. That outcome is not an error.
func (r *Registry) SelectContext(settings *domain.CompressionSettings, peer []domain.CompressorName) (*Context, bool) {
	if !settings.Enabled() {
		return nil, false
	}

	for _, name := range peer {
		if !settings.Contains(name) || !r.caps.Has(name) {
			continue
		}

		codec, err := compression.New(name.ID(), &compression.Options{ZlibLevel: settings.ZlibLevel()})
		if err != nil {
			r.logger.Warnw("skipping compressor", "compressor", name, "error", err)
			continue
		}

		r.logger.Debugw("selected compressor", "compressor", name, "id", uint8(codec.ID()))
		return &Context{codec: codec, metrics: r.metrics}, true
	}

	return nil, false
}

// ContextForCommand is SelectContext for a named command. Commands that carry
// authentication material never get a context.
func (r *Registry) ContextForCommand(
	settings *domain.CompressionSettings, peer []domain.CompressorName, command string,
) (*Context, bool) {
	if domain.IsSensitiveCommand(command) {
		r.logger.Debugw("sensitive command, sending uncompressed", "command", command)
		return nil, false
	}
	return r.SelectContext(settings, peer)
}

// Compress encodes data with the context's compressor.
func (r *Registry) Compress(ctx *Context, data []byte) ([]byte, error) {
	if ctx == nil {
		return nil, errors.NewCompressionError(
			errors.CategoryCompressionFailed, "compress", nil, errNoContext,
		)
	}
	return ctx.Compress(data)
}

// Decompress decodes a payload received with the given compressor id.
//
// An id other than snappy or zlib fails with errors.ErrUnknownCompressorID:
// the encoding cannot be guessed, so the message is unusable. A payload that
// decodes to more than the registry's size limit fails with both
// errors.ErrCompressionFailed and errors.ErrOutOfRange.
func (r *Registry) Decompress(data []byte, id domain.CompressorID) (out []byte, err error) {
	defer func() {
		r.metrics.ObserveDecompress(id, len(data), len(out), err)
	}()

	switch id {
	case domain.CompressorSnappy, domain.CompressorZlib:
	default:
		return nil, errors.NewCompressionError(errors.CategoryUnknownCompressorID, "decompress", uint8(id), nil)
	}

	if !r.caps.Has(id.Name()) {
		return nil, errors.NewCompressionError(errors.CategoryMissingDependency, "decompress", string(id.Name()), nil)
	}

	codec, err := compression.New(id, &compression.Options{
		ZlibLevel:           compression.DefaultZlibLevel,
		MaxDecompressedSize: r.maxSize,
	})
	if err != nil {
		return nil, err
	}

	out, err = codec.Decompress(data)
	if err != nil {
		return nil, errors.NewCompressionError(errors.CategoryCompressionFailed, "decompress", id.String(), err)
	}

	return out, nil
}
