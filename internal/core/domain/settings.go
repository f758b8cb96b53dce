package domain

import "slices"

// ZlibDefaultLevel asks zlib for its own default level.
const ZlibDefaultLevel = -1

// CompressionSettings holds the validated compressor preference list and zlib
// level. It is built once at configuration time and never modified, so it can
// be shared freely between the goroutines that open connections.
type CompressionSettings struct {
	compressors []CompressorName
	zlibLevel   int
}

// NewCompressionSettings copies the given names. Callers are expected to pass
// values that already went through the registry's validators.
func NewCompressionSettings(compressors []CompressorName, zlibLevel int) *CompressionSettings {
	return &CompressionSettings{
		compressors: slices.Clone(compressors),
		zlibLevel:   zlibLevel,
	}
}

// Compressors returns the preference list, most preferred first.
func (s *CompressionSettings) Compressors() []CompressorName {
	if s == nil {
		return nil
	}
	return slices.Clone(s.compressors)
}

// ZlibLevel returns the configured zlib level.
func (s *CompressionSettings) ZlibLevel() int {
	if s == nil {
		return ZlibDefaultLevel
	}
	return s.zlibLevel
}

// Enabled reports whether any compressor is configured.
func (s *CompressionSettings) Enabled() bool {
	return s != nil && len(s.compressors) > 0
}

// Contains reports whether name is in the preference list.
func (s *CompressionSettings) Contains(name CompressorName) bool {
	return s != nil && slices.Contains(s.compressors, name)
}

// Negotiate keeps the local compressors that the server also advertised
// during the handshake. Local order and duplicates are preserved.
func (s *CompressionSettings) Negotiate(serverAdvertised []string) []CompressorName {
	if !s.Enabled() || len(serverAdvertised) == 0 {
		return nil
	}

	var agreed []CompressorName
	for _, name := range s.compressors {
		if slices.Contains(serverAdvertised, string(name)) {
			agreed = append(agreed, name)
		}
	}
	return agreed
}
