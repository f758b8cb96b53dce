package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/services/registry"
	"gopkg.in/yaml.v3"
)

// Connection string option keys. Matching ignores case.
const (
	URIOptionCompressors = "compressors"
	URIOptionZlibLevel   = "zlibCompressionLevel"
)

type Config struct {
	// Comma separated compressor preference list, most preferred first.
	Compressors string `yaml:"compressors"`
	// Zlib level in [-1, 9]. Left untyped so that validation, not the YAML
	// decoder, reports bad values.
	ZlibCompressionLevel any `yaml:"zlib_compression_level"`
	// Register Prometheus counters for compress/decompress calls.
	EnableMetrics bool `yaml:"enable_metrics"`
	// zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Returns a Config struct with reasonable default values.
// No compressors are configured, so messages are sent uncompressed.
func DefaultConfig() *Config {
	return &Config{
		Compressors:          "",
		ZlibCompressionLevel: domain.ZlibDefaultLevel,
		EnableMetrics:        false,
		LogLevel:             "info",
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// Reads the compressor options from a connection string such as
// "mongodb://host/?compressors=snappy,zlib&zlibCompressionLevel=4".
// Other options are ignored.
func ParseURI(uri string) (*Config, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("error parsing connection string: %w", err)
	}

	config := DefaultConfig()
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}

		switch {
		case strings.EqualFold(key, URIOptionCompressors):
			config.Compressors = values[len(values)-1]
		case strings.EqualFold(key, URIOptionZlibLevel):
			config.ZlibCompressionLevel = values[len(values)-1]
		}
	}

	return config, nil
}

// Validate checks the compressor options against the registry.
func (c *Config) Validate(reg *registry.Registry) error {
	_, err := c.Settings(reg)
	return err
}

// Settings validates the compressor options and builds the settings used to
// select compression contexts. Errors are *errors.ValidationError values
// naming the offending option.
func (c *Config) Settings(reg *registry.Registry) (*domain.CompressionSettings, error) {
	settings, err := reg.NewSettings(c.Compressors, c.ZlibCompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}
