package registry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iamNilotpal/wirecompress/internal/adapters/compression"
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
	"github.com/spf13/cast"
)

// Option names as they appear in connection strings and error messages.
const (
	FieldCompressors = "compressors"
	FieldZlibLevel   = "zlibCompressionLevel"
)

// ValidateCompressors parses a comma separated compressor list.
//
// Tokens are matched exactly. Unknown tokens are dropped with a warning, so
// the result may be empty. An empty raw string means no compressors. A known
// compressor whose library is unavailable fails the whole list with
// errors.ErrMissingDependency. Order and duplicates are kept.
func (r *Registry) ValidateCompressors(raw string) ([]domain.CompressorName, error) {
	if raw == "" {
		return []domain.CompressorName{}, nil
	}

	tokens := strings.Split(raw, ",")
	accepted := make([]domain.CompressorName, 0, len(tokens))

	for _, token := range tokens {
		name := domain.CompressorName(token)

		if !name.IsSupported() {
			r.logger.Warnw("unknown compressor, ignoring", "compressor", token, "supported", domain.SupportedCompressors)
			continue
		}

		if !r.caps.Has(name) {
			return nil, errors.NewValidationError(
				FieldCompressors,
				raw,
				errors.NewCompressionError(
					errors.CategoryMissingDependency,
					"validate compressors",
					token,
					fmt.Errorf("%s support is not available in this build", name),
				),
			)
		}

		accepted = append(accepted, name)
	}

	return accepted, nil
}

// ValidateZlibLevel converts raw to an integer level in [-1, 9].
//
// Integers, floats (truncated toward zero), json.Number and decimal strings
// are accepted. Anything else fails with errors.ErrTypeMismatch; integers
// outside the range fail with errors.ErrOutOfRange. Booleans are rejected as a
// type mismatch rather than read as 0 or 1.
func (r *Registry) ValidateZlibLevel(raw any) (int, error) {
	level, err := toInt64(raw)
	if err != nil {
		return 0, errors.NewValidationError(
			FieldZlibLevel,
			raw,
			errors.NewCompressionError(errors.CategoryTypeMismatch, "validate zlib level", raw, err),
		)
	}

	if level < compression.MinZlibLevel || level > compression.MaxZlibLevel {
		return 0, errors.NewValidationError(
			FieldZlibLevel,
			raw,
			errors.NewCompressionError(
				errors.CategoryOutOfRange,
				"validate zlib level",
				level,
				fmt.Errorf("must be between %d and %d", compression.MinZlibLevel, compression.MaxZlibLevel),
			),
		)
	}

	return int(level), nil
}

// toInt64 never wraps: unsigned and float values beyond the int64 range
// saturate, which the range check then rejects.
func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, fmt.Errorf("must be an integer, not nil")
	case bool:
		return 0, fmt.Errorf("must be an integer, not %T", v)
	case string:
		return parseDecimal(v)
	case json.Number:
		return parseDecimal(string(v))
	case int, int8, int16, int32, int64:
		return cast.ToInt64E(v)
	case uint, uint8, uint16, uint32, uint64:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt64 {
			return math.MaxInt64, nil
		}
		return int64(u), nil
	case float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, err
		}
		switch {
		case math.IsNaN(f) || math.IsInf(f, 0):
			return 0, fmt.Errorf("must be an integer, not %v", f)
		case f >= math.MaxInt64:
			return math.MaxInt64, nil
		case f <= math.MinInt64:
			return math.MinInt64, nil
		}
		return cast.ToInt64E(math.Trunc(f))
	default:
		return 0, fmt.Errorf("must be an integer, not %T", v)
	}
}

func parseDecimal(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, not %q", s)
	}
	return n, nil
}
