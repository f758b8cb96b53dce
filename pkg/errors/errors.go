package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies the failures the compressor registry can report.
// Callers match on categories through the sentinel errors below, which keeps
// error handling independent of the message text.
type ErrorCategory int

const (
	// CategoryUnsupportedCompressor indicates a compressor name outside the
	// fixed set the wire protocol recognizes.
	CategoryUnsupportedCompressor ErrorCategory = iota + 1

	// CategoryMissingDependency indicates a recognized compressor whose
	// library was not compiled into this binary.
	CategoryMissingDependency

	// CategoryTypeMismatch indicates an option value that cannot be
	// converted to the expected type.
	CategoryTypeMismatch

	// CategoryOutOfRange indicates a numeric option outside its bounds.
	CategoryOutOfRange

	// CategoryUnknownCompressorID indicates a compressor id received from a
	// peer that does not map to any known compressor. The payload cannot be
	// decoded and the message must be treated as corrupt.
	CategoryUnknownCompressorID

	// CategoryCompressionFailed indicates the underlying library rejected
	// the input during compression or decompression.
	CategoryCompressionFailed
)

var (
	ErrUnsupportedCompressor = errors.New("unsupported compressor")
	ErrMissingDependency     = errors.New("missing dependency")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrOutOfRange            = errors.New("out of range")
	ErrUnknownCompressorID   = errors.New("unknown compressor id")
	ErrCompressionFailed     = errors.New("compression failed")
)

// String returns the string representation of the error category.
// This is useful for logging, metrics, and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryUnsupportedCompressor:
		return "unsupported_compressor"
	case CategoryMissingDependency:
		return "missing_dependency"
	case CategoryTypeMismatch:
		return "type_mismatch"
	case CategoryOutOfRange:
		return "out_of_range"
	case CategoryUnknownCompressorID:
		return "unknown_compressor_id"
	case CategoryCompressionFailed:
		return "compression_failed"
	default:
		return "unknown"
	}
}

// Sentinel returns the package level error matching the category.
func (c ErrorCategory) Sentinel() error {
	switch c {
	case CategoryUnsupportedCompressor:
		return ErrUnsupportedCompressor
	case CategoryMissingDependency:
		return ErrMissingDependency
	case CategoryTypeMismatch:
		return ErrTypeMismatch
	case CategoryOutOfRange:
		return ErrOutOfRange
	case CategoryUnknownCompressorID:
		return ErrUnknownCompressorID
	case CategoryCompressionFailed:
		return ErrCompressionFailed
	default:
		return nil
	}
}

// CompressionError is returned by every registry operation. Operation names
// the failing call, Value carries the offending input when there is one and
// Err the cause reported by the underlying library, if any.
type CompressionError struct {
	Err       error
	Value     any
	Operation string
	Category  ErrorCategory
}

// NewCompressionError creates a new CompressionError instance.
func NewCompressionError(category ErrorCategory, operation string, value any, err error) *CompressionError {
	return &CompressionError{
		Err:       err,
		Value:     value,
		Category:  category,
		Operation: operation,
	}
}

func (e *CompressionError) Error() string {
	msg := fmt.Sprintf("[%v] %s", e.Category, e.Operation)
	if e.Value != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is the sentinel of the error's category.
func (e *CompressionError) Is(target error) bool {
	sentinel := e.Category.Sentinel()
	return sentinel != nil && target == sentinel
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}

// IsCompressionError checks if a given error is of type CompressionError.
func IsCompressionError(err error) bool {
	var ce *CompressionError
	return errors.As(err, &ce)
}

// AsCompressionError attempts to extract a CompressionError from a given error.
func AsCompressionError(err error) *CompressionError {
	var ce *CompressionError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
