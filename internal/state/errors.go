package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// formatFloat renders a float without trailing zeros for error messages.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Common errors returned by state operations.
var (
	// ErrSchemaVersionMismatch is returned when two trees with different
	// schema versions are merged.
	ErrSchemaVersionMismatch = errors.New("schema version mismatch")

	// ErrUnsupportedVersion is returned when a tree carries a schema
	// version with no known upgrade path.
	ErrUnsupportedVersion = errors.New("unsupported schema version")
)

// ValidationError describes a single field constraint violation.
type ValidationError struct {
	// Path is the dot-separated field path (e.g. "audio_settings.master_volume").
	Path string

	// Message describes what constraint was violated.
	Message string

	// Value is the offending value, if available.
	Value any

	// Expected describes the expected value or range, if applicable.
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Expected != "" {
		sb.WriteString(" (expected ")
		sb.WriteString(e.Expected)
		sb.WriteString(")")
	}
	return sb.String()
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

// NewValidationErrors creates an empty error collection.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add appends an error with the given path and message.
func (ve *ValidationErrors) Add(path, message string) {
	ve.Errors = append(ve.Errors, &ValidationError{Path: path, Message: message})
}

// AddWithValue appends an error carrying the offending value and the
// expected range or set.
func (ve *ValidationErrors) AddWithValue(path, message string, value any, expected string) {
	ve.Errors = append(ve.Errors, &ValidationError{
		Path:     path,
		Message:  message,
		Value:    value,
		Expected: expected,
	})
}

// AddError appends an existing validation error.
func (ve *ValidationErrors) AddError(err *ValidationError) {
	if err != nil {
		ve.Errors = append(ve.Errors, err)
	}
}

// Merge appends all errors from another collection.
func (ve *ValidationErrors) Merge(other *ValidationErrors) {
	if other != nil {
		ve.Errors = append(ve.Errors, other.Errors...)
	}
}

// HasErrors reports whether any errors were collected.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Len returns the number of collected errors.
func (ve *ValidationErrors) Len() int {
	return len(ve.Errors)
}

// Error implements the error interface.
func (ve *ValidationErrors) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return ve.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(ve.Errors))
	for _, err := range ve.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// AsError returns the collection as an error, or nil if empty.
func (ve *ValidationErrors) AsError() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ErrorsForPath returns errors whose path exactly matches.
func (ve *ValidationErrors) ErrorsForPath(path string) []*ValidationError {
	var result []*ValidationError
	for _, err := range ve.Errors {
		if err.Path == path {
			result = append(result, err)
		}
	}
	return result
}

// VersionError describes an incompatibility between schema versions.
type VersionError struct {
	// Expected is the version the operation required.
	Expected string

	// Found is the version actually present.
	Found string

	// Op names the operation that failed ("merge", "migrate", "load").
	Op string
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: schema version %q incompatible with %q", e.Op, e.Found, e.Expected)
}

// Is reports whether target matches this error's sentinel.
func (e *VersionError) Is(target error) bool {
	return target == ErrSchemaVersionMismatch || target == ErrUnsupportedVersion
}

// rangeErrorf records a numeric out-of-range violation.
func rangeErrorf(ve *ValidationErrors, path string, value any, min, max float64) {
	ve.AddWithValue(path, fmt.Sprintf("value %v out of range", value), value,
		fmt.Sprintf("%g to %g", min, max))
}

// inRange checks a float bound and records a violation if outside it.
func inRange(ve *ValidationErrors, path string, value, min, max float64) {
	if value < min || value > max {
		rangeErrorf(ve, path, value, min, max)
	}
}

// inRangeInt checks an integer bound and records a violation if outside it.
func inRangeInt(ve *ValidationErrors, path string, value, min, max int) {
	if value < min || value > max {
		rangeErrorf(ve, path, value, float64(min), float64(max))
	}
}

// oneOfInt checks membership in a fixed set of allowed integer values.
func oneOfInt(ve *ValidationErrors, path string, value int, allowed ...int) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	ve.AddWithValue(path, fmt.Sprintf("value %d not allowed", value), value,
		fmt.Sprintf("one of %v", allowed))
}

// powerOfTwo checks that a value is a power of two within [min, max].
func powerOfTwo(ve *ValidationErrors, path string, value, min, max int) {
	if value < min || value > max || value&(value-1) != 0 {
		ve.AddWithValue(path, fmt.Sprintf("value %d must be a power of two", value), value,
			fmt.Sprintf("power of two between %d and %d", min, max))
	}
}

// powerOfTwoOrZero allows zero (feature disabled) in addition to powers of two.
func powerOfTwoOrZero(ve *ValidationErrors, path string, value, max int) {
	if value == 0 {
		return
	}
	if value < 0 || value > max || value&(value-1) != 0 {
		ve.AddWithValue(path, fmt.Sprintf("value %d must be zero or a power of two", value), value,
			fmt.Sprintf("0 or power of two up to %d", max))
	}
}
