// Package errors holds the typed errors of the hostlists pipeline.
//
// Every failure is either bad input (ErrInvalidInput) or a failed write
// (ErrWriteFailed); callers branch on those two with errors.Is and reach
// for the concrete types with errors.As when they need the offenders.
package errors

import (
	"errors"
	"fmt"
)

// New is errors.New, re-exported so callers need a single import.
var New = errors.New

var (
	// ErrInvalidInput marks source files, artifacts or translations that
	// cannot be turned into a registry.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWriteFailed marks a source file or artifact that could not be persisted.
	ErrWriteFailed = errors.New("write failed")
)

// ValidationError names the first field of a service record that is unusable.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid record: " + e.Message
	}
	return e.Field + " " + e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError reports that field holding value fails with message,
// e.g. NewValidationError("rules", nil, "is required").
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError is returned when the CLI configuration cannot be loaded.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	prefix := e.Component
	if prefix == "" {
		prefix = "config"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return prefix + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err with the component it came from.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError is a document (json, yaml) that failed to decode.
// Path is empty when the bytes did not come from a file.
type ParseError struct {
	Format string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decoding %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decoding %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrInvalidInput.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError is a filesystem operation (list, read, write) that failed on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is bad input of any kind.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsWriteFailure reports whether err came from a failed write.
func IsWriteFailure(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

// WrapIO returns nil for a nil err, otherwise an *IOError.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// WrapParse returns nil for a nil err, otherwise a *ParseError.
func WrapParse(format, path string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Path: path, Err: err}
}
