// Package gen generates Go table bindings from YAML schema documents.
package gen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("tusk: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("tusk: code generation failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("tusk: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("tusk: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// GenerateError wraps a failure while emitting one generated file.
type GenerateError struct {
	Table string
	File  string
	Cause error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return fmt.Sprintf("tusk: generate %s (table %q): %v", e.File, e.Table, e.Cause)
}

// Unwrap returns the underlying error.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerateError.
func (e *GenerateError) Is(target error) bool {
	return target == ErrGenerationFailed
}
