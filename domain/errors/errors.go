// Package errors provides the host-side error types of the module.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// Nothing in this package is reported to a guest through the numeric result
// channel: host-reported failures are booleans and magnitudes. These errors
// describe guest misuse the host can detect, configuration problems and
// module linking problems.
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds marks a span or descriptor outside guest linear memory.
	ErrOutOfBounds = stdErrors.New("out of bounds")

	// ErrBufferTooLarge marks a span longer than the configured maximum.
	ErrBufferTooLarge = stdErrors.New("buffer too large")

	// ErrNoMemory marks a calling module that defines no linear memory.
	ErrNoMemory = stdErrors.New("module has no memory")

	// ErrNoHost marks a host call made without a host bound to the call.
	ErrNoHost = stdErrors.New("no host bound to call")
)

// MemoryError describes a guest memory access the host refused to perform.
type MemoryError struct {
	Err       error
	Function  string // host function being served
	Operation string // "descriptor", "read", "write"
	Offset    uint64
	Length    uint64
}

func (e *MemoryError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s: %s at offset=%d length=%d: %v", e.Function, e.Operation, e.Offset, e.Length, e.Err)
	}
	return fmt.Sprintf("%s at offset=%d length=%d: %v", e.Operation, e.Offset, e.Length, e.Err)
}

func (e *MemoryError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ImportError reports guest imports the host does not provide.
type ImportError struct {
	Module  string
	Missing []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("guest imports unknown %s functions: %s", e.Module, strings.Join(e.Missing, ", "))
}
