// Package errors provides custom error types for the helpman system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the helpman system
var (
	// ErrBinaryNotFound indicates that the target binary could not be located
	ErrBinaryNotFound = errors.New("binary not found")

	// ErrTimeout indicates that a help invocation did not produce output in time
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that a generation run was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrMissingUsage indicates help text with no usage line, the one hard
	// requirement of the parser
	ErrMissingUsage = errors.New("missing usage line")

	// ErrInvalidSection indicates a manual section number outside 1-8
	ErrInvalidSection = errors.New("invalid manual section")

	// ErrNoHelpOutput indicates the binary produced no help text at all
	ErrNoHelpOutput = errors.New("no help output")
)

// InvocationError represents a failure to run the target binary for one
// command path and capture its help output.
type InvocationError struct {
	Path     []string // command path, binary first
	ExitCode int
	Err      error
}

// Error implements the error interface
func (e *InvocationError) Error() string {
	cmd := strings.Join(e.Path, " ")
	if e.ExitCode != 0 {
		return fmt.Sprintf("invoking %q failed (exit %d): %v", cmd, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("invoking %q failed: %v", cmd, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// NewInvocationError creates a new InvocationError
func NewInvocationError(path []string, exitCode int, err error) *InvocationError {
	return &InvocationError{Path: path, ExitCode: exitCode, Err: err}
}

// ParseError represents a failure to classify captured help text
type ParseError struct {
	Path    []string // command path the text came from
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("parsing help for %q: %s", strings.Join(e.Path, " "), e.Message)
	}
	return fmt.Sprintf("parsing help text: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(path []string, message string, err error) *ParseError {
	return &ParseError{Path: path, Message: message, Err: err}
}

// SectionError represents an out-of-range manual section number
type SectionError struct {
	Section int
}

// Error implements the error interface
func (e *SectionError) Error() string {
	return fmt.Sprintf("manual section %d out of range (1-8)", e.Section)
}

// Is implements errors.Is support
func (e *SectionError) Is(target error) bool {
	return target == ErrInvalidSection
}

// NewSectionError creates a new SectionError
func NewSectionError(section int) *SectionError {
	return &SectionError{Section: section}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// Helper wrapping functions for common patterns

// WrapInvoke wraps an error as an InvocationError
func WrapInvoke(path []string, exitCode int, err error) error {
	if err == nil {
		return nil
	}
	return NewInvocationError(path, exitCode, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(path []string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(path, err.Error(), err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
