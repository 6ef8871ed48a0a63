// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification in the pipeline and its HTTP adapter.
package errors

import (
	goerrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a previewbuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryInput  ErrorCategory = "input"

	// Build and processing errors
	CategoryWorkspace ErrorCategory = "workspace"
	CategoryBuildTool ErrorCategory = "buildtool"
	CategoryPublish   ErrorCategory = "publish"

	// Side observations and infrastructure errors
	CategoryCleanup  ErrorCategory = "cleanup"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BuildError is a structured error with category, severity, and context
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// AsBuildError extracts a BuildError from an error chain.
func AsBuildError(err error) (*BuildError, bool) {
	var be *BuildError
	if goerrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsCategory reports whether err carries the given classification.
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := AsBuildError(err); ok {
		return be.Category == category
	}
	return false
}
