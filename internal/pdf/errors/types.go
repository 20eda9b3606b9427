package errors

import (
	stderrors "errors"
	"fmt"
)

// TabOrderError is the error returned by every stage of a tab-order run. The Type
// decides how the front ends report it and which exit status they use.
type TabOrderError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	Tool    string    `json:"tool,omitempty"`
	Stderr  string    `json:"stderr,omitempty"`
	Err     error     `json:"-"`
}

// ErrorType represents the categories of failures a run can end with
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeUsage
	ErrorTypeInputNotFound
	ErrorTypeExternalTool
	ErrorTypeInvalidInput
)

// Error implements the error interface
func (e *TabOrderError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *TabOrderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a TabOrderError of the same Type, so sentinel values
// such as ErrInputNotFound work with errors.Is.
func (e *TabOrderError) Is(target error) bool {
	t, ok := target.(*TabOrderError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == ""
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeUsage:
		return "USAGE"
	case ErrorTypeInputNotFound:
		return "INPUT_NOT_FOUND"
	case ErrorTypeExternalTool:
		return "EXTERNAL_TOOL"
	case ErrorTypeInvalidInput:
		return "INVALID_INPUT"
	default:
		return "UNKNOWN"
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrUsage         = &TabOrderError{Type: ErrorTypeUsage}
	ErrInputNotFound = &TabOrderError{Type: ErrorTypeInputNotFound}
	ErrExternalTool  = &TabOrderError{Type: ErrorTypeExternalTool}
	ErrInvalidInput  = &TabOrderError{Type: ErrorTypeInvalidInput}
)

// NewUsageError reports a wrong command line
func NewUsageError(message string) *TabOrderError {
	return &TabOrderError{
		Type:    ErrorTypeUsage,
		Message: message,
	}
}

// NewInputNotFoundError reports an input path that does not resolve to a file
func NewInputNotFoundError(path string, err error) *TabOrderError {
	return &TabOrderError{
		Type:    ErrorTypeInputNotFound,
		Message: "file not found",
		Path:    path,
		Err:     err,
	}
}

// NewInvalidInputError reports an input that exists but cannot be processed
func NewInvalidInputError(path, message string, err error) *TabOrderError {
	return &TabOrderError{
		Type:    ErrorTypeInvalidInput,
		Message: message,
		Path:    path,
		Err:     err,
	}
}

// NewExternalToolError reports a normalization tool that is missing or exited non-zero
func NewExternalToolError(tool, path string, err error, stderr string) *TabOrderError {
	return &TabOrderError{
		Type:    ErrorTypeExternalTool,
		Message: fmt.Sprintf("%s failed", tool),
		Path:    path,
		Tool:    tool,
		Stderr:  stderr,
		Err:     err,
	}
}

// IsType reports whether err, or anything it wraps, is a TabOrderError of type et
func IsType(err error, et ErrorType) bool {
	var te *TabOrderError
	if stderrors.As(err, &te) {
		return te.Type == et
	}
	return false
}

// ExitCode maps an error to a process exit status. nil maps to 0; every failure,
// typed or not, ends the run with status 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
