package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Render call errors
	ErrMultiFigure     = &Error{Code: "MULTI_FIGURE", Message: "multi-figure output is not supported, figure count must be 1"}
	ErrBackendOverride = &Error{Code: "BACKEND_OVERRIDE", Message: "alternate rendering backends are not supported"}
	ErrPlotMode        = &Error{Code: "PLOT_MODE", Message: "unsupported plot mode"}

	// Scheme/config errors
	ErrSchemeInvalid = &Error{Code: "SCHEME_INVALID", Message: "scheme configuration invalid"}
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}

	// Plot graph errors
	ErrMasterCycle   = &Error{Code: "MASTER_CYCLE", Message: "plot master chain exceeds depth bound, configuration cycle suspected"}
	ErrMasterUnknown = &Error{Code: "MASTER_UNKNOWN", Message: "plot master reference points to an unknown object"}

	// Output errors
	ErrDocumentWrite = &Error{Code: "DOCUMENT_WRITE", Message: "writing output document failed"}
	ErrArchiveFailed = &Error{Code: "ARCHIVE_FAILED", Message: "archiving output document failed"}
)
