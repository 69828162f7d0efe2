package foxmark

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to user-facing behavior at the
// edges (HTTP status, CLI exit message); internal code branches on them
// with ErrorCode().
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to show to the user.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("foxmark error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available. EINTERNAL is
// returned for non-application errors; an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available. A generic
// message is returned for non-application errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper for constructing an *Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
