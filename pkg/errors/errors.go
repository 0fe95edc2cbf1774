// Package errors provides coded errors for pixelgrid.
//
// The grid engine (units, geometry, background, placement) never fails:
// malformed input degrades to documented sentinels. Failures only come from
// the layers around it (storage, message delivery, the browser and user
// input), and each carries a [Code] that the CLI and the HTTP API act on.
//
// # Codes
//
// Codes are grouped by prefix:
//   - INVALID_*: the caller sent something unusable; retrying will not help
//   - NOT_FOUND: a file or record is missing
//   - STORAGE_UNAVAILABLE, NETWORK_ERROR, TIMEOUT: transient backend trouble
//   - INTERNAL_ERROR, UNSUPPORTED: bugs and missing features
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidUnit, "baseLine: %q is not a length", v)
//	if errors.Is(err, errors.ErrCodeInvalidUnit, errors.ErrCodeInvalidSettings) {
//	    // reject the edit
//	}
//
//	err = errors.Wrap(errors.ErrCodeStorageUnavailable, cause, "load settings")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUnit     Code = "INVALID_UNIT"
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidViewport Code = "INVALID_VIEWPORT"
	ErrCodeInvalidURL      Code = "INVALID_URL"
	ErrCodeInvalidKey      Code = "INVALID_KEY"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	ErrCodeNetwork            Code = "NETWORK_ERROR"
	ErrCodeTimeout            Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Invalid reports whether c is one of the INVALID_* codes.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Transient reports whether an operation failing with c may succeed later.
func (c Code) Transient() bool {
	switch c {
	case ErrCodeStorageUnavailable, ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets the standard errors.Is match any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has one of codes.
func Is(err error, codes ...Code) bool {
	got := GetCode(err)
	if got == "" {
		return false
	}
	for _, c := range codes {
		if c == got {
			return true
		}
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, or err.Error()
// for uncoded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	return GetCode(err).Invalid()
}

// IsTransient reports whether err carries a code worth retrying.
func IsTransient(err error) bool {
	return GetCode(err).Transient()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
