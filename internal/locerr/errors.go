// Package locerr defines the typed errors surfaced by the locator. Every
// failure carries a stable code so callers can branch on the kind of failure
// without parsing messages.
package locerr

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a kind of locator failure.
type Code string

const (
	CodeInvalidServiceMap    Code = "E_LOCATOR_INVALID_SERVICE_MAP"
	CodeInvalidServiceConfig Code = "E_LOCATOR_INVALID_SERVICE_CONFIG"
	CodeInvalidPath          Code = "E_LOCATOR_INVALID_PATH"
	CodeServiceUnresolvable  Code = "E_LOCATOR_SERVICE_UNRESOLVABLE"
	CodeUnknownLocator       Code = "E_LOCATOR_UNKNOWN_LOCATOR"
	CodeLocate               Code = "E_LOCATOR_LOCATE"
	CodeLazyLoad             Code = "E_LOCATOR_LAZYLOAD"
	CodeEagerLoad            Code = "E_LOCATOR_EAGERLOAD"
	CodeDelete               Code = "E_LOCATOR_DELETE"
	CodeDestroyService       Code = "E_LOCATOR_DESTROY_SERVICE"
	CodeDestroy              Code = "E_LOCATOR_DESTROY"
)

// Error is a locator failure with a stable code and zero or more causes.
type Error struct {
	Code    Code
	Message string
	Causes  []error
}

// New creates an Error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error carrying a single underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Causes: []error{cause}}
}

// Aggregate creates an Error carrying the full set of collected causes.
func Aggregate(code Code, causes []error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Causes: causes}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, cause := range e.Causes {
		b.WriteString("\n- ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// Unwrap exposes the causes to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return e.Causes
}

// Is matches any *Error with the same code, so sentinels like
// locerr.New(locerr.CodeLocate, "") work as errors.Is targets.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// HasCode reports whether err is, or wraps, a locator error with the code.
func HasCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// CodeOf returns the code of the outermost locator error in err's chain,
// or the empty Code when err carries none.
func CodeOf(err error) Code {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Code
	}
	return Code("")
}
