// Package errorx provides coded errors for the service layer.
// A CodeError carries a stable status category alongside the user-facing
// message; handlers map the code to the JSON envelope, the wrapped cause
// stays in the logs only.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error with a business status code.
// It supports %w-style wrapping and is recognised by errors.Is/errors.As.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with the given code and message.
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode extracts the business code, falling back to CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business status codes. Codes group into the error taxonomy surfaced to
// clients: validation (1001), conflict (1009), forbidden (1007),
// not-found (1008); everything else is internal.
const (
	CodeSuccess         = 1000
	CodeInvalidParam    = 1001
	CodeUserExist       = 1002
	CodeUserNotExist    = 1003
	CodeInvalidPassword = 1004
	CodeServerBusy      = 1005
	CodeUnauthorized    = 1006
	CodeForbidden       = 1007
	CodeNotFound        = 1008
	CodeConflict        = 1009
	CodeDBError         = 1010
	CodeCacheError      = 1011
)

// Predefined instances, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "server busy, please retry later")
)

// IsNotFound reports whether err carries the not-found code. The dao
// layer wraps gorm.ErrRecordNotFound into CodeNotFound before it
// escapes, so callers only ever see the coded form.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == code
}
