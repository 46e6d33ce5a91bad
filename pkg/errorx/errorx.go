// Package errorx provides business errors carrying an application error code.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error with a business error code attached.
// It implements the error interface, supports wrapping an underlying cause,
// and is recognized by errors.Is/errors.As.
type CodeError struct {
	Code  int    // business error code
	Msg   string // user-facing message
	cause error  // wrapped underlying error
}

// Error implements the standard error interface.
// When a cause is present the format is "message: cause", otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap supports errors.Is/errors.As traversal into the wrapped cause.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with the given code and message.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a code and message to an underlying error.
// Usage: errorx.Wrap(err, CodeDBError, "query room")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf attaches a code and a formatted message to an underlying error.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error,
// falling back to CodeServerBusy for unknown error types.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business error codes.
const (
	CodeSuccess      = 1000 // success
	CodeInvalidParam = 1001 // malformed or invalid request parameters
	CodeUserExist    = 1002 // username already taken
	CodeUserNotExist = 1003 // user does not exist
	CodeWrongLogin   = 1004 // wrong username or password
	CodeServerBusy   = 1005 // unexpected internal failure
	CodeUnauthorized = 1006 // missing or invalid credentials
	CodeNotFound     = 1008 // resource missing or caller lacks access
	CodeForbidden    = 1009 // caller lacks owner rank or post permission
	CodeDBError      = 1010 // database error
	CodeCacheError   = 1011 // cache error

	CodeDuplicateName    = 1020 // room name already in use
	CodeDuplicateRequest = 1021 // pending join request / invitation already exists
	CodeAlreadyMember    = 1022 // user already a member of the room
	CodeUserRoomLimit    = 1023 // per-user room cap reached
	CodeRoomFull         = 1024 // per-room member cap reached
	CodeOwnerRequired    = 1025 // sole owner leaving without a valid replacement
	CodeLastOwner        = 1026 // sole owner demoting themselves
)

// Predefined error instances. Suitable both for direct return
// and for errors.Is comparison in tests.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "server busy, please try again later")
)

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == code
}
