package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the standardized pipeline error carrying a code, a message,
// optional detail lines and the underlying cause
type AppError struct {
	Code    ErrorCode
	Message string
	Details []string
	Cause   error
}

// ErrorOption is a functional option for configuring an AppError
type ErrorOption func(*AppError)

// WithDetails adds detail messages to the error
func WithDetails(details ...string) ErrorOption {
	return func(e *AppError) {
		e.Details = append(e.Details, details...)
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(e *AppError) {
		e.Message = message
	}
}

// WithCause attaches the underlying error
func WithCause(cause error) ErrorOption {
	return func(e *AppError) {
		e.Cause = cause
	}
}

// New creates an AppError with the default message for code
func New(code ErrorCode, opts ...ErrorOption) *AppError {
	e := &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
		Details: []string{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewInvalidInput creates an INPUT_* error with a single detail line
func NewInvalidInput(code ErrorCode, format string, args ...interface{}) *AppError {
	if !IsInputCode(code) {
		code = InputGeneral
	}
	return New(code, WithDetails(fmt.Sprintf(format, args...)))
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError by code so sentinel AppErrors work with errors.Is
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !stderrors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// CodeOf returns the code of the first AppError in err's chain
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// IsInvalidInput reports whether err is an InvalidInputError (any INPUT_* code)
func IsInvalidInput(err error) bool {
	code, ok := CodeOf(err)
	return ok && IsInputCode(code)
}
