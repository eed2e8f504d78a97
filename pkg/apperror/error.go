package apperror

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Error is the structured error returned by use cases.
type Error struct {
	Code    ErrorCode
	Message string
	// Fields lists individual violations for CodeInvalidInput.
	Fields []FieldError
	cause  error
}

// FieldError is a single validation violation.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) Error() string {
	return f.Field + ": " + f.Message
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Error()
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on code so errors.Is(err, apperror.New(CodeConflict, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code ErrorCode, err error, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

func NotFound(entity, id string) *Error {
	return Newf(CodeNotFound, "%s %s not found", entity, id)
}

func Referential(format string, args ...any) *Error {
	return Newf(CodeReferential, format, args...)
}

func Conflict(msg string) *Error {
	return New(CodeConflict, msg)
}

// Database wraps a repository failure as a PersistenceError.
func Database(err error, op string) *Error {
	return Wrap(CodeDatabase, err, op)
}

// CodeOf returns the code of the first *Error in the chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Violations accumulates field errors for a single validation pass.
type Violations struct {
	err error
}

func (v *Violations) Add(field, msg string) {
	v.err = multierr.Append(v.err, FieldError{Field: field, Message: msg})
}

func (v *Violations) Addf(field, format string, args ...any) {
	v.Add(field, fmt.Sprintf(format, args...))
}

func (v *Violations) Empty() bool { return v.err == nil }

// Err returns nil when nothing was recorded, otherwise a CodeInvalidInput error.
func (v *Violations) Err(msg string) error {
	if v.err == nil {
		return nil
	}
	errs := multierr.Errors(v.err)
	fields := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		var fe FieldError
		if errors.As(e, &fe) {
			fields = append(fields, fe)
		}
	}
	return &Error{Code: CodeInvalidInput, Message: msg, Fields: fields}
}
