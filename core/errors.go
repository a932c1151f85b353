package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrEmptyResult          = errors.New("empty result")
	ErrValidation           = errors.New("validation failed")
	ErrUniqueness           = errors.New("uniqueness violation")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrIllegalState         = errors.New("illegal state transition")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// Error is a business-rule failure: a kind, the operation that failed and a human readable message.
type Error struct {
	Kind    error
	Op      string // eg. "GroupService.Delete"
	Message string
	Fields  []FieldError
}

func NewError(kind error, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError returns an ErrValidation error.
// The message is taken from err when provided, otherwise from the first field error.
func NewValidationError(err error, flds ...FieldError) error {
	e := &Error{Kind: ErrValidation, Fields: flds}
	switch {
	case err != nil:
		e.Message = err.Error()
	case len(flds) > 0:
		e.Message = flds[0].Field + ": " + flds[0].Error
	default:
		e.Message = ErrValidation.Error()
	}
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// KindOf returns the kind of err, or nil if err is not a business-rule failure.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
