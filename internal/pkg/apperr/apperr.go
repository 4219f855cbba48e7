// Package apperr defines the failure kinds shared by every module.
//
// Modules declare their own errors on top of these kinds, for example
//
//	ErrDesignNotFound = apperr.New(apperr.ErrNotFound, "DESIGN_NOT_FOUND", "design not found")
//
// and errors.Is(ErrDesignNotFound, apperr.ErrNotFound) holds.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
)

type Error struct {
	Kind    error
	Code    string
	Message string
	Fields  map[string]string
}

func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// Is lets copies made by WithFields match the error they were derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Code == e.Code && t.Message == e.Message
}

// WithFields returns a copy carrying per-field details.
func (e *Error) WithFields(fields map[string]string) *Error {
	cp := *e
	cp.Fields = fields
	return &cp
}

// Validation builds an ad-hoc validation error for a single field.
func Validation(field, message string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// As extracts the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
