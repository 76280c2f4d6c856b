package core

import (
	"errors"
	"fmt"
)

// Row-scoped errors. The batch engine records these per row and continues.
var (
	ErrFieldMissing          = errors.New("required field missing")
	ErrInvalidDate           = errors.New("invalid date")
	ErrClientIdentityMissing = errors.New("client identity missing")
	ErrPersistenceValidation = errors.New("record failed validation")
	ErrDuplicateSerial       = errors.New("duplicate serial")
)

// Batch-scoped errors. These abort before any row is attempted.
var (
	ErrParse        = errors.New("parse error")
	ErrNoActingUser = errors.New("no acting user")
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrImportBusy   = errors.New("too many imports in progress")
)

// Storage errors surfaced by Store implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate value")
)

// FieldError ties an error to the semantic field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v (%q)", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError wraps err with the field it applies to.
func NewFieldError(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}

func persistenceError(field, msg string) error {
	return &FieldError{Field: field, Err: fmt.Errorf("%w: %s", ErrPersistenceValidation, msg)}
}

// ParseError reports why an uploaded payload could not be read.
func ParseError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// errorField extracts the field name from an error chain, if any.
func errorField(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
