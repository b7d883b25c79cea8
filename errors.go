package beanmorph

import (
	"errors"
	"fmt"
)

var (
	ErrNotStruct       = errors.New("not a struct")
	ErrNilDestination  = errors.New("destination must be a non-nil pointer")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrUnmappedField   = errors.New("unmapped target field")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// MappingError records which operation and field a copy failed on.
type MappingError struct {
	Op    string
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Field, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

func newMappingError(op, field string, err error) *MappingError {
	return &MappingError{Op: op, Field: field, Err: err}
}

type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
