package codec

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredField is returned when a record lacks a field its kind requires.
var ErrMissingRequiredField = errors.New("missing required field")

// ErrUnknownTraceType is returned for trace kinds outside create, call, suicide and reward.
var ErrUnknownTraceType = errors.New("unknown trace type")

// MissingFieldError names the absent field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
