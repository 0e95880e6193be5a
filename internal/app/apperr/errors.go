package apperr

import (
	"errors"
	"fmt"
)

// Sentinels of the error taxonomy. Typed errors below report themselves as one of these
// through Is, so callers only ever need errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrPermission        = errors.New("permission denied")
	ErrAlreadySigned     = errors.New("term already signed")
	ErrNotSignable       = errors.New("term can no longer be signed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrRender            = errors.New("render failed")
	ErrStorage           = errors.New("artifact storage failure")
	ErrDuplicateSerial   = errors.New("serial number already registered")
	ErrDuplicateLogin    = errors.New("login already taken")
)

// ValidationError names the first required field that was missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q is required", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Required(field string) error {
	return &ValidationError{Field: field}
}

// RenderError is returned when both rendering strategies are exhausted.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRender }

// StorageError wraps a failure of the artifact backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
