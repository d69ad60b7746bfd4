package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID       = errors.New("id must be a positive integer")
	ErrInputRequired   = errors.New("input is required")
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("unique field value already exists")
	ErrValidation      = errors.New("validation failed")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

// FieldError names one attribute that failed validation and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries every field that failed validation.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
