package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Storage errors.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageCorrupt     = errors.New("storage corrupt")
)

// Entity errors.
var (
	ErrNotFound      = errors.New("achievement not found")
	ErrInvalidID     = errors.New("invalid achievement ID")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidCat    = errors.New("invalid category")
	ErrInvalidFilter = errors.New("invalid filter")
)

// FetchError reports a failed read of the achievement list.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetch achievements: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// PersistError reports a failed write. Op is one of "create", "update",
// "delete".
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %s", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ValidationError carries per-field messages. It only blocks the submission
// that produced it.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records msg for field, keeping the first message per field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty reports whether no field has an error.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Field returns the message for field, or "" if the field is valid.
func (e *ValidationError) Field(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
