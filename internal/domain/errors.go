package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrInvalidCode   = errors.New("invalid code")
	ErrInvalidIndex  = errors.New("invalid index")
	ErrDuplicateCode = errors.New("duplicate code")
	ErrNotFound      = errors.New("not found")
	ErrNameCollision = errors.New("name collision")
	ErrStaleRecord   = errors.New("stale record")
	ErrCorruptData   = errors.New("corrupt data")
	ErrIO            = errors.New("i/o failure")
	ErrValidation    = errors.New("validation failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidCodeError is returned when a registry code is empty or not alphanumeric
type InvalidCodeError struct {
	Code string
}

func (e *InvalidCodeError) Error() string {
	if e.Code == "" {
		return "invalid code: code is required"
	}
	return fmt.Sprintf("invalid code %q: only letters and digits are allowed", e.Code)
}

func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

// InvalidIndexError is returned when a file index is not alphanumeric
type InvalidIndexError struct {
	Index string
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %q: only letters and digits are allowed", e.Index)
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// DuplicateCodeError is returned when a code already exists in the registry
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("code %q already exists", e.Code)
}

func (e *DuplicateCodeError) Is(target error) bool {
	return target == ErrDuplicateCode
}

// NotFoundError is returned when a code, document, directory or file is absent
type NotFoundError struct {
	Kind string // "code", "registry", "file", "snapshot"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NameCollisionError is returned when a rename target is already taken
type NameCollisionError struct {
	Path string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("a file named %q already exists", e.Path)
}

func (e *NameCollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// StaleRecordError is returned when in-memory state no longer matches disk.
// The caller must reload before retrying.
type StaleRecordError struct {
	Path   string
	Reason string
}

func (e *StaleRecordError) Error() string {
	return fmt.Sprintf("stale record %s: %s", e.Path, e.Reason)
}

func (e *StaleRecordError) Is(target error) bool {
	return target == ErrStaleRecord
}

// CorruptDataError is returned when the registry document cannot be parsed
type CorruptDataError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt registry %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt registry %s: %s", e.Path, e.Reason)
}

func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// IOError wraps a filesystem access failure
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}
