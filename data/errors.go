package data

import (
	"errors"
	"fmt"
)

var (
	NotFoundError = errors.New("not found")
	ErrValidation = errors.New("invalid entity")
	ErrStorage    = errors.New("storage failure")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a backend failure. Op names the repository operation.
type StorageError struct {
	Op  string
	Err error
}

// WrapStorageError returns err untouched when it is nil, NotFoundError, a
// ValidationError or already a StorageError.
func WrapStorageError(op string, err error) error {
	if err == nil || errors.Is(err, NotFoundError) || errors.Is(err, ErrValidation) {
		return err
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
