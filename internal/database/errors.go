package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorageUnavailable covers a missing, locked, unreadable or schema-less store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrConstraintViolation is returned when a NOT NULL or similar constraint rejects a write.
	ErrConstraintViolation = errors.New("constraint violation")
	ErrBookNotFound        = errors.New("book not found")
)

// StorageError is the single failure type of the access layer.
// Kind is one of ErrStorageUnavailable or ErrConstraintViolation, so callers
// can test with errors.Is against either the kind or the driver error.
type StorageError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Wrap classifies err and attaches the operation name. nil stays nil and an
// existing StorageError is returned unchanged.
func Wrap(op string, err error) error {
	return wrap(op, err)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrConstraintViolation
	}
	return ErrStorageUnavailable
}

// IsConstraintViolation reports whether err was classified as a constraint failure.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// IsStorageUnavailable reports whether err was classified as a store failure.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
