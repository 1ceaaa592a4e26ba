package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorageUnavailable is returned when the store file cannot be opened.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrConstraintViolation is returned when an insert clashes with a unique key.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNoFieldsToUpdate is returned for a partial update that supplies no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrRestoreFailed is returned for archive I/O or extraction failures.
	ErrRestoreFailed = errors.New("restore failed")
	// ErrInvalidField is returned when a supplied value breaks a field invariant.
	ErrInvalidField = errors.New("invalid field")
	// ErrConfigIDImmutable is returned when an update tries to move the configuration row.
	ErrConfigIDImmutable = errors.New("configuration id is immutable")
	// ErrNotFound is only returned by single-row reads. Updates and deletes of a
	// missing id succeed silently.
	ErrNotFound = errors.New("not found")
)

// IsConstraintError reports whether err comes from a SQLite constraint failure.
func IsConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// IsUnavailableError reports whether err means the database file could not be used.
func IsUnavailableError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrCantOpen ||
		sqliteErr.Code == sqlite3.ErrPerm ||
		sqliteErr.Code == sqlite3.ErrReadonly ||
		sqliteErr.Code == sqlite3.ErrNotADB
}

func classify(err error, op string) error {
	switch {
	case errors.Is(err, ErrStorageUnavailable):
		return err
	case IsConstraintError(err):
		return fmt.Errorf("%w: failed to execute %s: %v", ErrConstraintViolation, op, err)
	case IsUnavailableError(err):
		return fmt.Errorf("%w: failed to execute %s: %v", ErrStorageUnavailable, op, err)
	default:
		return fmt.Errorf("failed to execute %s: %w", op, err)
	}
}
