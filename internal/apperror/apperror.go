// Package apperror defines the domain error kinds shared by the
// repositories and the HTTP layer. Repository methods return exactly
// one of these kinds: unexpected failures are wrapped as StorageError
// at the repository boundary so raw I/O errors never escape.
package apperror

import (
	"fmt"
	"strings"
)

// ValidationError reports bad or missing input fields. Recoverable:
// the caller should correct the payload and retry.
type ValidationError struct {
	// Fields names the offending field(s), when known.
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError for the given fields.
func NewValidation(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// NewValidationf builds a ValidationError with a formatted message.
func NewValidationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: []string{field}, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup by id that matched nothing.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity and id.
func NewNotFound(entity string, id int) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ScheduleConflictError is a business-rule rejection carrying one
// human-readable description per colliding schedule pair.
type ScheduleConflictError struct {
	Conflicts []string
}

func (e *ScheduleConflictError) Error() string {
	return "schedule conflicts detected:\n" + strings.Join(e.Conflicts, "\n")
}

// NewScheduleConflict builds a ScheduleConflictError from the
// collected conflict descriptions.
func NewScheduleConflict(conflicts []string) *ScheduleConflictError {
	return &ScheduleConflictError{Conflicts: conflicts}
}

// StorageError reports an I/O or JSON corruption failure. Fatal to the
// operation but not to the process; the caller may retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorage wraps err as a StorageError for operation op.
func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
