package services

import (
	"errors"
	"strings"

	"github.com/kendall-kelly/orders-api/validation"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an id does not resolve to a record
var ErrNotFound = errors.New("record not found")

// ValidationError reports every business rule a command broke
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Errors.Error()
}

// Messages returns the human readable list of broken rules
func (e *ValidationError) Messages() []string {
	return e.Errors.Messages()
}

// ConstraintError is a violation raised by the database itself rather than
// caught by validation, e.g. a unique index hit by a concurrent insert
type ConstraintError struct {
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func invalid(errs validation.Errors) error {
	return &ValidationError{Errors: errs}
}

// translateError maps store errors to the service error kinds
// (works with both PostgreSQL and SQLite)
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &ConstraintError{Message: err.Error(), Err: err}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "foreign key constraint") ||
		strings.Contains(errMsg, "check constraint") {
		return &ConstraintError{Message: err.Error(), Err: err}
	}
	return err
}
