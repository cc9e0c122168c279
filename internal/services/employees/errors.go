package employees

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is matched by AlreadyExistsError.
	ErrAlreadyExists = errors.New("employee already exists")
	// ErrNotFound is matched by NotFoundError.
	ErrNotFound = errors.New("employee not found")
	// ErrInvalidEmployee is returned when an employee fails validation.
	ErrInvalidEmployee = errors.New("invalid employee")
)

// AlreadyExistsError reports a create conflict on a duplicate email.
type AlreadyExistsError struct {
	Email string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Employee with given email: %s already exists", e.Email)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// NotFoundError reports a lookup miss by identifier.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Employee with id: %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
