package employees

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// ValidateEmployee checks the required attributes of an employee.
// It returns an error wrapping ErrInvalidEmployee for the first failing field.
func ValidateEmployee(employee models.Employee) error {
	if strings.TrimSpace(employee.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidEmployee)
	}

	if strings.TrimSpace(employee.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidEmployee)
	}

	if strings.TrimSpace(employee.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidEmployee)
	}

	if !isValidEmail(employee.Email) {
		return fmt.Errorf("%w: email '%s' is not a valid address", ErrInvalidEmployee, employee.Email)
	}

	return nil
}

// isValidEmail checks if the given email address is a bare, valid address.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
