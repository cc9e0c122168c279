// Package employees implements the employee lifecycle: uniqueness of email on create,
// existence checks on update, and plain pass-through reads and deletes.
//
// Create and Update read before they write without a surrounding transaction, so two
// concurrent callers using the same email (or id) can both pass the check. The UNIQUE
// constraint on tbl_employees.email is the only guard against duplicate inserts in that
// window; its violation surfaces as repository.ErrConstraintViolation.
//
// DeleteByID does not check existence. Deleting an absent id is a silent no-op; callers
// that need a not-found answer must call GetByID first.
package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// Create stores a new employee after making sure no stored employee already uses its email.
// On a conflict it returns *AlreadyExistsError and writes nothing.
func (s *Staff) Create(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	if err := ValidateEmployee(employee); err != nil {
		s.record("create", metrics.OutcomeInvalid)
		return models.Employee{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, employee.Email)
	switch {
	case err == nil:
		log.InfoContext(ctx, "employee email is already taken", "email", employee.Email, "id", existing.ID)
		s.record("create", metrics.OutcomeAlreadyExists)
		return models.Employee{}, &AlreadyExistsError{Email: employee.Email}
	case !errors.Is(err, repository.ErrNotFound):
		s.record("create", metrics.OutcomeError)
		return models.Employee{}, fmt.Errorf("failed to check employee email: %w", err)
	}

	saved, err := s.repo.Save(ctx, employee)
	if err != nil {
		s.record("create", metrics.OutcomeError)
		return models.Employee{}, fmt.Errorf("failed to save new employee %s: %w", employee.Email, err)
	}

	log.DebugContext(ctx, "employee created", "id", saved.ID)
	s.record("create", metrics.OutcomeSuccess)

	return saved, nil
}

// List returns all stored employees in store order.
func (s *Staff) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetByID returns the employee with the given id. A missing employee is reported
// through found=false, not through the error.
func (s *Staff) GetByID(ctx context.Context, identifier int64) (models.Employee, bool, error) {
	employee, err := s.repo.FindByID(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Employee{}, false, nil
	}
	if err != nil {
		return models.Employee{}, false, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, true, nil
}

// Update replaces the employee stored under identifier with newData.
// It returns *NotFoundError when identifier is unknown, before newData is validated.
// newData is persisted as given: its own ID decides which row the store writes, so callers wanting an in-place update
// must set newData.ID to identifier.
func (s *Staff) Update(ctx context.Context, identifier int64, newData models.Employee) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	if _, err := s.repo.FindByID(ctx, identifier); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.record("update", metrics.OutcomeNotFound)
			return models.Employee{}, &NotFoundError{ID: identifier}
		}
		s.record("update", metrics.OutcomeError)
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	if err := ValidateEmployee(newData); err != nil {
		s.record("update", metrics.OutcomeInvalid)
		return models.Employee{}, err
	}

	if newData.ID != identifier {
		log.WarnContext(ctx, "update payload targets a different id than the one checked",
			"checked_id", identifier, "payload_id", newData.ID)
	}

	updated, err := s.repo.Save(ctx, newData)
	if err != nil {
		log.ErrorContext(ctx, "failed to persist employee update", sl.Err(err))
		s.record("update", metrics.OutcomeError)
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}

	s.record("update", metrics.OutcomeSuccess)

	return updated, nil
}

// DeleteByID removes the employee with the given id. It does not check that the employee exists.
func (s *Staff) DeleteByID(ctx context.Context, identifier int64) error {
	if err := s.repo.DeleteByID(ctx, identifier); err != nil {
		s.record("delete", metrics.OutcomeError)
		return fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	s.record("delete", metrics.OutcomeSuccess)

	return nil
}

func (s *Staff) record(operation, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.EmployeeOperations.WithLabelValues(operation, outcome).Inc()
}
