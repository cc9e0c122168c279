package repository

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when the database rejects a write because of an
	// integrity constraint (unique, not null, check).
	ErrConstraintViolation = errors.New("integrity constraint violation")
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	FindByID(ctx context.Context, identifier int64) (models.Employee, error)
	FindByEmail(ctx context.Context, email string) (models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	Save(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteByID(ctx context.Context, identifier int64) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}
