package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Table and column mapping for models.Employee.
// id is BIGINT GENERATED BY DEFAULT AS IDENTITY, email carries a UNIQUE constraint.
const (
	employeeTable   = "tbl_employees"
	employeeColumns = "id, first_name, last_name, email"
)

const (
	findEmployeeByIDQuery    = `SELECT ` + employeeColumns + ` FROM ` + employeeTable + ` WHERE id = $1`
	findEmployeeByEmailQuery = `SELECT ` + employeeColumns + ` FROM ` + employeeTable + ` WHERE email = $1`
	findAllEmployeesQuery    = `SELECT ` + employeeColumns + ` FROM ` + employeeTable
	insertEmployeeQuery      = `
		INSERT INTO ` + employeeTable + ` (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING ` + employeeColumns
	updateEmployeeQuery = `
		UPDATE ` + employeeTable + `
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1
		RETURNING ` + employeeColumns
	deleteEmployeeByIDQuery = `DELETE FROM ` + employeeTable + ` WHERE id = $1`
)

// integrityViolationClass is the SQLSTATE class for integrity constraint violations.
const integrityViolationClass = "23"

// FindByID retrieves an employee from the database by their ID.
// It returns ErrNotFound when no row matches.
func (r *Repository) FindByID(ctx context.Context, identifier int64) (models.Employee, error) {
	defer r.observe("find_employee_by_id")()

	employee, err := scanEmployee(r.db.QueryRow(ctx, findEmployeeByIDQuery, identifier))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return employee, nil
}

// FindByEmail retrieves an employee from the database by email.
// It returns ErrNotFound when no row matches.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.Employee, error) {
	defer r.observe("find_employee_by_email")()

	employee, err := scanEmployee(r.db.QueryRow(ctx, findEmployeeByEmailQuery, email))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return employee, nil
}

// FindAll returns every stored employee in the order delivered by the database.
// An empty table yields an empty, non-nil slice.
func (r *Repository) FindAll(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("find_all_employees")()

	rows, err := r.db.Query(ctx, findAllEmployeesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// Save inserts the employee when it has no identifier yet, letting the database assign one.
// An employee with an identifier replaces the stored row with that id. When no such row
// exists the employee is inserted and the database assigns a fresh identifier, so explicit
// ids never bypass the identity sequence. The stored row is returned.
func (r *Repository) Save(ctx context.Context, employee models.Employee) (models.Employee, error) {
	defer r.observe("save_employee")()

	if employee.ID != 0 {
		updated, err := scanEmployee(r.db.QueryRow(ctx, updateEmployeeQuery,
			employee.ID, employee.FirstName, employee.LastName, employee.Email))
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return models.Employee{}, fmt.Errorf("failed to save employee: %w", mapWriteError(err))
		}
	}

	saved, err := scanEmployee(r.db.QueryRow(ctx, insertEmployeeQuery,
		employee.FirstName, employee.LastName, employee.Email))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", mapWriteError(err))
	}

	return saved, nil
}

// DeleteByID removes the employee with the given identifier.
// Deleting an absent identifier is not an error.
func (r *Repository) DeleteByID(ctx context.Context, identifier int64) error {
	defer r.observe("delete_employee_by_id")()

	if _, err := r.db.Exec(ctx, deleteEmployeeByIDQuery, identifier); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (r *Repository) observe(queryType string) func() {
	startTime := time.Now()

	return func() {
		if r.metrics == nil {
			return
		}
		r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
	}
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var employee models.Employee

	err := row.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%w: %s: %w", ErrConstraintViolation, pgErr.ConstraintName, err)
	}

	return err
}
