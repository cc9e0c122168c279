//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("hestia"),
		postgres.WithUsername("hestia"),
		postgres.WithPassword("hestia"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if termErr := container.Terminate(context.Background()); termErr != nil {
			t.Logf("failed to terminate postgres container: %v", termErr)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	dtb := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = dtb.Close() })

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(dtb, "../../migrations"))

	return pool
}

func TestEmployeeRepository_Postgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := t.Context()

	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	jane, err := repo.Save(ctx, models.Employee{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, jane.ID, int64(1))

	byEmail, err := repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, jane, byEmail)

	jane.FirstName = "Janet"
	replaced, err := repo.Save(ctx, jane)
	require.NoError(t, err)
	assert.Equal(t, jane, replaced)

	_, err = repo.Save(ctx, models.Employee{FirstName: "Other", LastName: "Jane", Email: "jane@x.com"})
	require.ErrorIs(t, err, repository.ErrConstraintViolation)

	detached, err := repo.Save(ctx, models.Employee{ID: 999, FirstName: "Detached", LastName: "Row", Email: "detached@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(999), detached.ID)

	fresh, err := repo.Save(ctx, models.Employee{FirstName: "Fresh", LastName: "Row", Email: "fresh@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, detached.ID, fresh.ID)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.DeleteByID(ctx, jane.ID))
	require.NoError(t, repo.DeleteByID(ctx, jane.ID))

	_, err = repo.FindByID(ctx, jane.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmployeeLifecycle_Postgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := t.Context()

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	staff := employees.NewStaff(sl.Discard(), repository.NewEmployeeRepository(pool, appMetrics), appMetrics)

	empA := models.Employee{FirstName: "A", LastName: "One", Email: randomail.GenerateRandomEmail()}
	empB := models.Employee{FirstName: "B", LastName: "Two", Email: "b." + empA.Email}

	createdA, err := staff.Create(ctx, empA)
	require.NoError(t, err)
	_, err = staff.Create(ctx, empB)
	require.NoError(t, err)

	_, err = staff.Create(ctx, models.Employee{FirstName: "C", LastName: "Three", Email: empA.Email})
	require.ErrorIs(t, err, employees.ErrAlreadyExists)

	all, err := staff.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fetched, found, err := staff.GetByID(ctx, createdA.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, empA.Equal(fetched))

	_, err = staff.Update(ctx, createdA.ID+1000, empA)
	require.ErrorIs(t, err, employees.ErrNotFound)

	newData := models.Employee{ID: createdA.ID, FirstName: "Alpha", LastName: "One", Email: empA.Email}
	updated, err := staff.Update(ctx, createdA.ID, newData)
	require.NoError(t, err)
	assert.Equal(t, newData, updated)

	require.NoError(t, staff.DeleteByID(ctx, createdA.ID))
	_, found, err = staff.GetByID(ctx, createdA.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
