package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// EmployeeService is the lifecycle contract the handlers depend on.
type EmployeeService interface {
	Create(ctx context.Context, employee models.Employee) (models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, identifier int64) (models.Employee, bool, error)
	Update(ctx context.Context, identifier int64, newData models.Employee) (models.Employee, error)
	DeleteByID(ctx context.Context, identifier int64) error
}

// EmployeesAPI provides HTTP handlers for employee records.
type EmployeesAPI struct {
	log     *slog.Logger
	service EmployeeService
	now     func() time.Time
}

// NewEmployeesAPI creates a new employees API handler.
func NewEmployeesAPI(log *slog.Logger, service EmployeeService) *EmployeesAPI {
	return &EmployeesAPI{
		log:     log.With(slog.String("division", "api")),
		service: service,
		now:     time.Now,
	}
}

// RegisterRoutes registers employee routes.
func (api *EmployeesAPI) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", api.HandleListEmployees)
		r.Post("/", api.HandleCreateEmployee)
		r.Get("/{id}", api.HandleGetEmployee)
		r.Put("/{id}", api.HandleUpdateEmployee)
		r.Delete("/{id}", api.HandleDeleteEmployee)
	})
}

// HandleCreateEmployee stores a new employee.
// POST /api/v1/employees
func (api *EmployeesAPI) HandleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	employee, ok := api.decodeEmployee(w, r)
	if !ok {
		return
	}
	// identifiers are assigned by the store
	employee.ID = 0

	created, err := api.service.Create(r.Context(), employee)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), created.ID))
	respondJSON(w, http.StatusCreated, created)
}

// HandleListEmployees returns every employee.
// GET /api/v1/employees
func (api *EmployeesAPI) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	all, err := api.service.List(r.Context())
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	if all == nil {
		all = []models.Employee{}
	}

	respondJSON(w, http.StatusOK, all)
}

// HandleGetEmployee returns a single employee.
// GET /api/v1/employees/{id}
func (api *EmployeesAPI) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	identifier, ok := api.parseID(w, r)
	if !ok {
		return
	}

	employee, found := api.lookup(w, r, identifier)
	if !found {
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

// HandleUpdateEmployee replaces the employee stored under the path id.
// PUT /api/v1/employees/{id}
func (api *EmployeesAPI) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	identifier, ok := api.parseID(w, r)
	if !ok {
		return
	}

	employee, ok := api.decodeEmployee(w, r)
	if !ok {
		return
	}

	if _, found := api.lookup(w, r, identifier); !found {
		return
	}

	// the lifecycle service persists the payload as given; pin it to the path id for an in-place update
	employee.ID = identifier

	updated, err := api.service.Update(r.Context(), identifier, employee)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// HandleDeleteEmployee removes the employee stored under the path id.
// DELETE /api/v1/employees/{id}
func (api *EmployeesAPI) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	identifier, ok := api.parseID(w, r)
	if !ok {
		return
	}

	if _, found := api.lookup(w, r, identifier); !found {
		return
	}

	if err := api.service.DeleteByID(r.Context(), identifier); err != nil {
		api.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}

// lookup fetches the employee and writes the 404 or error response itself when it returns false.
func (api *EmployeesAPI) lookup(w http.ResponseWriter, r *http.Request, identifier int64) (models.Employee, bool) {
	employee, found, err := api.service.GetByID(r.Context(), identifier)
	if err != nil {
		api.respondError(w, r, err)
		return models.Employee{}, false
	}

	if !found {
		api.respondError(w, r, &employees.NotFoundError{ID: identifier})
		return models.Employee{}, false
	}

	return employee, true
}

func (api *EmployeesAPI) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	// numeric ids that were never assigned (0, negatives) reach the lookup and answer 404
	identifier, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		api.respondProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid employee id: '%s'", raw))
		return 0, false
	}

	return identifier, true
}

func (api *EmployeesAPI) decodeEmployee(w http.ResponseWriter, r *http.Request) (models.Employee, bool) {
	var employee models.Employee

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&employee); err != nil {
		api.respondProblem(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return models.Employee{}, false
	}

	return employee, true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
