package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
)

// ProblemType identifies every error body served by this API.
const ProblemType = "/api/v1/common-errors"

// Problem is an RFC 7807 problem detail carrying the time the error was produced.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Date     string `json:"date"`
}

// respondError translates lifecycle and store errors into problem responses.
func (api *EmployeesAPI) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, employees.ErrAlreadyExists):
		api.respondProblem(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, employees.ErrNotFound):
		api.respondProblem(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, employees.ErrInvalidEmployee):
		api.respondProblem(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrConstraintViolation):
		api.log.WarnContext(r.Context(), "write rejected by database constraint", sl.Err(err))
		api.respondProblem(w, r, http.StatusBadRequest, "employee violates a data integrity constraint")
	default:
		api.log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), sl.Err(err))
		api.respondProblem(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func (api *EmployeesAPI) respondProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := Problem{
		Type:     ProblemType,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
		Date:     api.now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		api.log.ErrorContext(r.Context(), "Failed to write problem response", sl.Err(err))
	}
}
