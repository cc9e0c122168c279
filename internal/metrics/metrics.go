package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes reported through EmployeeOperations.
const (
	OutcomeSuccess       = "success"
	OutcomeAlreadyExists = "already_exists"
	OutcomeNotFound      = "not_found"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters and a histogram for HTTP traffic, a counter for employee
// lifecycle outcomes and a histogram for database query latency.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EmployeeOperations  *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EmployeeOperations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_employee_operations_total",
			Help: "Total number of employee lifecycle operations by outcome.",
		}, []string{"operation", "outcome"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'find_employee_by_id', 'save_employee'
	}

	for _, op := range []string{"create", "update"} {
		metrics.EmployeeOperations.WithLabelValues(op, OutcomeSuccess)
		metrics.EmployeeOperations.WithLabelValues(op, OutcomeError)
	}

	return metrics
}
