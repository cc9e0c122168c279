package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request through slog.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			defer func() {
				log.InfoContext(r.Context(), "request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", statusOf(ww)),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", time.Since(startTime).String()),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// instrument records request counts and latencies labelled by chi route pattern,
// so that /employees/1 and /employees/2 share a series.
func instrument(appMetrics *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			appMetrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww))).Inc()
			appMetrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(startTime).Seconds())
		})
	}
}

func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
