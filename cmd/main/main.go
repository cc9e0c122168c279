package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/api"
	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := sl.New(cfg.Env, os.Stdout)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dbpool, err := repository.NewDatabase(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()

	employeeRepo := repository.NewEmployeeRepository(dbpool, appMetrics)
	staff := employees.NewStaff(logger, employeeRepo, appMetrics)
	employeesAPI := api.NewEmployeesAPI(logger, staff)

	router := server.NewRouter(logger, reg, appMetrics, dbpool, employeesAPI, cfg.HTTPServer.AllowedOrigins)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "env", cfg.Env)

	if err = server.Run(ctx, logger, cfg.HTTPServer, router); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", sl.Err(err))
		return
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")
}
