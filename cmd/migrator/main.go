package main

import (
	"context"
	"log"
	"os"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

const defaultMigrationsDir = "migrations"

func main() {
	cfg := config.MustLoad()

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = defaultMigrationsDir
	}

	dbpool, dbErr := repository.NewDatabase(context.Background(), cfg.Postgres)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal(err)
	}

	if migrationErr := goose.Up(dtb, migrationsDir); migrationErr != nil {
		log.Fatal(migrationErr)
	}

	log.Println("Migrations applied successfully")
}
