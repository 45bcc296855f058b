package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/adfinis/poweradmin-api/migrations"
)

// RunMigrations opens a connection to the database and runs all pending
// migrations. An empty migrationsDir uses the migrations embedded in the
// binary.
func RunMigrations(databaseURL, migrationsDir string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if migrationsDir == "" {
		goose.SetBaseFS(migrations.FS)
		defer goose.SetBaseFS(nil)
		migrationsDir = "."
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
