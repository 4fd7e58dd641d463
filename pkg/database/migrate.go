package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateDirection selects which way RunMigrations moves the schema.
type MigrateDirection string

const (
	MigrateUp   MigrateDirection = "up"
	MigrateDown MigrateDirection = "down"
)

// RunMigrations applies (or, for MigrateDown, reverts one step of) the
// migrations found at migrationsPath, e.g. "file://migrations".
func RunMigrations(databaseURL, migrationsPath string, direction MigrateDirection, logger *slog.Logger) error {
	// golang-migrate works on database/sql; the pgx stdlib driver keeps one Postgres driver in the binary.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch direction {
	case MigrateDown:
		err = m.Steps(-1)
	default:
		err = m.Up()
	}
	noChange := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !noChange {
		return fmt.Errorf("apply migrations (%s): %w", direction, err)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		logger.Info("Database schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	if noChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully", slog.String("direction", string(direction)))
	}
	return nil
}
