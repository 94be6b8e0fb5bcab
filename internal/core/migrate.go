// AngelaMos | 2026
// migrate.go

package core

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewMigrator opens its own connection. Closing the migrator closes it.
func NewMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on driver failure
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on path failure
		return nil, fmt.Errorf("resolve migrations path: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+filepath.ToSlash(absPath),
		"postgres",
		driver,
	)
	if err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on source failure
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

func MigrateUp(databaseURL, migrationsPath string) error {
	m, err := NewMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer CloseMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func CloseMigrator(m *migrate.Migrate) {
	//nolint:errcheck // both errors are connection teardown
	_, _ = m.Close()
}
