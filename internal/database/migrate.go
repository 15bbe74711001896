package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsDir is the on-disk location of the embedded migrations, used by cmd/migrate.
const MigrationsDir = "internal/database/migrations"

// NewMigrator returns a migrator reading the embedded migration files.
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

// Migrate brings the schema up to date. Tables are created only when absent,
// so running it on every start is safe.
func Migrate(databaseURL string, log zerolog.Logger) error {
	m, err := NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug().Msg("Schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().Uint("version", version).Msg("Schema migrated")
	return nil
}
