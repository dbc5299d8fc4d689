// filepath: internal/repository/migrate.go
package repository

import (
	"fmt"

	"teachermonitor/internal/db/migrations"

	"github.com/pressly/goose/v3"
)

// configureGoose points goose at the embedded migration files.
func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// EnsureSchemaBootstrapped migrates a database that has never been
// migrated before. A database that already carries version information
// is left alone so that explicit `migrate` commands stay in control of
// upgrades.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'",
	).Scan(&name)
	if err == nil {
		// Version table exists; nothing to bootstrap.
		return nil
	}

	s.Logger.Info("Fresh database detected, applying schema migrations")
	return s.MigrateUp()
}

// ValidateSchema fails when the database is behind the embedded
// migrations and an upgrade is required before serving.
func (s *Repository) ValidateSchema() error {
	if err := configureGoose(); err != nil {
		return err
	}

	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	migs, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	latest, err := migs.Last()
	if err != nil {
		return fmt.Errorf("failed to determine latest migration: %w", err)
	}

	if current < latest.Version {
		return fmt.Errorf("database schema is outdated: at version %d, want %d (run 'migrate up')", current, latest.Version)
	}
	return nil
}

// MigrateUp migrates the database to the most recent schema version.
func (s *Repository) MigrateUp() error {
	if err := configureGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// MigrateDown rolls the database back by one schema version.
func (s *Repository) MigrateDown() error {
	if err := configureGoose(); err != nil {
		return err
	}
	if err := goose.Down(s.DB, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version of the database.
func (s *Repository) MigrationVersion() (int64, error) {
	if err := configureGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(s.DB)
}
