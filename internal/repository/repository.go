// filepath: internal/repository/repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"teachermonitor/internal/config"
	"teachermonitor/internal/shared"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

// ChangePublisher receives the names of tables touched by a committed
// write. The reactive bridge implements it; a nil publisher disables
// notifications (used by one-shot CLI commands).
type ChangePublisher interface {
	Publish(tables ...string)
}

// Store is the persistence contract the services depend on. One fixed
// database, five independent tables, JSON documents keyed by id, no
// cross-table foreign keys.
type Store interface {
	Close() error

	Get(table, id string) (DocRecord, error)
	ToArray(table string) ([]DocRecord, error)
	Put(table string, rec DocRecord) error
	BulkAdd(table string, recs []DocRecord) error
	Delete(table, id string) error
	Clear(table string) error

	// WithTx runs fn inside one read-write transaction. If fn returns an
	// error all effects are rolled back and the error is surfaced to the
	// caller. Change notifications for touched tables fire only after a
	// successful commit.
	WithTx(ctx context.Context, fn func(tx *Tx) error) error

	// Migration
	EnsureSchemaBootstrapped() error
	ValidateSchema() error
	MigrateUp() error
	MigrateDown() error
	MigrationVersion() (int64, error)
}

// Repository implements Store on an embedded SQLite database.
type Repository struct {
	DB        *sql.DB
	Builder   squirrel.StatementBuilderType
	Logger    *logrus.Logger
	publisher ChangePublisher
}

var _ Store = (*Repository)(nil)

// NewRepository opens (creating if necessary) the database file named in
// the configuration. The schema is not touched here; see
// EnsureSchemaBootstrapped.
func NewRepository(cfg *config.Config, publisher ChangePublisher, logger *logrus.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}

	// There is exactly one writer (the current user action); a single
	// connection also keeps SQLite's own locking out of the way.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = OFF; PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	return &Repository{
		DB:        db,
		Builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Logger:    logger,
		publisher: publisher,
	}, nil
}

func (s *Repository) Close() error {
	return s.DB.Close()
}

// publish forwards committed table changes to the reactive bridge.
func (s *Repository) publish(tables ...string) {
	if s.publisher != nil {
		s.publisher.Publish(tables...)
	}
}

// mapSQLError converts driver errors into the repository's error kinds.
func mapSQLError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return shared.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", shared.ErrDuplicateKey, err)
	}
	return err
}
