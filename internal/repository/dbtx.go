// filepath: internal/repository/dbtx.go
package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Tx wraps *sql.Tx with the document operations and records which
// tables it touched so change notifications can fire after commit.
type Tx struct {
	tx      *sql.Tx
	builder squirrel.StatementBuilderType
	touched map[string]struct{}
}

// WithTx runs fn inside one transaction. Operations inside fn are
// serialized and atomic relative to other transactions on the same
// tables; if fn fails, everything rolls back and the failure is
// surfaced unchanged.
func (s *Repository) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer sqlTx.Rollback() // Rollback on any error

	tx := &Tx{
		tx:      sqlTx,
		builder: s.Builder,
		touched: make(map[string]struct{}),
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return mapSQLError(err)
	}

	// Notify only after the commit actually happened.
	for table := range tx.touched {
		s.publish(table)
	}
	return nil
}

func (t *Tx) markTouched(table string) {
	t.touched[table] = struct{}{}
}

// Get returns the record stored under id within the transaction.
func (t *Tx) Get(table, id string) (DocRecord, error) {
	return getRecord(t.builder, t.tx, table, id)
}

// ToArray returns every record of the table within the transaction.
func (t *Tx) ToArray(table string) ([]DocRecord, error) {
	return scanTable(t.builder, t.tx, table)
}

// Put inserts or replaces the record under its id.
func (t *Tx) Put(table string, rec DocRecord) error {
	if err := putRecord(t.builder, t.tx, table, rec); err != nil {
		return err
	}
	t.markTouched(table)
	return nil
}

// BulkAdd inserts all records; an id collision fails the batch with a
// DuplicateKey error, which rolls back the enclosing transaction.
func (t *Tx) BulkAdd(table string, recs []DocRecord) error {
	for _, rec := range recs {
		if err := insertRecord(t.builder, t.tx, table, rec); err != nil {
			return err
		}
	}
	t.markTouched(table)
	return nil
}

// Delete removes the record under id.
func (t *Tx) Delete(table, id string) error {
	if err := deleteRecord(t.builder, t.tx, table, id); err != nil {
		return err
	}
	t.markTouched(table)
	return nil
}

// Clear removes every record of the table.
func (t *Tx) Clear(table string) error {
	if err := clearTable(t.builder, t.tx, table); err != nil {
		return err
	}
	t.markTouched(table)
	return nil
}
