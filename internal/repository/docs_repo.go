// filepath: internal/repository/docs_repo.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the document
// operations run against.
type dbtx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Get returns the record stored under id, or ErrNotFound.
func (s *Repository) Get(table, id string) (DocRecord, error) {
	return getRecord(s.Builder, s.DB, table, id)
}

// ToArray returns every record of the table, ordered by key.
func (s *Repository) ToArray(table string) ([]DocRecord, error) {
	return scanTable(s.Builder, s.DB, table)
}

// Put inserts or replaces the record under its id.
func (s *Repository) Put(table string, rec DocRecord) error {
	if err := putRecord(s.Builder, s.DB, table, rec); err != nil {
		return err
	}
	s.publish(table)
	return nil
}

// BulkAdd inserts all records; any id collision fails the whole batch
// with a DuplicateKey error and no record is written.
func (s *Repository) BulkAdd(table string, recs []DocRecord) error {
	return s.WithTx(context.Background(), func(tx *Tx) error {
		return tx.BulkAdd(table, recs)
	})
}

// Delete removes the record under id. Deleting a missing id is a no-op,
// matching upstream delete-by-key semantics.
func (s *Repository) Delete(table, id string) error {
	if err := deleteRecord(s.Builder, s.DB, table, id); err != nil {
		return err
	}
	s.publish(table)
	return nil
}

// Clear removes every record of the table.
func (s *Repository) Clear(table string) error {
	if err := clearTable(s.Builder, s.DB, table); err != nil {
		return err
	}
	s.publish(table)
	return nil
}

//----------------------
// Shared implementations
//----------------------

func getRecord(b squirrel.StatementBuilderType, q dbtx, table, id string) (DocRecord, error) {
	spec, err := specFor(table)
	if err != nil {
		return DocRecord{}, err
	}

	query, args, err := b.Select(columnsFor(spec)...).
		From(table).
		Where(squirrel.Eq{spec.keyColumn: id}).
		ToSql()
	if err != nil {
		return DocRecord{}, err
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return DocRecord{}, mapSQLError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return DocRecord{}, mapSQLError(err)
		}
		return DocRecord{}, mapSQLError(sql.ErrNoRows)
	}
	return scanRecord(rows, spec)
}

func scanTable(b squirrel.StatementBuilderType, q dbtx, table string) ([]DocRecord, error) {
	spec, err := specFor(table)
	if err != nil {
		return nil, err
	}

	query, args, err := b.Select(columnsFor(spec)...).
		From(table).
		OrderBy(spec.keyColumn).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] and not null.
	records := make([]DocRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, spec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows, spec tableSpec) (DocRecord, error) {
	dests := make([]interface{}, 0, len(spec.indexColumns)+2)

	var id string
	dests = append(dests, &id)

	indexVals := make([]string, len(spec.indexColumns))
	for i := range spec.indexColumns {
		dests = append(dests, &indexVals[i])
	}

	var doc []byte
	dests = append(dests, &doc)

	if err := rows.Scan(dests...); err != nil {
		return DocRecord{}, err
	}

	rec := DocRecord{ID: id, Doc: doc}
	if len(spec.indexColumns) > 0 {
		rec.Index = make(map[string]string, len(spec.indexColumns))
		for i, col := range spec.indexColumns {
			rec.Index[col] = indexVals[i]
		}
	}
	return rec, nil
}

func putRecord(b squirrel.StatementBuilderType, q dbtx, table string, rec DocRecord) error {
	spec, err := specFor(table)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		return fmt.Errorf("record for table %s has no id", table)
	}

	cols, vals := recordValues(spec, rec)
	query, args, err := b.Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix(upsertSuffix(spec)).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(query, args...)
	return mapSQLError(err)
}

func insertRecord(b squirrel.StatementBuilderType, q dbtx, table string, rec DocRecord) error {
	spec, err := specFor(table)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		return fmt.Errorf("record for table %s has no id", table)
	}

	cols, vals := recordValues(spec, rec)
	query, args, err := b.Insert(table).
		Columns(cols...).
		Values(vals...).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(query, args...)
	return mapSQLError(err)
}

func deleteRecord(b squirrel.StatementBuilderType, q dbtx, table, id string) error {
	spec, err := specFor(table)
	if err != nil {
		return err
	}

	query, args, err := b.Delete(table).
		Where(squirrel.Eq{spec.keyColumn: id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(query, args...)
	return mapSQLError(err)
}

func clearTable(b squirrel.StatementBuilderType, q dbtx, table string) error {
	if _, err := specFor(table); err != nil {
		return err
	}

	query, args, err := b.Delete(table).ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(query, args...)
	return mapSQLError(err)
}

func recordValues(spec tableSpec, rec DocRecord) ([]string, []interface{}) {
	cols := columnsFor(spec)
	vals := make([]interface{}, 0, len(cols))
	vals = append(vals, rec.ID)
	for _, col := range spec.indexColumns {
		vals = append(vals, rec.Index[col])
	}
	doc := rec.Doc
	if doc == nil {
		doc = []byte("{}")
	}
	vals = append(vals, string(doc))
	return cols, vals
}

func upsertSuffix(spec tableSpec) string {
	set := "doc = excluded.doc"
	for _, col := range spec.indexColumns {
		set += fmt.Sprintf(", %s = excluded.%s", col, col)
	}
	return fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", spec.keyColumn, set)
}
