// filepath: internal/repository/dbtx_test.go
package repository

import (
	"context"
	"errors"
	"testing"

	"teachermonitor/internal/shared"

	"github.com/stretchr/testify/assert"
)

func TestWithTx_RollbackOnError(t *testing.T) {
	repo, _ := setupTestDB(t)

	assert.NoError(t, repo.Put(TableTeachers, teacherRecord(t, "t1", "Alice")))

	boom := errors.New("boom")
	err := repo.WithTx(context.Background(), func(tx *Tx) error {
		if err := tx.Clear(TableTeachers); err != nil {
			return err
		}
		if err := tx.Put(TableTeachers, teacherRecord(t, "t2", "Bob")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Clear and Put are both gone; the original data is intact.
	all, err := repo.ToArray(TableTeachers)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Alice", all[0].Index["name"])
}

func TestWithTx_AtomicAcrossTables(t *testing.T) {
	repo, _ := setupTestDB(t)

	assert.NoError(t, repo.Put(TableTeachers, teacherRecord(t, "t1", "Alice")))
	assert.NoError(t, repo.Put(TableSettings, DocRecord{ID: "schoolName", Doc: []byte(`{"kind":"text","text":"Old"}`)}))

	// Clear everything, then collide on a bulk insert. Nothing may be lost.
	err := repo.WithTx(context.Background(), func(tx *Tx) error {
		for _, table := range AllTables {
			if err := tx.Clear(table); err != nil {
				return err
			}
		}
		return tx.BulkAdd(TableTeachers, []DocRecord{
			teacherRecord(t, "t2", "Bob"),
			teacherRecord(t, "t2", "Bob again"),
		})
	})
	assert.ErrorIs(t, err, shared.ErrDuplicateKey)

	teachers, err := repo.ToArray(TableTeachers)
	assert.NoError(t, err)
	assert.Len(t, teachers, 1)

	setting, err := repo.Get(TableSettings, "schoolName")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind":"text","text":"Old"}`, string(setting.Doc))
}

func TestWithTx_PublishesOnlyAfterCommit(t *testing.T) {
	repo, pub := setupTestDB(t)

	err := repo.WithTx(context.Background(), func(tx *Tx) error {
		if err := tx.Put(TableTeachers, teacherRecord(t, "t1", "Alice")); err != nil {
			return err
		}
		assert.Empty(t, pub.published(), "no notification before commit")
		return tx.Put(TableTeachers, teacherRecord(t, "t2", "Bob"))
	})
	assert.NoError(t, err)

	// One notification per touched table, not per write.
	assert.Equal(t, []string{TableTeachers}, pub.published())
}

func TestWithTx_NoPublishOnRollback(t *testing.T) {
	repo, pub := setupTestDB(t)

	err := repo.WithTx(context.Background(), func(tx *Tx) error {
		if err := tx.Put(TableTeachers, teacherRecord(t, "t1", "Alice")); err != nil {
			return err
		}
		return errors.New("abort")
	})
	assert.Error(t, err)
	assert.Empty(t, pub.published())
}
