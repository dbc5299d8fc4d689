// filepath: internal/services/backup_service_test.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"teachermonitor/internal/audit"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupFixture(t *testing.T) (BackupService, *repository.Repository) {
	t.Helper()
	store, _ := newTestStore(t)
	logger := logging.NewLogger("error")
	svc := NewBackupService(store, t.TempDir(), audit.NewLoggerAuditor(logger, true), logger)
	return svc, store
}

func seedStore(t *testing.T, store *repository.Repository) {
	t.Helper()

	teachers := NewTeacherService(store)
	_, err := teachers.SaveTeacher(models.Teacher{Name: "Amina Yusuf", Subjects: []string{"Mathematics"}})
	require.NoError(t, err)

	sup := validSupervision("Amina Yusuf", "Mathematics", "2025-03-14")
	sup.ID = models.NewID()
	rec, err := SupervisionKind().record(sup)
	require.NoError(t, err)
	require.NoError(t, store.Put(repository.TableSupervisionReports, rec))

	bc := validBookChecking("Amina Yusuf", "Mathematics", "2025-03-15")
	bc.ID = models.NewID()
	bcRec, err := BookCheckingKind().record(bc)
	require.NoError(t, err)
	require.NoError(t, store.Put(repository.TableBookCheckingReports, bcRec))

	settings := NewSettingsService(store)
	require.NoError(t, settings.SetSetting(models.SettingSchoolName, models.TextValue("Unity College")))
}

func TestBackup_ExportShape(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"teachers", "supervisionReports", "bookCheckingReports", "workCoverageReports", "settings"} {
		assert.Contains(t, doc, key)
	}
	assert.True(t, strings.Contains(buf.String(), "\n  "), "export should be pretty-printed")
}

func TestBackup_ExportToFileName(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	path, err := svc.ExportToFile()
	require.NoError(t, err)
	assert.Contains(t, path, "teacher-monitor-backup-")
	assert.True(t, strings.HasSuffix(path, ".json"))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestBackup_RoundTrip(t *testing.T) {
	src, srcStore := newBackupFixture(t)
	seedStore(t, srcStore)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst, dstStore := newBackupFixture(t)
	require.NoError(t, dst.Import(context.Background(), &buf))

	for _, table := range repository.AllTables {
		srcRecs, err := srcStore.ToArray(table)
		require.NoError(t, err)
		dstRecs, err := dstStore.ToArray(table)
		require.NoError(t, err)

		srcIDs := recordIDs(srcRecs)
		assert.ElementsMatch(t, srcIDs, recordIDs(dstRecs), "table %s", table)
	}
}

func recordIDs(recs []repository.DocRecord) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBackup_ImportReplacesExistingData(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	snapshot := Backup{
		Teachers: []models.Teacher{{ID: models.NewID(), Name: "Bashir Okoye"}},
	}
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	require.NoError(t, svc.Import(context.Background(), bytes.NewReader(data)))

	teachers, err := NewTeacherService(store).GetTeachers()
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Bashir Okoye", teachers[0].Name)

	// Arrays absent from the snapshot import as empty tables.
	recs, err := store.ToArray(repository.TableSupervisionReports)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBackup_MalformedImportWritesNothing(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	err := svc.Import(context.Background(), strings.NewReader(`{"teachers": [`))
	assert.True(t, errors.Is(err, shared.ErrMalformedBackup))

	teachers, err := NewTeacherService(store).GetTeachers()
	require.NoError(t, err)
	assert.Len(t, teachers, 1, "store must be untouched after a parse failure")
}

func TestBackup_ImportFailureRollsBackWholeStore(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	// Duplicate ids fail the bulk insert mid-transaction.
	dup := models.NewID()
	snapshot := Backup{
		Teachers: []models.Teacher{
			{ID: dup, Name: "Bashir Okoye"},
			{ID: dup, Name: "Chidi Eze"},
		},
	}
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	err = svc.Import(context.Background(), bytes.NewReader(data))
	require.Error(t, err)

	teachers, err := NewTeacherService(store).GetTeachers()
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Amina Yusuf", teachers[0].Name, "failed import must leave the original data intact")

	recs, err := store.ToArray(repository.TableSupervisionReports)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestBackup_ImportNormalizesLegacySettings(t *testing.T) {
	svc, store := newBackupFixture(t)

	// Older snapshots stored settings as bare strings.
	raw := `{"settings": [
		{"key": "reportFooter", "value": "Signed: The Principal"},
		{"key": "obsoleteKey", "value": "dropped"}
	]}`
	require.NoError(t, svc.Import(context.Background(), strings.NewReader(raw)))

	settings := NewSettingsService(store)
	v, err := settings.GetSetting(models.SettingReportFooter)
	require.NoError(t, err)
	assert.Equal(t, models.SettingKindLongText, v.Kind)
	assert.Equal(t, "Signed: The Principal", v.String())

	all, err := settings.GetSettings()
	require.NoError(t, err)
	assert.Len(t, all, 1, "unknown keys are dropped on import")
}

func TestBackup_ClearAll(t *testing.T) {
	svc, store := newBackupFixture(t)
	seedStore(t, store)

	require.NoError(t, svc.ClearAll(context.Background()))

	for _, table := range repository.AllTables {
		recs, err := store.ToArray(table)
		require.NoError(t, err)
		assert.Empty(t, recs, "table %s", table)
	}
}
