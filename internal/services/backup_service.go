// filepath: internal/services/backup_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"teachermonitor/internal/audit"
	"teachermonitor/internal/models"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/shared"
	"teachermonitor/internal/storage"

	"github.com/sirupsen/logrus"
)

// Backup is the on-disk snapshot format. Absent arrays import as empty
// tables.
type Backup struct {
	Teachers            []models.Teacher            `json:"teachers"`
	SupervisionReports  []models.SupervisionReport  `json:"supervisionReports"`
	BookCheckingReports []models.BookCheckingReport `json:"bookCheckingReports"`
	WorkCoverageReports []models.WorkCoverageReport `json:"workCoverageReports"`
	Settings            []models.Setting            `json:"settings"`
}

type backupService struct {
	store   repository.Store
	dir     string
	auditor audit.Auditor
	logger  *logrus.Logger
}

// NewBackupService builds the full-store export/import service. dir is
// where ExportToFile writes its snapshot.
func NewBackupService(store repository.Store, dir string, auditor audit.Auditor, logger *logrus.Logger) BackupService {
	return &backupService{store: store, dir: dir, auditor: auditor, logger: logger}
}

func (s *backupService) snapshot() (Backup, error) {
	var b Backup
	var err error

	if b.Teachers, err = readTable[models.Teacher](s.store, repository.TableTeachers); err != nil {
		return b, err
	}
	if b.SupervisionReports, err = readTable[models.SupervisionReport](s.store, repository.TableSupervisionReports); err != nil {
		return b, err
	}
	if b.BookCheckingReports, err = readTable[models.BookCheckingReport](s.store, repository.TableBookCheckingReports); err != nil {
		return b, err
	}
	if b.WorkCoverageReports, err = readTable[models.WorkCoverageReport](s.store, repository.TableWorkCoverageReports); err != nil {
		return b, err
	}
	if b.Settings, err = readSettings(s.store); err != nil {
		return b, err
	}
	return b, nil
}

func readTable[T any](store repository.Store, table string) ([]T, error) {
	recs, err := store.ToArray(table)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](recs)
}

func readSettings(store repository.Store) ([]models.Setting, error) {
	recs, err := store.ToArray(repository.TableSettings)
	if err != nil {
		return nil, err
	}
	out := make([]models.Setting, 0, len(recs))
	for _, rec := range recs {
		var v models.SettingValue
		if err := json.Unmarshal(rec.Doc, &v); err != nil {
			return nil, fmt.Errorf("corrupt setting %s: %w", rec.ID, err)
		}
		out = append(out, models.Setting{Key: rec.ID, Value: v})
	}
	return out, nil
}

// Export writes the full store as pretty-printed JSON.
func (s *backupService) Export(w io.Writer) error {
	b, err := s.snapshot()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ExportToFile writes the snapshot to
// <dir>/teacher-monitor-backup-<date>.json and returns the path.
func (s *backupService) ExportToFile() (string, error) {
	name := fmt.Sprintf("teacher-monitor-backup-%s.json", shared.ISODate(time.Now()))
	path, err := storage.ExportPath(s.dir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrorCreateFile, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrorCreateFile, err)
	}
	defer f.Close()

	if err := s.Export(f); err != nil {
		return "", err
	}
	s.logger.WithField("file", path).Info("Exported backup")
	return path, nil
}

// Import replaces the entire store with the snapshot read from r. The
// document is parsed in full before anything is touched; a malformed
// snapshot leaves the store exactly as it was. The replacement itself
// runs in one transaction, so a mid-import failure also rolls back
// cleanly.
func (s *backupService) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedBackup, err)
	}

	err = s.store.WithTx(ctx, func(tx *repository.Tx) error {
		for _, table := range repository.AllTables {
			if err := tx.Clear(table); err != nil {
				return err
			}
		}
		if err := importRecords(tx, repository.TableTeachers, b.Teachers, teacherRecord); err != nil {
			return err
		}
		if err := importReports(tx, SupervisionKind(), b.SupervisionReports); err != nil {
			return err
		}
		if err := importReports(tx, BookCheckingKind(), b.BookCheckingReports); err != nil {
			return err
		}
		if err := importReports(tx, WorkCoverageKind(), b.WorkCoverageReports); err != nil {
			return err
		}
		return importRecords(tx, repository.TableSettings, normalizeSettings(b.Settings), settingRecord)
	})
	if err != nil {
		return err
	}

	s.auditor.Log(ctx, "import", "backup", map[string]interface{}{
		"teachers":            len(b.Teachers),
		"supervisionReports":  len(b.SupervisionReports),
		"bookCheckingReports": len(b.BookCheckingReports),
		"workCoverageReports": len(b.WorkCoverageReports),
		"settings":            len(b.Settings),
	})
	return nil
}

func importRecords[T any](tx *repository.Tx, table string, items []T, build func(T) (repository.DocRecord, error)) error {
	if len(items) == 0 {
		return nil
	}
	recs := make([]repository.DocRecord, 0, len(items))
	for _, item := range items {
		rec, err := build(item)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	return tx.BulkAdd(table, recs)
}

func importReports[R any](tx *repository.Tx, kind ReportKind[R], reports []R) error {
	return importRecords(tx, kind.Table, reports, kind.record)
}

// normalizeSettings drops unknown keys and repairs the value kind of
// snapshots written before values carried kind tags.
func normalizeSettings(settings []models.Setting) []models.Setting {
	out := make([]models.Setting, 0, len(settings))
	for _, s := range settings {
		kind, err := models.KindForKey(s.Key)
		if err != nil {
			continue
		}
		if s.Value.Kind != kind {
			payload := s.Value.String()
			switch kind {
			case models.SettingKindImage:
				s.Value = models.ImageValue(payload)
			case models.SettingKindLongText:
				s.Value = models.LongTextValue(payload)
			default:
				s.Value = models.TextValue(payload)
			}
		}
		out = append(out, s)
	}
	return out
}

// ClearAll wipes every table in one transaction. Interactive
// confirmation happens at the boundary that calls this.
func (s *backupService) ClearAll(ctx context.Context) error {
	err := s.store.WithTx(ctx, func(tx *repository.Tx) error {
		for _, table := range repository.AllTables {
			if err := tx.Clear(table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.auditor.Log(ctx, "clear-all", "store", nil)
	return nil
}
