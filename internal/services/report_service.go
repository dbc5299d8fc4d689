// filepath: internal/services/report_service.go
package services

import (
	"sort"
	"strings"

	"teachermonitor/internal/models"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/shared"

	"github.com/sirupsen/logrus"
)

// ReportService carries the whole lifecycle of one report kind:
// filtered listing, form save, delete, and PDF export. The three kinds
// are three instances of this one type.
type ReportService[R any] struct {
	Kind     ReportKind[R]
	store    repository.Store
	exporter *Exporter
	logger   *logrus.Logger
}

func NewReportService[R any](kind ReportKind[R], store repository.Store, exporter *Exporter, logger *logrus.Logger) *ReportService[R] {
	return &ReportService[R]{Kind: kind, store: store, exporter: exporter, logger: logger}
}

// List returns the reports matching q, filtered first and sorted
// second.
func (s *ReportService[R]) List(q models.ListQuery) ([]R, error) {
	recs, err := s.store.ToArray(s.Kind.Table)
	if err != nil {
		return nil, err
	}
	reports, err := decodeAll[R](recs)
	if err != nil {
		return nil, err
	}

	filtered := make([]R, 0, len(reports))
	for _, r := range reports {
		if matchesQuery(s.Kind.Meta(r), q) {
			filtered = append(filtered, r)
		}
	}

	s.sortReports(filtered, q.SortBy)
	return filtered, nil
}

// Get returns one report by id.
func (s *ReportService[R]) Get(id string) (R, error) {
	var zero R
	rec, err := s.store.Get(s.Kind.Table, id)
	if err != nil {
		return zero, err
	}
	reports, err := decodeAll[R]([]repository.DocRecord{rec})
	if err != nil {
		return zero, err
	}
	return reports[0], nil
}

// Save validates the report and upserts it. A validation failure
// reports every missing field at once and writes nothing. A report
// without an id gets one assigned; saving an existing id replaces the
// record wholesale.
func (s *ReportService[R]) Save(r R) (R, error) {
	var zero R
	if err := checkStruct(r); err != nil {
		return zero, err
	}

	if s.Kind.Meta(r).ID == "" {
		r = s.Kind.WithID(r, models.NewID())
	}

	rec, err := s.Kind.record(r)
	if err != nil {
		return zero, err
	}
	if err := s.store.Put(s.Kind.Table, rec); err != nil {
		return zero, err
	}
	return r, nil
}

// Delete removes the report. There is no undo; the interactive
// confirmation lives at the boundary that calls this.
func (s *ReportService[R]) Delete(id string) error {
	return s.store.Delete(s.Kind.Table, id)
}

// ExportOne renders the report and writes a single-page PDF. It
// returns the path of the written file.
func (s *ReportService[R]) ExportOne(id string) (string, error) {
	r, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return exportOne(s.exporter, s.Kind, r)
}

// ExportBulk writes one multi-page PDF over the filtered, sorted list,
// one report per page in list order. An empty list is rejected with
// ErrNoReports and no file is produced.
func (s *ReportService[R]) ExportBulk(q models.ListQuery) (string, error) {
	reports, err := s.List(q)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", shared.ErrNoReports
	}
	return exportBulk(s.exporter, s.Kind, reports)
}

// matchesQuery applies the list filter: case-insensitive substring
// match on teacher name OR subject, and an inclusive date range.
func matchesQuery(meta ReportMeta, q models.ListQuery) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		teacher := strings.ToLower(meta.TeacherName)
		subject := strings.ToLower(meta.Subject)
		if !strings.Contains(teacher, needle) && !strings.Contains(subject, needle) {
			return false
		}
	}

	if q.StartDate != "" && meta.Date < q.StartDate {
		return false
	}
	if q.EndDate != "" && meta.Date > q.EndDate {
		return false
	}
	return true
}

func (s *ReportService[R]) sortReports(reports []R, sortBy string) {
	switch sortBy {
	case models.SortDateAsc:
		sort.SliceStable(reports, func(i, j int) bool {
			return s.Kind.Meta(reports[i]).Date < s.Kind.Meta(reports[j]).Date
		})
	case models.SortTeacherName:
		sort.SliceStable(reports, func(i, j int) bool {
			return strings.ToLower(s.Kind.Meta(reports[i]).TeacherName) < strings.ToLower(s.Kind.Meta(reports[j]).TeacherName)
		})
	default: // newest first
		sort.SliceStable(reports, func(i, j int) bool {
			return s.Kind.Meta(reports[i]).Date > s.Kind.Meta(reports[j]).Date
		})
	}
}
