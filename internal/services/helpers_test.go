// filepath: internal/services/helpers_test.go
package services

import (
	"path/filepath"
	"testing"

	"teachermonitor/internal/config"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/render"
	"teachermonitor/internal/repository"
)

// newTestStore opens a migrated throwaway database wired to a real
// change broker.
func newTestStore(t *testing.T) (*repository.Repository, *reactive.Broker) {
	t.Helper()

	broker := reactive.NewBroker()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}

	repo, err := repository.NewRepository(cfg, broker, logging.NewLogger("error"))
	if err != nil {
		t.Fatalf("Failed to create new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.MigrateUp(); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}
	return repo, broker
}

func newTestExporter(t *testing.T, settings SettingsService) *Exporter {
	t.Helper()
	logger := logging.NewLogger("error")
	return NewExporter(render.NewRegistry(logger), settings, t.TempDir(), logger)
}

func validSupervision(teacher, subject, date string) models.SupervisionReport {
	return models.SupervisionReport{
		TeacherName:       teacher,
		ClassName:         "Grade 8-B",
		Subject:           subject,
		Date:              date,
		Rating:            4,
		LessonPlanning:    "Detailed plan, aligned with the scheme of work.",
		TeachingMethod:    "Worked examples followed by guided practice.",
		ClassManagement:   "Orderly, good use of seating groups.",
		StudentEngagement: "Most students participated in the discussion.",
		SubjectKnowledge:  "Confident, answered questions accurately.",
		BoardWork:         "Legible, well organized.",
	}
}

func validBookChecking(teacher, subject, date string) models.BookCheckingReport {
	return models.BookCheckingReport{
		TeacherName:        teacher,
		ClassName:          "Grade 7-A",
		Subject:            subject,
		Date:               date,
		BooksChecked:       "32",
		WorkCoverage:       models.CoveragePartial,
		NeatnessRating:     4,
		CorrectionRating:   3,
		PresentationRating: 4,
	}
}

func validWorkCoverage(teacher, subject, date string) models.WorkCoverageReport {
	return models.WorkCoverageReport{
		TeacherName:     teacher,
		ClassName:       "Grade 9-C",
		Subject:         subject,
		Date:            date,
		PlannedTopics:   "Linear equations; simultaneous equations",
		CompletedTopics: "Linear equations",
		PendingTopics:   "Simultaneous equations",
	}
}
