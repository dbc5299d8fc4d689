// filepath: internal/api/handlers/main.go
package handlers

import (
	"teachermonitor/internal/config"
	"teachermonitor/internal/models"
	"teachermonitor/internal/services"
)

// Handlers holds the shared dependencies of the API handlers. Handlers
// depend on the service interfaces, not the concrete structs.
type Handlers struct {
	Info     services.InfoService
	Teachers services.TeacherService
	Settings services.SettingsService
	Backup   services.BackupService

	Supervision  *services.ReportService[models.SupervisionReport]
	BookChecking *services.ReportService[models.BookCheckingReport]
	WorkCoverage *services.ReportService[models.WorkCoverageReport]

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	teachers services.TeacherService,
	settings services.SettingsService,
	backup services.BackupService,
	supervision *services.ReportService[models.SupervisionReport],
	bookChecking *services.ReportService[models.BookCheckingReport],
	workCoverage *services.ReportService[models.WorkCoverageReport],
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:         info,
		Teachers:     teachers,
		Settings:     settings,
		Backup:       backup,
		Supervision:  supervision,
		BookChecking: bookChecking,
		WorkCoverage: workCoverage,
		Cfg:          cfg,
	}
}
