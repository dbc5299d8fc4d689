// filepath: internal/httpserver/router.go
package httpserver

import (
	"teachermonitor/internal/api/handlers"
	"teachermonitor/internal/services"

	"github.com/gorilla/mux"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/info", h.GetInfo).Methods("GET")

	addTeacherRoutes(apiRouter, h)
	addReportRoutes(apiRouter, h)
	addSettingsRoutes(apiRouter, h)
	addBackupRoutes(apiRouter, h)

	return r
}

// addTeacherRoutes configures routes for the teacher directory.
func addTeacherRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/teachers", h.GetTeachers).Methods("GET")
	r.HandleFunc("/teacher", h.GetTeacher).Methods("GET")
	r.HandleFunc("/teacher", h.SaveTeacher).Methods("POST")
	r.HandleFunc("/teacher", h.DeleteTeacher).Methods("DELETE")
}

// addReportRoutes configures the identical route set for each of the
// three report kinds.
func addReportRoutes(r *mux.Router, h *handlers.Handlers) {
	addKindRoutes(r, "/reports/supervision", h.Supervision)
	addKindRoutes(r, "/reports/book-checking", h.BookChecking)
	addKindRoutes(r, "/reports/work-coverage", h.WorkCoverage)
}

func addKindRoutes[R any](r *mux.Router, prefix string, svc *services.ReportService[R]) {
	sub := r.PathPrefix(prefix).Subrouter()
	sub.HandleFunc("", handlers.ListReports(svc)).Methods("GET")
	sub.HandleFunc("/report", handlers.GetReport(svc)).Methods("GET")
	sub.HandleFunc("/report", handlers.SaveReport(svc)).Methods("POST")
	sub.HandleFunc("/report", handlers.DeleteReport(svc)).Methods("DELETE")
	sub.HandleFunc("/export", handlers.ExportReport(svc)).Methods("GET")
	sub.HandleFunc("/export/bulk", handlers.ExportBulkReports(svc)).Methods("GET")
}

// addSettingsRoutes configures routes for school branding settings.
func addSettingsRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/settings", h.GetSettings).Methods("GET")
	r.HandleFunc("/setting", h.GetSetting).Methods("GET")
	r.HandleFunc("/setting", h.SetSetting).Methods("PUT")
}

// addBackupRoutes configures routes for full-store export/import.
func addBackupRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/backup/export", h.ExportBackup).Methods("GET")
	r.HandleFunc("/backup/import", h.ImportBackup).Methods("POST")
	r.HandleFunc("/backup/clear", h.ClearAll).Methods("POST")
}
