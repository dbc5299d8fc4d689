// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"teachermonitor/internal/config"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/render"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/services"
	"teachermonitor/internal/services/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// testAPI bundles the server with the mocks the handler tests program
// against. The report routes run against a real store so the generic
// handlers are exercised end to end.
type testAPI struct {
	server       *httptest.Server
	mockTeachers *mocks.MockTeacherService
	mockSettings *mocks.MockSettingsService
	mockBackup   *mocks.MockBackupService
	supervision  *services.ReportService[models.SupervisionReport]
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := logging.NewLogger("error")
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}

	repo, err := repository.NewRepository(cfg, reactive.NewBroker(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.MigrateUp())

	storeSettings := services.NewSettingsService(repo)
	exporter := services.NewExporter(render.NewRegistry(logger), storeSettings, t.TempDir(), logger)

	api := &testAPI{
		mockTeachers: new(mocks.MockTeacherService),
		mockSettings: new(mocks.MockSettingsService),
		mockBackup:   new(mocks.MockBackupService),
		supervision:  services.NewReportService(services.SupervisionKind(), repo, exporter, logger),
	}

	h := NewHandlers(
		services.NewInfoService("test", time.Now()),
		api.mockTeachers,
		api.mockSettings,
		api.mockBackup,
		api.supervision,
		services.NewReportService(services.BookCheckingKind(), repo, exporter, logger),
		services.NewReportService(services.WorkCoverageKind(), repo, exporter, logger),
		cfg,
	)

	api.server = httptest.NewServer(testRouter(h))
	t.Cleanup(api.server.Close)
	return api
}

// testRouter mirrors the production route table without pulling the
// httpserver package into an import cycle with these tests.
func testRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", HealthCheck).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/info", h.GetInfo).Methods("GET")

	apiRouter.HandleFunc("/teachers", h.GetTeachers).Methods("GET")
	apiRouter.HandleFunc("/teacher", h.GetTeacher).Methods("GET")
	apiRouter.HandleFunc("/teacher", h.SaveTeacher).Methods("POST")
	apiRouter.HandleFunc("/teacher", h.DeleteTeacher).Methods("DELETE")

	sup := apiRouter.PathPrefix("/reports/supervision").Subrouter()
	sup.HandleFunc("", ListReports(h.Supervision)).Methods("GET")
	sup.HandleFunc("/report", GetReport(h.Supervision)).Methods("GET")
	sup.HandleFunc("/report", SaveReport(h.Supervision)).Methods("POST")
	sup.HandleFunc("/report", DeleteReport(h.Supervision)).Methods("DELETE")
	sup.HandleFunc("/export", ExportReport(h.Supervision)).Methods("GET")
	sup.HandleFunc("/export/bulk", ExportBulkReports(h.Supervision)).Methods("GET")

	apiRouter.HandleFunc("/settings", h.GetSettings).Methods("GET")
	apiRouter.HandleFunc("/setting", h.GetSetting).Methods("GET")
	apiRouter.HandleFunc("/setting", h.SetSetting).Methods("PUT")

	apiRouter.HandleFunc("/backup/export", h.ExportBackup).Methods("GET")
	apiRouter.HandleFunc("/backup/import", h.ImportBackup).Methods("POST")
	apiRouter.HandleFunc("/backup/clear", h.ClearAll).Methods("POST")
	return r
}

func doRequest(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
