// filepath: internal/api/handlers/report_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/services"
	"teachermonitor/internal/shared"
)

// The three report kinds share one set of handlers; each route is a
// closure over the kind's service.

func listQueryFromRequest(r *http.Request) (models.ListQuery, error) {
	q := r.URL.Query()
	lq := models.ListQuery{
		Search:    q.Get("search"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		SortBy:    q.Get("sort"),
	}
	for _, d := range []string{lq.StartDate, lq.EndDate} {
		if d == "" {
			continue
		}
		if _, err := shared.ParseDate(d); err != nil {
			return models.ListQuery{}, err
		}
	}
	return lq, nil
}

// ListReports returns the filtered, sorted list for one report kind.
// Query parameters: search, start_date, end_date, sort.
func ListReports[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lq, err := listQueryFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		reports, err := svc.List(lq)
		if err != nil {
			logging.Log.Errorf("Failed to list %s records: %v", svc.Kind.DisplayName, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve reports.")
			return
		}
		respondWithJSON(w, http.StatusOK, reports)
	}
}

// GetReport returns one report by id.
func GetReport[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
			return
		}

		report, err := svc.Get(id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Report not found.")
				return
			}
			logging.Log.Errorf("Failed to get %s %s: %v", svc.Kind.DisplayName, id, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve report.")
			return
		}
		respondWithJSON(w, http.StatusOK, report)
	}
}

// SaveReport validates and upserts a report. Validation failures list
// every failed field at once and write nothing.
func SaveReport[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload R
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logging.Log.Warnf("Failed to decode request body: %v", err)
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		creating := svc.Kind.Meta(payload).ID == ""
		saved, err := svc.Save(payload)
		if err != nil {
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				respondWithJSON(w, http.StatusBadRequest, ValidationResponse{Error: "Validation failed.", Fields: verr.Fields})
				return
			}
			logging.Log.Errorf("Failed to save %s: %v", svc.Kind.DisplayName, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to save report.")
			return
		}

		code := http.StatusOK
		if creating {
			code = http.StatusCreated
		}
		respondWithJSON(w, code, saved)
	}
}

// DeleteReport removes a report by id. There is no undo; the client is
// expected to have confirmed.
func DeleteReport[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
			return
		}

		if err := svc.Delete(id); err != nil {
			logging.Log.Errorf("Failed to delete %s %s: %v", svc.Kind.DisplayName, id, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete report.")
			return
		}
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Report deleted."})
	}
}

// ExportReport renders one report and serves the resulting PDF.
func ExportReport[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
			return
		}

		path, err := svc.ExportOne(id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Report not found.")
				return
			}
			logging.Log.Errorf("Failed to export %s %s: %v", svc.Kind.DisplayName, id, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to export report.")
			return
		}
		servePDF(w, r, path)
	}
}

// ExportBulkReports renders the filtered, sorted list into one PDF,
// one report per page, and serves it. An empty list is rejected.
func ExportBulkReports[R any](svc *services.ReportService[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lq, err := listQueryFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		path, err := svc.ExportBulk(lq)
		if err != nil {
			if errors.Is(err, shared.ErrNoReports) {
				respondWithError(w, http.StatusBadRequest, "No reports to export.")
				return
			}
			logging.Log.Errorf("Failed to bulk export %s records: %v", svc.Kind.DisplayName, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to export reports.")
			return
		}
		servePDF(w, r, path)
	}
}

func servePDF(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
