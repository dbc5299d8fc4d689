// filepath: internal/api/handlers/backup_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/shared"
)

// clearAllToken is the literal a client must type to wipe the store.
const clearAllToken = "DELETE"

// ExportBackup streams the full store as a JSON snapshot download.
func (h *Handlers) ExportBackup(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("teacher-monitor-backup-%s.json", shared.ISODate(time.Now()))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	// Once streaming starts the status code is committed; a mid-stream
	// failure shows up as a truncated download.
	if err := h.Backup.Export(w); err != nil {
		logging.Log.Errorf("Backup export failed: %v", err)
	}
}

// ImportBackup replaces the whole store with the uploaded snapshot.
// The request must carry confirm=yes; the import itself is atomic, so
// a rejected or malformed snapshot leaves the store untouched.
func (h *Handlers) ImportBackup(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "yes" {
		respondWithError(w, http.StatusBadRequest, "Import overwrites all data. Repeat the request with confirm=yes.")
		return
	}

	if err := h.Backup.Import(r.Context(), r.Body); err != nil {
		if errors.Is(err, shared.ErrMalformedBackup) {
			respondWithError(w, http.StatusBadRequest, "Backup file is not valid JSON.")
			return
		}
		logging.Log.Errorf("Backup import failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to import backup.")
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Backup imported."})
}

// ClearAll wipes every table. The body must repeat the literal
// confirmation string; anything else cancels with no effect.
func (h *Handlers) ClearAll(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Confirm string `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Confirm != clearAllToken {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Clear-all requires confirm=%q in the request body.", clearAllToken))
		return
	}

	if err := h.Backup.ClearAll(r.Context()); err != nil {
		logging.Log.Errorf("Clear-all failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to clear data.")
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "All data cleared."})
}
