// filepath: internal/api/handlers/settings_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/shared"
)

// GetSettings lists every stored setting.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.GetSettings()
	if err != nil {
		logging.Log.Errorf("Failed to list settings: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve settings.")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// GetSetting returns one setting by key. Unset known keys are 404;
// unknown keys are 400.
func (h *Handlers) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: key")
		return
	}

	value, err := h.Settings.GetSetting(key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Setting not set.")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, models.Setting{Key: key, Value: value})
}

// SetSetting stores one setting. The value kind must match the key.
func (h *Handlers) SetSetting(w http.ResponseWriter, r *http.Request) {
	var payload models.Setting
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logging.Log.Warnf("Failed to decode request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Key == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required field: key")
		return
	}

	if err := h.Settings.SetSetting(payload.Key, payload.Value); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, payload)
}
