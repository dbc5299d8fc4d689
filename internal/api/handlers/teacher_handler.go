// filepath: internal/api/handlers/teacher_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/services"
	"teachermonitor/internal/shared"
)

// GetTeachers lists the full teacher directory, sorted by name.
func (h *Handlers) GetTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.Teachers.GetTeachers()
	if err != nil {
		logging.Log.Errorf("Failed to list teachers: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve teachers.")
		return
	}
	respondWithJSON(w, http.StatusOK, teachers)
}

// GetTeacher returns one teacher by id.
func (h *Handlers) GetTeacher(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}

	teacher, err := h.Teachers.GetTeacher(id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Teacher not found.")
			return
		}
		logging.Log.Errorf("Failed to get teacher %s: %v", id, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve teacher.")
		return
	}
	respondWithJSON(w, http.StatusOK, teacher)
}

// SaveTeacher upserts a teacher. A request without an id creates one.
func (h *Handlers) SaveTeacher(w http.ResponseWriter, r *http.Request) {
	var payload models.Teacher
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logging.Log.Warnf("Failed to decode request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	creating := payload.ID == ""
	saved, err := h.Teachers.SaveTeacher(payload)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			respondWithJSON(w, http.StatusBadRequest, ValidationResponse{Error: "Validation failed.", Fields: verr.Fields})
			return
		}
		logging.Log.Errorf("Failed to save teacher: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save teacher.")
		return
	}

	code := http.StatusOK
	if creating {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, saved)
}

// DeleteTeacher removes a teacher by id. Reports keep the old name;
// they reference teachers by name string, not by id.
func (h *Handlers) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}

	if err := h.Teachers.DeleteTeacher(id); err != nil {
		logging.Log.Errorf("Failed to delete teacher %s: %v", id, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete teacher.")
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Teacher deleted."})
}
