package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/classmate-be/internal/auth"
	"github.com/isdelr/classmate-be/internal/models"
	"github.com/isdelr/classmate-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ItemHandler handles the per-user goal, note and task collections. Saving
// any of them replaces the user's whole set.
type ItemHandler struct {
	service services.ItemServiceProvider
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service services.ItemServiceProvider) *ItemHandler {
	return &ItemHandler{service: service}
}

// SaveGoals replaces the authenticated user's goal set.
func (h *ItemHandler) SaveGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var goals []models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceGoals(user.ID, goals); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to save goals")
		http.Error(w, "Failed to save goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Goals saved successfully"})
}

// GetGoals lists the authenticated user's goals.
func (h *ItemHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	goals, err := h.service.ListGoals(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list goals")
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, goals)
}

// GetPerformance reports goal completion for the authenticated user.
func (h *ItemHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	perf, err := h.service.Performance(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to compute performance")
		http.Error(w, "Failed to compute performance", http.StatusInternalServerError)
		return
	}

	writeJSON(w, perf)
}

// SaveNotes replaces the authenticated user's note set.
func (h *ItemHandler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var notes []models.Note
	if err := json.NewDecoder(r.Body).Decode(&notes); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceNotes(user.ID, notes); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to save notes")
		http.Error(w, "Failed to save notes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Notes saved successfully"})
}

// GetNotes lists the authenticated user's notes.
func (h *ItemHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	notes, err := h.service.ListNotes(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list notes")
		http.Error(w, "Failed to list notes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, notes)
}

// SaveTasks replaces the authenticated user's task set.
func (h *ItemHandler) SaveTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var tasks []models.Task
	if err := json.NewDecoder(r.Body).Decode(&tasks); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceTasks(user.ID, tasks); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to save tasks")
		http.Error(w, "Failed to save tasks", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Tasks saved successfully"})
}

// GetTasks lists the authenticated user's tasks.
func (h *ItemHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	tasks, err := h.service.ListTasks(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list tasks")
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tasks)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
