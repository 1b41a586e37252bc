package handlers

import (
	"net/http"

	"github.com/isdelr/classmate-be/internal/monitoring"
)

// HealthHandler reports server status and database connectivity.
type HealthHandler struct {
	monitor *monitoring.HealthMonitor
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(monitor *monitoring.HealthMonitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Get handles the health check request.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	database := "Disconnected"
	if h.monitor.Healthy() {
		database = "Connected"
	}

	writeJSON(w, map[string]string{
		"status":   "OK",
		"database": database,
	})
}
