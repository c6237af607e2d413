package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db          *sql.DB
	environment string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, environment string) *HealthHandler {
	return &HealthHandler{db: db, environment: environment}
}

// Check handles the health probe: a database ping plus environment info.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "Error",
			"database": "Disconnected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "OK",
		"database":    "Connected",
		"environment": h.environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
