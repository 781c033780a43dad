package handlers

import (
	"net/http"

	"bracket-pool-go/database"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.MongoDB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.MongoDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health returns 200 when the database is reachable, 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.TestConnection(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
