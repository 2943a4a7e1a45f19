package handlers

import (
	"context"
	"net/http"

	"github.com/perfhelf/FXview/internal/scheduler"
	"github.com/perfhelf/FXview/pkg/database"
)

// HealthChecker reports database health; *database.DB implements it
type HealthChecker interface {
	HealthCheck(ctx context.Context) database.HealthStatus
}

// StatsProvider exposes scheduler statistics
type StatsProvider interface {
	Stats() map[string]scheduler.JobStats
}

// SystemHandler serves health and job status
type SystemHandler struct {
	db    HealthChecker
	stats StatsProvider
}

// NewSystemHandler creates a new system handler. db and stats may be nil.
func NewSystemHandler(db HealthChecker, stats StatsProvider) *SystemHandler {
	return &SystemHandler{db: db, stats: stats}
}

// Health returns service health, including the database when configured
// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":  "ok",
		"service": "godview-api",
	}
	status := http.StatusOK

	if h.db != nil {
		dbHealth := h.db.HealthCheck(r.Context())
		body["database"] = dbHealth
		if !dbHealth.Healthy {
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, status, body)
}

// Jobs returns scheduler statistics
// GET /api/jobs
func (h *SystemHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		respondJSON(w, http.StatusOK, map[string]scheduler.JobStats{})
		return
	}
	respondJSON(w, http.StatusOK, h.stats.Stats())
}
