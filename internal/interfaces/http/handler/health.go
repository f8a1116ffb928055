package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database connection is alive.
type Pinger interface {
	Ping() error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db        Pinger
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// Health reports service and database health. Registered at the engine root,
// outside the versioned API group.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	database := "ok"
	overall := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			database = "error"
			overall = "unhealthy"
		}
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"database":   database,
		"go_version": runtime.Version(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
