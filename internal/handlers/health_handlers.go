package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 3 * time.Second

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	version string
	storage Pinger
	backups Pinger
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance. backups may be
// nil when snapshots are not configured.
func NewHealthHandlers(version string, storage Pinger, backups Pinger) *HealthHandlers {
	return &HealthHandlers{
		version: version,
		storage: storage,
		backups: backups,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck reports liveness
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status("healthy"))
}

// ReadinessCheck pings the storage backend and, when configured, the
// backup object store.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	health := h.status("ready")
	health.Services = make(map[string]string)

	statusCode := http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		health.Services["storage"] = "unhealthy"
		health.Status = "not ready"
		statusCode = http.StatusServiceUnavailable
	} else {
		health.Services["storage"] = "healthy"
	}

	if h.backups != nil {
		if err := h.backups.Ping(ctx); err != nil {
			health.Services["backups"] = "unhealthy"
			if health.Status == "ready" {
				health.Status = "degraded"
			}
		} else {
			health.Services["backups"] = "healthy"
		}
	}

	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) status(s string) *HealthStatus {
	return &HealthStatus{
		Status:    s,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Version:   h.version,
	}
}
