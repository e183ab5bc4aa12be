package handlers

import (
	"context"
	"errors"
	"net/http"

	"stocksphere/internal/common"
	"stocksphere/internal/jobs"
	"stocksphere/internal/jobs/background"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobRunner is the scheduler surface exposed over HTTP
type JobRunner interface {
	RunNow(name string) error
	GetJobStatus() map[string]interface{}
}

// AlertChecker scans the store for low stock
type AlertChecker interface {
	CheckLowStock(ctx context.Context) []jobs.InventoryAlert
	LogLowStockAlerts(alerts []jobs.InventoryAlert)
}

type JobHandlers struct {
	scheduler JobRunner
	alerts    AlertChecker
	log       *zap.Logger
}

func NewJobHandlers(scheduler JobRunner, alerts AlertChecker, log *zap.Logger) *JobHandlers {
	return &JobHandlers{scheduler: scheduler, alerts: alerts, log: log}
}

// ListJobs returns the registered background jobs
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}

// RunJob queues a registered job for immediate execution
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.scheduler.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return common.SendNotFoundError(c, "Job")
		}
		h.log.Error("failed to trigger job", zap.String("job", name), zap.Error(err))
		return common.SendServerError(c, "Failed to trigger job")
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Job triggered",
		"job":     name,
	})
}

// GetInventoryAlerts runs the low-stock scan on demand
func (h *JobHandlers) GetInventoryAlerts(c echo.Context) error {
	alerts := h.alerts.CheckLowStock(c.Request().Context())
	h.alerts.LogLowStockAlerts(alerts)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
