package handlers

import (
	"context"
	"fmt"
	"net/http"

	"stocksphere/internal/analytics"
	"stocksphere/internal/common"
	"stocksphere/internal/reports"
	"stocksphere/internal/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Summaries produces the dashboard and report aggregates
type Summaries interface {
	Dashboard(ctx context.Context) *analytics.DashboardData
	Report(ctx context.Context) *analytics.ReportData
}

// DashboardHandlers serves the dashboard and stock report
type DashboardHandlers struct {
	summaries Summaries
	log       *zap.Logger
}

func NewDashboardHandlers(summaries Summaries, log *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{summaries: summaries, log: log}
}

func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	data := h.summaries.Dashboard(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": data,
		"view":    views.NewDashboardView(data),
	})
}

func (h *DashboardHandlers) GetReport(c echo.Context) error {
	report := h.summaries.Report(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"report": report,
		"view":   views.NewReportView(report),
	})
}

// DownloadReportPDF handles GET /reports/pdf
func (h *DashboardHandlers) DownloadReportPDF(c echo.Context) error {
	report := h.summaries.Report(c.Request().Context())

	pdf, err := reports.RenderStockReportPDF(report)
	if err != nil {
		h.log.Error("rendering stock report failed", zap.Error(err))
		return common.SendServerError(c, "Failed to generate report")
	}

	filename := fmt.Sprintf("stock-report-%s.pdf", report.GeneratedAt.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
