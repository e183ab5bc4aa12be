package handlers

import (
	"stocksphere/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Routes groups every handler the API serves.
type Routes struct {
	Health       *HealthHandlers
	Auth         *AuthHandlers
	Inventory    *InventoryHandlers
	Suppliers    *SupplierHandlers
	Transactions *TransactionHandlers
	Dashboard    *DashboardHandlers
	Jobs         *JobHandlers
}

// Register mounts the API on e. protect guards everything except health
// checks and login.
func (r *Routes) Register(e *echo.Echo, version *middleware.VersionMiddleware, audit *middleware.AuditMiddleware, protect []echo.MiddlewareFunc) {
	// Health endpoints (no auth required)
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)

	v1 := e.Group("/v1")
	v1.Use(version.VersionHeader("v1"))

	v1.POST("/auth/login", r.Auth.Login)

	protected := v1.Group("", protect...)
	protected.Use(audit.AuditMutations())

	protected.POST("/auth/logout", r.Auth.Logout)
	protected.GET("/auth/me", r.Auth.Me)

	protected.GET("/inventory", r.Inventory.ListInventory)
	protected.POST("/inventory", r.Inventory.CreateItem)
	protected.GET("/inventory/:id", r.Inventory.GetItem)
	protected.PUT("/inventory/:id", r.Inventory.UpdateItem)
	protected.DELETE("/inventory/:id", r.Inventory.DeleteItem)

	protected.GET("/suppliers", r.Suppliers.ListSuppliers)
	protected.POST("/suppliers", r.Suppliers.CreateSupplier)
	protected.GET("/suppliers/:id", r.Suppliers.GetSupplier)
	protected.PUT("/suppliers/:id", r.Suppliers.UpdateSupplier)
	protected.DELETE("/suppliers/:id", r.Suppliers.DeleteSupplier)

	protected.GET("/transactions", r.Transactions.ListTransactions)
	protected.POST("/transactions", r.Transactions.RecordTransaction)

	protected.GET("/dashboard", r.Dashboard.GetDashboard)
	protected.GET("/reports", r.Dashboard.GetReport)
	protected.GET("/reports/pdf", r.Dashboard.DownloadReportPDF)

	protected.GET("/alerts", r.Jobs.GetInventoryAlerts)
	protected.GET("/jobs", r.Jobs.ListJobs)
	protected.POST("/jobs/:name/run", r.Jobs.RunJob)
}
