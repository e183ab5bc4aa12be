package analytics

import (
	"context"
	"time"

	"stocksphere/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StoreLoader is the read side of the local store.
type StoreLoader interface {
	Load(ctx context.Context) *models.Store
}

// DashboardData summarizes the store for the landing page
type DashboardData struct {
	TotalProducts      int                    `json:"totalProducts"`
	LowStockCount      int                    `json:"lowStockCount"`
	SupplierCount      int                    `json:"supplierCount"`
	TotalValue         decimal.Decimal        `json:"totalValue"`
	RecentTransactions []models.Transaction   `json:"recentTransactions"`
	Inventory          []models.InventoryItem `json:"-"`
	GeneratedAt        time.Time              `json:"generatedAt"`
}

// ReportData backs the stock report and its PDF export
type ReportData struct {
	CategoryTotals []CategoryTotal        `json:"categoryTotals"`
	LowStockItems  []models.InventoryItem `json:"lowStockItems"`
	GeneratedAt    time.Time              `json:"generatedAt"`
}

// AnalyticsService computes summaries from a fresh load on every call.
type AnalyticsService struct {
	store StoreLoader
	log   *zap.Logger
	now   func() time.Time
}

func NewAnalyticsService(store StoreLoader, log *zap.Logger) *AnalyticsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyticsService{store: store, log: log, now: time.Now}
}

func (a *AnalyticsService) Dashboard(ctx context.Context) *DashboardData {
	st := a.store.Load(ctx)

	data := &DashboardData{
		TotalProducts:      len(st.Inventory),
		LowStockCount:      LowStockCount(st.Inventory),
		SupplierCount:      len(st.Suppliers),
		TotalValue:         TotalValue(st.Inventory),
		RecentTransactions: RecentTransactions(st.Transactions, DefaultRecentLimit),
		Inventory:          st.Inventory,
		GeneratedAt:        a.now(),
	}
	a.log.Debug("dashboard computed",
		zap.Int("products", data.TotalProducts),
		zap.Int("low_stock", data.LowStockCount),
		zap.String("total_value", data.TotalValue.StringFixed(2)))
	return data
}

func (a *AnalyticsService) Report(ctx context.Context) *ReportData {
	st := a.store.Load(ctx)
	return &ReportData{
		CategoryTotals: GroupQuantityByCategory(st.Inventory),
		LowStockItems:  LowStockItems(st.Inventory),
		GeneratedAt:    a.now(),
	}
}
