package jobs

import (
	"context"

	"stocksphere/internal/analytics"
	"stocksphere/internal/models"

	"go.uber.org/zap"
)

// StoreLoader is the read side of the local store.
type StoreLoader interface {
	Load(ctx context.Context) *models.Store
}

type LowStockAlertService struct {
	store StoreLoader
	log   *zap.Logger
}

type InventoryAlert struct {
	ItemID       int64  `json:"itemId"`
	ItemName     string `json:"itemName"`
	SKU          string `json:"sku"`
	Supplier     string `json:"supplier"`
	CurrentStock int    `json:"currentStock"`
	Threshold    int    `json:"threshold"`
}

func NewLowStockAlertService(store StoreLoader, log *zap.Logger) *LowStockAlertService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LowStockAlertService{store: store, log: log.Named("alerts")}
}

// CheckLowStock returns an alert for every item under the low stock threshold.
func (a *LowStockAlertService) CheckLowStock(ctx context.Context) []InventoryAlert {
	low := analytics.LowStockItems(a.store.Load(ctx).Inventory)

	alerts := make([]InventoryAlert, 0, len(low))
	for _, item := range low {
		alerts = append(alerts, InventoryAlert{
			ItemID:       item.ID,
			ItemName:     item.Name,
			SKU:          item.SKU,
			Supplier:     item.Supplier,
			CurrentStock: item.Quantity,
			Threshold:    models.LowStockThreshold,
		})
	}
	return alerts
}

func (a *LowStockAlertService) LogLowStockAlerts(alerts []InventoryAlert) {
	if len(alerts) == 0 {
		a.log.Debug("no low stock alerts")
		return
	}

	a.log.Warn("items below stock threshold", zap.Int("count", len(alerts)))
	for _, alert := range alerts {
		a.log.Warn("low stock",
			zap.Int64("item_id", alert.ItemID),
			zap.String("item", alert.ItemName),
			zap.String("sku", alert.SKU),
			zap.String("supplier", alert.Supplier),
			zap.Int("quantity", alert.CurrentStock),
			zap.Int("threshold", alert.Threshold))
	}
}

// ScheduledLowStockCheck is the body of the periodic alerts job
func (a *LowStockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	a.LogLowStockAlerts(a.CheckLowStock(ctx))
	return nil
}
