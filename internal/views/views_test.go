package views

import (
	"testing"

	"stocksphere/internal/analytics"
	"stocksphere/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "₹0.00"},
		{"150", "₹150.00"},
		{"1200", "₹1,200.00"},
		{"67500", "₹67,500.00"},
		{"123456", "₹1,23,456.00"},
		{"1234567.5", "₹12,34,567.50"},
		{"99999999.999", "₹10,00,00,000.00"},
		{"-2500.25", "-₹2,500.25"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(decimal.RequireFromString(tt.amount)))
		})
	}
	assert.Equal(t, "₹75.50", FormatINRFloat(75.5))
}

func TestTones(t *testing.T) {
	assert.Equal(t, ToneSuccess, StatusTone(models.StatusInStock))
	assert.Equal(t, ToneWarning, StatusTone(models.StatusLowStock))
	assert.Equal(t, ToneDanger, StatusTone("Out of Stock"))

	assert.Equal(t, ToneSuccess, PerformanceTone(models.PerformanceExcellent))
	assert.Equal(t, ToneWarning, PerformanceTone(models.PerformanceGood))
	assert.Equal(t, ToneDanger, PerformanceTone(models.PerformanceAverage))
	assert.Equal(t, ToneDanger, PerformanceTone(models.PerformancePoor))
}

func TestInventoryRows(t *testing.T) {
	items := []models.InventoryItem{
		{ID: 2, Name: "Copper Wiring", SKU: "CW-102", Category: "Electrical", Quantity: 15, Price: 500, Unit: "m", Supplier: "ElectraLine", Status: models.StatusLowStock},
	}

	rows := InventoryRows(items)
	require.Len(t, rows, 1)
	assert.Equal(t, "15 m", rows[0].Stock)
	assert.Equal(t, "₹500.00", rows[0].Price)
	assert.Equal(t, Badge{Label: "Low Stock", Tone: ToneWarning}, rows[0].Status)

	assert.NotNil(t, InventoryRows(nil))
}

func TestSupplierRows(t *testing.T) {
	rows := SupplierRows([]models.Supplier{
		{ID: 1, Name: "TechCorp", Terms: "Net 30", Performance: models.PerformanceExcellent},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, Badge{Label: "Net 30", Tone: ToneSuccess}, rows[0].Terms)
	assert.Equal(t, ToneSuccess, rows[0].Performance.Tone)
}

func TestActivityRows_UnknownItem(t *testing.T) {
	items := []models.InventoryItem{{ID: 1, Name: "Industrial Valve"}}
	txns := []models.Transaction{
		{ID: 10, Type: models.TransactionInward, ItemID: 1, Quantity: 50, Date: "2026-02-15", Reason: "New Shipment"},
		{ID: 11, Type: models.TransactionOutward, ItemID: 99, Quantity: 5, Date: "2026-02-18", Reason: "Order"},
	}

	rows := ActivityRows(txns, items)
	require.Len(t, rows, 2)
	assert.Equal(t, "Inward: Industrial Valve", rows[0].Title)
	assert.True(t, rows[0].Inward)
	assert.Equal(t, "2026-02-15 • Qty: 50 • New Shipment", rows[0].Detail)
	assert.Equal(t, "Unknown", rows[1].ItemName)
	assert.Equal(t, "Outward: Unknown", rows[1].Title)
	assert.False(t, rows[1].Inward)
}

func TestNewDashboardView(t *testing.T) {
	v := NewDashboardView(&analytics.DashboardData{
		TotalProducts: 4,
		LowStockCount: 2,
		SupplierCount: 2,
		TotalValue:    decimal.NewFromInt(103900),
		RecentTransactions: []models.Transaction{
			{ID: 2, Type: models.TransactionOutward, ItemID: 2, Quantity: 5},
		},
		Inventory: []models.InventoryItem{{ID: 2, Name: "Copper Wiring"}},
	})

	assert.Equal(t, "4", v.Stats.TotalProducts)
	assert.Equal(t, "₹1,03,900.00", v.Stats.InventoryValue)
	require.Len(t, v.Activity, 1)
	assert.Equal(t, "Copper Wiring", v.Activity[0].ItemName)
}

func TestNewReportView(t *testing.T) {
	v := NewReportView(&analytics.ReportData{
		CategoryTotals: []analytics.CategoryTotal{{Category: "Tools", Quantity: 200}},
	})
	assert.Equal(t, []CategoryCard{{Category: "Tools", Quantity: "200"}}, v.Categories)
	assert.Empty(t, v.LowStock)
	assert.Equal(t, NoLowStockMessage, v.Message)

	v = NewReportView(&analytics.ReportData{
		LowStockItems: []models.InventoryItem{{Name: "Hydraulic Oil", Quantity: 8, Supplier: "ElectraLine", Status: models.StatusLowStock}},
	})
	require.Len(t, v.LowStock, 1)
	assert.Empty(t, v.Message)
	assert.Equal(t, ToneWarning, v.LowStock[0].Status.Tone)
}
