package reports

import (
	"bytes"
	"testing"
	"time"

	"stocksphere/internal/analytics"
	"stocksphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStockReportPDF(t *testing.T) {
	tests := []struct {
		name   string
		report *analytics.ReportData
	}{
		{
			name: "with low stock",
			report: &analytics.ReportData{
				CategoryTotals: []analytics.CategoryTotal{{Category: "Mechanical", Quantity: 50}, {Category: "Électrique", Quantity: 15}},
				LowStockItems: []models.InventoryItem{
					{ID: 2, Name: "Copper Wiring", Quantity: 15, Supplier: "ElectraLine", Status: models.StatusLowStock},
				},
				GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "all well stocked",
			report: &analytics.ReportData{GeneratedAt: time.Now()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderStockReportPDF(tt.report)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.Greater(t, len(out), 500)
		})
	}
}
