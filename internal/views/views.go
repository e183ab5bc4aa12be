// Package views turns query results into display records. It produces data
// only; markup is the client's concern.
package views

import (
	"fmt"
	"strconv"

	"stocksphere/internal/analytics"
	"stocksphere/internal/models"
)

// Tone is the badge colour class of a status or performance label.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// unknownItem labels activity whose item no longer exists.
const unknownItem = "Unknown"

// NoLowStockMessage is shown by the report when nothing is under threshold.
const NoLowStockMessage = "All items are well stocked!"

func StatusTone(status models.StockStatus) Tone {
	switch status {
	case models.StatusInStock:
		return ToneSuccess
	case models.StatusLowStock:
		return ToneWarning
	default:
		return ToneDanger
	}
}

func PerformanceTone(p models.Performance) Tone {
	switch p {
	case models.PerformanceExcellent:
		return ToneSuccess
	case models.PerformanceGood:
		return ToneWarning
	default:
		return ToneDanger
	}
}

type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

type InventoryRow struct {
	ID       int64  `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    string `json:"stock"`
	Price    string `json:"price"`
	Supplier string `json:"supplier"`
	Status   Badge  `json:"status"`
}

type SupplierRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Terms       Badge  `json:"terms"`
	Performance Badge  `json:"performance"`
}

type ActivityRow struct {
	ID       int64                  `json:"id"`
	Type     models.TransactionType `json:"type"`
	Title    string                 `json:"title"`
	Detail   string                 `json:"detail"`
	Inward   bool                   `json:"inward"`
	ItemName string                 `json:"itemName"`
}

type CategoryCard struct {
	Category string `json:"category"`
	Quantity string `json:"quantity"`
}

type LowStockRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier"`
	Status   Badge  `json:"status"`
}

type StatCards struct {
	TotalProducts  string `json:"totalProducts"`
	LowStockCount  string `json:"lowStockCount"`
	SupplierCount  string `json:"supplierCount"`
	InventoryValue string `json:"inventoryValue"`
}

type DashboardView struct {
	Stats    StatCards     `json:"stats"`
	Activity []ActivityRow `json:"activity"`
}

type ReportView struct {
	Categories []CategoryCard `json:"categories"`
	LowStock   []LowStockRow  `json:"lowStock"`
	Message    string         `json:"message,omitempty"`
}

func InventoryRows(items []models.InventoryItem) []InventoryRow {
	rows := make([]InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, InventoryRow{
			ID:       item.ID,
			SKU:      item.SKU,
			Name:     item.Name,
			Category: item.Category,
			Stock:    fmt.Sprintf("%d %s", item.Quantity, item.Unit),
			Price:    FormatINRFloat(item.Price),
			Supplier: item.Supplier,
			Status:   Badge{Label: string(item.Status), Tone: StatusTone(item.Status)},
		})
	}
	return rows
}

func SupplierRows(suppliers []models.Supplier) []SupplierRow {
	rows := make([]SupplierRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, SupplierRow{
			ID:          s.ID,
			Name:        s.Name,
			Contact:     s.Contact,
			Email:       s.Email,
			Terms:       Badge{Label: s.Terms, Tone: ToneSuccess},
			Performance: Badge{Label: string(s.Performance), Tone: PerformanceTone(s.Performance)},
		})
	}
	return rows
}

// ActivityRows renders transactions against the inventory they reference.
// A transaction whose item was deleted is labelled Unknown.
func ActivityRows(txns []models.Transaction, items []models.InventoryItem) []ActivityRow {
	names := make(map[int64]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	rows := make([]ActivityRow, 0, len(txns))
	for _, t := range txns {
		name, ok := names[t.ItemID]
		if !ok {
			name = unknownItem
		}
		rows = append(rows, ActivityRow{
			ID:       t.ID,
			Type:     t.Type,
			Title:    fmt.Sprintf("%s: %s", t.Type, name),
			Detail:   fmt.Sprintf("%s • Qty: %d • %s", t.Date, t.Quantity, t.Reason),
			Inward:   t.Type == models.TransactionInward,
			ItemName: name,
		})
	}
	return rows
}

func CategoryCards(totals []analytics.CategoryTotal) []CategoryCard {
	cards := make([]CategoryCard, 0, len(totals))
	for _, t := range totals {
		cards = append(cards, CategoryCard{Category: t.Category, Quantity: strconv.Itoa(t.Quantity)})
	}
	return cards
}

func NewDashboardView(d *analytics.DashboardData) DashboardView {
	return DashboardView{
		Stats: StatCards{
			TotalProducts:  strconv.Itoa(d.TotalProducts),
			LowStockCount:  strconv.Itoa(d.LowStockCount),
			SupplierCount:  strconv.Itoa(d.SupplierCount),
			InventoryValue: FormatINR(d.TotalValue),
		},
		Activity: ActivityRows(d.RecentTransactions, d.Inventory),
	}
}

func NewReportView(r *analytics.ReportData) ReportView {
	v := ReportView{
		Categories: CategoryCards(r.CategoryTotals),
		LowStock:   make([]LowStockRow, 0, len(r.LowStockItems)),
	}
	for _, item := range r.LowStockItems {
		v.LowStock = append(v.LowStock, LowStockRow{
			Name:     item.Name,
			Quantity: item.Quantity,
			Supplier: item.Supplier,
			Status:   Badge{Label: string(item.Status), Tone: StatusTone(item.Status)},
		})
	}
	if len(v.LowStock) == 0 {
		v.Message = NoLowStockMessage
	}
	return v
}
