package models

import "strings"

// LowStockThreshold is the quantity below which an item is reported as low stock.
const LowStockThreshold = 20

// StockStatus is derived from an item's quantity and never trusted as stored.
type StockStatus string

const (
	StatusInStock  StockStatus = "In Stock"
	StatusLowStock StockStatus = "Low Stock"
)

// DeriveStatus returns the status implied by quantity.
func DeriveStatus(quantity int) StockStatus {
	if quantity < LowStockThreshold {
		return StatusLowStock
	}
	return StatusInStock
}

// InventoryItem is a stocked article. Supplier holds the supplier's name, not an id.
type InventoryItem struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	SKU      string      `json:"sku"`
	Category string      `json:"category"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
	Unit     string      `json:"unit"`
	Supplier string      `json:"supplier"`
	Status   StockStatus `json:"status"`
}

// RefreshStatus recomputes Status from Quantity.
func (i *InventoryItem) RefreshStatus() {
	i.Status = DeriveStatus(i.Quantity)
}

// IsLowStock reports whether the item sits below LowStockThreshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity < LowStockThreshold
}

// Matches reports whether q occurs, case-insensitively, in the name, SKU,
// category or supplier. q must already be lower-cased.
func (i InventoryItem) Matches(q string) bool {
	return strings.Contains(strings.ToLower(i.Name), q) ||
		strings.Contains(strings.ToLower(i.SKU), q) ||
		strings.Contains(strings.ToLower(i.Category), q) ||
		strings.Contains(strings.ToLower(i.Supplier), q)
}
