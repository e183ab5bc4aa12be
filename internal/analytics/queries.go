package analytics

import (
	"strings"

	"stocksphere/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is how many transactions the activity feed shows.
const DefaultRecentLimit = 5

// CategoryTotal is the summed quantity of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// TotalValue sums price x quantity over items.
func TotalValue(items []models.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func LowStockCount(items []models.InventoryItem) int {
	count := 0
	for _, item := range items {
		if item.IsLowStock() {
			count++
		}
	}
	return count
}

// LowStockItems returns the items under the threshold in input order.
func LowStockItems(items []models.InventoryItem) []models.InventoryItem {
	low := make([]models.InventoryItem, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

// Search filters items by a case-insensitive substring of name, sku, category
// or supplier. Only the empty query returns every item; whitespace is part
// of the needle.
func Search(items []models.InventoryItem, query string) []models.InventoryItem {
	q := strings.ToLower(query)
	result := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if q == "" || item.Matches(q) {
			result = append(result, item)
		}
	}
	return result
}

// RecentTransactions returns the last n transactions, newest first.
func RecentTransactions(txns []models.Transaction, n int) []models.Transaction {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	start := len(txns) - n
	if start < 0 {
		start = 0
	}
	recent := make([]models.Transaction, 0, len(txns)-start)
	for i := len(txns) - 1; i >= start; i-- {
		recent = append(recent, txns[i])
	}
	return recent
}

// GroupQuantityByCategory sums quantities per category, keeping categories in
// the order they first appear.
func GroupQuantityByCategory(items []models.InventoryItem) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(totals)
			index[item.Category] = i
			totals = append(totals, CategoryTotal{Category: item.Category})
		}
		totals[i].Quantity += item.Quantity
	}
	return totals
}
