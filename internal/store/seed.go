package store

import (
	"fmt"
	"os"

	"stocksphere/internal/models"
)

// LoadSeedFile reads a store document to use in place of SeedStore. The
// returned func hands out an independent copy on every call.
func LoadSeedFile(path string) (func() *models.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	st, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return func() *models.Store { return st.Clone() }, nil
}

// SeedStore returns the default document written on first run.
func SeedStore() *models.Store {
	s := &models.Store{
		Inventory: []models.InventoryItem{
			{ID: 1, Name: "Industrial Valve", SKU: "IV-001", Category: "Mechanical", Quantity: 50, Price: 1200, Unit: "pcs", Supplier: "TechCorp"},
			{ID: 2, Name: "Copper Wiring", SKU: "CW-102", Category: "Electrical", Quantity: 15, Price: 500, Unit: "m", Supplier: "ElectraLine"},
			{ID: 3, Name: "Safety Gloves", SKU: "SG-003", Category: "Tools", Quantity: 200, Price: 150, Unit: "pairs", Supplier: "TechCorp"},
			{ID: 4, Name: "Hydraulic Oil", SKU: "HO-004", Category: "Chemical", Quantity: 8, Price: 800, Unit: "L", Supplier: "ElectraLine"},
		},
		Suppliers: []models.Supplier{
			{ID: 1, Name: "TechCorp", Contact: "John Doe", Email: "john@techcorp.com", Terms: "Net 30", Performance: models.PerformanceExcellent},
			{ID: 2, Name: "ElectraLine", Contact: "Jane Smith", Email: "jane@electra.com", Terms: "Net 15", Performance: models.PerformanceGood},
		},
		Transactions: []models.Transaction{
			{ID: 1, Type: models.TransactionInward, ItemID: 1, Quantity: 50, Date: "2026-02-15", Reason: "New Shipment"},
			{ID: 2, Type: models.TransactionOutward, ItemID: 2, Quantity: 5, Date: "2026-02-18", Reason: "Order Fulfillment"},
		},
	}
	s.Normalize()
	return s
}
