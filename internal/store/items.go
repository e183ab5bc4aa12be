package store

import (
	"context"
	"math"
	"strings"

	"stocksphere/internal/models"
)

const (
	defaultUnit        = "pcs"
	noSupplier         = "N/A"
	initialStockReason = "Initial Stock"
)

// ItemInput carries the fields of a new inventory item. Status is derived.
type ItemInput struct {
	Name     string
	SKU      string
	Category string
	Quantity int
	Price    float64
	Unit     string
	Supplier string
}

// ItemPatch holds optional replacements; nil fields are left untouched.
type ItemPatch struct {
	Name     *string
	SKU      *string
	Category *string
	Quantity *int
	Price    *float64
	Unit     *string
	Supplier *string
}

func validateQuantityPrice(quantity int, price float64) error {
	if quantity < 0 {
		return invalid("quantity must not be negative")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return invalid("price must be a non-negative number")
	}
	return nil
}

// CreateItem appends a new item and, when enabled, an Inward transaction for
// its opening quantity.
func (s *LocalStore) CreateItem(ctx context.Context, in ItemInput) (models.InventoryItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.InventoryItem{}, invalid("name is required")
	}
	if err := validateQuantityPrice(in.Quantity, in.Price); err != nil {
		return models.InventoryItem{}, err
	}

	var created models.InventoryItem
	err := s.update(ctx, func(st *models.Store) error {
		item := models.InventoryItem{
			ID:       s.nextID(st),
			Name:     in.Name,
			SKU:      in.SKU,
			Category: in.Category,
			Quantity: in.Quantity,
			Price:    in.Price,
			Unit:     in.Unit,
			Supplier: in.Supplier,
		}
		if item.Unit == "" {
			item.Unit = defaultUnit
		}
		if item.Supplier == "" {
			item.Supplier = noSupplier
			if len(st.Suppliers) > 0 {
				item.Supplier = st.Suppliers[0].Name
			}
		}
		item.RefreshStatus()
		st.Inventory = append(st.Inventory, item)

		if s.recordInitialStock && item.Quantity > 0 {
			st.Transactions = append(st.Transactions, models.Transaction{
				ID:       s.nextID(st),
				Type:     models.TransactionInward,
				ItemID:   item.ID,
				Quantity: item.Quantity,
				Date:     s.now().Format(models.DateLayout),
				Reason:   initialStockReason,
			})
		}

		created = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}
	return created, nil
}

// GetItem looks an item up by id.
func (s *LocalStore) GetItem(ctx context.Context, id int64) (models.InventoryItem, error) {
	st := s.Load(ctx)
	if i := st.FindItem(id); i >= 0 {
		return st.Inventory[i], nil
	}
	return models.InventoryItem{}, ErrNotFound
}

// UpdateItem merges patch over the item and re-derives its status. A missing
// id fails with ErrNotFound and writes nothing.
func (s *LocalStore) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (models.InventoryItem, error) {
	var updated models.InventoryItem
	err := s.update(ctx, func(st *models.Store) error {
		i := st.FindItem(id)
		if i < 0 {
			return ErrNotFound
		}

		item := st.Inventory[i]
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return invalid("name must not be empty")
			}
			item.Name = *patch.Name
		}
		if patch.SKU != nil {
			item.SKU = *patch.SKU
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.Unit != nil {
			item.Unit = *patch.Unit
		}
		if patch.Supplier != nil {
			item.Supplier = *patch.Supplier
		}
		if err := validateQuantityPrice(item.Quantity, item.Price); err != nil {
			return err
		}
		item.RefreshStatus()

		st.Inventory[i] = item
		updated = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}
	return updated, nil
}

// DeleteItem removes the item. Unknown ids are a no-op. Transactions that
// reference the item are kept.
func (s *LocalStore) DeleteItem(ctx context.Context, id int64) error {
	return s.update(ctx, func(st *models.Store) error {
		i := st.FindItem(id)
		if i < 0 {
			return errUnchanged
		}
		st.Inventory = append(st.Inventory[:i], st.Inventory[i+1:]...)
		return nil
	})
}
