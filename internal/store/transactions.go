package store

import (
	"context"
	"math"
	"time"

	"stocksphere/internal/models"
)

type TransactionInput struct {
	Type     models.TransactionType
	ItemID   int64
	Quantity int
	Date     string // YYYY-MM-DD, today when empty
	Reason   string
}

// RecordTransaction appends a stock movement. When the referenced item
// exists its quantity is adjusted and its status re-derived; a dangling
// ItemID is recorded as is.
func (s *LocalStore) RecordTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if !in.Type.Valid() {
		return models.Transaction{}, invalid("type must be Inward or Outward")
	}
	if in.Quantity <= 0 {
		return models.Transaction{}, invalid("quantity must be positive")
	}
	if in.Date != "" {
		if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
			return models.Transaction{}, invalid("date must be YYYY-MM-DD")
		}
	}

	var recorded models.Transaction
	err := s.update(ctx, func(st *models.Store) error {
		if i := st.FindItem(in.ItemID); i >= 0 {
			item := &st.Inventory[i]
			switch in.Type {
			case models.TransactionInward:
				if in.Quantity > math.MaxInt-item.Quantity {
					return invalid("quantity would overflow the stock of item %d", item.ID)
				}
				item.Quantity += in.Quantity
			case models.TransactionOutward:
				if in.Quantity > item.Quantity {
					return ErrInsufficientStock
				}
				item.Quantity -= in.Quantity
			}
			item.RefreshStatus()
		}

		date := in.Date
		if date == "" {
			date = s.now().Format(models.DateLayout)
		}
		recorded = models.Transaction{
			ID:       s.nextID(st),
			Type:     in.Type,
			ItemID:   in.ItemID,
			Quantity: in.Quantity,
			Date:     date,
			Reason:   in.Reason,
		}
		st.Transactions = append(st.Transactions, recorded)
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return recorded, nil
}
