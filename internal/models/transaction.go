package models

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TransactionInward  TransactionType = "Inward"
	TransactionOutward TransactionType = "Outward"
)

// Valid reports whether t is Inward or Outward.
func (t TransactionType) Valid() bool {
	return t == TransactionInward || t == TransactionOutward
}

// DateLayout is the calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// Transaction records a stock movement. ItemID is a soft reference and may
// point at an item that no longer exists.
type Transaction struct {
	ID       int64           `json:"id"`
	Type     TransactionType `json:"type"`
	ItemID   int64           `json:"itemId"`
	Quantity int             `json:"quantity"`
	Date     string          `json:"date"`
	Reason   string          `json:"reason"`
}
