package models

// Store is the whole persisted document. It is always read and written in full.
type Store struct {
	Inventory    []InventoryItem `json:"inventory"`
	Suppliers    []Supplier      `json:"suppliers"`
	Transactions []Transaction   `json:"transactions"`
}

// Clone returns a deep copy so callers can mutate without touching s.
func (s *Store) Clone() *Store {
	c := &Store{
		Inventory:    make([]InventoryItem, len(s.Inventory)),
		Suppliers:    make([]Supplier, len(s.Suppliers)),
		Transactions: make([]Transaction, len(s.Transactions)),
	}
	copy(c.Inventory, s.Inventory)
	copy(c.Suppliers, s.Suppliers)
	copy(c.Transactions, s.Transactions)
	return c
}

// Normalize replaces nil slices with empty ones and re-derives every item's
// status, so a stale stored status never leaks out.
func (s *Store) Normalize() {
	if s.Inventory == nil {
		s.Inventory = []InventoryItem{}
	}
	if s.Suppliers == nil {
		s.Suppliers = []Supplier{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	for i := range s.Inventory {
		s.Inventory[i].RefreshStatus()
	}
}

// MaxID returns the largest id used by any record in the store.
func (s *Store) MaxID() int64 {
	var highest int64
	for _, it := range s.Inventory {
		if it.ID > highest {
			highest = it.ID
		}
	}
	for _, sp := range s.Suppliers {
		if sp.ID > highest {
			highest = sp.ID
		}
	}
	for _, t := range s.Transactions {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}

// FindItem returns the index of the item with id, or -1.
func (s *Store) FindItem(id int64) int {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSupplier returns the index of the supplier with id, or -1.
func (s *Store) FindSupplier(id int64) int {
	for i := range s.Suppliers {
		if s.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}
