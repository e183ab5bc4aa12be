package store

import (
	"context"
	"strings"

	"stocksphere/internal/models"
)

type SupplierInput struct {
	Name        string
	Contact     string
	Email       string
	Terms       string
	Performance models.Performance
}

type SupplierPatch struct {
	Name        *string
	Contact     *string
	Email       *string
	Terms       *string
	Performance *models.Performance
}

// CreateSupplier appends a supplier. Performance defaults to Good.
func (s *LocalStore) CreateSupplier(ctx context.Context, in SupplierInput) (models.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Supplier{}, invalid("name is required")
	}
	if in.Performance == "" {
		in.Performance = models.PerformanceGood
	}
	if !in.Performance.Valid() {
		return models.Supplier{}, invalid("unknown performance %q", in.Performance)
	}

	var created models.Supplier
	err := s.update(ctx, func(st *models.Store) error {
		created = models.Supplier{
			ID:          s.nextID(st),
			Name:        in.Name,
			Contact:     in.Contact,
			Email:       in.Email,
			Terms:       in.Terms,
			Performance: in.Performance,
		}
		st.Suppliers = append(st.Suppliers, created)
		return nil
	})
	if err != nil {
		return models.Supplier{}, err
	}
	return created, nil
}

func (s *LocalStore) GetSupplier(ctx context.Context, id int64) (models.Supplier, error) {
	st := s.Load(ctx)
	if i := st.FindSupplier(id); i >= 0 {
		return st.Suppliers[i], nil
	}
	return models.Supplier{}, ErrNotFound
}

// UpdateSupplier merges patch over the supplier. Inventory items naming the
// supplier are not renamed.
func (s *LocalStore) UpdateSupplier(ctx context.Context, id int64, patch SupplierPatch) (models.Supplier, error) {
	var updated models.Supplier
	err := s.update(ctx, func(st *models.Store) error {
		i := st.FindSupplier(id)
		if i < 0 {
			return ErrNotFound
		}

		sp := st.Suppliers[i]
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return invalid("name must not be empty")
			}
			sp.Name = *patch.Name
		}
		if patch.Contact != nil {
			sp.Contact = *patch.Contact
		}
		if patch.Email != nil {
			sp.Email = *patch.Email
		}
		if patch.Terms != nil {
			sp.Terms = *patch.Terms
		}
		if patch.Performance != nil {
			if !patch.Performance.Valid() {
				return invalid("unknown performance %q", *patch.Performance)
			}
			sp.Performance = *patch.Performance
		}

		st.Suppliers[i] = sp
		updated = sp
		return nil
	})
	if err != nil {
		return models.Supplier{}, err
	}
	return updated, nil
}

// DeleteSupplier removes the supplier; unknown ids are a no-op.
func (s *LocalStore) DeleteSupplier(ctx context.Context, id int64) error {
	return s.update(ctx, func(st *models.Store) error {
		i := st.FindSupplier(id)
		if i < 0 {
			return errUnchanged
		}
		st.Suppliers = append(st.Suppliers[:i], st.Suppliers[i+1:]...)
		return nil
	})
}
