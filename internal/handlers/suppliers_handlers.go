package handlers

import (
	"context"
	"net/http"

	"stocksphere/internal/common"
	"stocksphere/internal/models"
	"stocksphere/internal/store"
	"stocksphere/internal/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierStore is the store surface used by the supplier handlers
type SupplierStore interface {
	StoreReader
	CreateSupplier(ctx context.Context, in store.SupplierInput) (models.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (models.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, patch store.SupplierPatch) (models.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

// SupplierHandlers handles supplier-related HTTP requests
type SupplierHandlers struct {
	store SupplierStore
	log   *zap.Logger
}

// NewSupplierHandlers creates a new supplier handlers instance
func NewSupplierHandlers(store SupplierStore, log *zap.Logger) *SupplierHandlers {
	return &SupplierHandlers{store: store, log: log}
}

func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	suppliers := h.store.Load(c.Request().Context()).Suppliers

	if c.QueryParam("view") == "table" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"rows":  views.SupplierRows(suppliers),
			"count": len(suppliers),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// CreateSupplierRequest represents the supplier creation request payload
type CreateSupplierRequest struct {
	Name        string             `json:"name"`
	Contact     string             `json:"contact"`
	Email       string             `json:"email"`
	Terms       string             `json:"terms"`
	Performance models.Performance `json:"performance"`
}

func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var req CreateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if field, err := validateOptional(
		stringField{"name", &req.Name},
		stringField{"contact", &req.Contact},
		stringField{"email", &req.Email},
		stringField{"terms", &req.Terms},
	); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	supplier, err := h.store.CreateSupplier(c.Request().Context(), store.SupplierInput{
		Name:        req.Name,
		Contact:     req.Contact,
		Email:       req.Email,
		Terms:       req.Terms,
		Performance: req.Performance,
	})
	if err != nil {
		return storeError(c, h.log, err, "Supplier")
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	id, err := parseID(c, "Supplier")
	if err != nil {
		return err
	}

	supplier, err := h.store.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.log, err, "Supplier")
	}
	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplierRequest represents the supplier update request payload
type UpdateSupplierRequest struct {
	Name        *string             `json:"name"`
	Contact     *string             `json:"contact"`
	Email       *string             `json:"email"`
	Terms       *string             `json:"terms"`
	Performance *models.Performance `json:"performance"`
}

func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	id, err := parseID(c, "Supplier")
	if err != nil {
		return err
	}

	var req UpdateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if field, err := validateOptional(
		stringField{"name", req.Name},
		stringField{"contact", req.Contact},
		stringField{"email", req.Email},
		stringField{"terms", req.Terms},
	); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	supplier, err := h.store.UpdateSupplier(c.Request().Context(), id, store.SupplierPatch{
		Name:        req.Name,
		Contact:     req.Contact,
		Email:       req.Email,
		Terms:       req.Terms,
		Performance: req.Performance,
	})
	if err != nil {
		return storeError(c, h.log, err, "Supplier")
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier. Items naming it keep the name.
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	id, err := parseID(c, "Supplier")
	if err != nil {
		return err
	}

	if err := h.store.DeleteSupplier(c.Request().Context(), id); err != nil {
		return storeError(c, h.log, err, "Supplier")
	}
	return c.NoContent(http.StatusNoContent)
}
