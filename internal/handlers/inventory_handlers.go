package handlers

import (
	"context"
	"net/http"

	"stocksphere/internal/analytics"
	"stocksphere/internal/common"
	"stocksphere/internal/models"
	"stocksphere/internal/store"
	"stocksphere/internal/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InventoryStore is the store surface used by the inventory handlers
type InventoryStore interface {
	StoreReader
	CreateItem(ctx context.Context, in store.ItemInput) (models.InventoryItem, error)
	GetItem(ctx context.Context, id int64) (models.InventoryItem, error)
	UpdateItem(ctx context.Context, id int64, patch store.ItemPatch) (models.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// InventoryHandlers handles inventory-related HTTP requests
type InventoryHandlers struct {
	store InventoryStore
	log   *zap.Logger
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(store InventoryStore, log *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{store: store, log: log}
}

// ListInventory returns every item, filtered by the optional q search term.
// view=table returns display rows instead of raw items.
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	st := h.store.Load(c.Request().Context())
	items := analytics.Search(st.Inventory, c.QueryParam("q"))

	if c.QueryParam("view") == "table" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"rows":  views.InventoryRows(items),
			"count": len(items),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// CreateItemRequest represents the item creation request payload
type CreateItemRequest struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	Supplier string  `json:"supplier"`
}

func (h *InventoryHandlers) CreateItem(c echo.Context) error {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if field, err := validateOptional(
		stringField{"name", &req.Name},
		stringField{"sku", &req.SKU},
		stringField{"category", &req.Category},
		stringField{"unit", &req.Unit},
		stringField{"supplier", &req.Supplier},
	); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	item, err := h.store.CreateItem(c.Request().Context(), store.ItemInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    req.Price,
		Unit:     req.Unit,
		Supplier: req.Supplier,
	})
	if err != nil {
		return storeError(c, h.log, err, "Item")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandlers) GetItem(c echo.Context) error {
	id, err := parseID(c, "Item")
	if err != nil {
		return err
	}

	item, err := h.store.GetItem(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.log, err, "Item")
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItemRequest represents the item update request payload. A status
// field in the body is ignored; status always follows quantity.
type UpdateItemRequest struct {
	Name     *string  `json:"name"`
	SKU      *string  `json:"sku"`
	Category *string  `json:"category"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Unit     *string  `json:"unit"`
	Supplier *string  `json:"supplier"`
}

func (h *InventoryHandlers) UpdateItem(c echo.Context) error {
	id, err := parseID(c, "Item")
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if field, err := validateOptional(
		stringField{"name", req.Name},
		stringField{"sku", req.SKU},
		stringField{"category", req.Category},
		stringField{"unit", req.Unit},
		stringField{"supplier", req.Supplier},
	); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	item, err := h.store.UpdateItem(c.Request().Context(), id, store.ItemPatch{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    req.Price,
		Unit:     req.Unit,
		Supplier: req.Supplier,
	})
	if err != nil {
		return storeError(c, h.log, err, "Item")
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item. Deleting an unknown id still succeeds.
func (h *InventoryHandlers) DeleteItem(c echo.Context) error {
	id, err := parseID(c, "Item")
	if err != nil {
		return err
	}

	if err := h.store.DeleteItem(c.Request().Context(), id); err != nil {
		return storeError(c, h.log, err, "Item")
	}
	return c.NoContent(http.StatusNoContent)
}
