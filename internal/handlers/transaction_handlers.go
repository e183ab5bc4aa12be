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

// TransactionStore is the store surface used by the transaction handlers
type TransactionStore interface {
	StoreReader
	RecordTransaction(ctx context.Context, in store.TransactionInput) (models.Transaction, error)
}

// TransactionHandlers handles stock movement HTTP requests
type TransactionHandlers struct {
	store TransactionStore
	log   *zap.Logger
}

func NewTransactionHandlers(store TransactionStore, log *zap.Logger) *TransactionHandlers {
	return &TransactionHandlers{store: store, log: log}
}

// ListTransactions returns the full log in recorded order. With recent=n it
// returns the last n newest first, rendered as activity rows.
func (h *TransactionHandlers) ListTransactions(c echo.Context) error {
	st := h.store.Load(c.Request().Context())

	if c.QueryParam("recent") == "" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"transactions": st.Transactions,
			"count":        len(st.Transactions),
		})
	}

	n, err := common.ParseOptionalInt(c.QueryParam("recent"), "recent", analytics.DefaultRecentLimit)
	if err != nil {
		return common.SendValidationError(c, "recent", err.Error())
	}
	recent := analytics.RecentTransactions(st.Transactions, n)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": recent,
		"activity":     views.ActivityRows(recent, st.Inventory),
		"count":        len(recent),
	})
}

// RecordTransactionRequest represents a stock movement payload
type RecordTransactionRequest struct {
	Type     models.TransactionType `json:"type"`
	ItemID   int64                  `json:"itemId"`
	Quantity int                    `json:"quantity"`
	Date     string                 `json:"date"`
	Reason   string                 `json:"reason"`
}

func (h *TransactionHandlers) RecordTransaction(c echo.Context) error {
	var req RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if field, err := validateOptional(
		stringField{"reason", &req.Reason},
	); err != nil {
		return common.SendValidationError(c, field, err.Error())
	}

	tx, err := h.store.RecordTransaction(c.Request().Context(), store.TransactionInput{
		Type:     req.Type,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Date:     req.Date,
		Reason:   req.Reason,
	})
	if err != nil {
		return storeError(c, h.log, err, "Item")
	}
	return c.JSON(http.StatusCreated, tx)
}
