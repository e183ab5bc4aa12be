package handlers

import (
	"context"
	"errors"
	"net/http"

	"stocksphere/internal/common"
	"stocksphere/internal/models"
	"stocksphere/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxFieldLength = 200

// StoreReader is the read side of the local store shared by every handler.
type StoreReader interface {
	Load(ctx context.Context) *models.Store
}

// storeError translates store errors into the standard error envelope.
func storeError(c echo.Context, log *zap.Logger, err error, resource string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, store.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", err.Error(), nil))
	case errors.Is(err, store.ErrInsufficientStock):
		return common.SendConflictError(c, "Insufficient stock for outward transaction")
	case errors.Is(err, store.ErrStorageUnavailable):
		log.Error("storage unavailable", zap.String("resource", resource), zap.Error(err))
		return common.SendUnavailableError(c, "Storage is unavailable, changes were not saved")
	default:
		log.Error("unexpected store error", zap.String("resource", resource), zap.Error(err))
		return common.SendServerError(c, "Internal server error")
	}
}

// parseID reads the :id path parameter. The returned error is an
// *echo.HTTPError carrying the standard envelope.
func parseID(c echo.Context, resource string) (int64, error) {
	id, err := common.ParseID(c.Param("id"), resource+" ID")
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest,
			common.CreateErrorResponse("VALIDATION_ERROR", "Validation failed", map[string]string{"id": err.Error()}))
	}
	return id, nil
}

type stringField struct {
	name  string
	value *string
}

// validateOptional checks fields in order and reports the first one that is
// too long.
func validateOptional(fields ...stringField) (string, error) {
	for _, f := range fields {
		if err := common.ValidateOptionalString(f.value, f.name, maxFieldLength); err != nil {
			return f.name, err
		}
	}
	return "", nil
}
