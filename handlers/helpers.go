package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/services"
	"github.com/victorrChoi/dalgubul/store"
)

// writeServiceError maps service error kinds onto the JSON envelopes the
// frontend expects.
func writeServiceError(c echo.Context, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": ve.Fields})
	case errors.Is(err, services.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE_KEY"})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, services.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	case errors.Is(err, store.ErrConflict):
		// someone saved since our load; the client must reload and retry
		return c.JSON(http.StatusConflict, map[string]any{"error": "CONFLICT"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_FAILED"})
	}
}
