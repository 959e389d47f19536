package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/middlewares"
	"github.com/victorrChoi/dalgubul/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// GET /admin/payments, GET /student/payments
func (h *PaymentHandler) List(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	items, err := h.payments.List(sess)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /admin/payments
func (h *PaymentHandler) Create(c echo.Context) error {
	var in services.PaymentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p, err := h.payments.Create(in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
