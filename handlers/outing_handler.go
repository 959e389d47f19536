package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/middlewares"
	"github.com/victorrChoi/dalgubul/services"
)

type OutingHandler struct {
	outings *services.OutingService
}

func NewOutingHandler(outings *services.OutingService) *OutingHandler {
	return &OutingHandler{outings: outings}
}

// GET /admin/outings, GET /student/outings
func (h *OutingHandler) List(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	items, err := h.outings.List(sess)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /admin/outings, POST /student/outings — students always file for
// themselves with status 신청; admins pick student and status.
func (h *OutingHandler) Create(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	var in services.OutingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	o, err := h.outings.Create(sess, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

// POST /student/outings/:id/cancel — no-op when the target is gone or no
// longer cancellable; the client re-reads current state either way.
func (h *OutingHandler) Cancel(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := h.outings.Cancel(sess, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

type outingStatusReq struct {
	Status string `json:"status"`
}

// PUT /admin/outings/:id/status — in-place status edit.
func (h *OutingHandler) SetStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var req outingStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	o, err := h.outings.SetStatus(id, req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
