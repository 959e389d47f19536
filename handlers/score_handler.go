package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/middlewares"
	"github.com/victorrChoi/dalgubul/services"
)

type ScoreHandler struct {
	scores *services.ScoreService
}

func NewScoreHandler(scores *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// GET /admin/scores, GET /student/scores
func (h *ScoreHandler) List(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	items, err := h.scores.List(sess)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /admin/scores
func (h *ScoreHandler) Create(c echo.Context) error {
	var in services.ScoreInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	sc, err := h.scores.Create(in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, sc)
}

// GET /student/scores/totals — the 총 상점/총 벌점/순점수 line on the
// student dashboard.
func (h *ScoreHandler) MyTotals(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	t, err := h.scores.TotalsFor(sess.StudentID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
