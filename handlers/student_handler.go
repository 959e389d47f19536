package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/middlewares"
	"github.com/victorrChoi/dalgubul/services"
)

type StudentHandler struct {
	students *services.StudentService
}

func NewStudentHandler(students *services.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// GET /admin/students
func (h *StudentHandler) List(c echo.Context) error {
	items, err := h.students.List()
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /admin/students
func (h *StudentHandler) Create(c echo.Context) error {
	var in services.StudentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	st, err := h.students.Create(in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, st)
}

// PUT /admin/students/:student_no — keyed by the current 학번; the payload
// may carry a new one.
func (h *StudentHandler) Update(c echo.Context) error {
	var in services.StudentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	st, err := h.students.Update(c.Param("student_no"), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// DELETE /admin/students/:id?cascade=true — cascade also removes the
// student's outing/score/payment rows; without it they stay as orphans.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	cascade := c.QueryParam("cascade") == "true"
	if err := h.students.Delete(id, cascade); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /student/me — the logged-in student's own record.
func (h *StudentHandler) Me(c echo.Context) error {
	sess, ok := middlewares.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "NO_SESSION"})
	}
	st, err := h.students.Get(sess.StudentID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
