package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/services"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /admin/report — the five-sheet workbook as a download.
func (h *ReportHandler) Download(c echo.Context) error {
	data, err := h.reports.Build()
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, data)
}
