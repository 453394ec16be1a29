package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// reportHandler handles report generation and export for a book.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(reportService portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: reportService}
}

// registerReportRoutes registers report routes nested under a book.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)
	reports := rg.Group("/reports")
	{
		reports.POST("", h.generateReport)
		reports.POST("/export/csv", h.exportCSV)
		reports.POST("/export/sheet", h.exportSheet)
	}
}

// generateReport godoc
// @Summary Generate a report
// @Description Runs the requested report over the book's entries with the given filters. Reports are recomputed on every call and never stored.
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   report body dto.GenerateReportRequest true "Report type and filters"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Unknown report type"
// @Failure 403 {object} map[string]string "Reports hidden for this member"
// @Security BearerAuth
// @Router /books/{book_id}/reports [post]
func (h *reportHandler) generateReport(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.reportService.GenerateReport(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportCSV godoc
// @Summary Download a report as CSV
// @Description Renders the report as a CSV attachment with export-compatible columns.
// @Tags reports
// @Accept  json
// @Produce  text/csv
// @Param   book_id path string true "Book ID"
// @Param   report body dto.GenerateReportRequest true "Report type and filters"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} map[string]string "Unknown report type"
// @Security BearerAuth
// @Router /books/{book_id}/reports/export/csv [post]
func (h *reportHandler) exportCSV(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	data, filename, err := h.reportService.ExportCSV(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// exportSheet godoc
// @Summary Export a report to Google Sheets
// @Description Writes the report to a new spreadsheet and returns its URL.
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   report body dto.GenerateReportRequest true "Report type and filters"
// @Success 200 {object} map[string]string "Spreadsheet URL"
// @Failure 400 {object} map[string]string "Sheet export not configured"
// @Security BearerAuth
// @Router /books/{book_id}/reports/export/sheet [post]
func (h *reportHandler) exportSheet(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	url, err := h.reportService.ExportToSheet(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
