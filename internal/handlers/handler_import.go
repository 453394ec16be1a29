package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
)

// importHandler accepts CSV uploads for bulk entry loading.
type importHandler struct {
	importService portssvc.ImportSvcFacade
}

func newImportHandler(importService portssvc.ImportSvcFacade) *importHandler {
	return &importHandler{importService: importService}
}

// registerImportRoutes registers the import route nested under a book.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := newImportHandler(importService)
	rg.POST("/import", h.importCSV)
}

// importCSV godoc
// @Summary Import entries from CSV
// @Description Parses an export-compatible CSV upload and inserts the valid rows. Bad rows are reported, not fatal. Requires admin.
// @Tags import
// @Accept  multipart/form-data
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportResultResponse
// @Failure 400 {object} map[string]string "Missing file or unrecognized layout"
// @Failure 403 {object} map[string]string "Requires admin"
// @Security BearerAuth
// @Router /books/{book_id}/import [post]
func (h *importHandler) importCSV(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing csv file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	resp, err := h.importService.ImportCSV(c.Request.Context(), memberID, c.Param("book_id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
