package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// bookHandler handles HTTP requests on a specific book.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

func newBookHandler(bookService portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bookService}
}

// registerBookRoutes registers book routes and nests the ledger, report,
// activity and import routes under a specific book.
func registerBookRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBookHandler(services.BookSvc)

	bookSpecific := rg.Group("/books/:book_id")
	{
		bookSpecific.GET("", h.getBook)
		bookSpecific.PUT("", h.updateBook)
		bookSpecific.DELETE("", h.deleteBook)
		bookSpecific.POST("/move", h.moveBook)

		bookMembers := bookSpecific.Group("/members")
		{
			bookMembers.GET("", h.listBookMembers)
			bookMembers.POST("", h.upsertBookMember)
			bookMembers.DELETE("/:member_id", h.removeBookMember)
		}

		registerTransactionRoutes(bookSpecific, services.TransactionSvc)
		registerReportRoutes(bookSpecific, services.ReportSvc)
		registerActivityRoutes(bookSpecific, services.ActivitySvc)
		registerImportRoutes(bookSpecific, services.ImportSvc)
	}
}

// getBook godoc
// @Summary Get a book
// @Description Returns the book and records the caller's visit time.
// @Tags books
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 403 {object} map[string]string "Not a member of the book"
// @Failure 404 {object} map[string]string "Book not found"
// @Security BearerAuth
// @Router /books/{book_id} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.bookService.GetBook(c.Request.Context(), memberID, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateBook godoc
// @Summary Update a book
// @Description Renames a book or replaces its category lists. Requires admin.
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /books/{book_id} [put]
func (h *bookHandler) updateBook(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.bookService.UpdateBook(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteBook godoc
// @Summary Delete a book
// @Description Deletes the book with all its entries. Owner only.
// @Tags books
// @Param   book_id path string true "Book ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /books/{book_id} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.bookService.DeleteBook(c.Request.Context(), memberID, c.Param("book_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// moveBook godoc
// @Summary Move a book to another business
// @Description Moves the book to another business of the same owner. Owner only.
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   move body dto.MoveBookRequest true "Target business"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} map[string]string "Target business belongs to a different owner"
// @Security BearerAuth
// @Router /books/{book_id}/move [post]
func (h *bookHandler) moveBook(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.MoveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.bookService.MoveBook(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listBookMembers godoc
// @Summary List book members
// @Tags books
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Success 200 {object} dto.ListBookMembersResponse
// @Security BearerAuth
// @Router /books/{book_id}/members [get]
func (h *bookHandler) listBookMembers(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.bookService.ListBookMembers(c.Request.Context(), memberID, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// upsertBookMember godoc
// @Summary Add or update a book member
// @Description Adds a member to the book or changes their role. Requires admin.
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   member body dto.UpsertBookMemberRequest true "Member and role"
// @Success 204 "Saved"
// @Failure 400 {object} map[string]string "Cannot demote the book owner"
// @Security BearerAuth
// @Router /books/{book_id}/members [post]
func (h *bookHandler) upsertBookMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpsertBookMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.bookService.UpsertBookMember(c.Request.Context(), memberID, c.Param("book_id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// removeBookMember godoc
// @Summary Remove a book member
// @Description Removes a member from the book. The owner cannot be removed.
// @Tags books
// @Param   book_id path string true "Book ID"
// @Param   member_id path string true "Member ID"
// @Success 204 "Removed"
// @Failure 400 {object} map[string]string "Cannot remove the book owner"
// @Security BearerAuth
// @Router /books/{book_id}/members/{member_id} [delete]
func (h *bookHandler) removeBookMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.bookService.RemoveBookMember(c.Request.Context(), memberID, c.Param("book_id"), c.Param("member_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
