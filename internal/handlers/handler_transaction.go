package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// transactionHandler handles HTTP requests for cash entries of a book.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: transactionService}
}

// registerTransactionRoutes registers the ledger routes nested under a book.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listLedger)
		transactions.POST("", h.createTransaction)
		transactions.PUT("/:transaction_id", h.updateTransaction)
		transactions.POST("/delete", h.deleteTransactions)
		transactions.DELETE("", h.deleteAllTransactions)
		transactions.POST("/copy", h.copyTransactions)
		transactions.POST("/move", h.moveTransactions)
	}
}

// listLedger godoc
// @Summary List the book ledger
// @Description Returns the filtered entries newest first with running balances and totals over the filtered subset. Absent filters are inclusive.
// @Tags transactions
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   type query string false "Entry direction" Enums(all, in, out)
// @Param   category query []string false "Categories to include"
// @Param   subcategory query []string false "Subcategories to include"
// @Param   member query []string false "Member IDs to include"
// @Param   dateFrom query string false "Inclusive start date (yyyy-MM-dd)"
// @Param   dateTo query string false "Inclusive end date (yyyy-MM-dd)"
// @Param   search query string false "Matches remark substrings or amount digits"
// @Success 200 {object} dto.LedgerResponse
// @Failure 403 {object} map[string]string "Not a member of the book"
// @Security BearerAuth
// @Router /books/{book_id}/transactions [get]
func (h *transactionHandler) listLedger(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var query dto.LedgerFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.transactionService.ListLedger(c.Request.Context(), memberID, c.Param("book_id"), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createTransaction godoc
// @Summary Record a cash entry
// @Description Adds a cash-in or cash-out entry. Data operators are subject to their backdating policy.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   entry body dto.CreateTransactionRequest true "Entry details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Viewers cannot write"
// @Security BearerAuth
// @Router /books/{book_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.transactionService.CreateTransaction(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// updateTransaction godoc
// @Summary Edit a cash entry
// @Description Edits an entry, re-applying write policy and balance delta.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   entry body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Entry belongs to another member"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /books/{book_id}/transactions/{transaction_id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.transactionService.UpdateTransaction(c.Request.Context(), memberID, c.Param("book_id"), c.Param("transaction_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransactions godoc
// @Summary Delete cash entries
// @Description Deletes a set of entries and reverses their balance effect.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   entries body dto.DeleteTransactionsRequest true "Transaction IDs"
// @Success 200 {object} dto.DeleteTransactionsResponse
// @Failure 404 {object} map[string]string "One or more entries not found"
// @Security BearerAuth
// @Router /books/{book_id}/transactions/delete [post]
func (h *transactionHandler) deleteTransactions(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.DeleteTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.transactionService.DeleteTransactions(c.Request.Context(), memberID, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteAllTransactions godoc
// @Summary Delete every entry in the book
// @Description Wipes the ledger and resets the running balance. Owner only.
// @Tags transactions
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Success 200 {object} dto.DeleteTransactionsResponse
// @Failure 403 {object} map[string]string "Owner only"
// @Security BearerAuth
// @Router /books/{book_id}/transactions [delete]
func (h *transactionHandler) deleteAllTransactions(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.transactionService.DeleteAllTransactions(c.Request.Context(), memberID, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// copyTransactions godoc
// @Summary Copy entries to another book
// @Description Duplicates entries into another book the caller can administer.
// @Tags transactions
// @Accept  json
// @Param   book_id path string true "Book ID"
// @Param   transfer body dto.TransferTransactionsRequest true "Entries and target book"
// @Success 204 "Copied"
// @Failure 400 {object} map[string]string "Target book is the source book"
// @Security BearerAuth
// @Router /books/{book_id}/transactions/copy [post]
func (h *transactionHandler) copyTransactions(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.TransferTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.transactionService.CopyTransactions(c.Request.Context(), memberID, c.Param("book_id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// moveTransactions godoc
// @Summary Move entries to another book
// @Description Relocates entries to another book, adjusting both balances.
// @Tags transactions
// @Accept  json
// @Param   book_id path string true "Book ID"
// @Param   transfer body dto.TransferTransactionsRequest true "Entries and target book"
// @Success 204 "Moved"
// @Failure 400 {object} map[string]string "Target book is the source book"
// @Security BearerAuth
// @Router /books/{book_id}/transactions/move [post]
func (h *transactionHandler) moveTransactions(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.TransferTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.transactionService.MoveTransactions(c.Request.Context(), memberID, c.Param("book_id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
