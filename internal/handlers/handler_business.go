package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// businessHandler handles HTTP requests related to businesses.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
	bookService     portssvc.BookSvcFacade
}

func newBusinessHandler(businessService portssvc.BusinessSvcFacade, bookService portssvc.BookSvcFacade) *businessHandler {
	return &businessHandler{businessService: businessService, bookService: bookService}
}

// registerBusinessRoutes registers business routes, with book creation and
// listing nested under a specific business.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade, bookService portssvc.BookSvcFacade) {
	h := newBusinessHandler(businessService, bookService)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.PUT("/reorder", h.reorderBusinesses)
	}

	businessSpecific := rg.Group("/businesses/:business_id")
	{
		businessSpecific.GET("", h.getBusiness)
		businessSpecific.PUT("", h.updateBusiness)
		businessSpecific.DELETE("", h.deleteBusiness)

		books := businessSpecific.Group("/books")
		{
			books.POST("", h.createBook)
			books.GET("", h.listBooks)
		}
	}
}

// createBusiness godoc
// @Summary Create a business
// @Tags businesses
// @Accept  json
// @Produce  json
// @Param   business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.businessService.CreateBusiness(c.Request.Context(), memberID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listBusinesses godoc
// @Summary List businesses
// @Description Lists the caller's businesses in display order.
// @Tags businesses
// @Produce  json
// @Success 200 {object} dto.ListBusinessesResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.businessService.ListBusinesses(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reorderBusinesses godoc
// @Summary Reorder businesses
// @Description Sets the display order. Every business of the caller must appear exactly once.
// @Tags businesses
// @Accept  json
// @Produce  json
// @Param   order body dto.ReorderBusinessesRequest true "Ordered business IDs"
// @Success 200 {object} dto.ListBusinessesResponse
// @Failure 400 {object} map[string]string "Invalid order"
// @Security BearerAuth
// @Router /businesses/reorder [put]
func (h *businessHandler) reorderBusinesses(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.ReorderBusinessesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.businessService.ReorderBusinesses(c.Request.Context(), memberID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBusiness godoc
// @Summary Get a business
// @Tags businesses
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{business_id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.businessService.GetBusiness(c.Request.Context(), memberID, c.Param("business_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateBusiness godoc
// @Summary Update a business
// @Tags businesses
// @Accept  json
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   business body dto.UpdateBusinessRequest true "Fields to update"
// @Success 200 {object} dto.BusinessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /businesses/{business_id} [put]
func (h *businessHandler) updateBusiness(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.businessService.UpdateBusiness(c.Request.Context(), memberID, c.Param("business_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteBusiness godoc
// @Summary Delete a business
// @Description Deletes an empty business. Businesses still holding books are rejected.
// @Tags businesses
// @Param   business_id path string true "Business ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Business still contains books"
// @Security BearerAuth
// @Router /businesses/{business_id} [delete]
func (h *businessHandler) deleteBusiness(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.businessService.DeleteBusiness(c.Request.Context(), memberID, c.Param("business_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createBook godoc
// @Summary Create a book
// @Description Creates a cash book inside a business the caller owns.
// @Tags books
// @Accept  json
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Param   book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /businesses/{business_id}/books [post]
func (h *businessHandler) createBook(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.bookService.CreateBook(c.Request.Context(), memberID, c.Param("business_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listBooks godoc
// @Summary List books in a business
// @Tags books
// @Produce  json
// @Param   business_id path string true "Business ID"
// @Success 200 {object} dto.ListBooksResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/books [get]
func (h *businessHandler) listBooks(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.bookService.ListBooks(c.Request.Context(), memberID, c.Param("business_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
