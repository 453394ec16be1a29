package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
)

// activityHandler serves the activity log of a book.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(activityService portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: activityService}
}

// registerActivityRoutes registers activity routes nested under a book.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)
	rg.GET("/activities", h.listActivities)
}

// listActivities godoc
// @Summary List book activity
// @Description Returns a page of activity entries, newest first.
// @Tags activities
// @Produce  json
// @Param   book_id path string true "Book ID"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 403 {object} map[string]string "Not a member of the book"
// @Security BearerAuth
// @Router /books/{book_id}/activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	resp, err := h.activityService.ListActivities(c.Request.Context(), memberID, c.Param("book_id"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
