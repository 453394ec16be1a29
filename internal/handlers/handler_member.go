package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// memberHandler handles HTTP requests related to members.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
}

func newMemberHandler(memberService portssvc.MemberSvcFacade) *memberHandler {
	return &memberHandler{memberService: memberService}
}

// registerMemberRoutes registers routes for member management.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade) {
	h := newMemberHandler(memberService)
	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/:member_id", h.getMember)
		members.PUT("/:member_id", h.updateMember)
		members.PUT("/:member_id/data-operator-settings", h.updateDataOperatorSettings)
		members.DELETE("/:member_id", h.deleteMember)
	}
}

// createMember godoc
// @Summary Create a member
// @Description Registers a new member under the caller's owner scope.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Caller is not a manager"
// @Failure 409 {object} map[string]string "Name already taken"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.memberService.CreateMember(c.Request.Context(), memberID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listMembers godoc
// @Summary List members
// @Description Lists all members in the caller's owner scope.
// @Tags members
// @Produce  json
// @Success 200 {object} dto.ListMembersResponse
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.memberService.ListMembers(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getMember godoc
// @Summary Get a member
// @Tags members
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /members/{member_id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.memberService.GetMember(c.Request.Context(), memberID, c.Param("member_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateMember godoc
// @Summary Update a member
// @Description Updates name, PIN or role. Role changes require a manager.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   member body dto.UpdateMemberRequest true "Fields to update"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/{member_id} [put]
func (h *memberHandler) updateMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.memberService.UpdateMember(c.Request.Context(), memberID, c.Param("member_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateDataOperatorSettings godoc
// @Summary Update data-operator settings
// @Description Replaces the restrictions applied when the member acts as a data operator.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member_id path string true "Member ID"
// @Param   settings body dto.UpdateDataOperatorSettingsRequest true "Settings"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Member is not a data operator"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/{member_id}/data-operator-settings [put]
func (h *memberHandler) updateDataOperatorSettings(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateDataOperatorSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.memberService.UpdateDataOperatorSettings(c.Request.Context(), memberID, c.Param("member_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteMember godoc
// @Summary Delete a member
// @Tags members
// @Param   member_id path string true "Member ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Security BearerAuth
// @Router /members/{member_id} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.memberService.DeleteMember(c.Request.Context(), memberID, c.Param("member_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
