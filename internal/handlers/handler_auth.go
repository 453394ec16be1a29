package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/rupeebook/rupeebook_backend/internal/middleware"
)

// authHandler handles login, token refresh and logout.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(authService portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: authService}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

// login godoc
// @Summary Log in with name and PIN
// @Description Verifies the member's PIN and returns an access/refresh token pair.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Wrong name or PIN"
// @Failure 429 {object} map[string]string "Account temporarily locked"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("member logged in",
		slog.String("member_id", resp.Member.MemberID))
	c.JSON(http.StatusOK, resp)
}

// refresh godoc
// @Summary Rotate a refresh token
// @Description Exchanges a valid refresh token for a fresh token pair. The presented token is revoked.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Log out
// @Description Revokes the presented refresh token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token body dto.LogoutRequest true "Refresh token to revoke"
// @Success 204 "Logged out"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.authService.Logout(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
