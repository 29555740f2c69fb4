package handler

import (
	"github.com/assetops/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, token refresh and the current session
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @ID           login
// @Summary      Log in
// @Description  Authenticates by email and password. tenant_code is required when the email exists in several tenants.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Credentials"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      423 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /user/auth [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input identity.LoginInput
	if !h.BindJSON(c, &input) {
		return
	}
	input.IP = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @ID           refreshToken
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshInput true "Refresh token"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /user/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identity.RefreshInput
	if !h.BindJSON(c, &input) {
		return
	}
	result, err := h.authService.Refresh(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @ID           logout
// @Summary      Log out
// @Description  Revokes the access token of the request
// @Tags         auth
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /user/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Me godoc
// @ID           getCurrentSession
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[identity.MeResult]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /user/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.authService.Me(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangePassword godoc
// @ID           changePassword
// @Summary      Change password
// @Description  Changes the caller's password and revokes every token issued before
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.ChangePasswordInput true "Old and new password"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /user/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input identity.ChangePasswordInput
	if !h.BindJSON(c, &input) {
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}
