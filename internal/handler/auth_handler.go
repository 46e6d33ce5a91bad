// This file handles registration, login and token refresh.
package handler

import (
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.authService.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.authService.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Refresh handles POST /auth/refresh.
// The presented refresh token must match the active session; a login on
// another device supersedes it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.authService.Refresh(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(callerUuid(c)); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
