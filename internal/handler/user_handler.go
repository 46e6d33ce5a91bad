// This file handles the profile API.
package handler

import (
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUserInfo handles GET /users/me.
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	info, err := h.userService.GetUserInfo(callerUuid(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, info)
}

// ChangeName handles POST /users/change-name.
func (h *UserHandler) ChangeName(c *gin.Context) {
	var req request.ChangeNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userService.ChangeName(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ChangePassword handles POST /users/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userService.ChangePassword(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
