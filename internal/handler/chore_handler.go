// This file handles the chore API.
package handler

import (
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChoreHandler serves the chore endpoints.
type ChoreHandler struct {
	choreService service.ChoreService
}

// NewChoreHandler creates a ChoreHandler.
func NewChoreHandler(choreService service.ChoreService) *ChoreHandler {
	return &ChoreHandler{choreService: choreService}
}

// CreateChore handles POST /chores/create.
func (h *ChoreHandler) CreateChore(c *gin.Context) {
	var req request.CreateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	chore, err := h.choreService.CreateChore(callerUuid(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, chore)
}

// CompleteChore handles POST /chores/complete.
func (h *ChoreHandler) CompleteChore(c *gin.Context) {
	var req request.CompleteChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	chore, err := h.choreService.CompleteChore(callerUuid(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, chore)
}

// GetMyChores handles GET /chores/my.
func (h *ChoreHandler) GetMyChores(c *gin.Context) {
	chores, err := h.choreService.GetMyChores(callerUuid(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, chores)
}

// GetRoomChores handles GET /chores/room/:room_id.
func (h *ChoreHandler) GetRoomChores(c *gin.Context) {
	roomId, err := parseRoomId(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	chores, err := h.choreService.GetRoomChores(callerUuid(c), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, chores)
}
