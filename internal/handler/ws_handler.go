// This file handles the WebSocket notification endpoint.
package handler

import (
	"your_chores_server/internal/gateway/notify"

	"github.com/gin-gonic/gin"
)

// WsHandler upgrades authenticated clients into the notify hub.
type WsHandler struct {
	hub *notify.Hub
}

// NewWsHandler creates a WsHandler.
func NewWsHandler(hub *notify.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect handles GET /ws. The JWT middleware has already identified
// the user.
func (h *WsHandler) Connect(c *gin.Context) {
	h.hub.Connect(c, callerUuid(c))
}
