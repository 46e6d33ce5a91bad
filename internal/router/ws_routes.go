package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterWebSocketRoutes registers the notification socket.
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", middleware.JWTAuth(), rt.handlers.Ws.Connect)
}
