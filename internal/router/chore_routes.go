package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterChoreRoutes registers the chore endpoints.
func (rt *Router) RegisterChoreRoutes(r *gin.Engine) {
	choreGroup := r.Group("/chores")
	choreGroup.Use(middleware.JWTAuth())
	{
		choreGroup.POST("/create", rt.handlers.Chore.CreateChore)
		choreGroup.POST("/complete", rt.handlers.Chore.CompleteChore)
		choreGroup.GET("/my", rt.handlers.Chore.GetMyChores)
		choreGroup.GET("/room/:room_id", rt.handlers.Chore.GetRoomChores)
	}
}
