package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterUserRoutes registers the profile endpoints.
func (rt *Router) RegisterUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/me", rt.handlers.User.GetUserInfo)
		userGroup.POST("/change-name", rt.handlers.User.ChangeName)
		userGroup.POST("/change-password", rt.handlers.User.ChangePassword)
	}
}
