package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterAuthRoutes registers registration, login and token management.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)
		authGroup.POST("/logout", middleware.JWTAuth(), rt.handlers.Auth.Logout)
	}
}
