package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterVersionRoutes registers the version endpoints. Reading is
// public, publishing needs a logged-in caller.
func (rt *Router) RegisterVersionRoutes(r *gin.Engine) {
	r.GET("/version", rt.handlers.Version.GetAppVersion)
	r.POST("/version", middleware.JWTAuth(), rt.handlers.Version.PublishVersion)
}
