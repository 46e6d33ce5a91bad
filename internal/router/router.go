// Package router registers the HTTP routes. The Router aggregates the
// handler instances and each module registers its own group.
package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/handler"
)

// Router holds the handler aggregate and registers all routes.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter creates a Router.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes registers every module's routes on the engine.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)
	rt.RegisterUserRoutes(r)
	rt.RegisterRoomRoutes(r)
	rt.RegisterChoreRoutes(r)
	rt.RegisterVersionRoutes(r)
	rt.RegisterWebSocketRoutes(r)
}
