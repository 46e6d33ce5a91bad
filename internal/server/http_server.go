// Package server builds the gin engine with middlewares and routes.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/config"
	"your_chores_server/internal/handler"
	"your_chores_server/internal/infrastructure/logger"
	"your_chores_server/internal/infrastructure/middleware"
	"your_chores_server/internal/router"
)

// Init creates the gin engine, wires logging, recovery and CORS, and
// registers the business routes.
func Init(handlers *handler.Handlers) *gin.Engine {
	// blank engine, middlewares are chosen explicitly
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	if conf := config.GetConfig(); conf.MainConfig.SslRedirect {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
