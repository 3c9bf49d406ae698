// Package https_server builds the gin engine: middleware, static
// mounts and route registration.
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/config"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/logger"
	"github.com/Phadec/Harmony-Chat-sub000/internal/router"
)

// Init returns a configured engine. gin.New is used instead of
// gin.Default so logging and recovery go through zap.
func Init() *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS redirect middleware is available when the server terminates
	// TLS itself instead of sitting behind a proxy:
	// engine.Use(middleware.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	engine.Static("/static/avatars", config.GetConfig().StaticAvatarPath)
	engine.Static("/static/files", config.GetConfig().StaticFilePath)

	router.RegisterRoutes(engine)

	return engine
}
