package server

import (
	"github.com/gin-gonic/gin"
	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/internal/adapters/http/server/handler"
	"github.com/standingsfeed/standings-service/internal/infra/http/server/middleware"
)

type Handlers struct {
	LeagueHandler *handler.LeagueHandler
	CacheHandler  *handler.CacheHandler
}

func NewServer(cfg config.Server, handlers Handlers) (*gin.Engine, error) {
	r := gin.Default()

	registerRoutes(r, cfg, handlers)

	return r, nil
}

func registerRoutes(r *gin.Engine, cfg config.Server, handlers Handlers) {
	v1 := r.Group("/v1")
	apiKey := v1.Group("").
		Use(middleware.APIKeyAuth(cfg.App.HashedAPIKeys, cfg.App.SecretKey)).
		Use(middleware.Timeout(cfg.App.Timeout))

	apiKey.GET("/leagues/:league", handlers.LeagueHandler.Get)
	apiKey.GET("/cache/stats", handlers.CacheHandler.Stats)
	apiKey.POST("/cache/cleanup", handlers.CacheHandler.Cleanup)
	apiKey.DELETE("/cache", handlers.CacheHandler.Clear)
}
