package main

import (
	"github.com/gin-gonic/gin"

	"syscatalog/internal/middleware"
	"syscatalog/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Health probes
	r.GET("/", svc.healthHandler.Root)
	r.GET("/health", svc.healthHandler.CheckHealth)

	// Rate limiter for the model-backed chat route
	chatLimiter := middleware.NewRateLimiter(2, 5)

	api := r.Group("/api")
	{
		api.POST("/systems", svc.systemHandler.Create)
		api.GET("/systems", svc.systemHandler.List)
		api.GET("/systems/:system_id", svc.systemHandler.GetByID)
		api.PUT("/systems/:system_id", svc.systemHandler.Update)
		api.DELETE("/systems/:system_id", svc.systemHandler.Delete)

		api.POST("/chat", chatLimiter.Middleware(), svc.chatHandler.Chat)
	}
}
