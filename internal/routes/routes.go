package routes

import (
	"disccount_backend/internal/handlers"
	"disccount_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts the API under /api/v1 and the operational endpoints
// at the root.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	health *handlers.HealthHandler,
) {
	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api)

	ginRouter.GET("/health", health.Check)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
