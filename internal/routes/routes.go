package routes

import (
	"gallery_backend/internal/handlers"
	"gallery_backend/internal/logger"
	"gallery_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.GigHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
		appHandlers.AgreementHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.MonitoringHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered", "count", len(ginRouter.Routes()))
}
