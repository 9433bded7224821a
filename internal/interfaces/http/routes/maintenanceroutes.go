package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/handlers"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/middleware"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// MaintenanceRouteConfig holds dependencies for externally triggered jobs.
type MaintenanceRouteConfig struct {
	MaintenanceHandler *handlers.MaintenanceHandler
	CronSecret         string
	Logger             logger.Interface
}

// SetupMaintenanceRoutes configures the cron endpoints under api.
func SetupMaintenanceRoutes(api *gin.RouterGroup, cfg *MaintenanceRouteConfig) {
	cron := api.Group("/cron")
	cron.Use(middleware.CronAuth(cfg.CronSecret, cfg.Logger))
	{
		cron.GET("/cleanup-challenges", cfg.MaintenanceHandler.CleanupChallenges)
	}
}
