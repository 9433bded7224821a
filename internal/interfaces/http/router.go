package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/middleware"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/routes"

	_ "github.com/smartcheckin/smartcheckin/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.Metrics())

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api")
	api.Use(middleware.SecurityHeaders())

	routes.SetupCheckinRoutes(api, &routes.CheckinRouteConfig{
		PasskeyHandler:     c.hdlrs.passkeyHandler,
		CheckinHandler:     c.hdlrs.checkinHandler,
		ReservationHandler: c.hdlrs.reservationHandler,
		AdminMiddleware:    c.adminMiddleware,
	})

	routes.SetupMaintenanceRoutes(api, &routes.MaintenanceRouteConfig{
		MaintenanceHandler: c.hdlrs.maintenanceHandler,
		CronSecret:         c.cfg.Maintenance.CronSecret,
		Logger:             c.log.With("middleware", "cron"),
	})
}

// Run starts the HTTP server
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}
