// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/cart"
	"tixmarket/internal/catalog"
	"tixmarket/internal/requestlog"
	"tixmarket/internal/settings"
	"tixmarket/internal/shared/config"
	"tixmarket/internal/shared/database"
	"tixmarket/pkg/metrics"
)

const serviceName = "Ticket Marketplace API"

// Services are the feature services the router exposes. Metrics may be nil.
type Services struct {
	Settings settings.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Logs     requestlog.Service
	Metrics  *metrics.Registry
}

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	services  Services
	startedAt time.Time
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, services Services) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		services:  services,
		startedAt: time.Now(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.services.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(r.services.Metrics.Handler()))
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		settings.SetupSettingsRoutes(api, settings.NewController(r.services.Settings))
		catalog.SetupCatalogRoutes(api, catalog.NewController(r.services.Catalog))
		cart.SetupCartRoutes(api, cart.NewController(r.services.Cart))
		requestlog.SetupLogRoutes(api, requestlog.NewController(r.services.Logs))
	}
}

// setupHealthRoutes sets up health check and service descriptor routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		uptime := time.Since(r.startedAt).Seconds()
		if r.db != nil {
			if err := r.db.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now().UTC(),
					"uptime":    uptime,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"timestamp":   time.Now().UTC(),
			"environment": r.config.GinMode,
			"uptime":      uptime,
		})
	})

	base := r.config.GetAPIBasePath()
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        serviceName,
			"version":     "1.0.0",
			"status":      "running",
			"environment": r.config.GinMode,
			"endpoints": gin.H{
				"health":    "/health",
				"config":    base + "/config",
				"events":    base + "/events",
				"scenarios": base + "/scenarios",
				"cart":      base + "/cart",
				"logs":      base + "/logs",
			},
			"documentation": "See /health for service status",
		})
	})
}
