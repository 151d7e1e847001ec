package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"haulhub/internal/access"
	"haulhub/internal/handler"
	"haulhub/internal/middleware"
	"haulhub/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	HaulHandler   *handler.HaulHandler
	OrderHandler  *handler.OrderHandler
	TruckHandler  *handler.TruckHandler
	ReportHandler *handler.ReportHandler
	AuthService   *service.AuthService
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	requireAuth := middleware.RequireAuth(deps.AuthService)
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
			auth.GET("/me", requireAuth, deps.AuthHandler.Me)
		}

		// Public catalog and ordering routes. The order form is
		// customer-facing and needs no account.
		v1.GET("/materials", deps.OrderHandler.Materials)
		v1.GET("/truck-types", deps.OrderHandler.TruckTypes)
		v1.POST("/orders/quote", deps.OrderHandler.Quote)
		v1.POST("/orders", deps.OrderHandler.Create)

		// Order management routes.
		orders := v1.Group("/orders", requireAuth)
		{
			orders.GET("", deps.OrderHandler.List)
			orders.GET("/:id", deps.OrderHandler.Get)
			orders.PATCH("/:id/status", deps.OrderHandler.UpdateStatus)
		}

		// Haul routes. Any authenticated role may work with hauls.
		hauls := v1.Group("/hauls", requireAuth)
		{
			hauls.GET("", deps.HaulHandler.List)
			hauls.POST("", deps.HaulHandler.Create)
			hauls.GET("/:id", deps.HaulHandler.Get)
			hauls.GET("/:id/status", deps.HaulHandler.GetStatus)
			hauls.PUT("/:id", deps.HaulHandler.Update)
			hauls.DELETE("/:id", deps.HaulHandler.Delete)
			hauls.POST("/:id/assign", deps.HaulHandler.Assign)
			hauls.POST("/:id/start", deps.HaulHandler.Start)
			hauls.POST("/:id/complete", deps.HaulHandler.Complete)
			hauls.POST("/:id/cancel", deps.HaulHandler.Cancel)
		}

		// Truck routes. Admins and dispatchers only.
		trucks := v1.Group("/trucks", requireAuth, middleware.RequireResource(access.ResourceTrucks))
		{
			trucks.GET("", deps.TruckHandler.List)
			trucks.POST("", deps.TruckHandler.Create)
			trucks.GET("/:id", deps.TruckHandler.Get)
			trucks.PUT("/:id", deps.TruckHandler.Update)
			trucks.DELETE("/:id", deps.TruckHandler.Delete)
		}

		// Report routes. Admins only.
		reports := v1.Group("/reports", requireAuth, middleware.RequireResource(access.ResourceReports))
		{
			reports.GET("/summary", deps.ReportHandler.Summary)
		}
	}

	return router
}
