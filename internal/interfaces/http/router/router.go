package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/auth"
	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/logger"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/handler"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/middleware"
)

// Dependencies holds everything the router needs to wire up routes
type Dependencies struct {
	Logger          *zap.Logger
	JWTService      *auth.JWTService
	SystemHandler   *handler.SystemHandler
	CustomerHandler *handler.CustomerHandler
	ProductHandler  *handler.ProductHandler
	PurchaseHandler *handler.PurchaseHandler
}

// New builds the gin engine with middleware and all API routes registered
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: deps.JWTService,
		SkipPaths:  []string{"/health", "/ready"},
		Logger:     deps.Logger,
	}))

	engine.GET("/health", deps.SystemHandler.Health)
	engine.GET("/ready", deps.SystemHandler.Ready)

	api := engine.Group("/api/v1")

	customers := api.Group("/customers")
	{
		customers.POST("", deps.CustomerHandler.Create)
		customers.GET("", deps.CustomerHandler.List)
		customers.GET("/:id", deps.CustomerHandler.GetByID)
		customers.PUT("/:id", deps.CustomerHandler.Update)
		customers.POST("/:id/activate", deps.CustomerHandler.Activate)
		// Deactivation, not deletion; purchase history stays intact
		customers.DELETE("/:id", deps.CustomerHandler.Deactivate)
	}

	products := api.Group("/products")
	{
		products.POST("", deps.ProductHandler.Create)
		products.GET("", deps.ProductHandler.List)
		products.POST("/stock/bulk", deps.ProductHandler.BulkSetStock)
		products.GET("/:id", deps.ProductHandler.GetByID)
		products.PUT("/:id", deps.ProductHandler.Update)
		products.DELETE("/:id", deps.ProductHandler.Delete)
		products.POST("/:id/variants", deps.ProductHandler.AddVariant)
	}

	variants := api.Group("/variants")
	{
		variants.PUT("/:id/stock", deps.ProductHandler.SetStock)
	}

	purchases := api.Group("/purchases")
	{
		purchases.POST("", deps.PurchaseHandler.Create)
		purchases.GET("", deps.PurchaseHandler.List)
		purchases.GET("/number/:number", deps.PurchaseHandler.GetByNumber)
		purchases.GET("/:id", deps.PurchaseHandler.GetByID)
		purchases.PUT("/:id/amounts", deps.PurchaseHandler.UpdateAmounts)
		purchases.PUT("/:id/status", deps.PurchaseHandler.UpdateStatus)
		purchases.POST("/:id/items", deps.PurchaseHandler.AddItem)
		purchases.PUT("/:id/items/:itemId", deps.PurchaseHandler.UpdateItem)
		purchases.DELETE("/:id/items/:itemId", deps.PurchaseHandler.DeleteItem)
		purchases.DELETE("/:id", deps.PurchaseHandler.Delete)
	}

	return engine
}
