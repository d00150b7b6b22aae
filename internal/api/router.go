package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/api/handlers"
	"github.com/jayyu23/daNomNoms-monad/internal/api/middleware"
	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	carts handlers.CartBuilder,
	deliveries handlers.DeliveryRequester,
	agents handlers.AgentChatter,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "daNomNoms Order API",
			"endpoints": []string{
				"GET /health",
				"GET /api/restaurants",
				"GET /api/restaurants/:id/menu",
				"GET /api/restaurants/items/:id",
				"POST /api/restaurants/cart",
				"POST /api/restaurants/cost-estimate",
				"POST /api/doordash/deliveries",
				"GET /api/doordash/deliveries/:external_delivery_id",
				"POST /api/agent/chat",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	{
		restaurants := apiRoutes.Group("/restaurants")
		{
			restaurants.GET("", handlers.HandleListRestaurants(repos, logger))
			restaurants.GET("/:id/menu", handlers.HandleGetMenu(repos, logger))
			restaurants.GET("/items/:id", handlers.HandleGetItem(repos, logger))
			restaurants.POST("/cart", handlers.HandleBuildCart(carts, logger))
			restaurants.POST("/cost-estimate", handlers.HandleCostEstimate(carts, logger))
		}

		doordashRoutes := apiRoutes.Group("/doordash")
		{
			doordashRoutes.POST("/deliveries", handlers.HandleCreateDelivery(deliveries, logger))
			doordashRoutes.GET("/deliveries/:external_delivery_id", handlers.HandleTrackDelivery(deliveries, logger))
		}

		agentRoutes := apiRoutes.Group("/agent")
		{
			agentRoutes.POST("/chat", handlers.HandleAgentChat(agents, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
