package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
)

// CartBuilder assembles carts and cost estimates from catalog data.
// Implemented by service.NewCartService; faked in tests.
type CartBuilder interface {
	BuildCart(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.Cart, error)
	EstimateCost(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.CostEstimate, error)
}

// BuildCartRequest is the cart / cost-estimate request payload
type BuildCartRequest struct {
	RestaurantID string            `json:"restaurant_id" binding:"required"`
	Items        []domain.CartLine `json:"items" binding:"required,min=1"`
}

// HandleBuildCart handles POST /api/restaurants/cart
func HandleBuildCart(carts CartBuilder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuildCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, err := carts.BuildCart(c.Request.Context(), req.RestaurantID, req.Items)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// HandleCostEstimate handles POST /api/restaurants/cost-estimate
func HandleCostEstimate(carts CartBuilder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuildCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		estimate, err := carts.EstimateCost(c.Request.Context(), req.RestaurantID, req.Items)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, estimate)
	}
}
