package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
)

// RestaurantResponse is the API shape of a restaurant record
type RestaurantResponse struct {
	ID              string          `json:"id"`
	StoreID         *string         `json:"store_id,omitempty"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	ETAMinutes      *int            `json:"eta,omitempty"`
	AverageRating   *float64        `json:"average_rating,omitempty"`
	NumberOfRatings *int            `json:"number_of_ratings,omitempty"`
	PriceRange      *string         `json:"price_range,omitempty"`
	DistanceMiles   *float64        `json:"distance_miles,omitempty"`
	Link            *string         `json:"link,omitempty"`
	Address         *string         `json:"address,omitempty"`
	OperatingHours  *string         `json:"operating_hours,omitempty"`
}

// MenuItemResponse is the API shape of a menu item record
type MenuItemResponse struct {
	ID            string          `json:"id"`
	RestaurantID  string          `json:"restaurant_id"`
	StoreID       *string         `json:"store_id,omitempty"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	RatingPercent *float64        `json:"rating_percent,omitempty"`
	ReviewCount   *int            `json:"review_count,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
}

// ListRestaurantsResponse is the paginated restaurant listing
type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Skip        int                  `json:"skip"`
}

// MenuResponse is a restaurant's menu
type MenuResponse struct {
	RestaurantID   string             `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	Items          []MenuItemResponse `json:"items"`
	TotalItems     int                `json:"total_items"`
}

func toRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:              r.ID,
		StoreID:         r.StoreID,
		Name:            r.Name,
		Description:     r.Description,
		DeliveryFee:     r.DeliveryFee,
		ETAMinutes:      r.ETAMinutes,
		AverageRating:   r.AverageRating,
		NumberOfRatings: r.NumberOfRatings,
		PriceRange:      r.PriceRange,
		DistanceMiles:   r.DistanceMiles,
		Link:            r.Link,
		Address:         r.Address,
		OperatingHours:  r.OperatingHours,
	}
}

func toMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:            item.ID,
		RestaurantID:  item.RestaurantID,
		StoreID:       item.StoreID,
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		RatingPercent: item.RatingPercent,
		ReviewCount:   item.ReviewCount,
		ImageURL:      item.ImageURL,
	}
}

// HandleListRestaurants handles GET /api/restaurants
func HandleListRestaurants(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := parseBoundedInt(c.DefaultQuery("limit", "100"), 1, 1000)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 1000"})
			return
		}
		skip, err := parseBoundedInt(c.DefaultQuery("skip", "0"), 0, 1<<30)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
			return
		}

		restaurants, err := repos.Catalog.ListRestaurants(c.Request.Context(), limit, skip)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		total, err := repos.Catalog.CountRestaurants(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]RestaurantResponse, 0, len(restaurants))
		for _, r := range restaurants {
			out = append(out, toRestaurantResponse(r))
		}

		c.JSON(http.StatusOK, ListRestaurantsResponse{
			Restaurants: out,
			Total:       total,
			Limit:       limit,
			Skip:        skip,
		})
	}
}

// HandleGetMenu handles GET /api/restaurants/:id/menu
func HandleGetMenu(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := c.Param("id")

		restaurant, err := repos.Catalog.GetRestaurant(c.Request.Context(), restaurantID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		items, err := repos.Catalog.ListMenuItems(c.Request.Context(), restaurantID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]MenuItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, toMenuItemResponse(item))
		}

		c.JSON(http.StatusOK, MenuResponse{
			RestaurantID:   restaurant.ID,
			RestaurantName: restaurant.Name,
			Items:          out,
			TotalItems:     len(out),
		})
	}
}

// HandleGetItem handles GET /api/restaurants/items/:id
func HandleGetItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := repos.Catalog.GetItem(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toMenuItemResponse(item))
	}
}

func parseBoundedInt(raw string, min, max int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < min || n > max {
		return 0, strconv.ErrRange
	}
	return n, nil
}
