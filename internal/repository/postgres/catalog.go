package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

type catalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *catalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

const restaurantColumns = `
	id, store_id, name, description, delivery_fee, eta_minutes,
	average_rating, number_of_ratings, price_range, distance_miles,
	link, address, operating_hours
`

const menuItemColumns = `
	id, restaurant_id, store_id, name, description, price,
	rating_percent, review_count, image_url
`

func (r *catalogRepository) ListRestaurants(ctx context.Context, limit, skip int) ([]*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		r.logger.Error("Failed to list restaurants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *catalogRepository) CountRestaurants(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count restaurants", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *catalogRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "restaurant", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get restaurant", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return restaurant, nil
}

func (r *catalogRepository) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "item", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get menu item", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) ListMenuItems(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error("Failed to list menu items", zap.String("restaurant_id", restaurantID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurant(s scanner) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var deliveryFee string
	err := s.Scan(
		&restaurant.ID,
		&restaurant.StoreID,
		&restaurant.Name,
		&restaurant.Description,
		&deliveryFee,
		&restaurant.ETAMinutes,
		&restaurant.AverageRating,
		&restaurant.NumberOfRatings,
		&restaurant.PriceRange,
		&restaurant.DistanceMiles,
		&restaurant.Link,
		&restaurant.Address,
		&restaurant.OperatingHours,
	)
	if err != nil {
		return nil, err
	}
	restaurant.DeliveryFee, err = decimal.NewFromString(deliveryFee)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func scanMenuItem(s scanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var price string
	err := s.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.StoreID,
		&item.Name,
		&item.Description,
		&price,
		&item.RatingPercent,
		&item.ReviewCount,
		&item.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
