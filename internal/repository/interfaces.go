package repository

import (
	"context"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
)

// CatalogRepository defines read access to restaurants and menu items.
// The catalog is owned by the scraper pipeline; this API never writes it.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context, limit, skip int) ([]*domain.Restaurant, error)
	CountRestaurants(ctx context.Context) (int, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Catalog CatalogRepository
}
