package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

type countingCatalog struct {
	restaurants map[string]*domain.Restaurant
	items       map[string]*domain.MenuItem
	menus       map[string][]*domain.MenuItem

	getRestaurantHits int
	getItemHits       int
	listMenuHits      int
	listHits          int
}

func (c *countingCatalog) ListRestaurants(ctx context.Context, limit, skip int) ([]*domain.Restaurant, error) {
	c.listHits++
	return nil, nil
}

func (c *countingCatalog) CountRestaurants(ctx context.Context) (int, error) {
	return len(c.restaurants), nil
}

func (c *countingCatalog) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	c.getRestaurantHits++
	if r, ok := c.restaurants[id]; ok {
		return r, nil
	}
	return nil, &errors.ErrNotFound{Resource: "restaurant", ID: id}
}

func (c *countingCatalog) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	c.getItemHits++
	if item, ok := c.items[id]; ok {
		return item, nil
	}
	return nil, &errors.ErrNotFound{Resource: "item", ID: id}
}

func (c *countingCatalog) ListMenuItems(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	c.listMenuHits++
	return c.menus[restaurantID], nil
}

func newCacheFixture(t *testing.T) (*countingCatalog, *cachedCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	inner := &countingCatalog{
		restaurants: map[string]*domain.Restaurant{
			"r1": {ID: "r1", Name: "Golden Wok", DeliveryFee: decimal.RequireFromString("2.99")},
		},
		items: map[string]*domain.MenuItem{
			"i1": {ID: "i1", RestaurantID: "r1", Name: "Kung Pao Chicken", Price: decimal.RequireFromString("12.99")},
		},
		menus: map[string][]*domain.MenuItem{
			"r1": {
				{ID: "i1", RestaurantID: "r1", Name: "Kung Pao Chicken", Price: decimal.RequireFromString("12.99")},
			},
		},
	}

	cache := NewCatalogCache(inner, client, 5*time.Minute, zap.NewNop()).(*cachedCatalog)
	return inner, cache, mr
}

func TestGetRestaurantCachesSecondRead(t *testing.T) {
	inner, cache, _ := newCacheFixture(t)
	ctx := context.Background()

	first, err := cache.GetRestaurant(ctx, "r1")
	require.NoError(t, err)
	second, err := cache.GetRestaurant(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.getRestaurantHits, "second read must be served from cache")
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.DeliveryFee.Equal(second.DeliveryFee))
}

func TestGetItemCachesSecondRead(t *testing.T) {
	inner, cache, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.GetItem(ctx, "i1")
	require.NoError(t, err)
	item, err := cache.GetItem(ctx, "i1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.getItemHits)
	assert.Equal(t, "Kung Pao Chicken", item.Name)
	assert.True(t, decimal.RequireFromString("12.99").Equal(item.Price))
}

func TestListMenuItemsCachesSecondRead(t *testing.T) {
	inner, cache, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.ListMenuItems(ctx, "r1")
	require.NoError(t, err)
	items, err := cache.ListMenuItems(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listMenuHits)
	require.Len(t, items, 1)
	assert.Equal(t, "i1", items[0].ID)
}

func TestNotFoundIsNotCached(t *testing.T) {
	inner, cache, mr := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.GetRestaurant(ctx, "missing")
	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)

	_, err = cache.GetRestaurant(ctx, "missing")
	require.ErrorAs(t, err, &nf)

	assert.Equal(t, 2, inner.getRestaurantHits, "misses always reach the store")
	assert.False(t, mr.Exists("catalog:restaurant:missing"))
}

func TestCacheFailureFallsThrough(t *testing.T) {
	inner, cache, mr := newCacheFixture(t)
	ctx := context.Background()

	mr.Close()

	restaurant, err := cache.GetRestaurant(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Golden Wok", restaurant.Name)
	assert.Equal(t, 1, inner.getRestaurantHits)
}

func TestCorruptCacheEntryFallsThrough(t *testing.T) {
	inner, cache, mr := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("catalog:item:i1", "{not json"))

	item, err := cache.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "Kung Pao Chicken", item.Name)
	assert.Equal(t, 1, inner.getItemHits)
}

func TestListRestaurantsPassesThrough(t *testing.T) {
	inner, cache, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.ListRestaurants(ctx, 10, 0)
	require.NoError(t, err)
	_, err = cache.ListRestaurants(ctx, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.listHits, "pagination is never cached")
}
