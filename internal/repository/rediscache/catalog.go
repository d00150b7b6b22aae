// Package rediscache decorates the catalog repository with a Redis
// read-through cache. Redis failures never fail a request: on any cache
// error the lookup falls through to the underlying store.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
)

type cachedCatalog struct {
	inner  repository.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache wraps a catalog repository with a Redis read-through cache
func NewCatalogCache(inner repository.CatalogRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.CatalogRepository {
	return &cachedCatalog{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func restaurantKey(id string) string { return "catalog:restaurant:" + id }
func itemKey(id string) string       { return "catalog:item:" + id }
func menuKey(restaurantID string) string {
	return "catalog:menu:" + restaurantID
}

// ListRestaurants is paginated and served straight from the store
func (c *cachedCatalog) ListRestaurants(ctx context.Context, limit, skip int) ([]*domain.Restaurant, error) {
	return c.inner.ListRestaurants(ctx, limit, skip)
}

func (c *cachedCatalog) CountRestaurants(ctx context.Context) (int, error) {
	return c.inner.CountRestaurants(ctx)
}

func (c *cachedCatalog) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	key := restaurantKey(id)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var restaurant domain.Restaurant
		if json.Unmarshal(data, &restaurant) == nil {
			return &restaurant, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	restaurant, err := c.inner.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, restaurant)
	return restaurant, nil
}

func (c *cachedCatalog) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	key := itemKey(id)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var item domain.MenuItem
		if json.Unmarshal(data, &item) == nil {
			return &item, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	item, err := c.inner.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, item)
	return item, nil
}

func (c *cachedCatalog) ListMenuItems(ctx context.Context, restaurantID string) ([]*domain.MenuItem, error) {
	key := menuKey(restaurantID)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var items []*domain.MenuItem
		if json.Unmarshal(data, &items) == nil {
			return items, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err := c.inner.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, items)
	return items, nil
}

func (c *cachedCatalog) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
