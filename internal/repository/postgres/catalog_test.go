package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

var restaurantTestColumns = []string{
	"id", "store_id", "name", "description", "delivery_fee", "eta_minutes",
	"average_rating", "number_of_ratings", "price_range", "distance_miles",
	"link", "address", "operating_hours",
}

var menuItemTestColumns = []string{
	"id", "restaurant_id", "store_id", "name", "description", "price",
	"rating_percent", "review_count", "image_url",
}

func newMockRepo(t *testing.T) (*catalogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCatalogRepository(db, zap.NewNop()), mock
}

func TestGetRestaurant(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM restaurants WHERE id = \$1`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(restaurantTestColumns).
			AddRow("r1", "store-9", "Golden Wok", "Szechuan classics", "2.99", 35,
				4.6, 812, "$$", 1.3, nil, "901 Market St", nil))

	restaurant, err := repo.GetRestaurant(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, "r1", restaurant.ID)
	assert.Equal(t, "Golden Wok", restaurant.Name)
	assert.Equal(t, "2.99", restaurant.DeliveryFee.StringFixed(2))
	require.NotNil(t, restaurant.ETAMinutes)
	assert.Equal(t, 35, *restaurant.ETAMinutes)
	assert.Nil(t, restaurant.Link)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRestaurantNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM restaurants WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(restaurantTestColumns))

	_, err := repo.GetRestaurant(context.Background(), "missing")

	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "restaurant", nf.Resource)
	assert.Equal(t, "missing", nf.ID)
}

func TestGetItem(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE id = \$1`).
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns).
			AddRow("i1", "r1", "store-9", "Kung Pao Chicken", nil, "12.99",
				94.0, 210, nil))

	item, err := repo.GetItem(context.Background(), "i1")
	require.NoError(t, err)

	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, "r1", item.RestaurantID)
	assert.Equal(t, "12.99", item.Price.StringFixed(2))
	assert.Nil(t, item.Description)
}

func TestGetItemNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns))

	_, err := repo.GetItem(context.Background(), "missing")

	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Resource)
}

func TestListRestaurants(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM restaurants ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(restaurantTestColumns).
			AddRow("r1", nil, "Golden Wok", nil, "2.99", nil, nil, nil, nil, nil, nil, nil, nil).
			AddRow("r2", nil, "Taqueria Luz", nil, "1.49", nil, nil, nil, nil, nil, nil, nil, nil))

	restaurants, err := repo.ListRestaurants(context.Background(), 10, 0)
	require.NoError(t, err)

	require.Len(t, restaurants, 2)
	assert.Equal(t, "r1", restaurants[0].ID)
	assert.Equal(t, "r2", restaurants[1].ID)
	assert.Equal(t, "1.49", restaurants[1].DeliveryFee.StringFixed(2))
}

func TestCountRestaurants(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountRestaurants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestListMenuItems(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE restaurant_id = \$1 ORDER BY id`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns).
			AddRow("i1", "r1", nil, "Kung Pao Chicken", nil, "12.99", nil, nil, nil).
			AddRow("i2", "r1", nil, "Dan Dan Noodles", nil, "10.50", nil, nil, nil))

	items, err := repo.ListMenuItems(context.Background(), "r1")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Kung Pao Chicken", items[0].Name)
	assert.Equal(t, "10.50", items[1].Price.StringFixed(2))
}

func TestListMenuItemsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM menu_items WHERE restaurant_id = \$1 ORDER BY id`).
		WithArgs("r-empty").
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns))

	items, err := repo.ListMenuItems(context.Background(), "r-empty")
	require.NoError(t, err)
	assert.Empty(t, items)
}
