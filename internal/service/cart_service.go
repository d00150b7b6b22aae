package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/internal/money"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

type cartService struct {
	catalog repository.CatalogRepository
	taxRate decimal.Decimal
	logger  *zap.Logger
}

// NewCartService creates a cart service. taxRate is a decimal string such
// as "0.0851"; it is configuration, not domain knowledge baked in here.
func NewCartService(catalog repository.CatalogRepository, taxRate string, logger *zap.Logger) (*cartService, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate %q: %w", taxRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative: %s", taxRate)
	}
	return &cartService{
		catalog: catalog,
		taxRate: rate,
		logger:  logger,
	}, nil
}

// BuildCart resolves cart lines against the catalog and prices them.
// Lines keep the caller-supplied order. The cart is ephemeral: nothing is
// persisted and identical inputs against an unchanged catalog produce an
// identical cart.
func (s *cartService) BuildCart(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.Cart, error) {
	if len(lines) == 0 {
		return nil, &errors.ErrValidation{
			Message: "at least one item is required",
			Fields:  map[string]string{"items": "must not be empty"},
		}
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	priced := make([]domain.PricedLine, 0, len(lines))
	subtotals := make([]decimal.Decimal, 0, len(lines))
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, &errors.ErrValidation{
				Message: fmt.Sprintf("quantity must be at least 1 for item %s", line.ItemID),
				Fields:  map[string]string{fmt.Sprintf("items[%d].quantity", i): "must be at least 1"},
			}
		}

		item, err := s.catalog.GetItem(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item.RestaurantID != restaurant.ID {
			return nil, &errors.ErrItemRestaurantMismatch{
				ItemID:           item.ID,
				ItemRestaurantID: item.RestaurantID,
				RestaurantID:     restaurant.ID,
			}
		}

		lineSubtotal, err := money.Multiply(item.Price, line.Quantity)
		if err != nil {
			return nil, err
		}

		priced = append(priced, domain.PricedLine{
			ItemID:      item.ID,
			Name:        item.Name,
			Description: item.Description,
			UnitPrice:   item.Price,
			Quantity:    line.Quantity,
			Subtotal:    lineSubtotal,
		})
		subtotals = append(subtotals, lineSubtotal)
	}

	subtotal := money.Sum(subtotals...)
	total := money.Sum(subtotal, restaurant.DeliveryFee)

	return &domain.Cart{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Lines:          priced,
		Subtotal:       subtotal,
		DeliveryFee:    restaurant.DeliveryFee,
		Total:          total,
	}, nil
}

// EstimateCost assembles a cart and projects tax and total.
func (s *cartService) EstimateCost(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.CostEstimate, error) {
	cart, err := s.BuildCart(ctx, restaurantID, lines)
	if err != nil {
		return nil, err
	}
	return s.EstimateFromCart(cart), nil
}

// EstimateFromCart derives the estimate from an already-assembled cart,
// avoiding a second round of catalog lookups. The tax figure is an
// approximation rounded at the display boundary; nothing is mutated.
func (s *cartService) EstimateFromCart(cart *domain.Cart) *domain.CostEstimate {
	estimatedTax := money.Round(cart.Subtotal.Mul(s.taxRate), 2)
	estimatedTotal := money.Sum(cart.Subtotal, cart.DeliveryFee, estimatedTax)

	return &domain.CostEstimate{
		RestaurantID:   cart.RestaurantID,
		RestaurantName: cart.RestaurantName,
		Subtotal:       cart.Subtotal,
		DeliveryFee:    cart.DeliveryFee,
		EstimatedTax:   estimatedTax,
		EstimatedTotal: estimatedTotal,
	}
}
