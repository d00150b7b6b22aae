package agent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// CartBuilder is the cart/estimate surface the agent dispatches onto.
// Implemented by service.NewCartService; faked in tests.
type CartBuilder interface {
	BuildCart(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.Cart, error)
	EstimateCost(ctx context.Context, restaurantID string, lines []domain.CartLine) (*domain.CostEstimate, error)
}

// DeliveryRequester is the delivery surface the agent dispatches onto.
// Implemented by service.NewDeliveryService; faked in tests.
type DeliveryRequester interface {
	CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error)
	TrackDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error)
}

// Result caps keep tool outputs small enough for the model's context.
const (
	maxAgentListLimit = 50
	maxAgentListRows  = 10
	maxAgentMenuItems = 20
)

type dispatcher struct {
	catalog    repository.CatalogRepository
	carts      CartBuilder
	deliveries DeliveryRequester
	logger     *zap.Logger
}

// execute runs one named tool call and returns a JSON-marshalable result.
// Operation failures come back as a payload the model can read and relay to
// the user, never as a Go error: a broken tool call must not abort the chat.
func (d *dispatcher) execute(ctx context.Context, name string, arguments string) interface{} {
	var args struct {
		Limit        int               `json:"limit"`
		Skip         int               `json:"skip"`
		RestaurantID string            `json:"restaurant_id"`
		ItemID       string            `json:"item_id"`
		Items        []domain.CartLine `json:"items"`

		DeliveryID      string `json:"delivery_id"`
		CustomerName    string `json:"customer_name"`
		CustomerEmail   string `json:"customer_email"`
		CustomerPhone   string `json:"customer_phone"`
		DeliveryAddress string `json:"delivery_address"`

		ExternalDeliveryID       string `json:"external_delivery_id"`
		PickupAddress            string `json:"pickup_address"`
		PickupBusinessName       string `json:"pickup_business_name"`
		PickupPhoneNumber        string `json:"pickup_phone_number"`
		PickupInstructions       string `json:"pickup_instructions"`
		PickupReferenceTag       string `json:"pickup_reference_tag"`
		DropoffAddress           string `json:"dropoff_address"`
		DropoffBusinessName      string `json:"dropoff_business_name"`
		DropoffPhoneNumber       string `json:"dropoff_phone_number"`
		DropoffInstructions      string `json:"dropoff_instructions"`
		DropoffContactGivenName  string `json:"dropoff_contact_given_name"`
		DropoffContactFamilyName string `json:"dropoff_contact_family_name"`
		OrderValue               *int64 `json:"order_value"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return toolError("invalid tool arguments: " + err.Error())
	}

	switch name {
	case "list_restaurants":
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > maxAgentListLimit {
			limit = maxAgentListLimit
		}
		skip := args.Skip
		if skip < 0 {
			skip = 0
		}
		restaurants, err := d.catalog.ListRestaurants(ctx, limit, skip)
		if err != nil {
			return toolErr(err)
		}
		if len(restaurants) > maxAgentListRows {
			restaurants = restaurants[:maxAgentListRows]
		}
		rows := make([]map[string]interface{}, 0, len(restaurants))
		for _, r := range restaurants {
			rows = append(rows, restaurantSummary(r))
		}
		return map[string]interface{}{"restaurants": rows, "count": len(rows)}

	case "get_restaurant_menu":
		if args.RestaurantID == "" {
			return toolError("restaurant_id is required")
		}
		restaurant, err := d.catalog.GetRestaurant(ctx, args.RestaurantID)
		if err != nil {
			return toolErr(err)
		}
		items, err := d.catalog.ListMenuItems(ctx, args.RestaurantID)
		if err != nil {
			return toolErr(err)
		}
		if len(items) > maxAgentMenuItems {
			items = items[:maxAgentMenuItems]
		}
		rows := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			rows = append(rows, menuItemSummary(item))
		}
		return map[string]interface{}{
			"restaurant_id":   restaurant.ID,
			"restaurant_name": restaurant.Name,
			"items":           rows,
			"total_items":     len(rows),
		}

	case "get_menu_item":
		if args.ItemID == "" {
			return toolError("item_id is required")
		}
		item, err := d.catalog.GetItem(ctx, args.ItemID)
		if err != nil {
			return toolErr(err)
		}
		return menuItemSummary(item)

	case "build_cart":
		cart, err := d.carts.BuildCart(ctx, args.RestaurantID, args.Items)
		if err != nil {
			return toolErr(err)
		}
		return cart

	case "compute_cost_estimate":
		estimate, err := d.carts.EstimateCost(ctx, args.RestaurantID, args.Items)
		if err != nil {
			return toolErr(err)
		}
		return estimate

	case "create_receipt":
		cart, err := d.carts.BuildCart(ctx, args.RestaurantID, args.Items)
		if err != nil {
			return toolErr(err)
		}
		estimate, err := d.carts.EstimateCost(ctx, args.RestaurantID, args.Items)
		if err != nil {
			return toolErr(err)
		}
		return buildReceipt(cart, estimate, receiptCustomer{
			DeliveryID:      args.DeliveryID,
			Name:            args.CustomerName,
			Email:           args.CustomerEmail,
			Phone:           args.CustomerPhone,
			DeliveryAddress: args.DeliveryAddress,
		})

	case "create_delivery":
		req := domain.DeliveryCreateRequest{
			ExternalDeliveryID:       args.ExternalDeliveryID,
			PickupAddress:            args.PickupAddress,
			PickupBusinessName:       args.PickupBusinessName,
			PickupPhoneNumber:        args.PickupPhoneNumber,
			PickupInstructions:       optionalArg(args.PickupInstructions),
			PickupReferenceTag:       optionalArg(args.PickupReferenceTag),
			DropoffAddress:           args.DropoffAddress,
			DropoffBusinessName:      optionalArg(args.DropoffBusinessName),
			DropoffPhoneNumber:       args.DropoffPhoneNumber,
			DropoffInstructions:      optionalArg(args.DropoffInstructions),
			DropoffContactGivenName:  optionalArg(args.DropoffContactGivenName),
			DropoffContactFamilyName: optionalArg(args.DropoffContactFamilyName),
			OrderValue:               args.OrderValue,
		}
		delivery, err := d.deliveries.CreateDelivery(ctx, req)
		if err != nil {
			return toolErr(err)
		}
		return delivery

	case "track_delivery":
		if args.ExternalDeliveryID == "" {
			return toolError("external_delivery_id is required")
		}
		delivery, err := d.deliveries.TrackDelivery(ctx, args.ExternalDeliveryID)
		if err != nil {
			return toolErr(err)
		}
		return delivery

	default:
		d.logger.Warn("Agent requested unknown tool", zap.String("tool", name))
		return toolError("unknown function: " + name)
	}
}

// toolError formats an operation failure so the model relays the concrete
// message to the user instead of inventing a vaguer one.
func toolError(msg string) map[string]interface{} {
	return map[string]interface{}{
		"success": false,
		"error":   msg,
	}
}

// toolErr is toolError for typed operation errors, tagging the failure kind
// so the model can tell "item not found" from a provider outage.
func toolErr(err error) map[string]interface{} {
	payload := toolError(err.Error())
	payload["error_type"] = errStatus(err)
	return payload
}

func restaurantSummary(r *domain.Restaurant) map[string]interface{} {
	row := map[string]interface{}{
		"id":           r.ID,
		"name":         r.Name,
		"delivery_fee": r.DeliveryFee,
	}
	if r.ETAMinutes != nil {
		row["eta"] = *r.ETAMinutes
	}
	if r.PriceRange != nil {
		row["price_range"] = *r.PriceRange
	}
	if r.Address != nil {
		row["address"] = *r.Address
	}
	return row
}

func menuItemSummary(item *domain.MenuItem) map[string]interface{} {
	row := map[string]interface{}{
		"id":            item.ID,
		"restaurant_id": item.RestaurantID,
		"name":          item.Name,
		"price":         item.Price,
	}
	if item.Description != nil {
		row["description"] = *item.Description
	}
	return row
}

func optionalArg(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

type receiptCustomer struct {
	DeliveryID      string
	Name            string
	Email           string
	Phone           string
	DeliveryAddress string
}

// buildReceipt assembles an order receipt from a priced cart and its
// estimate. Receipts are ephemeral like carts; nothing is persisted, the
// receipt ID just gives the conversation something stable to refer to.
func buildReceipt(cart *domain.Cart, estimate *domain.CostEstimate, customer receiptCustomer) map[string]interface{} {
	receipt := map[string]interface{}{
		"receipt_id":      "R-" + uuid.NewString(),
		"created_at":      time.Now().UTC().Format(time.RFC3339),
		"restaurant_id":   cart.RestaurantID,
		"restaurant_name": cart.RestaurantName,
		"items":           cart.Lines,
		"subtotal":        cart.Subtotal,
		"delivery_fee":    cart.DeliveryFee,
		"estimated_tax":   estimate.EstimatedTax,
		"estimated_total": estimate.EstimatedTotal,
	}
	if customer.DeliveryID != "" {
		receipt["delivery_id"] = customer.DeliveryID
	}
	if customer.Name != "" {
		receipt["customer_name"] = customer.Name
	}
	if customer.Email != "" {
		receipt["customer_email"] = customer.Email
	}
	if customer.Phone != "" {
		receipt["customer_phone"] = customer.Phone
	}
	if customer.DeliveryAddress != "" {
		receipt["delivery_address"] = customer.DeliveryAddress
	}
	return receipt
}

func errStatus(err error) string {
	switch err.(type) {
	case *errors.ErrNotFound:
		return "not_found"
	case *errors.ErrValidation, *errors.ErrItemRestaurantMismatch:
		return "validation"
	case *errors.ErrProvider:
		return "provider"
	default:
		return "internal"
	}
}
