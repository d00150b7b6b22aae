package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant represents a restaurant record from the catalog store.
// The API serves these read-only; the scraper pipeline owns mutation.
type Restaurant struct {
	ID              string
	StoreID         *string
	Name            string
	Description     *string
	DeliveryFee     decimal.Decimal
	ETAMinutes      *int
	AverageRating   *float64
	NumberOfRatings *int
	PriceRange      *string
	DistanceMiles   *float64
	Link            *string
	Address         *string
	OperatingHours  *string
}

// MenuItem represents a menu item record from the catalog store
type MenuItem struct {
	ID            string
	RestaurantID  string
	StoreID       *string
	Name          string
	Description   *string
	Price         decimal.Decimal
	RatingPercent *float64
	ReviewCount   *int
	ImageURL      *string
}

// CartLine is a caller-supplied (item, quantity) pair. Input only.
type CartLine struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// PricedLine is a cart line resolved against the catalog.
// Subtotal is UnitPrice * Quantity with no intermediate rounding.
type PricedLine struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Cart is a priced collection of lines for one restaurant.
// Carts are built fresh per request and never persisted.
type Cart struct {
	RestaurantID   string          `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	Lines          []PricedLine    `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
}

// CostEstimate is a tax-inclusive projection of total cost.
// EstimatedTax is a derived approximation, not an authoritative figure.
type CostEstimate struct {
	RestaurantID   string          `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	EstimatedTax   decimal.Decimal `json:"estimated_tax"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
}

// DeliveryCreateRequest is the internal shape of a delivery-creation request.
// Optional fields are pointers: present-or-absent, never null-always-present.
// OrderValue, when set, is an integer count of currency minor units (cents);
// the caller supplies minor units, this type does not convert.
type DeliveryCreateRequest struct {
	ExternalDeliveryID string

	PickupAddress      string
	PickupBusinessName string
	PickupPhoneNumber  string
	PickupInstructions *string
	PickupReferenceTag *string

	DropoffAddress           string
	DropoffBusinessName      *string
	DropoffPhoneNumber       string
	DropoffInstructions      *string
	DropoffContactGivenName  *string
	DropoffContactFamilyName *string

	OrderValue *int64
}

// Delivery is the normalized shape of a provider delivery record.
// Timestamps absent from the provider response are nil, never zero values.
type Delivery struct {
	DeliveryID           string         `json:"delivery_id,omitempty"`
	ExternalDeliveryID   string         `json:"external_delivery_id"`
	Status               DeliveryStatus `json:"delivery_status"`
	TrackingURL          string         `json:"tracking_url,omitempty"`
	Currency             string         `json:"currency,omitempty"`
	Fee                  *int64         `json:"fee,omitempty"`
	PickupTimeEstimated  *time.Time     `json:"pickup_time_estimated"`
	PickupTimeActual     *time.Time     `json:"pickup_time_actual"`
	DropoffTimeEstimated *time.Time     `json:"dropoff_time_estimated"`
	DropoffTimeActual    *time.Time     `json:"dropoff_time_actual"`
	PickupAddress        string         `json:"pickup_address,omitempty"`
	DropoffAddress       string         `json:"dropoff_address,omitempty"`
	SupportReference     string         `json:"support_reference,omitempty"`
}
