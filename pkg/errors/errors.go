package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when caller input fails validation.
// Fields maps a field name to the reason it was rejected.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrItemRestaurantMismatch is returned when a cart line references an item
// owned by a different restaurant than the one the cart was requested for.
type ErrItemRestaurantMismatch struct {
	ItemID           string
	ItemRestaurantID string
	RestaurantID     string
}

func (e *ErrItemRestaurantMismatch) Error() string {
	return fmt.Sprintf("item %s belongs to restaurant %s, not %s", e.ItemID, e.ItemRestaurantID, e.RestaurantID)
}

// ErrAuthConfiguration is returned when credential material for an external
// provider is absent or malformed. Raised before any network call is
// attempted; Reason names the offending setting.
type ErrAuthConfiguration struct {
	Reason string
}

func (e *ErrAuthConfiguration) Error() string {
	if e.Reason != "" {
		return "provider auth misconfigured: " + e.Reason
	}
	return "provider auth misconfigured"
}

// ErrProvider is returned for a non-2xx response from the delivery provider.
// The provider's status code and message are preserved for the caller.
type ErrProvider struct {
	StatusCode int
	Message    string
}

func (e *ErrProvider) Error() string {
	return fmt.Sprintf("delivery provider error: status %d: %s", e.StatusCode, e.Message)
}
