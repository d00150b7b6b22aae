package domain

// DeliveryStatus is the provider-reported state of a delivery. The provider
// owns transitions; this service only reflects what it reports. The set is
// open: a status outside the known values is passed through verbatim so new
// provider statuses do not break callers.
type DeliveryStatus string

const (
	DeliveryStatusCreated          DeliveryStatus = "created"
	DeliveryStatusEnrouteToPickup  DeliveryStatus = "enroute_to_pickup"
	DeliveryStatusConfirmed        DeliveryStatus = "delivery_confirmed"
	DeliveryStatusEnrouteToDropoff DeliveryStatus = "enroute_to_dropoff"
	DeliveryStatusDelivered        DeliveryStatus = "delivered"
	DeliveryStatusCancelled        DeliveryStatus = "cancelled"
)

// Known reports whether the status is one of the documented provider values.
// Unknown statuses are still valid; they are just not part of the happy path.
func (s DeliveryStatus) Known() bool {
	switch s {
	case DeliveryStatusCreated,
		DeliveryStatusEnrouteToPickup,
		DeliveryStatusConfirmed,
		DeliveryStatusEnrouteToDropoff,
		DeliveryStatusDelivered,
		DeliveryStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further provider transitions are expected.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}
