package doordash

import (
	"time"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
)

// deliveryRecord is the Drive v2 delivery wire shape (the subset this
// service consumes). Timing fields are nullable on the wire.
type deliveryRecord struct {
	DeliveryID           string     `json:"delivery_id"`
	ExternalDeliveryID   string     `json:"external_delivery_id"`
	DeliveryStatus       string     `json:"delivery_status"`
	TrackingURL          string     `json:"tracking_url"`
	Currency             string     `json:"currency"`
	Fee                  *int64     `json:"fee"`
	PickupTimeEstimated  *time.Time `json:"pickup_time_estimated"`
	PickupTimeActual     *time.Time `json:"pickup_time_actual"`
	DropoffTimeEstimated *time.Time `json:"dropoff_time_estimated"`
	DropoffTimeActual    *time.Time `json:"dropoff_time_actual"`
	PickupAddress        string     `json:"pickup_address"`
	DropoffAddress       string     `json:"dropoff_address"`
	SupportReference     string     `json:"support_reference"`
}

// normalize maps a provider delivery record into the stable internal shape.
// Absent timestamps stay nil. The status string is carried verbatim even
// when it is outside the known set, so provider-added statuses reach the
// caller instead of erroring.
func normalize(rec *deliveryRecord) *domain.Delivery {
	return &domain.Delivery{
		DeliveryID:           rec.DeliveryID,
		ExternalDeliveryID:   rec.ExternalDeliveryID,
		Status:               domain.DeliveryStatus(rec.DeliveryStatus),
		TrackingURL:          rec.TrackingURL,
		Currency:             rec.Currency,
		Fee:                  rec.Fee,
		PickupTimeEstimated:  rec.PickupTimeEstimated,
		PickupTimeActual:     rec.PickupTimeActual,
		DropoffTimeEstimated: rec.DropoffTimeEstimated,
		DropoffTimeActual:    rec.DropoffTimeActual,
		PickupAddress:        rec.PickupAddress,
		DropoffAddress:       rec.DropoffAddress,
		SupportReference:     rec.SupportReference,
	}
}
