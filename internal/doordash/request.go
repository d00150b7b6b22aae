package doordash

import (
	"strings"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// createDeliveryPayload is the Drive v2 delivery-creation wire shape.
// Optional fields are pointers with omitempty so absent values are elided
// from the outbound JSON rather than sent as null.
type createDeliveryPayload struct {
	ExternalDeliveryID string `json:"external_delivery_id"`

	PickupAddress      string  `json:"pickup_address"`
	PickupBusinessName string  `json:"pickup_business_name"`
	PickupPhoneNumber  string  `json:"pickup_phone_number"`
	PickupInstructions *string `json:"pickup_instructions,omitempty"`
	PickupReferenceTag *string `json:"pickup_reference_tag,omitempty"`

	DropoffAddress           string  `json:"dropoff_address"`
	DropoffBusinessName      *string `json:"dropoff_business_name,omitempty"`
	DropoffPhoneNumber       string  `json:"dropoff_phone_number"`
	DropoffInstructions      *string `json:"dropoff_instructions,omitempty"`
	DropoffContactGivenName  *string `json:"dropoff_contact_given_name,omitempty"`
	DropoffContactFamilyName *string `json:"dropoff_contact_family_name,omitempty"`

	OrderValue *int64 `json:"order_value,omitempty"`
}

// BuildCreateRequest validates a delivery-creation request and maps it to
// the provider wire shape. Required fields are checked first and reported by
// their wire names; order_value is passed through in currency minor units,
// the caller supplies cents and no unit conversion happens here.
func BuildCreateRequest(req domain.DeliveryCreateRequest) (*createDeliveryPayload, error) {
	fields := map[string]string{}
	requireField(fields, "external_delivery_id", req.ExternalDeliveryID)
	requireField(fields, "pickup_address", req.PickupAddress)
	requireField(fields, "pickup_business_name", req.PickupBusinessName)
	requireField(fields, "pickup_phone_number", req.PickupPhoneNumber)
	requireField(fields, "dropoff_address", req.DropoffAddress)
	requireField(fields, "dropoff_phone_number", req.DropoffPhoneNumber)
	if req.OrderValue != nil && *req.OrderValue < 0 {
		fields["order_value"] = "must not be negative"
	}
	if len(fields) > 0 {
		return nil, &errors.ErrValidation{
			Message: "invalid delivery request",
			Fields:  fields,
		}
	}

	return &createDeliveryPayload{
		ExternalDeliveryID:       strings.TrimSpace(req.ExternalDeliveryID),
		PickupAddress:            strings.TrimSpace(req.PickupAddress),
		PickupBusinessName:       strings.TrimSpace(req.PickupBusinessName),
		PickupPhoneNumber:        strings.TrimSpace(req.PickupPhoneNumber),
		PickupInstructions:       trimOptional(req.PickupInstructions),
		PickupReferenceTag:       trimOptional(req.PickupReferenceTag),
		DropoffAddress:           strings.TrimSpace(req.DropoffAddress),
		DropoffBusinessName:      trimOptional(req.DropoffBusinessName),
		DropoffPhoneNumber:       strings.TrimSpace(req.DropoffPhoneNumber),
		DropoffInstructions:      trimOptional(req.DropoffInstructions),
		DropoffContactGivenName:  trimOptional(req.DropoffContactGivenName),
		DropoffContactFamilyName: trimOptional(req.DropoffContactFamilyName),
		OrderValue:               req.OrderValue,
	}, nil
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
	}
}

// trimOptional trims a present value and drops it entirely if that leaves
// nothing, so whitespace-only optionals are not sent to the provider.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
