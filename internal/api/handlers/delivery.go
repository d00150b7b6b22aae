package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
)

// DeliveryRequester relays delivery creation and tracking to the provider.
// Implemented by service.NewDeliveryService; faked in tests.
type DeliveryRequester interface {
	CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error)
	TrackDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error)
}

// CreateDeliveryRequest is the delivery-creation payload. Optional fields
// are pointers so absence and empty are distinguishable; order_value is in
// currency minor units (cents).
type CreateDeliveryRequest struct {
	ExternalDeliveryID string `json:"external_delivery_id" binding:"required"`

	PickupAddress      string  `json:"pickup_address" binding:"required"`
	PickupBusinessName string  `json:"pickup_business_name" binding:"required"`
	PickupPhoneNumber  string  `json:"pickup_phone_number" binding:"required"`
	PickupInstructions *string `json:"pickup_instructions,omitempty"`
	PickupReferenceTag *string `json:"pickup_reference_tag,omitempty"`

	DropoffAddress           string  `json:"dropoff_address" binding:"required"`
	DropoffBusinessName      *string `json:"dropoff_business_name,omitempty"`
	DropoffPhoneNumber       string  `json:"dropoff_phone_number" binding:"required"`
	DropoffInstructions      *string `json:"dropoff_instructions,omitempty"`
	DropoffContactGivenName  *string `json:"dropoff_contact_given_name,omitempty"`
	DropoffContactFamilyName *string `json:"dropoff_contact_family_name,omitempty"`

	OrderValue *int64 `json:"order_value,omitempty"`
}

func (r CreateDeliveryRequest) toDomain() domain.DeliveryCreateRequest {
	return domain.DeliveryCreateRequest{
		ExternalDeliveryID:       r.ExternalDeliveryID,
		PickupAddress:            r.PickupAddress,
		PickupBusinessName:       r.PickupBusinessName,
		PickupPhoneNumber:        r.PickupPhoneNumber,
		PickupInstructions:       r.PickupInstructions,
		PickupReferenceTag:       r.PickupReferenceTag,
		DropoffAddress:           r.DropoffAddress,
		DropoffBusinessName:      r.DropoffBusinessName,
		DropoffPhoneNumber:       r.DropoffPhoneNumber,
		DropoffInstructions:      r.DropoffInstructions,
		DropoffContactGivenName:  r.DropoffContactGivenName,
		DropoffContactFamilyName: r.DropoffContactFamilyName,
		OrderValue:               r.OrderValue,
	}
}

// HandleCreateDelivery handles POST /api/doordash/deliveries
func HandleCreateDelivery(deliveries DeliveryRequester, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		delivery, err := deliveries.CreateDelivery(c.Request.Context(), req.toDomain())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, delivery)
	}
}

// HandleTrackDelivery handles GET /api/doordash/deliveries/:external_delivery_id
func HandleTrackDelivery(deliveries DeliveryRequester, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalDeliveryID := c.Param("external_delivery_id")
		if externalDeliveryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "external_delivery_id is required"})
			return
		}

		delivery, err := deliveries.TrackDelivery(c.Request.Context(), externalDeliveryID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, delivery)
	}
}
