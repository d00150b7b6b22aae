package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/domain"
)

// DeliveryProvider is the network collaborator that fulfils deliveries.
// Implemented by doordash.Client; faked in tests.
type DeliveryProvider interface {
	CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error)
}

type deliveryService struct {
	provider DeliveryProvider
	logger   *zap.Logger
}

// NewDeliveryService creates a delivery service
func NewDeliveryService(provider DeliveryProvider, logger *zap.Logger) *deliveryService {
	return &deliveryService{
		provider: provider,
		logger:   logger,
	}
}

// CreateDelivery requests delivery creation from the provider. Provider
// failures are propagated verbatim; creation is never retried so a given
// external delivery ID cannot produce duplicate deliveries from here.
func (s *deliveryService) CreateDelivery(ctx context.Context, req domain.DeliveryCreateRequest) (*domain.Delivery, error) {
	delivery, err := s.provider.CreateDelivery(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Delivery requested",
		zap.String("external_delivery_id", delivery.ExternalDeliveryID),
		zap.String("delivery_status", string(delivery.Status)),
	)
	return delivery, nil
}

// TrackDelivery fetches and normalizes the current delivery status.
func (s *deliveryService) TrackDelivery(ctx context.Context, externalDeliveryID string) (*domain.Delivery, error) {
	delivery, err := s.provider.GetDelivery(ctx, externalDeliveryID)
	if err != nil {
		return nil, err
	}

	if !delivery.Status.Known() {
		s.logger.Info("Provider reported unrecognized delivery status, passing through",
			zap.String("external_delivery_id", externalDeliveryID),
			zap.String("delivery_status", string(delivery.Status)),
		)
	}
	return delivery, nil
}
