// Package logistics serves the delivery and carrier views of the console.
package logistics

import (
	"context"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/logistics"
)

// Upstream collections
const (
	DeliveriesPath = "deliveries"
	CarriersPath   = "carriers"
)

// DeliveryService handles delivery and carrier reads
type DeliveryService struct {
	loader *snapshot.Loader
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(loader *snapshot.Loader) *DeliveryService {
	return &DeliveryService{loader: loader}
}

// Deliveries returns the reconciled delivery list
func (s *DeliveryService) Deliveries(ctx context.Context) snapshot.Snapshot[logistics.Delivery] {
	return snapshot.Load(ctx, s.loader, logistics.DeliveryKind, DeliveriesPath, nil)
}

// Carriers returns the reconciled carrier list
func (s *DeliveryService) Carriers(ctx context.Context) snapshot.Snapshot[logistics.Carrier] {
	return snapshot.Load(ctx, s.loader, logistics.CarrierKind, CarriersPath, nil)
}
