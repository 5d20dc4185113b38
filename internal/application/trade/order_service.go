// Package trade serves the order and tracking views of the console.
package trade

import (
	"context"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/report"
	"github.com/erp/console/internal/domain/trade"
)

// OrdersPath is the upstream collection of orders
const OrdersPath = "orders"

// OrderService handles order list reads
type OrderService struct {
	loader *snapshot.Loader
}

// NewOrderService creates a new OrderService
func NewOrderService(loader *snapshot.Loader) *OrderService {
	return &OrderService{loader: loader}
}

// Orders returns the reconciled order list
func (s *OrderService) Orders(ctx context.Context) snapshot.Snapshot[trade.Order] {
	return snapshot.Load(ctx, s.loader, trade.OrderKind, OrdersPath, nil)
}

// OrdersWithBreakdown returns the order list with a count per status
func (s *OrderService) OrdersWithBreakdown(ctx context.Context) OrderListResponse {
	snap := s.Orders(ctx)
	return OrderListResponse{
		Orders:    snap.Records,
		Breakdown: report.OrderStatusBreakdown(snap.Records),
		Meta:      snap.Meta,
	}
}
