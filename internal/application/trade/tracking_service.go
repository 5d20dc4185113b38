package trade

import (
	"context"
	"net/url"
	"strconv"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/shared"
	"github.com/erp/console/internal/domain/trade"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// FallbackDeliveryOrderID is the order shown when a delivery status update
// gets no usable answer; the delivery's order is not known locally.
const FallbackDeliveryOrderID int64 = 1

// StatusWriter sends status updates to the upstream API
type StatusWriter interface {
	Put(ctx context.Context, path string, query url.Values, body any) ([]byte, error)
}

// TrackingService handles order tracking reads and status updates
type TrackingService struct {
	loader *snapshot.Loader
	writer StatusWriter
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(loader *snapshot.Loader, writer StatusWriter) *TrackingService {
	return &TrackingService{loader: loader, writer: writer}
}

// TrackingInfo returns the tracking summary of an order. When the API cannot
// answer with an object the demo tracking info is returned for the order.
func (s *TrackingService) TrackingInfo(ctx context.Context, orderID int64) (*TrackingInfoResponse, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID must be positive")
	}
	ctx, span := telemetry.StartSpan(ctx, "tracking", "info", telemetry.SpanAttrRecordID, orderID)
	defer span.End()

	body, err := s.loader.Fetch(ctx, orderPath(orderID), nil)
	return s.info(ctx, body, err, orderID, func(info *trade.TrackingInfo) {}), nil
}

// TrackingHistory returns the reconciled tracking events of an order
func (s *TrackingService) TrackingHistory(ctx context.Context, orderID int64) (*snapshot.Snapshot[trade.TrackingEvent], error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID must be positive")
	}
	snap := snapshot.Load(ctx, s.loader, trade.TrackingEventKind(s.loader.Now), orderPath(orderID)+"/history", nil)
	return &snap, nil
}

// UpdateOrderStatus sets the status of an order. The fallback tracking info
// carries the requested status.
func (s *TrackingService) UpdateOrderStatus(ctx context.Context, orderID int64, status trade.OrderStatus) (*TrackingInfoResponse, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID must be positive")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}
	ctx, span := telemetry.StartSpan(ctx, "tracking", "update_order_status", telemetry.SpanAttrRecordID, orderID)
	defer span.End()

	body, err := s.put(ctx, orderPath(orderID)+"/status", string(status))
	return s.info(ctx, body, err, orderID, func(info *trade.TrackingInfo) {
		info.OrderStatus = status
	}), nil
}

// UpdateDeliveryStatus sets the status of a delivery. The fallback tracking
// info carries the delivery and its requested status.
func (s *TrackingService) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status trade.DeliveryStatus) (*TrackingInfoResponse, error) {
	if deliveryID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Delivery ID must be positive")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown delivery status: "+string(status))
	}
	ctx, span := telemetry.StartSpan(ctx, "tracking", "update_delivery_status", telemetry.SpanAttrRecordID, deliveryID)
	defer span.End()

	body, err := s.put(ctx, "tracking/deliveries/"+strconv.FormatInt(deliveryID, 10)+"/status", string(status))
	return s.info(ctx, body, err, FallbackDeliveryOrderID, func(info *trade.TrackingInfo) {
		info.DeliveryID = &deliveryID
		info.DeliveryStatus = status
	}), nil
}

func (s *TrackingService) put(ctx context.Context, path, status string) ([]byte, error) {
	body, err := s.writer.Put(ctx, path, url.Values{"status": {status}}, map[string]any{})
	if err != nil {
		logger.L(ctx).Warn("Status update failed", zap.String("path", path), zap.Error(err))
	}
	return body, err
}

// info coerces a tracking body, substituting the fallback adjusted by patch
// when the request failed or the body is not an object.
func (s *TrackingService) info(ctx context.Context, body []byte, err error, orderID int64, patch func(*trade.TrackingInfo)) *TrackingInfoResponse {
	if err == nil {
		if info, ok := trade.BuildTrackingInfo(body, orderID); ok {
			return &TrackingInfoResponse{
				Info: info,
				Meta: s.loader.Stamp(reconcile.SourceLive, 0, 0),
			}
		}
	}

	logger.L(ctx).Warn("Substituting fallback tracking info", zap.Int64("order_id", orderID))
	info := trade.FallbackTrackingInfo(orderID, s.loader.Now())
	patch(&info)
	return &TrackingInfoResponse{
		Info: info,
		Meta: s.loader.Stamp(reconcile.SourceFallback, 0, 0),
	}
}

func orderPath(orderID int64) string {
	return "tracking/orders/" + strconv.FormatInt(orderID, 10)
}
