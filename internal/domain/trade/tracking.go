package trade

import (
	"time"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
)

// DeliveryStatus represents the state of the delivery attached to an order
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryStatusPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// DeliveryStatuses lists every delivery status in lifecycle order
var DeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusAssigned,
	DeliveryStatusPickedUp,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusFailed,
}

// IsValid checks if the delivery status is known
func (s DeliveryStatus) IsValid() bool {
	for _, known := range DeliveryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DeliveryStatusNames returns the delivery statuses as plain strings
func DeliveryStatusNames() []string {
	names := make([]string, len(DeliveryStatuses))
	for i, s := range DeliveryStatuses {
		names[i] = string(s)
	}
	return names
}

// NoDescription is the placeholder description of a tracking event
const NoDescription = "No description"

// TrackingEvent is one step of an order's tracking history.
// Either status may be empty when the step did not change it.
type TrackingEvent struct {
	ID             int64          `json:"id"`
	OrderStatus    OrderStatus    `json:"orderStatus,omitempty"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus,omitempty"`
	Timestamp      string         `json:"timestamp"`
	Description    string         `json:"description"`
}

// CSVHeader returns the export column names
func (TrackingEvent) CSVHeader() []string {
	return []string{"id", "order_status", "delivery_status", "timestamp", "description"}
}

// CSVRow returns the export columns of the event
func (e TrackingEvent) CSVRow() []string {
	return []string{
		formatID(e.ID),
		string(e.OrderStatus),
		string(e.DeliveryStatus),
		e.Timestamp,
		e.Description,
	}
}

// TrackingEventKind returns the tracking history kind. The fallback history
// is stamped relative to now.
func TrackingEventKind(now func() time.Time) reconcile.Kind[TrackingEvent] {
	return reconcile.Kind[TrackingEvent]{
		Name:        "tracking event",
		Plural:      "history",
		Placeholder: NoDescription,
		Build: func(id int64, f reconcile.Fields) TrackingEvent {
			return TrackingEvent{
				ID:             id,
				OrderStatus:    OrderStatus(f.OneOf("orderStatus", "", orderStatusNames()...)),
				DeliveryStatus: DeliveryStatus(f.OneOf("deliveryStatus", "", DeliveryStatusNames()...)),
				Timestamp:      f.Text("timestamp", ""),
				Description:    f.Text("description", NoDescription),
			}
		},
		Label: func(e TrackingEvent) string { return e.Description },
		Fallback: func() []TrackingEvent {
			return FallbackHistory(now())
		},
	}
}

// FallbackHistory returns the demo three step history ending at now
func FallbackHistory(now time.Time) []TrackingEvent {
	day := 24 * time.Hour
	return []TrackingEvent{
		{ID: 1, OrderStatus: OrderStatusConfirmed, DeliveryStatus: DeliveryStatusPending, Timestamp: stamp(now.Add(-2 * day)), Description: "Order received and confirmed"},
		{ID: 2, OrderStatus: OrderStatusProcessing, DeliveryStatus: DeliveryStatusPickedUp, Timestamp: stamp(now.Add(-day)), Description: "Package picked up from supplier"},
		{ID: 3, OrderStatus: OrderStatusInDelivery, DeliveryStatus: DeliveryStatusInTransit, Timestamp: stamp(now), Description: "Package in transit to delivery address"},
	}
}

// TrackingInfo is the tracking summary of one order
type TrackingInfo struct {
	OrderID         int64           `json:"orderId"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	OrderDate       string          `json:"orderDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DeliveryID      *int64          `json:"deliveryId,omitempty"`
	DeliveryStatus  DeliveryStatus  `json:"deliveryStatus,omitempty"`
	DeliveryDate    string          `json:"deliveryDate,omitempty"`
	CarrierName     string          `json:"carrierName,omitempty"`
	CarrierPhone    string          `json:"carrierPhone,omitempty"`
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
}

// BuildTrackingInfo coerces a tracking info payload. The order id falls back
// to orderID when the payload lacks a usable one. It reports false when the
// payload is not an object.
func BuildTrackingInfo(raw any, orderID int64) (TrackingInfo, bool) {
	obj, ok := reconcile.Decode(raw).(map[string]any)
	if !ok {
		return TrackingInfo{}, false
	}
	f := reconcile.Fields(obj)
	info := TrackingInfo{
		OrderID:         f.Int("orderId", orderID),
		OrderStatus:     OrderStatus(f.OneOf("orderStatus", string(OrderStatusPending), orderStatusNames()...)),
		OrderDate:       f.Text("orderDate", ""),
		TotalAmount:     f.Decimal("totalAmount"),
		DeliveryStatus:  DeliveryStatus(f.OneOf("deliveryStatus", "", DeliveryStatusNames()...)),
		DeliveryDate:    f.Text("deliveryDate", ""),
		CarrierName:     f.Text("carrierName", ""),
		CarrierPhone:    f.Text("carrierPhone", ""),
		CustomerName:    f.Text("customerName", UnknownCustomerName),
		CustomerAddress: f.Text("customerAddress", ""),
	}
	if id, ok := reconcile.ParseID(obj["deliveryId"]); ok {
		info.DeliveryID = &id
	}
	return info, true
}

// FallbackTrackingInfo returns the demo tracking info for orderID
func FallbackTrackingInfo(orderID int64, now time.Time) TrackingInfo {
	return TrackingInfo{
		OrderID:         orderID,
		OrderStatus:     OrderStatusProcessing,
		OrderDate:       stamp(now),
		TotalAmount:     decimal.RequireFromString("45.99"),
		DeliveryStatus:  DeliveryStatusInTransit,
		CarrierName:     "Sample Carrier",
		CarrierPhone:    "+216 72 123 456",
		CustomerName:    "Sample Customer",
		CustomerAddress: "123 Sample Street, Sample City",
	}
}

func stamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
