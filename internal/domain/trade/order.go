// Package trade holds customer orders and their tracking history.
package trade

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusConfirmed        OrderStatus = "CONFIRMED"
	OrderStatusProcessing       OrderStatus = "PROCESSING"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusInDelivery       OrderStatus = "IN_DELIVERY"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// OrderStatuses lists every order status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusReadyForDelivery,
	OrderStatusInDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid checks if the order status is known
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func orderStatusNames() []string {
	names := make([]string, len(OrderStatuses))
	for i, s := range OrderStatuses {
		names[i] = string(s)
	}
	return names
}

// UnknownCustomerName is the placeholder for records without a customer
const UnknownCustomerName = "Unknown Customer"

// Order is a customer order as listed by the console
type Order struct {
	ID           int64           `json:"id"`
	Date         string          `json:"date"`
	Status       OrderStatus     `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CustomerName string          `json:"customerName"`
}

// CSVHeader returns the export column names
func (Order) CSVHeader() []string {
	return []string{"id", "date", "status", "total_amount", "customer_name"}
}

// CSVRow returns the export columns of the order
func (o Order) CSVRow() []string {
	return []string{
		formatID(o.ID),
		o.Date,
		string(o.Status),
		o.TotalAmount.StringFixed(2),
		o.CustomerName,
	}
}

// OrderKind reconciles order collections. The customer name is read from
// either a flat customerName field or a nested customer object.
var OrderKind = reconcile.Kind[Order]{
	Name:        "order",
	Plural:      "orders",
	Placeholder: UnknownCustomerName,
	Build: func(id int64, f reconcile.Fields) Order {
		return Order{
			ID:           id,
			Date:         f.Text("date", ""),
			Status:       OrderStatus(f.OneOf("status", string(OrderStatusPending), orderStatusNames()...)),
			TotalAmount:  f.Decimal("totalAmount"),
			CustomerName: f.FirstText(UnknownCustomerName, []string{"customerName"}, []string{"customer", "name"}),
		}
	},
	Label:    func(o Order) string { return o.CustomerName },
	Fallback: FallbackOrders,
}

// FallbackOrders returns the demo orders
func FallbackOrders() []Order {
	return []Order{
		{ID: 1001, Date: "2025-05-20", Status: OrderStatusDelivered, TotalAmount: decimal.RequireFromString("245.99"), CustomerName: "John Smith"},
		{ID: 1002, Date: "2025-05-21", Status: OrderStatusProcessing, TotalAmount: decimal.RequireFromString("125.50"), CustomerName: "Sarah Johnson"},
		{ID: 1003, Date: "2025-05-22", Status: OrderStatusPending, TotalAmount: decimal.RequireFromString("78.25"), CustomerName: "Michael Brown"},
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
