package report

import (
	"github.com/erp/console/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SupplierOrders is a supplier's order list with the revenue it represents
type SupplierOrders struct {
	SupplierID int64           `json:"supplier_id"`
	Orders     []trade.Order   `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// SummarizeSupplierOrders totals the orders of one supplier
func SummarizeSupplierOrders(supplierID int64, orders []trade.Order) SupplierOrders {
	return SupplierOrders{
		SupplierID: supplierID,
		Orders:     orders,
		Revenue:    Sum(orders, func(o trade.Order) decimal.Decimal { return o.TotalAmount }),
	}
}

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status trade.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

// OrderStatusBreakdown counts orders per status. Every known status is
// listed, in lifecycle order, even when its count is zero.
func OrderStatusBreakdown(orders []trade.Order) []StatusCount {
	counts := CountBy(orders, func(o trade.Order) trade.OrderStatus { return o.Status })
	out := make([]StatusCount, 0, len(trade.OrderStatuses))
	for _, s := range trade.OrderStatuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}
