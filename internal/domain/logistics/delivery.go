// Package logistics holds deliveries and the carriers that perform them.
package logistics

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Unassigned is the carrier name of a delivery without a carrier
const Unassigned = "Unassigned"

// Delivery is the shipment of one order by a carrier
type Delivery struct {
	ID           int64                `json:"id"`
	OrderID      int64                `json:"orderId"`
	CarrierName  string               `json:"carrierName"`
	DeliveryDate string               `json:"deliveryDate"`
	Cost         decimal.Decimal      `json:"cost"`
	Status       trade.DeliveryStatus `json:"status"`
}

// CSVHeader returns the export column names
func (Delivery) CSVHeader() []string {
	return []string{"id", "order_id", "carrier_name", "delivery_date", "cost", "status"}
}

// CSVRow returns the export columns of the delivery
func (d Delivery) CSVRow() []string {
	return []string{
		strconv.FormatInt(d.ID, 10),
		strconv.FormatInt(d.OrderID, 10),
		d.CarrierName,
		d.DeliveryDate,
		d.Cost.StringFixed(2),
		string(d.Status),
	}
}

// DeliveryKind reconciles delivery collections. Order and carrier may be
// given flat or as nested objects.
var DeliveryKind = reconcile.Kind[Delivery]{
	Name:        "delivery",
	Plural:      "deliveries",
	Placeholder: Unassigned,
	Build: func(id int64, f reconcile.Fields) Delivery {
		return Delivery{
			ID:           id,
			OrderID:      f.FirstInt(0, []string{"orderId"}, []string{"order", "id"}),
			CarrierName:  f.FirstText(Unassigned, []string{"carrierName"}, []string{"carrier", "name"}),
			DeliveryDate: f.Text("deliveryDate", ""),
			Cost:         f.Decimal("cost"),
			Status:       trade.DeliveryStatus(f.OneOf("status", string(trade.DeliveryStatusPending), trade.DeliveryStatusNames()...)),
		}
	},
	Label:    func(d Delivery) string { return d.CarrierName },
	Fallback: FallbackDeliveries,
}

// FallbackDeliveries returns the demo deliveries
func FallbackDeliveries() []Delivery {
	return []Delivery{
		{ID: 1, OrderID: 1001, CarrierName: "Rapid Poste", DeliveryDate: "2025-05-22", Cost: decimal.RequireFromString("7.50"), Status: trade.DeliveryStatusDelivered},
		{ID: 2, OrderID: 1002, CarrierName: "Aramex Tunisie", DeliveryDate: "2025-05-24", Cost: decimal.RequireFromString("9.00"), Status: trade.DeliveryStatusInTransit},
	}
}
