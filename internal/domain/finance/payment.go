// Package finance holds customer payment records and their statistics.
package finance

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentStatuses lists every payment status
var PaymentStatuses = []PaymentStatus{
	PaymentStatusCompleted,
	PaymentStatusPending,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// PaymentMethod is how a customer paid
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodCash         PaymentMethod = "cash"
)

var paymentMethods = []string{
	string(PaymentMethodCreditCard),
	string(PaymentMethodBankTransfer),
	string(PaymentMethodPayPal),
	string(PaymentMethodCash),
}

// UnknownCustomerName is the placeholder for payments without a customer
const UnknownCustomerName = "Unknown Customer"

// Payment is a customer payment against an order
type Payment struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"orderId"`
	Amount       decimal.Decimal `json:"amount"`
	Status       PaymentStatus   `json:"status"`
	Method       PaymentMethod   `json:"method"`
	Date         string          `json:"date"`
	CustomerName string          `json:"customerName"`
	Reference    string          `json:"reference"`
}

// CSVHeader returns the export column names
func (Payment) CSVHeader() []string {
	return []string{"id", "order_id", "amount", "status", "method", "date", "customer_name", "reference"}
}

// CSVRow returns the export columns of the payment
func (p Payment) CSVRow() []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		strconv.FormatInt(p.OrderID, 10),
		p.Amount.StringFixed(2),
		string(p.Status),
		string(p.Method),
		p.Date,
		p.CustomerName,
		p.Reference,
	}
}

// PaymentKind reconciles payment collections
var PaymentKind = reconcile.Kind[Payment]{
	Name:        "payment",
	Plural:      "payments",
	Placeholder: UnknownCustomerName,
	Build: func(id int64, f reconcile.Fields) Payment {
		statuses := make([]string, len(PaymentStatuses))
		for i, s := range PaymentStatuses {
			statuses[i] = string(s)
		}
		return Payment{
			ID:           id,
			OrderID:      f.FirstInt(0, []string{"orderId"}, []string{"order", "id"}),
			Amount:       f.Decimal("amount"),
			Status:       PaymentStatus(f.OneOf("status", string(PaymentStatusPending), statuses...)),
			Method:       PaymentMethod(f.OneOf("method", string(PaymentMethodCash), paymentMethods...)),
			Date:         f.Text("date", ""),
			CustomerName: f.FirstText(UnknownCustomerName, []string{"customerName"}, []string{"customer", "name"}),
			Reference:    f.Text("reference", ""),
		}
	},
	Label:    func(p Payment) string { return p.CustomerName },
	Fallback: FallbackPayments,
}

// FallbackPayments returns the demo payments
func FallbackPayments() []Payment {
	return []Payment{
		{ID: 1, OrderID: 1001, Amount: decimal.RequireFromString("245.99"), Status: PaymentStatusCompleted, Method: PaymentMethodCreditCard, Date: "2025-05-20T14:30:00", CustomerName: "John Smith", Reference: "PAY-1001-XYZ"},
		{ID: 2, OrderID: 1002, Amount: decimal.RequireFromString("125.50"), Status: PaymentStatusPending, Method: PaymentMethodBankTransfer, Date: "2025-05-21T09:15:00", CustomerName: "Sarah Johnson", Reference: "PAY-1002-ABC"},
		{ID: 3, OrderID: 1003, Amount: decimal.RequireFromString("78.25"), Status: PaymentStatusCompleted, Method: PaymentMethodPayPal, Date: "2025-05-22T16:45:00", CustomerName: "Michael Brown", Reference: "PAY-1003-DEF"},
		{ID: 4, OrderID: 1004, Amount: decimal.RequireFromString("320.00"), Status: PaymentStatusFailed, Method: PaymentMethodCreditCard, Date: "2025-05-23T11:20:00", CustomerName: "Emily Wilson", Reference: "PAY-1004-GHI"},
		{ID: 5, OrderID: 1005, Amount: decimal.RequireFromString("95.75"), Status: PaymentStatusRefunded, Method: PaymentMethodPayPal, Date: "2025-05-19T13:10:00", CustomerName: "David Lee", Reference: "PAY-1005-JKL"},
	}
}
