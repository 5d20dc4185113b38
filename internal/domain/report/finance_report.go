package report

import (
	"github.com/erp/console/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// PaymentStats summarizes a payment list
type PaymentStats struct {
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	Completed int             `json:"completed"`
	Pending   int             `json:"pending"`
	Failed    int             `json:"failed"`
	Refunded  int             `json:"refunded"`
}

// SummarizePayments sums every payment amount, whatever its status, and
// counts payments per status.
func SummarizePayments(payments []finance.Payment) PaymentStats {
	counts := CountBy(payments, func(p finance.Payment) finance.PaymentStatus { return p.Status })
	return PaymentStats{
		Total:     Sum(payments, func(p finance.Payment) decimal.Decimal { return p.Amount }),
		Count:     len(payments),
		Completed: counts[finance.PaymentStatusCompleted],
		Pending:   counts[finance.PaymentStatusPending],
		Failed:    counts[finance.PaymentStatusFailed],
		Refunded:  counts[finance.PaymentStatusRefunded],
	}
}
