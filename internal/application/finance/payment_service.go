// Package finance serves the payment views of the console.
package finance

import (
	"context"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/finance"
	"github.com/erp/console/internal/domain/report"
)

// PaymentsPath is the upstream collection of payments
const PaymentsPath = "payments"

// PaymentService handles payment reads
type PaymentService struct {
	loader *snapshot.Loader
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(loader *snapshot.Loader) *PaymentService {
	return &PaymentService{loader: loader}
}

// Payments returns the reconciled payment list
func (s *PaymentService) Payments(ctx context.Context) snapshot.Snapshot[finance.Payment] {
	return snapshot.Load(ctx, s.loader, finance.PaymentKind, PaymentsPath, nil)
}

// Stats returns totals over the payment list
func (s *PaymentService) Stats(ctx context.Context) PaymentStatsResponse {
	snap := s.Payments(ctx)
	return PaymentStatsResponse{
		Stats: report.SummarizePayments(snap.Records),
		Meta:  snap.Meta,
	}
}

// PaymentStatsResponse is the payment stats of one payment snapshot
type PaymentStatsResponse struct {
	Stats report.PaymentStats `json:"stats"`
	Meta  snapshot.Meta       `json:"-"`
}
