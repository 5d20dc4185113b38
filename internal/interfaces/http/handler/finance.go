package handler

import (
	financeapp "github.com/erp/console/internal/application/finance"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves payments
type FinanceHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(paymentService *financeapp.PaymentService) *FinanceHandler {
	return &FinanceHandler{paymentService: paymentService}
}

// ListPayments returns the reconciled payment list
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	snap := h.paymentService.Payments(c.Request.Context())
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// PaymentStats returns payment totals and counts by status
func (h *FinanceHandler) PaymentStats(c *gin.Context) {
	resp := h.paymentService.Stats(c.Request.Context())
	h.SuccessWithMeta(c, resp, resp.Meta, resp.Stats.Count)
}

// FinanceRoutes creates the route group for payment endpoints
func FinanceRoutes(h *FinanceHandler) *router.DomainGroup {
	group := router.NewDomainGroup("finance", "/finance")

	group.GET("/payments", h.ListPayments).Describe("reconciled payments")
	group.GET("/payments/stats", h.PaymentStats).Describe("payment stats")

	return group
}
