package handler

import (
	"strings"

	tradeapp "github.com/erp/console/internal/application/trade"
	"github.com/erp/console/internal/domain/trade"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// TradeHandler serves orders and order tracking
type TradeHandler struct {
	BaseHandler
	orderService    *tradeapp.OrderService
	trackingService *tradeapp.TrackingService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(orderService *tradeapp.OrderService, trackingService *tradeapp.TrackingService) *TradeHandler {
	return &TradeHandler{
		orderService:    orderService,
		trackingService: trackingService,
	}
}

// ListOrders returns the reconciled orders with their status breakdown
func (h *TradeHandler) ListOrders(c *gin.Context) {
	resp := h.orderService.OrdersWithBreakdown(c.Request.Context())
	h.SuccessWithMeta(c, resp, resp.Meta, len(resp.Orders))
}

// TrackingInfo returns the tracking summary of an order
func (h *TradeHandler) TrackingInfo(c *gin.Context) {
	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.trackingService.TrackingInfo(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Info, resp.Meta, 1)
}

// TrackingHistory returns the reconciled tracking events of an order
func (h *TradeHandler) TrackingHistory(c *gin.Context) {
	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	snap, err := h.trackingService.TrackingHistory(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// UpdateOrderStatus sets the status of an order from ?status=
func (h *TradeHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, status, ok := h.bindStatusUpdate(c)
	if !ok {
		return
	}

	resp, err := h.trackingService.UpdateOrderStatus(c.Request.Context(), orderID, trade.OrderStatus(status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Info, resp.Meta, 1)
}

// UpdateDeliveryStatus sets the status of a delivery from ?status=
func (h *TradeHandler) UpdateDeliveryStatus(c *gin.Context) {
	deliveryID, status, ok := h.bindStatusUpdate(c)
	if !ok {
		return
	}

	resp, err := h.trackingService.UpdateDeliveryStatus(c.Request.Context(), deliveryID, trade.DeliveryStatus(status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Info, resp.Meta, 1)
}

func (h *TradeHandler) bindStatusUpdate(c *gin.Context) (int64, string, bool) {
	id, ok := h.bindID(c)
	if !ok {
		return 0, "", false
	}
	var req tradeapp.UpdateStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return 0, "", false
	}
	return id, strings.ToUpper(strings.TrimSpace(req.Status)), true
}

// TradeRoutes creates the route group for order and tracking endpoints
func TradeRoutes(h *TradeHandler) *router.DomainGroup {
	group := router.NewDomainGroup("trade", "/trade")
	group.GET("/orders", h.ListOrders).Describe("reconciled orders and status breakdown")

	tracking := group.Group("tracking", "/tracking")
	tracking.GET("/orders/:id", h.TrackingInfo).Describe("tracking info")
	tracking.GET("/orders/:id/history", h.TrackingHistory).Describe("reconciled tracking events")
	tracking.PUT("/orders/:id/status", h.UpdateOrderStatus).Describe("order status update")
	tracking.PUT("/deliveries/:id/status", h.UpdateDeliveryStatus).Describe("delivery status update")

	return group
}
