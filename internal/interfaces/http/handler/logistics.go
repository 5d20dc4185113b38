package handler

import (
	logisticsapp "github.com/erp/console/internal/application/logistics"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// LogisticsHandler serves deliveries and carriers
type LogisticsHandler struct {
	BaseHandler
	deliveryService *logisticsapp.DeliveryService
}

// NewLogisticsHandler creates a new LogisticsHandler
func NewLogisticsHandler(deliveryService *logisticsapp.DeliveryService) *LogisticsHandler {
	return &LogisticsHandler{deliveryService: deliveryService}
}

// ListDeliveries returns the reconciled delivery list
func (h *LogisticsHandler) ListDeliveries(c *gin.Context) {
	snap := h.deliveryService.Deliveries(c.Request.Context())
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// ListCarriers returns the reconciled carrier list
func (h *LogisticsHandler) ListCarriers(c *gin.Context) {
	snap := h.deliveryService.Carriers(c.Request.Context())
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// LogisticsRoutes creates the route group for delivery endpoints
func LogisticsRoutes(h *LogisticsHandler) *router.DomainGroup {
	group := router.NewDomainGroup("logistics", "/logistics")

	group.GET("/deliveries", h.ListDeliveries).Describe("reconciled deliveries")
	group.GET("/carriers", h.ListCarriers).Describe("reconciled carriers")

	return group
}
