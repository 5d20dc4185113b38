package handler

import (
	inventoryapp "github.com/erp/console/internal/application/inventory"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// InventoryHandler serves products and their stock
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListProducts returns the reconciled product list
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	snap := h.inventoryService.Products(c.Request.Context())
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// GetProduct returns one product, or a stand-in when the API cannot provide it
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.inventoryService.Product(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LowStock returns products with 0 < stock <= threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold, ok := h.bindThreshold(c)
	if !ok {
		return
	}
	resp := h.inventoryService.LowStock(c.Request.Context(), threshold)
	h.SuccessWithMeta(c, resp, resp.Meta, len(resp.Products))
}

// OutOfStock returns products with no stock
func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	resp := h.inventoryService.OutOfStock(c.Request.Context())
	h.SuccessWithMeta(c, resp, resp.Meta, len(resp.Products))
}

// Summary returns the inventory totals
func (h *InventoryHandler) Summary(c *gin.Context) {
	threshold, ok := h.bindThreshold(c)
	if !ok {
		return
	}
	resp := h.inventoryService.Summary(c.Request.Context(), threshold)
	h.SuccessWithMeta(c, resp, resp.Meta, resp.Summary.TotalProducts)
}

// UpdateStock sets the stock of a product. The response always carries the
// requested stock; persisted and local_only tell whether the API kept it.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req inventoryapp.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.inventoryService.UpdateStock(c.Request.Context(), productID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InventoryHandler) bindThreshold(c *gin.Context) (int64, bool) {
	var query dto.ThresholdQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return 0, false
	}
	return query.Threshold, true
}

// InventoryRoutes creates the route group for inventory endpoints
func InventoryRoutes(h *InventoryHandler) *router.DomainGroup {
	group := router.NewDomainGroup("inventory", "/inventory")

	group.GET("/products", h.ListProducts).Describe("reconciled products")
	group.GET("/products/low-stock", h.LowStock).Describe("products at or below the low stock threshold")
	group.GET("/products/out-of-stock", h.OutOfStock).Describe("products with no stock")
	group.GET("/products/:id", h.GetProduct).Describe("single product, stand-in on failure")
	group.PUT("/products/:id/stock", h.UpdateStock).Describe("stock mutation")
	group.GET("/summary", h.Summary).Describe("inventory summary")

	return group
}
