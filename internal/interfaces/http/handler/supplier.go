package handler

import (
	partnerapp "github.com/erp/console/internal/application/partner"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// SupplierHandler serves suppliers, their orders and supplier changes
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List returns the reconciled supplier list
func (h *SupplierHandler) List(c *gin.Context) {
	snap := h.supplierService.Suppliers(c.Request.Context())
	h.SuccessWithMeta(c, snap.Records, snap.Meta, len(snap.Records))
}

// Orders returns the orders of a supplier with their revenue
func (h *SupplierHandler) Orders(c *gin.Context) {
	supplierID, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.supplierService.SupplierOrders(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, resp.Meta, len(resp.Orders))
}

// Create creates a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.supplierService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp.Supplier, resp.Meta, 1)
}

// Update replaces a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partnerapp.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.ID != nil && *req.ID != supplierID {
		h.BadRequest(c, "Supplier ID in body does not match the path")
		return
	}

	resp, err := h.supplierService.UpdateSupplier(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Supplier, resp.Meta, 1)
}

// Delete removes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AssignProduct makes ?supplierId= the supplier of product :id
func (h *SupplierHandler) AssignProduct(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partnerapp.AssignSupplierRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.supplierService.AssignSupplier(c.Request.Context(), productID, req.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PartnerRoutes creates the route group for supplier endpoints
func PartnerRoutes(h *SupplierHandler) *router.DomainGroup {
	group := router.NewDomainGroup("partner", "/partner")

	group.GET("/suppliers", h.List).Describe("reconciled suppliers")
	group.GET("/suppliers/:id/orders", h.Orders).Describe("supplier orders and revenue")
	group.POST("/suppliers", h.Create).Describe("create supplier")
	group.PUT("/suppliers/:id", h.Update).Describe("update supplier")
	group.DELETE("/suppliers/:id", h.Delete).Describe("delete supplier")
	group.PUT("/suppliers/products/:id/assign", h.AssignProduct).Describe("assign supplier to product")

	return group
}
