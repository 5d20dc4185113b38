package partner

import (
	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/partner"
	"github.com/erp/console/internal/domain/report"
)

// SupplierOrdersResponse is a supplier's orders and revenue
type SupplierOrdersResponse struct {
	report.SupplierOrders
	Meta snapshot.Meta `json:"-"`
}

// SupplierRequest is the body of a supplier create or update. ID is optional
// and must match the path on update.
type SupplierRequest struct {
	ID            *int64 `json:"id"`
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"max=200"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	Notes         string `json:"notes" binding:"max=2000"`
}

func (r SupplierRequest) fields() map[string]any {
	return map[string]any{
		"name":          r.Name,
		"contactPerson": r.ContactPerson,
		"email":         r.Email,
		"phone":         r.Phone,
		"address":       r.Address,
		"notes":         r.Notes,
	}
}

// SupplierResponse is a supplier after a write
type SupplierResponse struct {
	Supplier partner.Supplier `json:"supplier"`
	Meta     snapshot.Meta    `json:"-"`
}

// AssignSupplierRequest carries the ?supplierId= of a supplier assignment
type AssignSupplierRequest struct {
	SupplierID int64 `form:"supplierId" binding:"required,gt=0"`
}

// AssignSupplierResponse confirms a supplier assignment
type AssignSupplierResponse struct {
	ProductID  int64            `json:"productId"`
	SupplierID int64            `json:"supplierId"`
	Product    *catalog.Product `json:"product,omitempty"`
}
