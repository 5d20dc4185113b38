package inventory

import (
	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/report"
)

// ProductListResponse is a filtered product list
type ProductListResponse struct {
	Products  []catalog.Product `json:"products"`
	Threshold int64             `json:"threshold,omitempty"`
	Meta      snapshot.Meta     `json:"-"`
}

// SummaryResponse is the inventory summary of one product snapshot
type SummaryResponse struct {
	Summary report.InventorySummary `json:"summary"`
	Meta    snapshot.Meta           `json:"-"`
}

// ProductResponse is a single product and where it came from
type ProductResponse struct {
	Product catalog.Product  `json:"product"`
	Source  reconcile.Source `json:"source"`
}

// UpdateStockRequest is the body of a stock update
type UpdateStockRequest struct {
	Stock *int64 `json:"stock" binding:"required,min=0"`
}

// StockUpdateResponse is the product as the console should show it after a
// stock update
type StockUpdateResponse struct {
	Product   catalog.Product `json:"product"`
	Persisted bool            `json:"persisted"`
	LocalOnly bool            `json:"local_only"`
}
