package report

import (
	"github.com/erp/console/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is used when no threshold is configured
const DefaultLowStockThreshold int64 = 5

// InventorySummary provides aggregated inventory statistics
type InventorySummary struct {
	TotalProducts   int             `json:"total_products"`
	TotalValue      decimal.Decimal `json:"total_value"` // Σ price × stock
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	Threshold       int64           `json:"low_stock_threshold"`
}

// LowStock returns products with 0 < stock <= threshold
func LowStock(products []catalog.Product, threshold int64) []catalog.Product {
	return Filter(products, func(p catalog.Product) bool { return p.IsLowStock(threshold) })
}

// OutOfStock returns products with no stock left
func OutOfStock(products []catalog.Product) []catalog.Product {
	return Filter(products, catalog.Product.IsOutOfStock)
}

// SummarizeInventory computes the inventory summary. A non-positive threshold
// is replaced by DefaultLowStockThreshold.
func SummarizeInventory(products []catalog.Product, threshold int64) InventorySummary {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return InventorySummary{
		TotalProducts:   len(products),
		TotalValue:      Sum(products, catalog.Product.StockValue),
		LowStockCount:   len(LowStock(products, threshold)),
		OutOfStockCount: len(OutOfStock(products)),
		Threshold:       threshold,
	}
}
