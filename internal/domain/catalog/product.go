// Package catalog holds the product records shown by the inventory console.
package catalog

import (
	"strconv"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
)

// Product defaults
const (
	UnknownProductName = "Unknown Product"
	DefaultCategory    = "Uncategorized"
)

// Product is a sellable item with its current stock level
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
}

// StockValue returns price multiplied by stock
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}

// IsOutOfStock reports whether nothing is left
func (p Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// IsLowStock reports whether some stock is left but no more than threshold
func (p Product) IsLowStock(threshold int64) bool {
	return p.Stock > 0 && p.Stock <= threshold
}

// CSVHeader returns the export column names
func (Product) CSVHeader() []string {
	return []string{"id", "name", "description", "price", "stock", "category"}
}

// CSVRow returns the export columns of the product
func (p Product) CSVRow() []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Description,
		p.Price.StringFixed(2),
		strconv.FormatInt(p.Stock, 10),
		p.Category,
	}
}

// ProductKind reconciles product collections
var ProductKind = reconcile.Kind[Product]{
	Name:        "product",
	Plural:      "products",
	Placeholder: UnknownProductName,
	Build:       buildProduct,
	Label:       func(p Product) string { return p.Name },
	Fallback:    FallbackProducts,
	Stub:        productStub,
}

func buildProduct(id int64, f reconcile.Fields) Product {
	return Product{
		ID:          id,
		Name:        f.Text("name", UnknownProductName),
		Description: f.Text("description", ""),
		Price:       f.Decimal("price"),
		Stock:       f.Int("stock", 0),
		Category:    f.Text("category", DefaultCategory),
	}
}

// productStub is the record shown when a product cannot be read
func productStub(id int64) map[string]any {
	return map[string]any{
		"name":        "Product " + strconv.FormatInt(id, 10),
		"description": "Product description",
		"price":       0,
		"stock":       0,
		"category":    DefaultCategory,
	}
}

// FallbackProducts returns the demo catalog
func FallbackProducts() []Product {
	return []Product{
		{ID: 1, Name: "Extra Virgin Olive Oil 1L", Description: "Premium olive oil from Nabeul region", Price: decimal.RequireFromString("25.99"), Stock: 200, Category: "Grocery"},
		{ID: 2, Name: "Olive Oil Soap", Description: "Handmade soap with Nabeul olive oil", Price: decimal.RequireFromString("5.99"), Stock: 300, Category: "Personal Care"},
		{ID: 3, Name: "Fresh Sea Bass", Description: "Caught daily from Kelibia waters", Price: decimal.RequireFromString("18.50"), Stock: 50, Category: "Seafood"},
	}
}
