// Package inventory serves the product views of the console: the product
// list, stock filters, the inventory summary and stock updates.
package inventory

import (
	"context"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/report"
	"github.com/erp/console/internal/domain/shared"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductsPath is the upstream collection of products
const ProductsPath = "products"

// Mutation outcomes reported to the MutationObserver
const (
	OutcomePersisted = "persisted"
	OutcomeLocalOnly = "local_only"
	OutcomeUnsaved   = "unsaved"
)

// MutationObserver records the outcome of record mutations
type MutationObserver interface {
	ObserveMutation(kind, outcome string)
}

type nopMutationObserver struct{}

func (nopMutationObserver) ObserveMutation(string, string) {}

// InventoryService handles product reads and stock updates
type InventoryService struct {
	loader    *snapshot.Loader
	records   shared.RecordStore
	threshold int64
	observer  MutationObserver
}

// NewInventoryService creates a new InventoryService. A non-positive
// threshold means report.DefaultLowStockThreshold.
func NewInventoryService(loader *snapshot.Loader, records shared.RecordStore, threshold int64) *InventoryService {
	if threshold <= 0 {
		threshold = report.DefaultLowStockThreshold
	}
	return &InventoryService{
		loader:    loader,
		records:   records,
		threshold: threshold,
		observer:  nopMutationObserver{},
	}
}

// SetMutationObserver sets the observer of stock updates
func (s *InventoryService) SetMutationObserver(o MutationObserver) {
	if o != nil {
		s.observer = o
	}
}

// Threshold returns the configured low stock threshold
func (s *InventoryService) Threshold() int64 {
	return s.threshold
}

// Products returns the reconciled product list
func (s *InventoryService) Products(ctx context.Context) snapshot.Snapshot[catalog.Product] {
	return snapshot.Load(ctx, s.loader, catalog.ProductKind, ProductsPath, nil)
}

// LowStock returns products with some stock left but no more than threshold.
// A non-positive threshold means the configured one.
func (s *InventoryService) LowStock(ctx context.Context, threshold int64) ProductListResponse {
	threshold = s.effectiveThreshold(threshold)
	snap := s.Products(ctx)
	return ProductListResponse{
		Products:  report.LowStock(snap.Records, threshold),
		Threshold: threshold,
		Meta:      snap.Meta,
	}
}

// OutOfStock returns products with a stock of zero
func (s *InventoryService) OutOfStock(ctx context.Context) ProductListResponse {
	snap := s.Products(ctx)
	return ProductListResponse{
		Products: report.OutOfStock(snap.Records),
		Meta:     snap.Meta,
	}
}

// Summary returns the inventory summary
func (s *InventoryService) Summary(ctx context.Context, threshold int64) SummaryResponse {
	snap := s.Products(ctx)
	return SummaryResponse{
		Summary: report.SummarizeInventory(snap.Records, s.effectiveThreshold(threshold)),
		Meta:    snap.Meta,
	}
}

// Product returns one product. When the API cannot produce it a stand-in
// named "Product <id>" is returned with source set to fallback.
func (s *InventoryService) Product(ctx context.Context, productID int64) (*ProductResponse, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID must be positive")
	}

	product, live := reconcile.Read(ctx, catalog.ProductKind, s.records, productID)
	resp := &ProductResponse{Product: product, Source: reconcile.SourceLive}
	if !live {
		resp.Source = reconcile.SourceFallback
		logger.L(ctx).Warn("Product read failed, using stand-in", zap.Int64("product_id", productID))
	}
	return resp, nil
}

// UpdateStock sets the stock of a product. Only invalid input is an error:
// when the API cannot be read or written the locally updated product is
// returned with the outcome flags set accordingly.
func (s *InventoryService) UpdateStock(ctx context.Context, productID, stock int64) (*StockUpdateResponse, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID must be positive")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock cannot be negative")
	}

	ctx, span := telemetry.StartSpan(ctx, "inventory", "update_stock",
		telemetry.SpanAttrKind, catalog.ProductKind.Name,
		telemetry.SpanAttrRecordID, productID,
	)
	defer span.End()

	res := reconcile.Mutate(ctx, catalog.ProductKind, s.records, reconcile.Mutation{
		ID:    productID,
		Field: "stock",
		Value: stock,
	})

	outcome := mutationOutcome(res.Persisted, res.LocalOnly)
	s.observer.ObserveMutation(catalog.ProductKind.Name, outcome)
	if outcome != OutcomePersisted {
		logger.L(ctx).Warn("Stock update not persisted",
			zap.Int64("product_id", productID),
			zap.Int64("stock", stock),
			zap.String("outcome", outcome),
		)
	}

	return &StockUpdateResponse{
		Product:   res.Record,
		Persisted: res.Persisted,
		LocalOnly: res.LocalOnly,
	}, nil
}

func (s *InventoryService) effectiveThreshold(threshold int64) int64 {
	if threshold <= 0 {
		return s.threshold
	}
	return threshold
}

func mutationOutcome(persisted, localOnly bool) string {
	switch {
	case persisted:
		return OutcomePersisted
	case localOnly:
		return OutcomeLocalOnly
	default:
		return OutcomeUnsaved
	}
}
