// Package partner serves the supplier views of the console.
package partner

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/partner"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/report"
	"github.com/erp/console/internal/domain/shared"
	"github.com/erp/console/internal/domain/trade"
	"github.com/erp/console/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SuppliersPath is the upstream collection of suppliers
const SuppliersPath = "suppliers"

// supplierOrderKind is the order kind without demo fallback: a supplier whose
// orders cannot be read shows none rather than someone else's.
var supplierOrderKind = func() reconcile.Kind[trade.Order] {
	kind := trade.OrderKind
	kind.Fallback = func() []trade.Order { return []trade.Order{} }
	return kind
}()

// SupplierWriter sends supplier changes to the upstream API
type SupplierWriter interface {
	Post(ctx context.Context, path string, query url.Values, body any) ([]byte, error)
	Put(ctx context.Context, path string, query url.Values, body any) ([]byte, error)
	Delete(ctx context.Context, path string, query url.Values) error
}

// SupplierService handles supplier reads and changes
type SupplierService struct {
	loader *snapshot.Loader
	writer SupplierWriter
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(loader *snapshot.Loader, writer SupplierWriter) *SupplierService {
	return &SupplierService{loader: loader, writer: writer}
}

// Suppliers returns the reconciled supplier list
func (s *SupplierService) Suppliers(ctx context.Context) snapshot.Snapshot[partner.Supplier] {
	return snapshot.Load(ctx, s.loader, partner.SupplierKind, SuppliersPath, nil)
}

// SupplierOrders returns the orders of one supplier with the revenue they total
func (s *SupplierService) SupplierOrders(ctx context.Context, supplierID int64) (*SupplierOrdersResponse, error) {
	if supplierID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID must be positive")
	}
	path := SuppliersPath + "/" + strconv.FormatInt(supplierID, 10) + "/orders"
	snap := snapshot.Load(ctx, s.loader, supplierOrderKind, path, nil)
	return &SupplierOrdersResponse{
		SupplierOrders: report.SummarizeSupplierOrders(supplierID, snap.Records),
		Meta:           snap.Meta,
	}, nil
}

// CreateSupplier creates a supplier. Unlike reads, a failed write is an
// error: there is nothing meaningful to show in its place.
func (s *SupplierService) CreateSupplier(ctx context.Context, req SupplierRequest) (*SupplierResponse, error) {
	body, err := s.writer.Post(ctx, SuppliersPath, nil, req.fields())
	if err != nil {
		return nil, s.writeError(ctx, "create", err)
	}
	supplier, ok := reconcile.Coerce(partner.SupplierKind, body)
	if !ok {
		logger.L(ctx).Warn("Supplier create returned no record", zap.ByteString("body", truncate(body)))
		return nil, shared.NewDomainError("UPSTREAM_UNAVAILABLE", "Upstream API returned no supplier record")
	}
	return &SupplierResponse{Supplier: supplier, Meta: s.loader.Stamp(reconcile.SourceLive, 0, 0)}, nil
}

// UpdateSupplier replaces a supplier. When the API accepts the write but
// answers without a record, the submitted supplier is returned with source
// set to fallback.
func (s *SupplierService) UpdateSupplier(ctx context.Context, supplierID int64, req SupplierRequest) (*SupplierResponse, error) {
	if supplierID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID must be positive")
	}
	fields := req.fields()
	fields["id"] = supplierID

	body, err := s.writer.Put(ctx, supplierPath(supplierID), nil, fields)
	if err != nil {
		return nil, s.writeError(ctx, "update", err)
	}
	if supplier, ok := reconcile.Coerce(partner.SupplierKind, body); ok {
		return &SupplierResponse{Supplier: supplier, Meta: s.loader.Stamp(reconcile.SourceLive, 0, 0)}, nil
	}
	return &SupplierResponse{
		Supplier: partner.SupplierKind.Build(supplierID, reconcile.Fields(fields)),
		Meta:     s.loader.Stamp(reconcile.SourceFallback, 0, 0),
	}, nil
}

// DeleteSupplier removes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, supplierID int64) error {
	if supplierID <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Supplier ID must be positive")
	}
	if err := s.writer.Delete(ctx, supplierPath(supplierID), nil); err != nil {
		return s.writeError(ctx, "delete", err)
	}
	return nil
}

// AssignSupplier makes supplierID the supplier of productID. The product is
// included when the API answers with it.
func (s *SupplierService) AssignSupplier(ctx context.Context, productID, supplierID int64) (*AssignSupplierResponse, error) {
	if productID <= 0 || supplierID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and supplier IDs must be positive")
	}
	path := SuppliersPath + "/products/" + strconv.FormatInt(productID, 10) + "/assign"
	query := url.Values{"supplierId": {strconv.FormatInt(supplierID, 10)}}

	body, err := s.writer.Put(ctx, path, query, nil)
	if err != nil {
		return nil, s.writeError(ctx, "assign", err)
	}
	resp := &AssignSupplierResponse{ProductID: productID, SupplierID: supplierID}
	if product, ok := reconcile.Coerce(catalog.ProductKind, body); ok {
		resp.Product = &product
	}
	return resp, nil
}

// writeError maps an upstream failure of a supplier write to a domain error
func (s *SupplierService) writeError(ctx context.Context, op string, err error) error {
	logger.L(ctx).Warn("Supplier write failed", zap.String("operation", op), zap.Error(err))

	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		switch status := statusErr.HTTPStatus(); {
		case status == http.StatusNotFound:
			return shared.NewDomainError("NOT_FOUND", "Supplier or product not found")
		case status >= 400 && status < 500 && status != http.StatusTooManyRequests:
			return shared.NewDomainError("INVALID_INPUT", "Upstream API rejected the request")
		}
	}
	return shared.NewDomainError("UPSTREAM_UNAVAILABLE", "Upstream API is unavailable")
}

func supplierPath(supplierID int64) string {
	return SuppliersPath + "/" + strconv.FormatInt(supplierID, 10)
}

func truncate(body []byte) []byte {
	const limit = 256
	if len(body) > limit {
		return body[:limit]
	}
	return body
}
