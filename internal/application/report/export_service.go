// Package report exports reconciled collections as CSV files to object storage.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/erp/console/internal/application/finance"
	"github.com/erp/console/internal/application/inventory"
	"github.com/erp/console/internal/application/logistics"
	"github.com/erp/console/internal/application/partner"
	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/application/trade"
	"github.com/erp/console/internal/domain/catalog"
	financedomain "github.com/erp/console/internal/domain/finance"
	logisticsdomain "github.com/erp/console/internal/domain/logistics"
	partnerdomain "github.com/erp/console/internal/domain/partner"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/domain/shared"
	tradedomain "github.com/erp/console/internal/domain/trade"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const csvContentType = "text/csv; charset=utf-8"

// ObjectStore stores export files
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// ExportObserver records export outcomes
type ExportObserver interface {
	ObserveExport(kind string, err error)
}

type nopExportObserver struct{}

func (nopExportObserver) ObserveExport(string, error) {}

// Record is a record that can be written as a CSV row
type Record interface {
	CSVHeader() []string
	CSVRow() []string
}

type exporter func(ctx context.Context, l *snapshot.Loader) ([]byte, int, snapshot.Meta, error)

var exporters = map[string]exporter{
	catalog.ProductKind.Name:          collection(catalog.ProductKind, inventory.ProductsPath),
	partnerdomain.SupplierKind.Name:   collection(partnerdomain.SupplierKind, partner.SuppliersPath),
	tradedomain.OrderKind.Name:        collection(tradedomain.OrderKind, trade.OrdersPath),
	financedomain.PaymentKind.Name:    collection(financedomain.PaymentKind, finance.PaymentsPath),
	logisticsdomain.DeliveryKind.Name: collection(logisticsdomain.DeliveryKind, logistics.DeliveriesPath),
	logisticsdomain.CarrierKind.Name:  collection(logisticsdomain.CarrierKind, logistics.CarriersPath),
}

func collection[T Record](kind reconcile.Kind[T], path string) exporter {
	return func(ctx context.Context, l *snapshot.Loader) ([]byte, int, snapshot.Meta, error) {
		snap := snapshot.Load(ctx, l, kind, path, nil)
		data, err := EncodeCSV(snap.Records)
		return data, len(snap.Records), snap.Meta, err
	}
}

// EncodeCSV renders records with a header row
func EncodeCSV[T Record](records []T) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	var zero T
	if err := w.Write(zero.CSVHeader()); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(r.CSVRow()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportKinds lists the kinds that can be exported
func ExportKinds() []string {
	kinds := make([]string, 0, len(exporters))
	for k := range exporters {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// ExportService writes collection snapshots to object storage
type ExportService struct {
	loader   *snapshot.Loader
	store    ObjectStore
	prefix   string
	observer ExportObserver
	newID    func() uuid.UUID
}

// NewExportService creates a new ExportService. A nil store disables exports.
func NewExportService(loader *snapshot.Loader, store ObjectStore, prefix string) *ExportService {
	if prefix == "" {
		prefix = "exports"
	}
	return &ExportService{
		loader:   loader,
		store:    store,
		prefix:   prefix,
		observer: nopExportObserver{},
		newID:    uuid.New,
	}
}

// SetObserver sets the export observer
func (s *ExportService) SetObserver(o ExportObserver) {
	if o != nil {
		s.observer = o
	}
}

// Enabled reports whether exports have somewhere to go
func (s *ExportService) Enabled() bool {
	return s.store != nil
}

// Export reconciles kind and stores it as CSV. Fallback records are exported
// like live ones; the response meta tells them apart.
func (s *ExportService) Export(ctx context.Context, kind string) (*ExportResponse, error) {
	export, ok := exporters[kind]
	if !ok {
		return nil, shared.ErrUnknownKind
	}
	if s.store == nil {
		return nil, shared.ErrStorageDisabled
	}

	ctx, span := telemetry.StartSpan(ctx, "report", "export", telemetry.SpanAttrKind, kind)
	defer span.End()

	res, err := s.export(ctx, kind, export)
	s.observer.ObserveExport(kind, err)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Export failed", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	logger.L(ctx).Info("Export stored",
		zap.String("kind", kind),
		zap.String("key", res.Key),
		zap.Int("rows", res.Rows),
	)
	return res, nil
}

func (s *ExportService) export(ctx context.Context, kind string, export exporter) (*ExportResponse, error) {
	data, rows, meta, err := export(ctx, s.loader)
	if err != nil {
		return nil, fmt.Errorf("encode %s export: %w", kind, err)
	}

	key := s.objectKey(kind, meta.FetchedAt)
	if err := s.store.Upload(ctx, key, data, csvContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	res := &ExportResponse{Kind: kind, Key: key, Rows: rows, Meta: meta}
	url, expiresAt, err := s.store.DownloadURL(ctx, key)
	if err != nil {
		logger.L(ctx).Warn("Export stored without download URL", zap.String("key", key), zap.Error(err))
		return res, nil
	}
	res.URL = url
	if !expiresAt.IsZero() {
		res.ExpiresAt = &expiresAt
	}
	return res, nil
}

// objectKey is <prefix>/<kind>/<timestamp>-<uuid>.csv
func (s *ExportService) objectKey(kind string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s.csv", s.prefix, kind, at.UTC().Format("20060102T150405Z"), s.newID())
}

// ExportResponse describes a stored export
type ExportResponse struct {
	Kind      string        `json:"kind"`
	Key       string        `json:"key"`
	URL       string        `json:"url,omitempty"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	Rows      int           `json:"rows"`
	Meta      snapshot.Meta `json:"-"`
}
