// Package bootstrap builds the console services from configuration. The
// gateway and consolectl share it.
package bootstrap

import (
	"context"
	"fmt"

	financeapp "github.com/erp/console/internal/application/finance"
	inventoryapp "github.com/erp/console/internal/application/inventory"
	logisticsapp "github.com/erp/console/internal/application/logistics"
	partnerapp "github.com/erp/console/internal/application/partner"
	reportapp "github.com/erp/console/internal/application/report"
	"github.com/erp/console/internal/application/snapshot"
	tradeapp "github.com/erp/console/internal/application/trade"
	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/storage"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"github.com/erp/console/internal/infrastructure/upstream"
	"go.uber.org/zap"
)

// Services holds every application service of the console
type Services struct {
	Upstream   *upstream.Client
	Loader     *snapshot.Loader
	Inventory  *inventoryapp.InventoryService
	Suppliers  *partnerapp.SupplierService
	Orders     *tradeapp.OrderService
	Tracking   *tradeapp.TrackingService
	Payments   *financeapp.PaymentService
	Deliveries *logisticsapp.DeliveryService
	Exports    *reportapp.ExportService
	// Store is nil when exports are disabled
	Store reportapp.ObjectStore
}

// New wires the services. A nil metrics leaves them unobserved.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics) (*Services, error) {
	clientOpts := []upstream.Option{upstream.WithLogger(log)}
	loaderOpts := []snapshot.Option{snapshot.WithLogger(log)}
	if metrics != nil {
		clientOpts = append(clientOpts, upstream.WithObserver(metrics))
		loaderOpts = append(loaderOpts, snapshot.WithObserver(metrics))
	}

	client, err := upstream.New(cfg.Upstream, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("upstream client: %w", err)
	}

	store, err := NewObjectStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	loader := snapshot.NewLoader(client, loaderOpts...)
	s := &Services{
		Upstream:   client,
		Loader:     loader,
		Inventory:  inventoryapp.NewInventoryService(loader, upstream.NewRecords(client), cfg.Inventory.LowStockThreshold),
		Suppliers:  partnerapp.NewSupplierService(loader, client),
		Orders:     tradeapp.NewOrderService(loader),
		Tracking:   tradeapp.NewTrackingService(loader, client),
		Payments:   financeapp.NewPaymentService(loader),
		Deliveries: logisticsapp.NewDeliveryService(loader),
		Exports:    reportapp.NewExportService(loader, store, cfg.Storage.Prefix),
		Store:      store,
	}
	if metrics != nil {
		s.Inventory.SetMutationObserver(metrics)
		s.Exports.SetObserver(metrics)
	}
	return s, nil
}

// NewObjectStore returns the export store selected by cfg.Backend, or nil for
// "none". An S3 bucket is created when missing.
func NewObjectStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (reportapp.ObjectStore, error) {
	switch cfg.Backend {
	case "none":
		log.Info("Report export disabled")
		return nil, nil
	case "s3":
		store, err := storage.NewS3ObjectStore(ctx, cfg, storage.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		log.Info("Report export to S3", zap.String("bucket", store.Bucket()))
		return store, nil
	case "memory", "":
		log.Warn("Report exports are kept in memory and lost on restart")
		return storage.NewMemoryObjectStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
