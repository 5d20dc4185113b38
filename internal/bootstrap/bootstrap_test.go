package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/storage"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL, backend string) *config.Config {
	return &config.Config{
		Upstream:  config.UpstreamConfig{BaseURL: baseURL},
		Inventory: config.InventoryConfig{LowStockThreshold: 5},
		Storage:   config.StorageConfig{Backend: backend, Prefix: "exports"},
	}
}

func TestNew(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Soap","price":2,"stock":3}]`)
	}))
	defer server.Close()

	metrics := telemetry.NewMetrics()
	svc, err := New(context.Background(), testConfig(server.URL+"/api", "memory"), zap.NewNop(), metrics)
	require.NoError(t, err)

	assert.IsType(t, &storage.MemoryObjectStore{}, svc.Store)
	assert.True(t, svc.Exports.Enabled())
	assert.Equal(t, int64(5), svc.Inventory.Threshold())

	snap := svc.Inventory.Products(context.Background())
	require.Len(t, snap.Records, 1)
	assert.False(t, snap.Meta.IsFallback())

	series, err := testutil.GatherAndCount(metrics.Registry(), telemetry.MetricReconcileTotal)
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestNew_WithoutMetrics(t *testing.T) {
	svc, err := New(context.Background(), testConfig("http://localhost:1/api", "none"), zap.NewNop(), nil)
	require.NoError(t, err)

	assert.Nil(t, svc.Store)
	assert.False(t, svc.Exports.Enabled())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), testConfig("", "memory"), zap.NewNop(), nil)
	require.Error(t, err)

	_, err = New(context.Background(), testConfig("http://localhost:1/api", "ftp"), zap.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")

	_, err = New(context.Background(), testConfig("http://localhost:1/api", "s3"), zap.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 storage")
}
