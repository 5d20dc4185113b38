package report

import (
	"context"
	"encoding/csv"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/shared"
	"github.com/erp/console/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher is a mock implementation of snapshot.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	args := m.Called(ctx, path, query)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

type failingStore struct{}

func (failingStore) Upload(context.Context, string, []byte, string) error {
	return errors.New("bucket unreachable")
}

func (failingStore) DownloadURL(context.Context, string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("unreachable")
}

type exportCounter struct {
	ok, failed int
}

func (c *exportCounter) ObserveExport(_ string, err error) {
	if err != nil {
		c.failed++
		return
	}
	c.ok++
}

var (
	fixedNow = time.Date(2026, 7, 4, 9, 15, 30, 0, time.UTC)
	fixedID  = uuid.MustParse("0b6c1f0e-3d7a-4c55-9b7e-1f2a3b4c5d6e")
)

func newExportService(fetcher snapshot.Fetcher, store ObjectStore) *ExportService {
	loader := snapshot.NewLoader(fetcher, snapshot.WithClock(func() time.Time { return fixedNow }))
	svc := NewExportService(loader, store, "")
	svc.newID = func() uuid.UUID { return fixedID }
	return svc
}

func TestExportKinds(t *testing.T) {
	assert.Equal(t, []string{"carrier", "delivery", "order", "payment", "product", "supplier"}, ExportKinds())
}

func TestEncodeCSV(t *testing.T) {
	data, err := EncodeCSV([]catalog.Product{{ID: 1, Name: "Soap, lavender", Category: "Hygiene"}})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, catalog.Product{}.CSVHeader(), rows[0])
	assert.Equal(t, "Soap, lavender", rows[1][1])
}

func TestExportService_Export(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "products", url.Values(nil)).
		Return([]byte(`[{"id":1,"name":"Olive Oil","price":"12.5","stock":4},{"id":2,"name":"Soap"}]`), nil)
	store := storage.NewMemoryObjectStore()
	counter := &exportCounter{}

	svc := newExportService(fetcher, store)
	svc.SetObserver(counter)
	require.True(t, svc.Enabled())

	res, err := svc.Export(context.Background(), "product")
	require.NoError(t, err)

	wantKey := "exports/product/20260704T091530Z-" + fixedID.String() + ".csv"
	assert.Equal(t, wantKey, res.Key)
	assert.Equal(t, "memory://"+wantKey, res.URL)
	assert.Nil(t, res.ExpiresAt)
	assert.Equal(t, 2, res.Rows)
	assert.False(t, res.Meta.IsFallback())
	assert.Equal(t, 1, counter.ok)

	obj, ok := store.Get(wantKey)
	require.True(t, ok)
	assert.Equal(t, csvContentType, obj.ContentType)
	assert.Contains(t, string(obj.Data), "1,Olive Oil,,12.50,4,Uncategorized")
}

func TestExportService_ExportFallback(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "carriers", url.Values(nil)).Return(nil, errors.New("down"))

	res, err := newExportService(fetcher, storage.NewMemoryObjectStore()).Export(context.Background(), "carrier")
	require.NoError(t, err)
	assert.True(t, res.Meta.IsFallback())
	assert.Equal(t, 2, res.Rows)
}

func TestExportService_Errors(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		_, err := newExportService(new(MockFetcher), storage.NewMemoryObjectStore()).Export(context.Background(), "invoice")
		assert.ErrorIs(t, err, shared.ErrUnknownKind)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := newExportService(new(MockFetcher), nil)
		assert.False(t, svc.Enabled())
		_, err := svc.Export(context.Background(), "product")
		assert.ErrorIs(t, err, shared.ErrStorageDisabled)
	})

	t.Run("upload failure", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("Get", mock.Anything, "orders", url.Values(nil)).Return([]byte(`[{"id":1}]`), nil)
		counter := &exportCounter{}
		svc := newExportService(fetcher, failingStore{})
		svc.SetObserver(counter)

		_, err := svc.Export(context.Background(), "order")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrStorage)
		assert.Contains(t, err.Error(), "bucket unreachable")
		assert.Equal(t, 1, counter.failed)
	})
}
