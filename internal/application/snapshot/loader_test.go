package snapshot

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	args := m.Called(ctx, path, query)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

type recordedOutcome struct {
	kind, source        string
	dropped, duplicates int
}

type fakeObserver struct {
	mu       sync.Mutex
	outcomes []recordedOutcome
}

func (o *fakeObserver) ObserveReconcile(kind, source string, dropped, duplicates int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, recordedOutcome{kind, source, dropped, duplicates})
}

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestLoader(f Fetcher, opts ...Option) *Loader {
	return NewLoader(f, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestLoad_LiveRecords(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "products", url.Values(nil)).
		Return([]byte(`{"content":[{"id":1,"name":"Soap","price":2.5,"stock":3},{"id":"x"},{"id":1,"name":"Other"}]}`), nil)
	obs := &fakeObserver{}
	core, logs := observer.New(zap.DebugLevel)

	loader := newTestLoader(fetcher, WithObserver(obs), WithLogger(zap.New(core)))
	snap := Load(context.Background(), loader, catalog.ProductKind, "products", nil)

	require.Len(t, snap.Records, 1)
	assert.Equal(t, "Soap", snap.Records[0].Name)
	assert.Equal(t, reconcile.SourceLive, snap.Meta.Source)
	assert.Equal(t, 1, snap.Meta.Dropped)
	assert.Equal(t, 1, snap.Meta.Duplicates)
	assert.Equal(t, fixedNow, snap.Meta.FetchedAt)
	assert.Equal(t, uint64(1), snap.Meta.Sequence)
	assert.False(t, snap.Meta.IsFallback())

	assert.Equal(t, []recordedOutcome{{"product", "live", 1, 1}}, obs.outcomes)
	assert.Equal(t, 1, logs.FilterMessage("Discarded malformed records").Len())
	assert.Zero(t, logs.FilterMessage("Substituting fallback records").Len())
	fetcher.AssertExpectations(t)
}

func TestLoad_RequestFailure(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "products", url.Values(nil)).Return(nil, errors.New("connection refused"))
	core, logs := observer.New(zap.DebugLevel)

	loader := newTestLoader(fetcher, WithLogger(zap.New(core)))
	snap := Load(context.Background(), loader, catalog.ProductKind, "products", nil)

	assert.True(t, snap.Meta.IsFallback())
	assert.Equal(t, catalog.FallbackProducts(), snap.Records)
	assert.Equal(t, 1, logs.FilterMessage("Upstream request failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Substituting fallback records").Len())
}

func TestLoad_EmptyCollectionFallsBack(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "products", url.Values(nil)).Return([]byte(`[]`), nil)

	snap := Load(context.Background(), newTestLoader(fetcher), catalog.ProductKind, "products", nil)
	assert.True(t, snap.Meta.IsFallback())
	assert.Len(t, snap.Records, len(catalog.FallbackProducts()))
}

func TestLoad_PassesQuery(t *testing.T) {
	query := url.Values{"status": {"PENDING"}}
	fetcher := new(MockFetcher)
	fetcher.On("Get", mock.Anything, "orders", query).Return([]byte(`[{"id":4,"name":"A"}]`), nil)

	snap := Load(context.Background(), newTestLoader(fetcher), catalog.ProductKind, "orders", query)
	require.Len(t, snap.Records, 1)
	fetcher.AssertExpectations(t)
}

func TestLoader_SequenceIsMonotonic(t *testing.T) {
	loader := newTestLoader(new(MockFetcher))

	var wg sync.WaitGroup
	seen := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- loader.Stamp(reconcile.SourceLive, 0, 0).Sequence
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint64]bool)
	for s := range seen {
		unique[s] = true
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, uint64(101), loader.Stamp(reconcile.SourceLive, 0, 0).Sequence)
}

func TestReconcile_AlreadyFetched(t *testing.T) {
	loader := newTestLoader(new(MockFetcher))
	raw := map[string]any{"products": []any{map[string]any{"id": 9.0}}}

	snap := Reconcile(context.Background(), loader, catalog.ProductKind, raw, true)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, catalog.UnknownProductName, snap.Records[0].Name)

	failed := Reconcile(context.Background(), loader, catalog.ProductKind, raw, false)
	assert.True(t, failed.Meta.IsFallback())
	assert.Greater(t, failed.Meta.Sequence, snap.Meta.Sequence)
}
