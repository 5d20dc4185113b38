package finance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/finance"
	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, status int, body string) *snapshot.Loader {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := upstream.New(config.UpstreamConfig{BaseURL: server.URL + "/api"})
	require.NoError(t, err)
	return snapshot.NewLoader(client)
}

func TestPaymentService_Stats(t *testing.T) {
	svc := NewPaymentService(newLoader(t, http.StatusOK, `[
		{"id":1,"orderId":3,"amount":"100.00","status":"completed","method":"paypal"},
		{"id":2,"amount":20.5,"status":"refunded"},
		{"id":3,"amount":4.5,"status":"weird"},
		{"id":4,"amount":10,"status":"failed"}
	]`))

	res := svc.Stats(context.Background())
	assert.False(t, res.Meta.IsFallback())
	assert.Equal(t, "135", res.Stats.Total.String())
	assert.Equal(t, 4, res.Stats.Count)
	assert.Equal(t, 1, res.Stats.Completed)
	assert.Equal(t, 1, res.Stats.Pending)
	assert.Equal(t, 1, res.Stats.Failed)
	assert.Equal(t, 1, res.Stats.Refunded)
}

func TestPaymentService_PaymentsFallback(t *testing.T) {
	svc := NewPaymentService(newLoader(t, http.StatusBadGateway, `oops`))

	snap := svc.Payments(context.Background())
	assert.True(t, snap.Meta.IsFallback())
	assert.Equal(t, finance.FallbackPayments(), snap.Records)
}
