package finance

import (
	"testing"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentKind(t *testing.T) {
	raw := []byte(`[
		{"id":1,"order":{"id":1001},"amount":"245.99","status":"completed","method":"paypal","customer":{"name":"John Smith"}},
		{"id":2,"orderId":1002,"amount":12,"status":"chargeback","method":"cheque"}
	]`)

	res := reconcile.Reconcile(PaymentKind, raw, true)

	require.Len(t, res.Records, 2)
	assert.Equal(t, int64(1001), res.Records[0].OrderID)
	assert.Equal(t, "245.99", res.Records[0].Amount.String())
	assert.Equal(t, PaymentMethodPayPal, res.Records[0].Method)
	assert.Equal(t, "John Smith", res.Records[0].CustomerName)
	assert.Equal(t, PaymentStatusPending, res.Records[1].Status)
	assert.Equal(t, PaymentMethodCash, res.Records[1].Method)
	assert.Equal(t, UnknownCustomerName, res.Records[1].CustomerName)
}

func TestFallbackPayments(t *testing.T) {
	payments := FallbackPayments()
	require.Len(t, payments, 5)
	assert.Equal(t, "PAY-1004-GHI", payments[3].Reference)
	assert.Equal(t, PaymentStatusRefunded, payments[4].Status)
}
