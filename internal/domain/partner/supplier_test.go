package partner

import (
	"testing"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierKind(t *testing.T) {
	raw := []byte(`{"_embedded":{"suppliers":[
		{"id":4,"name":"","email":"info@sfax-salt.tn"},
		{"id":"4","name":"Sfax Salt Works","contactPerson":"Hedi Gharbi"},
		{"id":"x","name":"Broken"}
	]}}`)

	res := reconcile.Reconcile(SupplierKind, raw, true)

	require.Len(t, res.Records, 1)
	assert.False(t, res.IsFallback())
	assert.Equal(t, int64(4), res.Records[0].ID)
	assert.Equal(t, "Sfax Salt Works", res.Records[0].Name)
	assert.Equal(t, "Hedi Gharbi", res.Records[0].ContactPerson)
}

func TestSupplierKind_Defaults(t *testing.T) {
	s, ok := reconcile.Coerce(SupplierKind, []byte(`{"id":9}`))
	require.True(t, ok)

	assert.Equal(t, UnknownSupplierName, s.Name)
	assert.Empty(t, s.Email)
	assert.Empty(t, s.Notes)
}

func TestSupplier_CSVRow(t *testing.T) {
	s := FallbackSuppliers()[1]
	assert.Len(t, s.CSVRow(), len(s.CSVHeader()))
	assert.Equal(t, "2", s.CSVRow()[0])
	assert.Equal(t, "Kelibia Fisheries", s.CSVRow()[1])
}
