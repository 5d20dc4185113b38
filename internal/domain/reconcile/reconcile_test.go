package reconcile_test

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/partner"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func sameJSON(t *testing.T, expected, actual any) {
	t.Helper()
	assert.JSONEq(t, string(body(t, expected)), string(body(t, actual)))
}

func productIDs(products []catalog.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestReconcile_RequestFailed(t *testing.T) {
	payloads := map[string]any{
		"nil":       nil,
		"valid":     []byte(`[{"id":7,"name":"Dates"}]`),
		"garbage":   []byte(`<html>`),
		"empty map": map[string]any{},
	}
	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			res := reconcile.Reconcile(catalog.ProductKind, raw, false)
			assert.True(t, res.IsFallback())
			sameJSON(t, catalog.FallbackProducts(), res.Records)
		})
	}
}

func TestReconcile_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ids  []int64
	}{
		{"bare array", `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`, []int64{1, 2}},
		{"content page", `{"content":[{"id":3,"name":"C"}],"totalElements":1}`, []int64{3}},
		{"plural field", `{"products":[{"id":4,"name":"D"}]}`, []int64{4}},
		{"embedded", `{"_embedded":{"products":[{"id":5,"name":"E"}]},"_links":{}}`, []int64{5}},
		{"dictionary", `{"10":{"id":10,"name":"J"},"2":{"id":2,"name":"B"}}`, []int64{2, 10}},
		{"content wins over plural", `{"products":[{"id":1,"name":"A"}],"content":[{"id":9,"name":"I"}]}`, []int64{9}},
		{"plural wins over embedded", `{"_embedded":{"products":[{"id":1,"name":"A"}]},"products":[{"id":8,"name":"H"}]}`, []int64{8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reconcile.Reconcile(catalog.ProductKind, []byte(tt.raw), true)
			assert.Equal(t, reconcile.SourceLive, res.Source)
			assert.Equal(t, tt.ids, productIDs(res.Records))
		})
	}
}

func TestReconcile_UnusablePayloadsFallBack(t *testing.T) {
	payloads := map[string]any{
		"nil":               nil,
		"empty body":        []byte(``),
		"invalid json":      []byte(`{"id":`),
		"number":            []byte(`42`),
		"string":            []byte(`"products"`),
		"empty array":       []byte(`[]`),
		"empty object":      []byte(`{}`),
		"only bad ids":      []byte(`[{"id":"abc"},{"name":"no id"},{"id":1.5}]`),
		"primitive entries": []byte(`[1,"two",null,true]`),
	}
	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			res := reconcile.Reconcile(catalog.ProductKind, raw, true)
			assert.Equal(t, reconcile.SourceFallback, res.Source)
			assert.NotEmpty(t, res.Records)
			sameJSON(t, catalog.FallbackProducts(), res.Records)
		})
	}
}

func TestReconcile_IDValidation(t *testing.T) {
	raw := []byte(`[
		{"id":1,"name":"number"},
		{"id":"2","name":"numeric string"},
		{"id":"3abc","name":"residue"},
		{"id":"","name":"empty"},
		{"id":"1.5","name":"fractional string"},
		{"id":4.0,"name":"integral float"},
		{"id":4.5,"name":"fraction"},
		{"id":true,"name":"bool"},
		{"id":null,"name":"null"},
		{"name":"missing"}
	]`)

	res := reconcile.Reconcile(catalog.ProductKind, raw, true)

	assert.Equal(t, []int64{1, 2, 4}, productIDs(res.Records))
	assert.Equal(t, 10, res.Candidates)
	assert.Equal(t, 7, res.Dropped)
}

func TestReconcile_Defaults(t *testing.T) {
	res := reconcile.Reconcile(catalog.ProductKind, []byte(`[{"id":5,"name":"","price":"abc","stock":"12"}]`), true)
	require.Len(t, res.Records, 1)

	p := res.Records[0]
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, catalog.UnknownProductName, p.Name)
	assert.Equal(t, "", p.Description)
	assert.True(t, p.Price.IsZero())
	assert.Equal(t, int64(0), p.Stock)
	assert.Equal(t, catalog.DefaultCategory, p.Category)
}

func TestReconcile_Deduplication(t *testing.T) {
	t.Run("first occurrence wins", func(t *testing.T) {
		res := reconcile.Reconcile(catalog.ProductKind, []byte(`[{"id":1,"name":"First"},{"id":2,"name":"Other"},{"id":1,"name":"Second"}]`), true)

		require.Len(t, res.Records, 2)
		assert.Equal(t, "First", res.Records[0].Name)
		assert.Equal(t, 1, res.Duplicates)
	})

	t.Run("placeholder is replaced in place", func(t *testing.T) {
		res := reconcile.Reconcile(catalog.ProductKind, []byte(`[{"id":1},{"id":2,"name":"Other"},{"id":"1","name":"Named"}]`), true)

		require.Len(t, res.Records, 2)
		assert.Equal(t, []int64{1, 2}, productIDs(res.Records))
		assert.Equal(t, "Named", res.Records[0].Name)
	})

	t.Run("placeholder does not replace named record", func(t *testing.T) {
		res := reconcile.Reconcile(catalog.ProductKind, []byte(`[{"id":1,"name":"Named"},{"id":1}]`), true)

		require.Len(t, res.Records, 1)
		assert.Equal(t, "Named", res.Records[0].Name)
	})

	t.Run("explicit placeholder name counts as placeholder", func(t *testing.T) {
		res := reconcile.Reconcile(catalog.ProductKind, []byte(`[{"id":1,"name":"Unknown Product"},{"id":1,"name":"Figs"}]`), true)

		require.Len(t, res.Records, 1)
		assert.Equal(t, "Figs", res.Records[0].Name)
	})
}

func TestReconcile_AcceptsDecodedValues(t *testing.T) {
	raw := map[string]any{
		"content": []any{
			map[string]any{"id": 1, "name": "Dates", "price": 3.5, "stock": 10},
			map[string]any{"id": int64(2), "name": "Figs", "price": decimal.NewFromInt(2)},
		},
	}

	res := reconcile.Reconcile(catalog.ProductKind, raw, true)

	require.Len(t, res.Records, 2)
	assert.True(t, decimal.NewFromFloat(3.5).Equal(res.Records[0].Price))
	assert.Equal(t, int64(10), res.Records[0].Stock)
	assert.True(t, decimal.NewFromInt(2).Equal(res.Records[1].Price))
}

func TestReconcile_NonFiniteMoney(t *testing.T) {
	raw := []any{
		map[string]any{"id": 1, "name": "Dates", "price": math.NaN()},
		map[string]any{"id": 2, "name": "Figs", "price": math.Inf(-1)},
	}

	var res reconcile.Result[catalog.Product]
	require.NotPanics(t, func() { res = reconcile.Reconcile(catalog.ProductKind, raw, true) })

	require.Len(t, res.Records, 2)
	assert.True(t, res.Records[0].Price.IsZero())
	assert.True(t, res.Records[1].Price.IsZero())
}

func TestExtract_NestedEnvelope(t *testing.T) {
	raw := []byte(`{"page":{"number":0,"size":2},"data":{"products":[{"id":3,"name":"Capers"},{"id":4,"name":"Tuna"}]}}`)

	res := reconcile.Reconcile(catalog.ProductKind, raw, true)

	require.Len(t, res.Records, 2)
	assert.False(t, res.IsFallback())
	assert.Equal(t, "Capers", res.Records[0].Name)
	assert.Equal(t, "Tuna", res.Records[1].Name)
}

func TestExtract_EmbeddedWinsOverNestedFields(t *testing.T) {
	obj := map[string]any{
		"_embedded": map[string]any{"products": []any{map[string]any{"id": 1}}},
		"a":         map[string]any{"products": []any{map[string]any{"id": 2}}},
	}

	items, ok := reconcile.FromEmbedded(obj, "products")

	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].(map[string]any)["id"])
}

func fakeSuppliers(f *gofakeit.Faker, n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		entry := map[string]any{
			"id":            f.IntRange(1, 40),
			"name":          f.Company(),
			"contactPerson": f.Name(),
			"email":         f.Email(),
			"phone":         f.Phone(),
		}
		switch f.IntRange(0, 5) {
		case 0:
			delete(entry, "name")
		case 1:
			entry["id"] = fmt.Sprintf("%d", entry["id"])
		case 2:
			entry["id"] = f.Word()
		}
		out = append(out, entry)
	}
	return out
}

func TestReconcile_Properties(t *testing.T) {
	f := gofakeit.New(42)

	for round := 0; round < 50; round++ {
		entries := fakeSuppliers(f, f.IntRange(0, 30))
		var raw any = entries
		if round%2 == 1 {
			raw = map[string]any{"content": entries}
		}
		payload := body(t, raw)

		res := reconcile.Reconcile(partner.SupplierKind, payload, true)

		require.NotEmpty(t, res.Records, "round %d", round)

		seen := map[int64]bool{}
		for _, s := range res.Records {
			assert.False(t, seen[s.ID], "duplicate id %d in round %d", s.ID, round)
			seen[s.ID] = true
			assert.NotEmpty(t, s.Name)
		}

		if res.IsFallback() {
			sameJSON(t, partner.FallbackSuppliers(), res.Records)
			continue
		}

		// output follows first-occurrence order of the valid ids
		var order []int64
		firstSeen := map[int64]bool{}
		for _, e := range entries {
			id, ok := reconcile.ParseID(e["id"])
			if !ok || firstSeen[id] {
				continue
			}
			firstSeen[id] = true
			order = append(order, id)
		}
		got := make([]int64, len(res.Records))
		for i, s := range res.Records {
			got[i] = s.ID
		}
		assert.Equal(t, order, got, "round %d", round)
		assert.Equal(t, len(entries), res.Candidates)
		assert.Equal(t, len(entries), len(res.Records)+res.Dropped+res.Duplicates)

		again := reconcile.Reconcile(partner.SupplierKind, body(t, res.Records), true)
		assert.Equal(t, res.Records, again.Records, "round %d", round)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	raw := []byte(`{"_embedded":{"products":[
		{"id":"3","name":"Harissa","price":4.2,"stock":40,"category":"Grocery"},
		{"id":1,"price":"18.50"},
		{"id":1,"name":"Sea Bream","description":"Whole fish"},
		{"id":"x"}
	]}}`)

	first := reconcile.Reconcile(catalog.ProductKind, raw, true)
	require.Equal(t, reconcile.SourceLive, first.Source)

	second := reconcile.Reconcile(catalog.ProductKind, body(t, first.Records), true)

	assert.Equal(t, reconcile.SourceLive, second.Source)
	sameJSON(t, first.Records, second.Records)
	assert.Zero(t, second.Dropped)
	assert.Zero(t, second.Duplicates)
}

func TestReconcile_FallbackIsFreshCopy(t *testing.T) {
	res := reconcile.Reconcile(catalog.ProductKind, nil, false)
	res.Records[0].Name = "changed"

	again := reconcile.Reconcile(catalog.ProductKind, nil, false)
	assert.Equal(t, "Extra Virgin Olive Oil 1L", again.Records[0].Name)
}

func TestCoerce(t *testing.T) {
	p, ok := reconcile.Coerce(catalog.ProductKind, []byte(`{"id":"9","name":"Capers","stock":3}`))
	require.True(t, ok)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, int64(3), p.Stock)

	_, ok = reconcile.Coerce(catalog.ProductKind, []byte(`[{"id":9}]`))
	assert.False(t, ok)

	_, ok = reconcile.Coerce(catalog.ProductKind, []byte(`{"name":"no id"}`))
	assert.False(t, ok)
}
