package reconcile_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/erp/console/internal/domain/catalog"
	"github.com/erp/console/internal/domain/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	getBody []byte
	getErr  error
	putBody []byte
	putErr  error

	puts []map[string]any
}

func (s *fakeStore) Get(_ context.Context, _ string, _ int64) ([]byte, error) {
	return s.getBody, s.getErr
}

func (s *fakeStore) Put(_ context.Context, _ string, _ int64, body map[string]any) ([]byte, error) {
	s.puts = append(s.puts, body)
	return s.putBody, s.putErr
}

func stockMutation(id, stock int64) reconcile.Mutation {
	return reconcile.Mutation{ID: id, Field: "stock", Value: stock}
}

func TestMutate_ReadFailure(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection refused")}

	res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(42, 17))

	assert.True(t, res.LocalOnly)
	assert.False(t, res.Persisted)
	assert.Empty(t, store.puts, "no write after a failed read")
	assert.Equal(t, catalog.Product{
		ID:          42,
		Name:        "Product 42",
		Description: "Product description",
		Price:       res.Record.Price,
		Stock:       17,
		Category:    catalog.DefaultCategory,
	}, res.Record)
	assert.True(t, res.Record.Price.IsZero())
}

func TestMutate_ReadReturnsNonObject(t *testing.T) {
	for name, getBody := range map[string][]byte{
		"array":   []byte(`[{"id":42}]`),
		"garbage": []byte(`not json`),
		"empty":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{getBody: getBody}

			res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(42, 3))

			assert.True(t, res.LocalOnly)
			assert.Equal(t, int64(3), res.Record.Stock)
			assert.Empty(t, store.puts)
		})
	}
}

func TestMutate_WriteSucceeds(t *testing.T) {
	store := &fakeStore{
		getBody: []byte(`{"id":7,"name":"Harissa","price":4.5,"stock":2,"category":"Grocery"}`),
		putBody: []byte(`{"id":7,"name":"Harissa Tube","price":4.5,"stock":99,"category":"Grocery"}`),
	}

	res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(7, 12))

	assert.True(t, res.Persisted)
	assert.False(t, res.LocalOnly)
	assert.Equal(t, "Harissa Tube", res.Record.Name, "server record is returned")
	assert.Equal(t, int64(12), res.Record.Stock, "caller's value is kept")

	require.Len(t, store.puts, 1)
	assert.Equal(t, int64(12), store.puts[0]["stock"])
	assert.Equal(t, "Harissa", store.puts[0]["name"])
}

func TestMutate_WriteFails(t *testing.T) {
	tests := []struct {
		name    string
		putBody []byte
		putErr  error
	}{
		{"transport error", nil, errors.New("timeout")},
		{"no body", nil, nil},
		{"array body", []byte(`[]`), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				getBody: []byte(`{"id":7,"name":"Harissa","price":"4.50","stock":2}`),
				putBody: tt.putBody,
				putErr:  tt.putErr,
			}

			res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(7, 0))

			assert.False(t, res.Persisted)
			assert.False(t, res.LocalOnly)
			assert.Equal(t, "Harissa", res.Record.Name)
			assert.True(t, decimal.RequireFromString("4.5").Equal(res.Record.Price))
			assert.Equal(t, int64(0), res.Record.Stock)
		})
	}
}

func TestMutate_FillsMissingID(t *testing.T) {
	store := &fakeStore{getBody: []byte(`{"name":"Capers"}`), putErr: errors.New("down")}

	res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(5, 8))

	require.Len(t, store.puts, 1)
	assert.Equal(t, int64(5), store.puts[0]["id"])
	assert.Equal(t, int64(5), res.Record.ID)
	assert.Equal(t, int64(8), res.Record.Stock)
}

func TestMutate_WrittenBodyIsSerializable(t *testing.T) {
	store := &fakeStore{getBody: []byte(`{"id":1,"price":1.25}`)}

	reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(1, 4))

	require.Len(t, store.puts, 1)
	data, err := json.Marshal(store.puts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"price":1.25,"stock":4}`, string(data))
}

func TestMutate_WriteReturnsNonRecord(t *testing.T) {
	for name, putBody := range map[string][]byte{
		"acknowledgement": []byte(`{"success":true}`),
		"bad id":          []byte(`{"id":"four","name":"Other"}`),
	} {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{
				getBody: []byte(`{"id":4,"name":"Harissa","price":3.5,"stock":10,"category":"Grocery"}`),
				putBody: putBody,
			}

			res := reconcile.Mutate(context.Background(), catalog.ProductKind, store, stockMutation(4, 20))

			assert.False(t, res.Persisted)
			assert.False(t, res.LocalOnly)
			assert.Equal(t, "Harissa", res.Record.Name)
			assert.Equal(t, "Grocery", res.Record.Category)
			assert.True(t, decimal.RequireFromString("3.5").Equal(res.Record.Price))
			assert.Equal(t, int64(20), res.Record.Stock)
		})
	}
}

func TestMutate_NonFiniteValue(t *testing.T) {
	store := &fakeStore{getBody: []byte(`{"id":4,"name":"Harissa","price":3.5}`), putErr: errors.New("down")}

	res := reconcile.Mutate(context.Background(), catalog.ProductKind, store,
		reconcile.Mutation{ID: 4, Field: "price", Value: math.Inf(1)})

	assert.True(t, res.Record.Price.IsZero())
	assert.Equal(t, "Harissa", res.Record.Name)
}
