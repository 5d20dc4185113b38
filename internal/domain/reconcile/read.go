package reconcile

import (
	"context"

	"github.com/erp/console/internal/domain/shared"
)

// Read fetches one record. When the read fails or the body holds no object,
// the kind's stub is returned and live is false. A body without an id gets
// the requested one.
func Read[T any](ctx context.Context, kind Kind[T], store shared.RecordStore, id int64) (record T, live bool) {
	obj, ok := readObject(ctx, kind, store, id)
	if ok {
		if _, ok := ParseID(obj["id"]); !ok {
			obj["id"] = id
		}
		if record, ok := Coerce(kind, obj); ok {
			return record, true
		}
	}
	return kind.Build(id, Fields(kind.stub(id))), false
}

func readObject[T any](ctx context.Context, kind Kind[T], store shared.RecordStore, id int64) (map[string]any, bool) {
	body, err := store.Get(ctx, kind.Plural, id)
	if err != nil {
		return nil, false
	}
	obj, ok := Decode(body).(map[string]any)
	return obj, ok
}
