package reconcile

import (
	"context"

	"github.com/erp/console/internal/domain/shared"
)

// Mutation sets one field of one record.
type Mutation struct {
	ID    int64
	Field string
	Value any
}

// MutationResult is the record the caller should display after a mutation.
type MutationResult[T any] struct {
	Record T
	// LocalOnly is set when the record could not be read and no write was attempted.
	LocalOnly bool
	// Persisted is set when the write succeeded and returned a usable record.
	Persisted bool
}

// Mutate reads a record, applies m and writes it back. It never fails: when
// the read fails a stub record is synthesized, and when the write fails or
// returns nothing usable the locally mutated record is returned. The returned
// record always carries m.Value in m.Field.
func Mutate[T any](ctx context.Context, kind Kind[T], store shared.RecordStore, m Mutation) MutationResult[T] {
	current, ok := readObject(ctx, kind, store, m.ID)
	if !ok {
		fields := kind.stub(m.ID)
		fields[m.Field] = m.Value
		return MutationResult[T]{
			Record:    kind.Build(m.ID, Fields(fields)),
			LocalOnly: true,
		}
	}

	if _, ok := ParseID(current["id"]); !ok {
		current["id"] = m.ID
	}
	current[m.Field] = m.Value
	local := kind.Build(m.ID, Fields(current))

	body, err := store.Put(ctx, kind.Plural, m.ID, current)
	if err != nil {
		return MutationResult[T]{Record: local}
	}
	written, ok := Decode(body).(map[string]any)
	if !ok {
		return MutationResult[T]{Record: local}
	}
	written[m.Field] = m.Value
	// A body without a usable id is an acknowledgement, not the saved record.
	saved, ok := Coerce(kind, written)
	if !ok {
		return MutationResult[T]{Record: local}
	}
	return MutationResult[T]{Record: saved, Persisted: true}
}
