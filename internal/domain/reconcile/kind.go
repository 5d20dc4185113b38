// Package reconcile turns untrusted collection payloads from the order-delivery API
// into validated, de-duplicated and defaulted record sequences.
//
// Nothing in this package returns an error. A payload that cannot yield a single usable
// record is replaced by the kind's fallback sequence, and the Result says so through
// its Source so callers can decide whether to disclose the substitution.
package reconcile

// Source tells where the records of a Result came from.
type Source string

const (
	// SourceLive means the records were built from the upstream payload.
	SourceLive Source = "live"
	// SourceFallback means the kind's fixed fallback sequence was substituted.
	SourceFallback Source = "fallback"
)

// Kind describes one record type the console fetches as a collection.
type Kind[T any] struct {
	// Name is the singular record name, e.g. "product".
	Name string
	// Plural is the collection name used by the envelope extractors, e.g. "products".
	Plural string
	// Placeholder is the label value that marks a low-information record.
	Placeholder string
	// Build creates a record from a validated id and the raw fields, filling defaults.
	Build func(id int64, f Fields) T
	// Label returns the field compared against Placeholder during de-duplication.
	Label func(T) string
	// Fallback returns a fresh copy of the fixed fallback sequence.
	Fallback func() []T
	// Stub returns the raw fields of a record synthesized when a read fails.
	// When nil, an object holding only the id is used.
	Stub func(id int64) map[string]any
}

func (k Kind[T]) stub(id int64) map[string]any {
	if k.Stub == nil {
		return map[string]any{"id": id}
	}
	fields := k.Stub(id)
	fields["id"] = id
	return fields
}

// Result is the outcome of reconciling one payload.
type Result[T any] struct {
	Records []T
	Source  Source
	// Candidates is the number of entries the extractors found.
	Candidates int
	// Dropped counts candidates rejected for shape or id.
	Dropped int
	// Duplicates counts accepted candidates that shared an id with an earlier one.
	Duplicates int
}

// IsFallback reports whether the records are the kind's fallback sequence.
func (r Result[T]) IsFallback() bool {
	return r.Source == SourceFallback
}
