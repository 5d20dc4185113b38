package reconcile

// Reconcile converts a raw collection payload into records of kind.
//
// raw may be a byte slice holding a JSON body or an already decoded value.
// When requestSucceeded is false, or when no candidate survives validation,
// the kind's fallback sequence is returned.
func Reconcile[T any](kind Kind[T], raw any, requestSucceeded bool) Result[T] {
	if !requestSucceeded {
		return withFallback(kind, Result[T]{})
	}

	candidates := Extract(Decode(raw), kind.Plural)
	res := Result[T]{Candidates: len(candidates)}
	position := make(map[int64]int, len(candidates))

	for _, candidate := range candidates {
		obj, ok := candidate.(map[string]any)
		if !ok || obj == nil {
			res.Dropped++
			continue
		}
		id, ok := ParseID(obj["id"])
		if !ok {
			res.Dropped++
			continue
		}

		record := kind.Build(id, Fields(obj))
		if pos, seen := position[id]; seen {
			res.Duplicates++
			kept := res.Records[pos]
			if kind.Label(kept) == kind.Placeholder && kind.Label(record) != kind.Placeholder {
				res.Records[pos] = record
			}
			continue
		}
		position[id] = len(res.Records)
		res.Records = append(res.Records, record)
	}

	if len(res.Records) == 0 {
		return withFallback(kind, res)
	}
	res.Source = SourceLive
	return res
}

// Coerce builds a single record from a raw object payload. It reports false
// when the payload is not an object or carries no usable id.
func Coerce[T any](kind Kind[T], raw any) (T, bool) {
	obj, ok := Decode(raw).(map[string]any)
	if !ok {
		var zero T
		return zero, false
	}
	id, ok := ParseID(obj["id"])
	if !ok {
		var zero T
		return zero, false
	}
	return kind.Build(id, Fields(obj)), true
}

func withFallback[T any](kind Kind[T], res Result[T]) Result[T] {
	res.Records = nil
	if kind.Fallback != nil {
		res.Records = kind.Fallback()
	}
	res.Source = SourceFallback
	return res
}
