package reconcile

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Extractor tries to find the candidate list inside an object envelope.
type Extractor func(obj map[string]any, plural string) ([]any, bool)

// Extractors are tried in order; the first match wins.
var Extractors = []Extractor{
	FromContent,
	FromPluralField,
	FromEmbedded,
	FromValues,
}

// Extract returns the candidate list of a decoded payload.
func Extract(raw any, plural string) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		for _, extract := range Extractors {
			if items, ok := extract(v, plural); ok {
				return items
			}
		}
	}
	return nil
}

// FromContent matches the paginated envelope {"content": [...]}.
func FromContent(obj map[string]any, _ string) ([]any, bool) {
	items, ok := obj["content"].([]any)
	return items, ok
}

// FromPluralField matches {"<plural>": [...]}.
func FromPluralField(obj map[string]any, plural string) ([]any, bool) {
	if plural == "" {
		return nil, false
	}
	items, ok := obj[plural].([]any)
	return items, ok
}

// FromEmbedded matches embedded-resource envelopes such as
// {"_embedded": {"<plural>": [...]}}. The "_embedded" field is tried first,
// then every other object-valued field in key order.
func FromEmbedded(obj map[string]any, plural string) ([]any, bool) {
	if plural == "" {
		return nil, false
	}
	if nested, ok := obj["_embedded"].(map[string]any); ok {
		if items, ok := nested[plural].([]any); ok {
			return items, true
		}
	}
	for _, key := range sortedKeys(obj) {
		if key == "_embedded" {
			continue
		}
		nested, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		if items, ok := nested[plural].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

// FromValues treats the object as a dictionary and returns its values.
func FromValues(obj map[string]any, _ string) ([]any, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	keys := sortedKeys(obj)
	values := make([]any, 0, len(keys))
	for _, key := range keys {
		values = append(values, obj[key])
	}
	return values, true
}

// sortedKeys orders keys the way a dictionary-as-array is enumerated:
// non-negative integer keys ascending, then the remaining keys lexically.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iNum := indexKey(keys[i])
		nj, jNum := indexKey(keys[j])
		switch {
		case iNum && jNum:
			return ni < nj
		case iNum != jNum:
			return iNum
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func indexKey(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	return n, err == nil
}

// Decode normalizes a payload into generic JSON values. Byte payloads are
// decoded with json.Number so large ids keep their precision; undecodable
// bytes decode to nil.
func Decode(raw any) any {
	var data []byte
	switch v := raw.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		return raw
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return out
}
