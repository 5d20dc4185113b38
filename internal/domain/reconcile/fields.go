package reconcile

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Fields reads optional values out of a raw record, substituting defaults for
// anything missing or of the wrong type.
type Fields map[string]any

// Has reports whether key is present with a non-null value.
func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Text returns a non-empty string field or def.
func (f Fields) Text(key, def string) string {
	if s, ok := f[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Int returns an integral numeric field or def.
func (f Fields) Int(key string, def int64) int64 {
	switch v := f[key].(type) {
	case string, nil:
		return def
	default:
		if n, ok := ParseID(v); ok {
			return n
		}
		return def
	}
}

// Decimal returns a numeric field as a decimal, or zero. Decimal strings are
// accepted because money is commonly serialized that way.
func (f Fields) Decimal(key string) decimal.Decimal {
	switch v := f[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

// Object returns a nested object field, or nil.
func (f Fields) Object(key string) Fields {
	if obj, ok := f[key].(map[string]any); ok {
		return Fields(obj)
	}
	return nil
}

// OneOf returns a string field when it is one of allowed, otherwise def.
func (f Fields) OneOf(key, def string, allowed ...string) string {
	s, ok := f[key].(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// FirstText returns the first non-empty text found under the given paths,
// where a path is a sequence of nested object keys.
func (f Fields) FirstText(def string, paths ...[]string) string {
	for _, path := range paths {
		if s, ok := f.lookup(path).(string); ok && s != "" {
			return s
		}
	}
	return def
}

// FirstInt is FirstText for integral values.
func (f Fields) FirstInt(def int64, paths ...[]string) int64 {
	for _, path := range paths {
		v := f.lookup(path)
		if _, isString := v.(string); isString || v == nil {
			continue
		}
		if n, ok := ParseID(v); ok {
			return n
		}
	}
	return def
}

func (f Fields) lookup(path []string) any {
	cur := f
	for i, key := range path {
		if cur == nil {
			return nil
		}
		if i == len(path)-1 {
			return cur[key]
		}
		cur = cur.Object(key)
	}
	return nil
}
