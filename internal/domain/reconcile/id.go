package reconcile

import (
	"encoding/json"
	"math"
	"strconv"
)

// ParseID normalizes a raw id to an int64 key. Numbers must be finite and
// integral; strings must be base-10 integers with nothing left over.
func ParseID(v any) (int64, bool) {
	switch id := v.(type) {
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	case int64:
		return id, true
	case float64:
		return integral(id)
	case json.Number:
		if n, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
			return n, true
		}
		f, err := id.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
