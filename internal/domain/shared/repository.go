package shared

import (
	"context"
)

// RecordStore reads and writes single records of a kind on the remote API.
// Bodies are returned undecoded; callers decide how much of them to trust.
type RecordStore interface {
	Get(ctx context.Context, plural string, id int64) ([]byte, error)
	Put(ctx context.Context, plural string, id int64, body map[string]any) ([]byte, error)
}
