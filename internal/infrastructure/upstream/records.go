package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/erp/console/internal/domain/shared"
)

var _ shared.RecordStore = (*Records)(nil)

// Records reads and writes single records at <plural>/<id>.
type Records struct {
	client *Client
}

// NewRecords returns a RecordStore backed by c
func NewRecords(c *Client) *Records {
	return &Records{client: c}
}

// Get fetches one record body
func (r *Records) Get(ctx context.Context, plural string, id int64) ([]byte, error) {
	return r.client.Get(ctx, recordPath(plural, id), nil)
}

// Put writes one record and returns the body the API answered with
func (r *Records) Put(ctx context.Context, plural string, id int64, body map[string]any) ([]byte, error) {
	return r.client.Put(ctx, recordPath(plural, id), nil, body)
}

func recordPath(plural string, id int64) string {
	return url.PathEscape(plural) + "/" + strconv.FormatInt(id, 10)
}
