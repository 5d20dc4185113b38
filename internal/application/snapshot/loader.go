// Package snapshot fetches collections from the order-delivery API and
// reconciles them into the records the console displays.
package snapshot

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/erp/console/internal/domain/reconcile"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Fetcher reads a raw body from the upstream API
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Observer records reconciliation outcomes
type Observer interface {
	ObserveReconcile(kind, source string, dropped, duplicates int)
}

type nopObserver struct{}

func (nopObserver) ObserveReconcile(string, string, int, int) {}

// Meta describes how a snapshot was obtained. Sequence increases with every
// snapshot taken by a Loader, so a client holding two responses for the same
// view can keep the later one.
type Meta struct {
	Source     reconcile.Source `json:"source"`
	Dropped    int              `json:"dropped"`
	Duplicates int              `json:"duplicates"`
	FetchedAt  time.Time        `json:"fetched_at"`
	Sequence   uint64           `json:"sequence"`
}

// IsFallback reports whether the records are substituted fallback records
func (m Meta) IsFallback() bool {
	return m.Source == reconcile.SourceFallback
}

// Snapshot is one reconciled collection
type Snapshot[T any] struct {
	Records []T
	Meta    Meta
}

// Loader fetches and reconciles collections. It is safe for concurrent use.
type Loader struct {
	fetcher  Fetcher
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
	sequence atomic.Uint64
}

// Option configures a Loader
type Option func(*Loader)

// WithObserver sets the reconciliation observer
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(lg *zap.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLoader creates a Loader reading through f
func NewLoader(f Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher:  f,
		observer: nopObserver{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the loader's clock reading
func (l *Loader) Now() time.Time {
	return l.now()
}

// Fetch reads a raw body. Errors are logged and returned so callers can
// decide on their own fallback.
func (l *Loader) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	body, err := l.fetcher.Get(ctx, path, query)
	if err != nil {
		l.log(ctx).Warn("Upstream request failed", zap.String("path", path), zap.Error(err))
	}
	return body, err
}

// Stamp returns the meta of a snapshot taken now
func (l *Loader) Stamp(source reconcile.Source, dropped, duplicates int) Meta {
	return Meta{
		Source:     source,
		Dropped:    dropped,
		Duplicates: duplicates,
		FetchedAt:  l.now().UTC(),
		Sequence:   l.sequence.Add(1),
	}
}

func (l *Loader) log(ctx context.Context) *logger.ContextLogger {
	return logger.LOr(ctx, l.logger)
}

// Load fetches path and reconciles the body as kind. It never fails; a failed
// request or an unusable body yields the kind's fallback records.
func Load[T any](ctx context.Context, l *Loader, kind reconcile.Kind[T], path string, query url.Values) Snapshot[T] {
	ctx, span := telemetry.StartSpan(ctx, "snapshot", "load", telemetry.SpanAttrKind, kind.Name)
	defer span.End()

	body, err := l.Fetch(ctx, path, query)
	res := reconcile.Reconcile(kind, body, err == nil)
	return record(ctx, l, kind, res)
}

// Reconcile stamps a body that was already fetched
func Reconcile[T any](ctx context.Context, l *Loader, kind reconcile.Kind[T], raw any, requestSucceeded bool) Snapshot[T] {
	return record(ctx, l, kind, reconcile.Reconcile(kind, raw, requestSucceeded))
}

func record[T any](ctx context.Context, l *Loader, kind reconcile.Kind[T], res reconcile.Result[T]) Snapshot[T] {
	log := l.log(ctx).With(zap.String("kind", kind.Name))
	if res.Dropped > 0 || res.Duplicates > 0 {
		log.Debug("Discarded malformed records",
			zap.Int("candidates", res.Candidates),
			zap.Int("dropped", res.Dropped),
			zap.Int("duplicates", res.Duplicates),
		)
	}
	if res.IsFallback() {
		log.Warn("Substituting fallback records", zap.Int("records", len(res.Records)))
	}

	l.observer.ObserveReconcile(kind.Name, string(res.Source), res.Dropped, res.Duplicates)
	telemetry.SetAttributes(trace.SpanFromContext(ctx),
		telemetry.SpanAttrSource, string(res.Source),
		telemetry.SpanAttrDropped, res.Dropped,
		telemetry.SpanAttrDuplicates, res.Duplicates,
	)

	return Snapshot[T]{
		Records: res.Records,
		Meta:    l.Stamp(res.Source, res.Dropped, res.Duplicates),
	}
}
