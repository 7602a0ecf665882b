// Package appctx memoizes lookups for the lifetime of one request.
//
// Middleware creates a RequestContext per inbound request and stores it in
// the request context. Services then route repeated work through GetOrFetch,
// so a batch naming the same value many times converts it once:
//
//	rc := appctx.FromContextOrNew(ctx)
//	n, err := appctx.GetOrFetch(rc, "numeral:1994", convert)
//
// A RequestContext is safe for concurrent use. Callers that ask for a key
// while it is being fetched wait for that fetch and share its outcome.
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrTypeMismatch means one key was requested with two different types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext wraps a context.Context with a per-request memo. Entries,
// errors included, live as long as the RequestContext.
type RequestContext struct {
	context.Context

	group singleflight.Group

	mu   sync.RWMutex
	memo map[string]outcome
}

type outcome struct {
	value any
	err   error
}

// New returns an empty RequestContext around ctx.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{Context: ctx, memo: make(map[string]outcome)}
}

// Len reports how many keys have been fetched.
func (rc *RequestContext) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.memo)
}

// GetOrFetch returns the memoized outcome for key, calling fetch with the
// wrapped context the first time key is seen. A key must always be read with
// the same T; a different T yields ErrTypeMismatch.
func GetOrFetch[T any](rc *RequestContext, key string, fetch func(context.Context) (T, error)) (T, error) {
	if o, ok := rc.load(key); ok {
		return as[T](key, o)
	}

	v, _, _ := rc.group.Do(key, func() (any, error) {
		if o, ok := rc.load(key); ok {
			return o, nil
		}
		value, err := fetch(rc.Context)
		o := outcome{value: value, err: err}

		rc.mu.Lock()
		rc.memo[key] = o
		rc.mu.Unlock()
		return o, nil
	})
	return as[T](key, v.(outcome))
}

func (rc *RequestContext) load(key string) (outcome, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	o, ok := rc.memo[key]
	return o, ok
}

func as[T any](key string, o outcome) (T, error) {
	var zero T
	if o.err != nil {
		return zero, o.err
	}
	v, ok := o.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T, not %T", ErrTypeMismatch, key, o.value, zero)
	}
	return v, nil
}

type ctxKey struct{}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or nil.
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(ctxKey{}).(*RequestContext)
	return rc
}

// FromContextOrNew returns the stored RequestContext or, outside an HTTP
// request, a fresh one scoped to the caller.
func FromContextOrNew(ctx context.Context) *RequestContext {
	if rc := FromContext(ctx); rc != nil {
		return rc
	}
	return New(ctx)
}
