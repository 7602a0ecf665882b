// Package fanout applies a function to every item of a slice with bounded
// concurrency and returns the outcomes in input order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one item: Value on success, Err otherwise.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn once per item with at most limit calls in flight (limit below
// 1 means 1). Items start in index order and results[i] belongs to items[i].
//
// Items not yet started when ctx is done get ctx.Err() without calling fn.
// Calls already running are not interrupted; fn should watch ctx if it can
// block. Run returns after every item has a result.
func Run[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
