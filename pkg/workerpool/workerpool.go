// Package workerpool runs bounded fan-out over a slice where the first failure stops the rest.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Process calls process for every item on at most workerCount goroutines. The first error
// cancels the context handed to the remaining calls, invokes onCancel once and is returned after
// every started call has finished.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	return run(ctx, workerCount, len(items), func(ctx context.Context, i int) error {
		return process(ctx, items[i])
	}, onCancel)
}

// Map is Process collecting one result per item. Results keep the order of items.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	out := make([]R, len(items))
	err := run(ctx, workerCount, len(items), func(ctx context.Context, i int) error {
		r, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func run(ctx context.Context, workerCount, n int, fn func(context.Context, int) error, onCancel func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workerCount <= 0 {
		workerCount = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	var cancelOnce sync.Once
	for i := 0; i < n && gctx.Err() == nil; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, i); err != nil {
				if onCancel != nil {
					cancelOnce.Do(onCancel)
				}
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
