// Package batch runs a fixed set of independent fetches concurrently and joins them.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchAll calls fetch once for every index in [0, n) concurrently and waits for all of them.
//
// Results keep index order. If any call fails, the first error is returned, the context handed to
// the remaining calls is cancelled and none of the results are returned.
func FetchAll[T any](ctx context.Context, n int, fetch func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	results := make([]T, n)
	for i := 0; i < n; i++ {
		group.Go(func() error {
			result, err := fetch(groupCtx, i)
			if err != nil {
				return err
			}
			// each goroutine owns exactly one slot
			results[i] = result
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
