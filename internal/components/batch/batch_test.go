package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchAllKeepsOrder(t *testing.T) {
	results, err := FetchAll(context.Background(), 5, func(_ context.Context, i int) (string, error) {
		return fmt.Sprintf("page-%d", i+1), nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"page-1", "page-2", "page-3", "page-4", "page-5"}, results)
}

func TestFetchAllEmpty(t *testing.T) {
	var calls atomic.Int32
	results, err := FetchAll(context.Background(), 0, func(_ context.Context, i int) (int, error) {
		calls.Add(1)
		return i, nil
	})
	require.NoError(t, err)
	require.Nil(t, results)
	require.Equal(t, int32(0), calls.Load())
}

func TestFetchAllFailsWholeBatch(t *testing.T) {
	failure := errors.New("upstream down")

	var calls atomic.Int32
	results, err := FetchAll(context.Background(), 4, func(_ context.Context, i int) (int, error) {
		calls.Add(1)
		if i == 2 {
			return 0, failure
		}
		return i, nil
	})
	require.ErrorIs(t, err, failure)
	require.Nil(t, results)
	require.Equal(t, int32(4), calls.Load())
}
