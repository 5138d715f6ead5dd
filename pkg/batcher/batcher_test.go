package batcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]int
	ctxErrs []error
}

func (r *recorder) flush(ctx context.Context, items []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, items)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}

func (r *recorder) snapshot() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]int(nil), r.batches...)
}

func TestBatcher_FlushOnSize(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 3, time.Hour, 0)
	b.Start(ctx)
	defer b.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Add(ctx, i))
	}

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, [][]int{{0, 1, 2}}, rec.snapshot())
}

func TestBatcher_FlushOnInterval(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 5, 20*time.Millisecond, 1000)
	b.Start(ctx)
	defer b.Stop()

	require.NoError(t, b.Add(ctx, 7))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, [][]int{{7}}, rec.snapshot())
}

func TestBatcher_StopFlushesQueuedItems(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 2, time.Hour, 0)

	// Queue before the loop runs so the items are still in the channel at Stop.
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Add(context.Background(), i))
	}
	b.Start(context.Background())
	b.Stop()

	var got []int
	for _, batch := range rec.snapshot() {
		require.LessOrEqual(t, len(batch), 2)
		got = append(got, batch...)
	}
	require.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestBatcher_CancelFlushesWithLiveContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, 10, time.Hour, 0)
	b.Start(ctx)

	require.NoError(t, b.Add(ctx, 1))
	cancel()
	b.Stop()

	require.Equal(t, [][]int{{1}}, rec.snapshot())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NoError(t, rec.ctxErrs[0])
}

func TestBatcher_AddAfterStop(t *testing.T) {
	t.Parallel()

	b := New(zap.NewNop(), (&recorder{}).flush, 2, time.Hour, 0)
	b.Start(context.Background())
	b.Stop()
	b.Stop()

	require.ErrorIs(t, b.Add(context.Background(), 1), ErrStopped)
}

func TestBatcher_FlushErrorLoggedButContinues(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	b := New(zap.NewNop(), func(context.Context, []int) error {
		if calls.Add(1) == 1 {
			return errors.New("flush failed")
		}
		return nil
	}, 1, time.Hour, 0)
	b.Start(ctx)
	defer b.Stop()

	require.NoError(t, b.Add(ctx, 1))
	require.NoError(t, b.Add(ctx, 2))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}
