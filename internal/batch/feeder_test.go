package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dynlist/internal/dynlist"
	"github.com/rshade/dynlist/internal/viewport"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestFeeder_Feed(t *testing.T) {
	t.Run("delivers in order", func(t *testing.T) {
		f, err := NewFeeder[int](10)
		require.NoError(t, err)

		var got []int
		var sizes []int
		snap, err := f.Feed(context.Background(), seq(25), func(_ context.Context, b []int, _ int) error {
			got = append(got, b...)
			sizes = append(sizes, len(b))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, seq(25), got)
		assert.Equal(t, []int{10, 10, 5}, sizes)
		assert.Equal(t, 25, snap.ProcessedItems)
		assert.Equal(t, 3, snap.ProcessedBatches)
		assert.InDelta(t, 100.0, snap.PercentComplete, 0.001)
	})

	t.Run("progress callback per batch", func(t *testing.T) {
		var percents []float64
		f := NewFeederWithDefaults[int]().WithProgressCallback(func(p ProgressSnapshot) {
			percents = append(percents, p.PercentComplete)
		})
		_, err := f.Feed(context.Background(), seq(1000), func(context.Context, []int, int) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, []float64{50, 100}, percents)
	})

	t.Run("stops on sink error", func(t *testing.T) {
		f, _ := NewFeeder[int](10)
		calls := 0
		snap, err := f.Feed(context.Background(), seq(25), func(_ context.Context, _ []int, i int) error {
			calls++
			if i == 1 {
				return errors.New("fail")
			}
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
		assert.Equal(t, 2, calls)
		assert.Equal(t, 10, snap.ProcessedItems)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		f, _ := NewFeeder[int](5)
		ctx, cancel := context.WithCancel(context.Background())
		snap, err := f.Feed(ctx, seq(20), func(_ context.Context, _ []int, i int) error {
			if i == 1 {
				cancel()
			}
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 10, snap.ProcessedItems)
	})

	t.Run("empty items", func(t *testing.T) {
		f := NewFeederWithDefaults[int]()
		snap, err := f.Feed(context.Background(), nil, func(context.Context, []int, int) error {
			t.Fatal("sink must not be called")
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, snap.TotalBatches)
	})

	t.Run("nil sink", func(t *testing.T) {
		_, err := NewFeederWithDefaults[int]().Feed(context.Background(), seq(3), nil)
		assert.ErrorIs(t, err, ErrNilSink)
	})
}

func TestNewFeeder_InvalidSize(t *testing.T) {
	_, err := NewFeeder[int](0)
	require.ErrorIs(t, err, ErrInvalidBatchSize)
	_, err = NewFeeder[int](MaxBatchSize + 1)
	require.ErrorIs(t, err, ErrInvalidBatchSize)
	f, err := NewFeeder[int](MaxBatchSize)
	require.NoError(t, err)
	assert.Equal(t, MaxBatchSize, f.BatchSize())
}

func TestFeeder_CalculateBatches(t *testing.T) {
	f, _ := NewFeeder[int](10)
	batches := f.CalculateBatches(25)
	require.Len(t, batches, 3)
	assert.Equal(t, [2]int{0, 10}, batches[0])
	assert.Equal(t, [2]int{10, 20}, batches[1])
	assert.Equal(t, [2]int{20, 25}, batches[2])
	assert.Empty(t, f.CalculateBatches(0))
}

func TestProgress(t *testing.T) {
	p := NewProgress(100, 10, 10)
	assert.False(t, p.IsComplete())
	assert.Zero(t, p.EstimatedTimeRemaining())

	p.AddProcessed(40)
	snap := p.Snapshot()
	assert.InDelta(t, 40.0, snap.PercentComplete, 0.001)
	assert.Equal(t, 1, snap.ProcessedBatches)

	p.AddProcessed(60)
	assert.True(t, p.IsComplete())
	assert.Zero(t, p.EstimatedTimeRemaining())
}

func TestFeeder_IntoList(t *testing.T) {
	vp := viewport.New[string](500)
	list, err := dynlist.New[string, string](vp, dynlist.Options[string, string]{
		ItemHeight: func(string) float64 { return 50 },
		ItemRender: func(id string, _ int) string { return id },
	})
	require.NoError(t, err)
	require.NoError(t, list.InitialRender())

	ids := make([]string, 1234)
	for i := range ids {
		ids[i] = fmt.Sprintf("row-%d", i)
	}

	f, _ := NewFeeder[string](100)
	_, err = f.Feed(context.Background(), ids, func(_ context.Context, b []string, _ int) error {
		list.BatchAdd(b)
		return nil
	})
	require.NoError(t, err)
	list.Refresh()

	assert.Equal(t, 1234, list.Len())
	assert.InDelta(t, 1234*50.0, list.ContentHeight(), 0)
	first, last, ok := list.VisibleRange()
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 11, last)
}
