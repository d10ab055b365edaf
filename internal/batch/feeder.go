package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Batch size limits.
const (
	DefaultBatchSize = 500
	MinBatchSize     = 1
	MaxBatchSize     = 10000
)

// Common batch errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 10000")
	ErrNilSink          = errors.New("batch sink cannot be nil")
)

// Sink receives one batch of items. The index is 0-based.
type Sink[T any] func(ctx context.Context, batch []T, batchIndex int) error

// ProgressCallback is invoked after each batch is delivered.
type ProgressCallback func(progress ProgressSnapshot)

// Feeder splits items into fixed-size batches and hands them to a Sink in order.
type Feeder[T any] struct {
	batchSize  int
	onProgress ProgressCallback
	log        zerolog.Logger
}

// NewFeeder creates a feeder with the given batch size.
func NewFeeder[T any](batchSize int) (*Feeder[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Feeder[T]{batchSize: batchSize, log: zerolog.Nop()}, nil
}

// NewFeederWithDefaults creates a feeder with DefaultBatchSize.
func NewFeederWithDefaults[T any]() *Feeder[T] {
	return &Feeder[T]{batchSize: DefaultBatchSize, log: zerolog.Nop()}
}

// WithProgressCallback sets a progress callback.
func (f *Feeder[T]) WithProgressCallback(callback ProgressCallback) *Feeder[T] {
	f.onProgress = callback
	return f
}

// WithLogger sets the logger used for per-batch debug events.
func (f *Feeder[T]) WithLogger(l zerolog.Logger) *Feeder[T] {
	f.log = l
	return f
}

// BatchSize returns the configured batch size.
func (f *Feeder[T]) BatchSize() int {
	return f.batchSize
}

// Feed delivers items to sink batch by batch and stops on the first error or
// on context cancellation. An empty item slice is a no-op.
func (f *Feeder[T]) Feed(ctx context.Context, items []T, sink Sink[T]) (ProgressSnapshot, error) {
	if sink == nil {
		return ProgressSnapshot{}, ErrNilSink
	}

	bounds := f.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), f.batchSize)

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return progress.Snapshot(), err
		}
		batch := items[b[0]:b[1]]
		if err := sink(ctx, batch, i); err != nil {
			return progress.Snapshot(), fmt.Errorf("batch %d failed: %w", i, err)
		}
		progress.AddProcessed(len(batch))
		snap := progress.Snapshot()
		f.log.Debug().
			Int("batch", i).
			Int("size", len(batch)).
			Float64("percent", snap.PercentComplete).
			Msg("batch delivered")
		if f.onProgress != nil {
			f.onProgress(snap)
		}
	}

	return progress.Snapshot(), nil
}

// CalculateBatches returns [start, end) index pairs covering totalItems.
func (f *Feeder[T]) CalculateBatches(totalItems int) [][2]int {
	n := totalItems / f.batchSize
	if totalItems%f.batchSize > 0 {
		n++
	}
	batches := make([][2]int, n)
	for i := range n {
		start := i * f.batchSize
		batches[i] = [2]int{start, min(start+f.batchSize, totalItems)}
	}
	return batches
}
