package cli

import (
	"context"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rshade/dynlist/internal/batch"
	"github.com/rshade/dynlist/internal/config"
	"github.com/rshade/dynlist/internal/ingest"
	listview "github.com/rshade/dynlist/internal/tui/list"
)

// defaultGenerated is the record count used when no file is given.
const defaultGenerated = 1000

// loadRecords reads path, or generates n synthetic records when path is empty.
func loadRecords(ctx context.Context, path string, n int, seed uint64) ([]ingest.Record, error) {
	if path != "" {
		return ingest.LoadWithContext(ctx, path)
	}
	return ingest.Generate(n, seed)
}

// listOptions maps the list section of the configuration onto view options.
func listOptions(cfg *config.Config, width, height int) listview.Options {
	l := logger
	return listview.Options{
		Width:          width,
		Height:         height,
		ViewportBuffer: cfg.List.ViewportBuffer,
		ScrollThrottle: time.Duration(cfg.List.ScrollThrottleMS) * time.Millisecond,
		ContentClasses: cfg.List.ContentClasses,
		Scrollbar:      cfg.List.Scrollbar,
		Logger:         &l,
	}
}

// buildModel creates an empty view and feeds records into it in batches.
// A progress bar is drawn to progress when it is non-nil.
func buildModel(
	ctx context.Context,
	records []ingest.Record,
	opts listview.Options,
	batchSize int,
	progress io.Writer,
) (*listview.Model, error) {
	m, err := listview.New(nil, opts)
	if err != nil {
		return nil, err
	}

	feeder := batch.NewFeederWithDefaults[ingest.Record]()
	if batchSize > 0 {
		if feeder, err = batch.NewFeeder[ingest.Record](batchSize); err != nil {
			return nil, err
		}
	}
	feeder.WithLogger(logger)

	if progress != nil && len(records) > feeder.BatchSize() {
		bar := progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("loading"),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		feeder.WithProgressCallback(func(p batch.ProgressSnapshot) {
			_ = bar.Set(p.ProcessedItems)
		})
		defer func() { _ = bar.Finish() }()
	}

	_, err = feeder.Feed(ctx, records, func(_ context.Context, b []ingest.Record, _ int) error {
		m.AddRecords(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.Refresh()
	return m, nil
}

// progressWriter returns the command's stderr when it is a terminal, nil otherwise.
func progressWriter(cmd *cobra.Command) io.Writer {
	if w := cmd.ErrOrStderr(); writerIsTerminal(w) {
		return w
	}
	return nil
}
