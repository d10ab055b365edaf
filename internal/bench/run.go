package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/dynlist/internal/dynlist"
	"github.com/rshade/dynlist/internal/viewport"
)

// heightEpsilon tolerates float drift when checking offsets.
const heightEpsilon = 1e-6

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	progress io.Writer
	log      zerolog.Logger
}

// WithProgress draws a progress bar over all scenario steps to w.
func WithProgress(w io.Writer) Option {
	return func(c *runConfig) { c.progress = w }
}

// WithLogger sets the logger for per-scenario events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *runConfig) { c.log = l }
}

// Run executes scenarios with at most concurrency running at once and
// returns results in scenario order. A concurrency below 1 means NumCPU.
func Run(ctx context.Context, scenarios []Scenario, concurrency int, opts ...Option) ([]Result, error) {
	cfg := runConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if cfg.progress != nil {
		total := 0
		for _, s := range scenarios {
			total += s.Steps
		}
		bar = newProgressBar(cfg.progress, total)
		defer func() { _ = bar.Finish() }()
	}

	results := make([]Result, len(scenarios))
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, s := range scenarios {
		g.Go(func() error {
			res, err := runScenario(gCtx, s, func() {
				if bar != nil {
					_ = bar.Add(1)
				}
			})
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s.Name, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			cfg.log.Debug().
				Str("component", "bench").
				Str("scenario", s.Name).
				Int("syncs", res.Syncs).
				Int("violations", res.Violations).
				Dur("elapsed", res.Elapsed).
				Msg("scenario finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("bench"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprint(w, "\n") }),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// runner holds the per-scenario state. It is confined to one goroutine.
type runner struct {
	s       Scenario
	rng     *rand.Rand
	heights map[int]float64
	nextID  int
	nextH   int
	vp      *viewport.Viewport[int]
	list    *dynlist.List[int, int]
	res     Result
}

func runScenario(ctx context.Context, s Scenario, tick func()) (Result, error) {
	start := time.Now()
	r, err := newRunner(s)
	if err != nil {
		return Result{}, err
	}
	list := r.list
	defer list.Destroy()

	step := s.StepSize
	if step <= 0 {
		step = max(list.ContentHeight()-s.Viewport, 0) / float64(s.Steps)
	}
	every := 0
	if s.Mutations > 0 {
		every = max(s.Steps/s.Mutations, 1)
	}

	for i := range s.Steps {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		r.vp.ScrollBy(step)
		if every > 0 && i%every == every-1 {
			r.mutate(i)
		}
		r.check()
		tick()
	}

	st := list.Stats()
	r.res.Syncs = st.Syncs
	r.res.Mounts = st.Mounts
	r.res.Unmounts = st.Unmounts
	r.res.FinalItems = list.Len()
	r.res.ContentHeight = list.ContentHeight()
	r.res.Elapsed = time.Since(start)
	return r.res, nil
}

// newRunner builds the scenario's items and renders its list.
func newRunner(s Scenario) (*runner, error) {
	r := &runner{
		s: s,
		//nolint:gosec // Deterministic workload, not security sensitive.
		rng:     rand.New(rand.NewPCG(s.Seed, s.Seed+1)),
		heights: make(map[int]float64, s.Items),
		vp:      viewport.New[int](s.Viewport),
		res:     Result{Name: s.Name, Items: s.Items, Steps: s.Steps},
	}

	ids := make([]int, s.Items)
	for i := range ids {
		ids[i] = r.newItem()
	}

	list, err := dynlist.New[int, int](r.vp, dynlist.Options[int, int]{
		ItemHeight: func(id int) float64 { return r.heights[id] },
		ItemRender: func(int, int) int {
			r.nextH++
			return r.nextH
		},
		ViewportBuffer: s.Buffer,
		Items:          ids,
	})
	if err != nil {
		return nil, err
	}
	if err = list.InitialRender(); err != nil {
		return nil, err
	}
	r.list = list
	return r, nil
}

func (r *runner) newItem() int {
	id := r.nextID
	r.nextID++
	r.heights[id] = r.s.ItemHeight + r.rng.Float64()*r.s.Jitter
	return id
}

// mutate applies one insert, remove or height change near the visible window.
func (r *runner) mutate(step int) {
	first, last, ok := r.list.VisibleRange()
	if !ok {
		return
	}
	items := r.list.Items()
	target := items[first+r.rng.IntN(last-first+1)]

	switch step % 3 {
	case 0:
		added := []int{r.newItem(), r.newItem()}
		r.list.Insert(&target, added, true)
	case 1:
		if r.list.Len() > 1 {
			r.list.Remove([]int{target}, true)
			delete(r.heights, target)
		}
	case 2:
		r.heights[target] = r.s.ItemHeight + r.rng.Float64()*(r.s.Jitter+r.s.ItemHeight)
		r.list.ItemChanged(target)
	}
}

// check verifies the mounted window against the layout and counts every
// mismatch as a violation.
func (r *runner) check() {
	mounted := r.list.RenderedIDs()
	r.res.MaxRendered = max(r.res.MaxRendered, len(mounted))
	if len(mounted) != r.vp.Len() {
		r.res.Violations++
	}
	if len(mounted) == 0 {
		return
	}

	first, last, _ := r.list.VisibleRange()
	if len(mounted) != last-first+1 {
		r.res.Violations++
	}
	top, _ := r.list.Offset(mounted[0])
	if diff := top - r.vp.Spacer(); diff > heightEpsilon || diff < -heightEpsilon {
		r.res.Violations++
	}
	for i := 1; i < len(mounted); i++ {
		prev, _ := r.list.Offset(mounted[i-1])
		h, _ := r.list.Height(mounted[i-1])
		cur, _ := r.list.Offset(mounted[i])
		if diff := cur - prev - h; diff > heightEpsilon || diff < -heightEpsilon {
			r.res.Violations++
		}
	}
	if r.list.ContentHeight() != r.vp.ContentHeight() {
		r.res.Violations++
	}
	if want := r.expectedWindow(); !slices.Equal(mounted, want) {
		r.res.Violations++
	}
}

// expectedWindow recomputes the ids that should be mounted at the host's
// current offset with a linear scan over the layout.
func (r *runner) expectedWindow() []int {
	items := r.list.Items()
	if len(items) == 0 {
		return nil
	}
	buffer := r.s.Buffer
	if buffer == 0 {
		buffer = dynlist.DefaultViewportBuffer
	}
	top := r.vp.ScrollTop() - buffer
	bottom := r.vp.ScrollTop() + r.vp.ViewportHeight() + buffer

	first := len(items)
	for i, id := range items {
		if off, _ := r.list.Offset(id); off >= top {
			first = i
			break
		}
	}
	first = max(first-1, 0)
	last := -1
	for i, id := range items {
		off, _ := r.list.Offset(id)
		if off >= bottom {
			break
		}
		last = i
	}
	last = min(max(last, first)+1, len(items)-1)
	return items[first : last+1]
}
