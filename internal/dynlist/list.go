package dynlist

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// lifecycle tracks whether the list is materialized in its host.
type lifecycle int

const (
	lifecycleNew lifecycle = iota
	lifecycleRendered
	lifecyclePaused
	lifecycleDestroyed
)

// Stats counts host patches since construction.
type Stats struct {
	Syncs    int
	Mounts   int
	Unmounts int
}

// List is a virtualized list bound to one Host.
type List[K comparable, H comparable] struct {
	host Host[H]
	opts Options[K, H]
	log  zerolog.Logger

	items []K
	index map[K]int

	heights map[K]float64
	// offsets[i] is the top of items[i]; offsets[len(items)] is the content height.
	offsets     []float64
	layoutDirty bool

	rendered map[K]H
	window   viewWindow

	// windowStale is set when indices shifted under the mounted window
	// without a sync.
	windowStale bool

	state          lifecycle
	contentCreated bool
	pausedScrollY  float64

	scroll       ScrollState
	cancelScroll func()

	stats Stats
}

// New creates a List bound to host. It does not touch the host until
// InitialRender.
func New[K comparable, H comparable](host Host[H], opts Options[K, H]) (*List[K, H], error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if opts.ItemHeight == nil {
		return nil, ErrMissingHeightFunc
	}
	if opts.ItemRender == nil {
		return nil, ErrMissingRenderFunc
	}
	if opts.Scheduler == nil {
		opts.Scheduler = inlineScheduler{}
	}

	l := &List[K, H]{
		host:     host,
		opts:     opts,
		log:      zerolog.Nop(),
		index:    make(map[K]int),
		heights:  make(map[K]float64),
		offsets:  []float64{0},
		rendered: make(map[K]H),
		window:   emptyWindow,
	}
	if opts.Logger != nil {
		l.log = opts.Logger.With().Str("component", "dynlist").Logger()
	}
	l.appendIDs(opts.Items)
	return l, nil
}

// InitialRender creates the content element, restores the initial scroll
// position, computes the full layout and mounts the first window.
func (l *List[K, H]) InitialRender() error {
	if l.state == lifecycleRendered {
		l.log.Warn().Msg("initial render called twice")
		return fmt.Errorf("initial render: %w", ErrAlreadyRendered)
	}
	return l.render(l.opts.InitialScrollY)
}

func (l *List[K, H]) render(scrollY float64) error {
	if !l.contentCreated {
		l.host.CreateContent(l.opts.ContentClasses)
		l.contentCreated = true
		if sb, ok := l.host.(ScrollbarHost); ok {
			sb.InitScrollbar(l.opts.ScrollbarOptions)
		}
	}
	l.state = lifecycleRendered
	l.window = emptyWindow

	l.recomputeLayout()
	l.host.SetContentHeight(l.ContentHeight())
	if scrollY != 0 {
		l.setScrollTop(scrollY)
	}
	l.host.BindScroll(l.onHostScroll)
	l.applyViewChange(true)
	return nil
}

// Pause unbinds host listeners and unmounts every rendered item while keeping
// the sequence and caches.
func (l *List[K, H]) Pause() {
	if l.state != lifecycleRendered {
		return
	}
	l.cancelPendingScroll()
	l.host.UnbindScroll()
	l.pausedScrollY = l.host.ScrollTop()
	l.unmountAll()
	l.window = emptyWindow
	l.state = lifecyclePaused
	l.log.Debug().Int("items", len(l.items)).Msg("paused")
}

// Resume rebinds listeners and performs a fresh render at the scroll
// position saved by Pause.
func (l *List[K, H]) Resume() error {
	if l.state != lifecyclePaused {
		return fmt.Errorf("resume: %w", ErrNotPaused)
	}
	return l.render(l.pausedScrollY)
}

// Destroy unbinds the host, drops every item and cache and discards the
// content element. The list may be rendered again afterwards.
func (l *List[K, H]) Destroy() {
	l.cancelPendingScroll()
	if l.state == lifecycleRendered {
		l.host.UnbindScroll()
	}
	l.unmountAll()
	if l.contentCreated {
		if sb, ok := l.host.(ScrollbarHost); ok {
			sb.DestroyScrollbar()
		}
		l.host.DestroyContent()
		l.contentCreated = false
	}
	l.items = nil
	l.index = make(map[K]int)
	l.heights = make(map[K]float64)
	l.offsets = []float64{0}
	l.layoutDirty = false
	l.window = emptyWindow
	l.windowStale = false
	l.scroll = ScrollIdle
	l.state = lifecycleDestroyed
}

// Rendered reports whether the list is currently materialized.
func (l *List[K, H]) Rendered() bool { return l.state == lifecycleRendered }

// Paused reports whether Pause was called without a matching Resume.
func (l *List[K, H]) Paused() bool { return l.state == lifecyclePaused }

// Stats returns host patch counters.
func (l *List[K, H]) Stats() Stats { return l.stats }

// Len returns the number of items in the sequence.
func (l *List[K, H]) Len() int { return len(l.items) }

// Items returns a copy of the sequence.
func (l *List[K, H]) Items() []K {
	out := make([]K, len(l.items))
	copy(out, l.items)
	return out
}

// Has reports whether id is in the sequence.
func (l *List[K, H]) Has(id K) bool {
	_, ok := l.index[id]
	return ok
}

// IndexOf returns the position of id, or -1.
func (l *List[K, H]) IndexOf(id K) int {
	if i, ok := l.index[id]; ok {
		return i
	}
	return -1
}

// IsRendered reports whether id is mounted in the host.
func (l *List[K, H]) IsRendered(id K) bool {
	_, ok := l.rendered[id]
	return ok
}

// Handle returns the render handle of a mounted item.
func (l *List[K, H]) Handle(id K) (H, bool) {
	h, ok := l.rendered[id]
	return h, ok
}

// RenderedIDs returns the mounted ids in sequence order.
func (l *List[K, H]) RenderedIDs() []K {
	out := make([]K, 0, len(l.rendered))
	for id := range l.rendered {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b K) int {
		return cmp.Compare(l.IndexOf(a), l.IndexOf(b))
	})
	return out
}
