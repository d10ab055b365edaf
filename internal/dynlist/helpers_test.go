package dynlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/dynlist/internal/viewport"
)

// node is the render handle used in tests.
type node struct {
	id    int
	index int
}

// fixture bundles a list, its viewport and callback counters.
type fixture struct {
	list    *List[int, *node]
	vp      *viewport.Viewport[*node]
	heights map[int]float64

	renders        int
	heightCalls    int
	contentUpdates int
	injected       [][]int
	viewChanges    int
	resizes        int
	scrolls        int
}

func ids(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newFixture(t *testing.T, items []int, viewportHeight float64, mutate func(*Options[int, *node])) *fixture {
	t.Helper()
	f := &fixture{
		vp:      viewport.New[*node](viewportHeight),
		heights: make(map[int]float64),
	}
	opts := Options[int, *node]{
		ItemHeight: func(id int) float64 {
			f.heightCalls++
			if h, ok := f.heights[id]; ok {
				return h
			}
			return 50
		},
		ItemRender: func(id int, index int) *node {
			f.renders++
			return &node{id: id, index: index}
		},
		OnContentUpdated: func() { f.contentUpdates++ },
		OnNodeInjected:   func(ids []int) { f.injected = append(f.injected, ids) },
		OnViewChange:     func() { f.viewChanges++ },
		OnResize:         func() { f.resizes++ },
		OnScroll:         func() { f.scrolls++ },
		Items:            items,
	}
	if mutate != nil {
		mutate(&opts)
	}
	l, err := New[int, *node](f.vp, opts)
	require.NoError(t, err)
	f.list = l
	return f
}

// mounted returns the ids of the nodes in host order.
func (f *fixture) mounted() []int {
	nodes := f.vp.Nodes()
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}

func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// requireOffsetInvariant checks that offsets are the prefix sum of heights.
func requireOffsetInvariant(t *testing.T, l *List[int, *node]) {
	t.Helper()
	items := l.Items()
	if len(items) == 0 {
		require.Zero(t, l.ContentHeight())
		return
	}
	first, ok := l.Offset(items[0])
	require.True(t, ok)
	require.Zero(t, first)
	for i := 0; i+1 < len(items); i++ {
		top, _ := l.Offset(items[i])
		h, _ := l.Height(items[i])
		next, _ := l.Offset(items[i+1])
		require.InDelta(t, top+h, next, 1e-9, "offset of item %d", i+1)
	}
	last := items[len(items)-1]
	top, _ := l.Offset(last)
	h, _ := l.Height(last)
	require.InDelta(t, top+h, l.ContentHeight(), 1e-9)
}

// fakeScheduler queues tasks until Fire is called.
type fakeScheduler struct {
	tasks []*fakeTask
}

type fakeTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) func() {
	task := &fakeTask{delay: delay, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() { task.cancelled = true }
}

// Fire runs every queued task that was not cancelled.
func (s *fakeScheduler) Fire() int {
	tasks := s.tasks
	s.tasks = nil
	ran := 0
	for _, task := range tasks {
		if task.cancelled {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}
