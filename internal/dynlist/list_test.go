package dynlist

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dynlist/internal/viewport"
)

func TestNew_ContractViolations(t *testing.T) {
	vp := viewport.New[*node](100)
	height := func(int) float64 { return 1 }
	render := func(id, _ int) *node { return &node{id: id} }

	tests := []struct {
		name    string
		host    Host[*node]
		opts    Options[int, *node]
		wantErr error
	}{
		{name: "nil host", host: nil, opts: Options[int, *node]{ItemHeight: height, ItemRender: render}, wantErr: ErrNilHost},
		{name: "missing height", host: vp, opts: Options[int, *node]{ItemRender: render}, wantErr: ErrMissingHeightFunc},
		{name: "missing render", host: vp, opts: Options[int, *node]{ItemHeight: height}, wantErr: ErrMissingRenderFunc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.host, tt.opts)
			assert.Nil(t, l)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInitialRender_Twice(t *testing.T) {
	f := newFixture(t, ids(10), 500, nil)
	require.NoError(t, f.list.InitialRender())

	err := f.list.InitialRender()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRendered))
}

func TestInitialRender_BasicWindowing(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	assert.Equal(t, span(0, 11), f.mounted())
	assert.Equal(t, span(0, 11), f.list.RenderedIDs())
	assert.False(t, f.list.IsRendered(12))
	assert.Equal(t, 50000.0, f.vp.ContentHeight())
	assert.Equal(t, 0.0, f.vp.Spacer())
	assert.Equal(t, 0, f.list.FirstItemPosition())

	require.Len(t, f.injected, 1)
	assert.Equal(t, span(0, 11), f.injected[0])
	assert.Equal(t, 1, f.contentUpdates)
	assert.Equal(t, 1, f.viewChanges)
	assert.True(t, f.vp.Bound())
	assert.True(t, f.vp.HasContent())
}

func TestInitialRender_EmptySequence(t *testing.T) {
	f := newFixture(t, nil, 500, nil)
	require.NoError(t, f.list.InitialRender())

	assert.Empty(t, f.mounted())
	_, _, ok := f.list.VisibleRange()
	assert.False(t, ok)
	assert.Equal(t, -1, f.list.FirstItemPosition())
	assert.Zero(t, f.contentUpdates)
}

func TestInitialRender_InitialScrollAndClasses(t *testing.T) {
	f := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) {
		o.InitialScrollY = 1000
		o.ContentClasses = []string{"file-list", "compact"}
	})
	require.NoError(t, f.list.InitialRender())

	assert.Equal(t, 1000.0, f.list.ScrollTop())
	assert.Equal(t, span(18, 31), f.mounted())
	assert.Equal(t, 900.0, f.vp.Spacer())
	assert.Equal(t, []string{"file-list", "compact"}, f.vp.Classes())
}

func TestApplyViewChange_NoRedundantChurn(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.ScrollToYPosition(1234)
	before := f.list.Stats()
	renders := f.renders

	f.list.applyViewChange(false)
	assert.Equal(t, before, f.list.Stats())

	f.list.applyViewChange(true)
	after := f.list.Stats()
	assert.Equal(t, before.Mounts, after.Mounts)
	assert.Equal(t, before.Unmounts, after.Unmounts)
	assert.Equal(t, renders, f.renders)
}

func TestScrollToYPosition_MovesWindow(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.ScrollToYPosition(1000)

	assert.Equal(t, span(18, 31), f.mounted())
	first, last, ok := f.list.VisibleRange()
	require.True(t, ok)
	assert.Equal(t, 18, first)
	assert.Equal(t, 31, last)
	assert.Equal(t, 900.0, f.vp.Spacer())
	for i := 0; i <= 11; i++ {
		assert.False(t, f.list.IsRendered(i), "item %d should be unmounted", i)
	}
}

func TestPauseResume_MatchesFreshRender(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.ScrollToYPosition(1000)

	f.list.Pause()
	assert.True(t, f.list.Paused())
	assert.Empty(t, f.mounted())
	assert.False(t, f.vp.Bound())
	assert.Equal(t, 1000, f.list.Len())

	require.NoError(t, f.list.Resume())
	assert.True(t, f.list.Rendered())

	fresh := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) { o.InitialScrollY = 1000 })
	require.NoError(t, fresh.list.InitialRender())

	assert.Equal(t, fresh.mounted(), f.mounted())
	assert.Equal(t, fresh.vp.Spacer(), f.vp.Spacer())
	assert.True(t, f.vp.Bound())
}

func TestResume_NotPaused(t *testing.T) {
	f := newFixture(t, ids(3), 500, nil)
	assert.ErrorIs(t, f.list.Resume(), ErrNotPaused)
}

func TestPause_MutationsDoNotTouchHost(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.Pause()
	renders := f.renders

	after := 5
	f.list.Insert(&after, []int{500}, true)
	f.list.Remove([]int{1}, true)
	f.list.ItemChanged(2)
	f.list.ScrollToYPosition(400)

	assert.Empty(t, f.mounted())
	assert.Equal(t, renders, f.renders)
	assert.Equal(t, 100, f.list.Len())

	require.NoError(t, f.list.Resume())
	assert.Equal(t, f.list.Items()[:12], f.mounted())
}

func TestInsert_PreservesOrderAndShiftsOffsets(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	f.heights[1000] = 30
	f.heights[1001] = 70
	require.NoError(t, f.list.InitialRender())

	before := make(map[int]float64)
	for _, id := range f.list.Items() {
		before[id], _ = f.list.Offset(id)
	}

	after := 10
	f.list.Insert(&after, []int{1000, 1001}, true)

	items := f.list.Items()
	i := f.list.IndexOf(10)
	assert.Equal(t, []int{10, 1000, 1001, 11}, items[i:i+4])
	for _, id := range items[i+3:] {
		off, _ := f.list.Offset(id)
		assert.Equal(t, before[id]+100, off, "item %d", id)
	}
	for _, id := range items[:i+1] {
		off, _ := f.list.Offset(id)
		assert.Equal(t, before[id], off, "item %d", id)
	}
	assert.Equal(t, items[:12], f.mounted())
	requireOffsetInvariant(t, f.list)
}

func TestInsert_AtHead(t *testing.T) {
	f := newFixture(t, ids(5), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.Insert(nil, []int{100, 101}, true)

	assert.Equal(t, []int{100, 101, 0, 1, 2, 3, 4}, f.list.Items())
	assert.Equal(t, f.list.Items(), f.mounted())
}

func TestInsert_WithoutRenderUpdate(t *testing.T) {
	f := newFixture(t, ids(5), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.Insert(nil, []int{100}, false)
	assert.Equal(t, span(0, 4), f.mounted())

	f.list.Refresh()
	assert.Equal(t, []int{100, 0, 1, 2, 3, 4}, f.mounted())
}

func TestStructuralChange_WithoutRenderUpdate_NextScrollResyncs(t *testing.T) {
	tests := []struct {
		name   string
		change func(l *List[int, *node])
		want   []int
	}{
		{
			name: "insert",
			change: func(l *List[int, *node]) {
				after := 25
				l.Insert(&after, []int{1000}, false)
			},
			want: append(append(span(19, 25), 1000), span(26, 31)...),
		},
		{
			name:   "remove",
			change: func(l *List[int, *node]) { l.Remove([]int{25}, false) },
			want:   append(span(19, 24), span(26, 33)...),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, ids(1000), 500, nil)
			require.NoError(t, f.list.InitialRender())
			f.list.ScrollToYPosition(1010)
			first, last, _ := f.list.VisibleRange()
			require.Equal(t, []int{19, 32}, []int{first, last})

			tt.change(f.list)
			// lands on the same index range as before the change
			f.vp.SetScrollTop(1011)

			assert.Equal(t, tt.want, f.mounted())
			requireWindowMatchesScan(t, f, DefaultViewportBuffer)
		})
	}
}

func TestRemove_ContiguousRun(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	require.NoError(t, f.list.InitialRender())

	before := make(map[int]float64)
	for _, id := range f.list.Items() {
		before[id], _ = f.list.Offset(id)
	}

	f.list.Remove([]int{3, 4, 5}, true)

	for _, id := range []int{3, 4, 5} {
		assert.False(t, f.list.Has(id))
		assert.False(t, f.list.IsRendered(id))
		assert.NotContains(t, f.mounted(), id)
	}
	for id := 6; id < 100; id++ {
		off, _ := f.list.Offset(id)
		assert.Equal(t, before[id]-150, off, "item %d", id)
	}
	assert.Equal(t, f.list.Items()[:12], f.mounted())
	requireOffsetInvariant(t, f.list)
}

func TestRemove_NonContiguous(t *testing.T) {
	f := newFixture(t, ids(20), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.Remove([]int{2, 7}, true)

	assert.Equal(t, []int{0, 1, 3, 4, 5, 6, 8, 9}, f.list.Items()[:8])
	off, _ := f.list.Offset(3)
	assert.Equal(t, 100.0, off)
	off, _ = f.list.Offset(8)
	assert.Equal(t, 300.0, off)
	requireOffsetInvariant(t, f.list)
}

func TestRemove_HeadAtTop(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.Remove(span(0, 4), true)

	off, _ := f.list.Offset(5)
	assert.Equal(t, 0.0, off)
	assert.Equal(t, 49750.0, f.list.ContentHeight())
	assert.Equal(t, 0.0, f.list.ScrollTop())
	assert.Equal(t, span(5, 16), f.mounted())
}

func TestRemove_ClampsScrollToContent(t *testing.T) {
	f := newFixture(t, ids(20), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.ScrollToYPosition(500)
	require.Equal(t, 500.0, f.list.ScrollTop())

	f.list.Remove(span(0, 4), true)

	assert.Equal(t, 750.0, f.list.ContentHeight())
	assert.Equal(t, 250.0, f.list.ScrollTop())
	assert.Equal(t, span(8, 19), f.mounted())
	assert.Zero(t, f.scrolls, "clamping must not be reported as a user scroll")
}

func TestItemRenderChanged_KeepsHandle(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.ScrollToItemPosition(500, false)
	require.True(t, f.list.IsRendered(500))
	handle, _ := f.list.Handle(500)
	next, _ := f.list.Offset(501)

	f.heights[500] = 200
	f.list.ItemRenderChanged(500)

	h, _ := f.list.Height(500)
	assert.Equal(t, 200.0, h)
	for _, id := range []int{501, 700, 999} {
		off, _ := f.list.Offset(id)
		assert.Equal(t, float64(id)*50+150, off, "item %d", id)
	}
	assert.Equal(t, next+150, mustOffset(f.list, 501))
	assert.Equal(t, 50150.0, f.list.ContentHeight())
	assert.Equal(t, 50150.0, f.vp.ContentHeight())

	after, ok := f.list.Handle(500)
	require.True(t, ok)
	assert.Same(t, handle, after)
	requireOffsetInvariant(t, f.list)
}

func TestHeightShrinkAtBottom_ClampsBeforeSync(t *testing.T) {
	tests := []struct {
		name   string
		change func(l *List[int, *node], id int)
	}{
		{"item changed", (*List[int, *node]).ItemChanged},
		{"item render changed", (*List[int, *node]).ItemRenderChanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, ids(100), 500, nil)
			f.heights[99] = 1000
			require.NoError(t, f.list.InitialRender())
			f.list.ScrollToYPosition(f.list.ContentHeight())
			require.Equal(t, 5450.0, f.list.ScrollTop())

			f.heights[99] = 50
			tt.change(f.list, 99)

			assert.Equal(t, 4500.0, f.list.ScrollTop())
			assert.Equal(t, 5000.0, f.vp.ContentHeight())
			assert.Equal(t, span(88, 99), f.mounted())
			assert.Equal(t, 4400.0, f.vp.Spacer())
			requireWindowMatchesScan(t, f, DefaultViewportBuffer)
			assert.Zero(t, f.scrolls, "clamping must not be reported as a user scroll")
		})
	}
}

func TestItemChanged_ReplacesHandle(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	require.NoError(t, f.list.InitialRender())
	handle, _ := f.list.Handle(3)

	f.heights[3] = 120
	f.list.ItemChanged(3)

	after, ok := f.list.Handle(3)
	require.True(t, ok)
	assert.NotSame(t, handle, after)
	assert.Equal(t, f.list.Items()[:len(f.mounted())], f.mounted())
	off, _ := f.list.Offset(4)
	assert.Equal(t, 270.0, off)
}

func TestUnknownIDs_AreNoOps(t *testing.T) {
	f := newFixture(t, ids(10), 500, nil)
	require.NoError(t, f.list.InitialRender())
	stats := f.list.Stats()

	missing := 999
	f.list.Remove([]int{missing}, true)
	f.list.ItemChanged(missing)
	f.list.ItemRenderChanged(missing)
	f.list.Insert(&missing, []int{50}, true)

	assert.Equal(t, ids(10), f.list.Items())
	assert.Equal(t, stats, f.list.Stats())
	assert.False(t, f.list.ScrollToItem(missing))
	assert.Equal(t, -1, f.list.IndexOf(missing))
	_, ok := f.list.Offset(missing)
	assert.False(t, ok)
}

func TestAdd_DefersLayoutUntilRefresh(t *testing.T) {
	f := newFixture(t, nil, 500, nil)
	require.NoError(t, f.list.InitialRender())
	calls := f.heightCalls

	f.list.Add(1)
	f.list.BatchAdd([]int{2, 3, 3, 1})

	assert.Equal(t, []int{1, 2, 3}, f.list.Items())
	assert.Equal(t, calls, f.heightCalls)
	assert.Empty(t, f.mounted())

	f.list.Refresh()
	assert.Equal(t, []int{1, 2, 3}, f.mounted())
	assert.Equal(t, 150.0, f.vp.ContentHeight())
}

func TestResized(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.vp.Resize(1000)
	f.list.Resized()

	assert.Equal(t, 1, f.resizes)
	assert.Equal(t, span(0, 21), f.mounted())
}

func TestRemeasureAll(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())
	f.list.ScrollToYPosition(10000)
	before := f.vp.Nodes()

	for i := range 1000 {
		f.heights[i] = 100
	}
	f.list.RemeasureAll()

	assert.Equal(t, 100000.0, f.list.ContentHeight())
	assert.Equal(t, 100000.0, f.vp.ContentHeight())
	assert.Equal(t, span(99, 106), f.mounted())
	for _, n := range before {
		assert.NotContains(t, f.vp.Nodes(), n)
	}
	requireOffsetInvariant(t, f.list)
}

func TestScrollToItem(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	assert.False(t, f.list.ScrollToItem(5))
	assert.True(t, f.list.ScrollToItem(100))
	assert.Equal(t, 4550.0, f.list.ScrollTop())
	assert.True(t, f.list.IsRendered(100))

	assert.True(t, f.list.ScrollToItem(0))
	assert.Equal(t, 0.0, f.list.ScrollTop())
}

func TestScrollToItem_TallItemAlignsTop(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	f.heights[40] = 900
	require.NoError(t, f.list.InitialRender())

	assert.True(t, f.list.ScrollToItem(40))
	assert.Equal(t, 2000.0, f.list.ScrollTop())
}

func TestScrollThrottle_CoalescesUserScroll(t *testing.T) {
	sched := &fakeScheduler{}
	f := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) {
		o.ScrollThrottle = 16_000_000
		o.Scheduler = sched
	})
	require.NoError(t, f.list.InitialRender())

	f.vp.SetScrollTop(1000)
	f.vp.SetScrollTop(2000)

	require.Len(t, sched.tasks, 1)
	assert.Equal(t, ScrollUser, f.list.ScrollState())
	assert.Equal(t, span(0, 11), f.mounted())

	assert.Equal(t, 1, sched.Fire())
	assert.Equal(t, ScrollIdle, f.list.ScrollState())
	assert.Equal(t, span(38, 51), f.mounted())
	assert.Equal(t, 1, f.scrolls)
}

func TestScrollThrottle_ProgrammaticScrollIsSuppressed(t *testing.T) {
	sched := &fakeScheduler{}
	f := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) {
		o.ScrollThrottle = 16_000_000
		o.Scheduler = sched
	})
	require.NoError(t, f.list.InitialRender())

	f.list.ScrollToYPosition(3000)

	assert.Empty(t, sched.tasks)
	assert.Zero(t, f.scrolls)
	assert.Equal(t, ScrollIdle, f.list.ScrollState())
	assert.True(t, f.list.IsRendered(60))
}

func TestScrollThrottle_PauseCancelsPendingFlush(t *testing.T) {
	sched := &fakeScheduler{}
	f := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) {
		o.ScrollThrottle = 16_000_000
		o.Scheduler = sched
	})
	require.NoError(t, f.list.InitialRender())

	f.vp.SetScrollTop(1000)
	f.list.Pause()

	assert.Zero(t, sched.Fire())
	assert.Zero(t, f.scrolls)
	assert.Empty(t, f.mounted())
}

func TestUserScroll_Synchronous(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.vp.ScrollBy(1000)

	assert.Equal(t, span(18, 31), f.mounted())
	assert.Equal(t, 1, f.scrolls)
}

func TestDetachedHost_SkipsPatching(t *testing.T) {
	f := newFixture(t, ids(1000), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.vp.Detach()
	assert.NotPanics(t, func() { f.list.ScrollToYPosition(1000) })
	assert.Equal(t, span(0, 11), f.list.RenderedIDs())

	f.vp.Attach()
	f.list.Resized()
	assert.Equal(t, span(18, 31), f.list.RenderedIDs())
	assert.Equal(t, span(18, 31), f.mounted())
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, ids(100), 500, nil)
	require.NoError(t, f.list.InitialRender())

	f.list.Destroy()

	assert.Zero(t, f.list.Len())
	assert.Empty(t, f.list.RenderedIDs())
	assert.False(t, f.vp.HasContent())
	assert.False(t, f.vp.Bound())
	assert.False(t, f.list.Rendered())
	assert.Zero(t, f.list.ContentHeight())

	f.list.BatchAdd(ids(3))
	require.NoError(t, f.list.InitialRender())
	assert.Equal(t, ids(3), f.mounted())
}

func TestScrollbarHost(t *testing.T) {
	f := newFixture(t, ids(1000), 500, func(o *Options[int, *node]) {
		o.ScrollbarOptions = map[string]any{"min_thumb": 2}
	})
	require.NoError(t, f.list.InitialRender())

	assert.True(t, f.vp.ScrollbarEnabled())
	updates := f.vp.ScrollbarUpdates()
	f.list.ScrollToYPosition(1000)
	assert.Greater(t, f.vp.ScrollbarUpdates(), updates)

	_, length, ok := f.vp.Thumb(10)
	require.True(t, ok)
	assert.Equal(t, 2, length)
}

// TestRandomMutations_KeepInvariants drives a seeded sequence of mutations
// and checks layout and window consistency after each one.
func TestRandomMutations_KeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := newFixture(t, ids(300), 400, func(o *Options[int, *node]) { o.ViewportBuffer = 30 })
	for id := range 300 {
		f.heights[id] = float64(10 + rng.Intn(90))
	}
	require.NoError(t, f.list.InitialRender())
	nextID := 300

	for step := range 600 {
		items := f.list.Items()
		switch op := rng.Intn(10); {
		case op == 0 && len(items) > 0:
			after := items[rng.Intn(len(items))]
			batch := []int{nextID, nextID + 1}
			f.heights[nextID] = float64(5 + rng.Intn(60))
			f.heights[nextID+1] = float64(5 + rng.Intn(60))
			nextID += 2
			f.list.Insert(&after, batch, true)
		case op == 1 && len(items) > 10:
			start := rng.Intn(len(items) - 5)
			f.list.Remove([]int{items[start], items[start+3], items[start+4]}, true)
		case op == 2 && len(items) > 0:
			id := items[rng.Intn(len(items))]
			f.heights[id] = float64(1 + rng.Intn(150))
			f.list.ItemRenderChanged(id)
		case op == 3:
			f.heights[nextID] = 40
			f.list.Add(nextID)
			nextID++
			f.list.Refresh()
		case op == 4 && len(items) > 0:
			id := items[rng.Intn(len(items))]
			f.heights[id] = float64(1 + rng.Intn(150))
			f.list.ItemChanged(id)
		case op == 5 && len(items) > 3:
			// grow one of the last items, scroll to the bottom, then shrink it
			id := items[len(items)-1-rng.Intn(3)]
			f.heights[id] = float64(300 + rng.Intn(300))
			f.list.ItemRenderChanged(id)
			f.vp.SetScrollTop(f.vp.MaxScrollTop())
			f.heights[id] = float64(1 + rng.Intn(20))
			if rng.Intn(2) == 0 {
				f.list.ItemChanged(id)
			} else {
				f.list.ItemRenderChanged(id)
			}
		case op == 6 && len(items) > 0:
			after := items[rng.Intn(len(items))]
			f.heights[nextID] = float64(5 + rng.Intn(60))
			f.list.Insert(&after, []int{nextID}, false)
			nextID++
			nudgeScroll(f)
		case op == 7 && len(items) > 10:
			start := rng.Intn(len(items) - 3)
			f.list.Remove([]int{items[start], items[start+2]}, false)
			nudgeScroll(f)
		case op == 8:
			f.vp.SetScrollTop(f.vp.MaxScrollTop() - rng.Float64()*40)
		default:
			f.vp.SetScrollTop(rng.Float64() * f.vp.MaxScrollTop())
		}

		requireOffsetInvariant(t, f.list)
		requireWindowMatchesScan(t, f, 30)
		if t.Failed() {
			t.Fatalf("invariant broken at step %d", step)
		}
	}
}

// nudgeScroll moves the host offset by one unit so the list runs a
// non-forced sync, or refreshes when the content cannot scroll.
func nudgeScroll(f *fixture) {
	switch {
	case f.vp.ScrollTop() < f.vp.MaxScrollTop():
		f.vp.ScrollBy(1)
	case f.vp.ScrollTop() > 0:
		f.vp.ScrollBy(-1)
	default:
		f.list.Refresh()
	}
}

// requireWindowMatchesScan recomputes the window with a linear scan and
// compares it with what is mounted in the host.
func requireWindowMatchesScan(t *testing.T, f *fixture, buffer float64) {
	t.Helper()
	items := f.list.Items()
	if len(items) == 0 {
		require.Empty(t, f.mounted())
		return
	}
	top := f.vp.ScrollTop() - buffer
	bottom := f.vp.ScrollTop() + f.vp.ViewportHeight() + buffer

	first := len(items)
	for i, id := range items {
		if mustOffset(f.list, id) >= top {
			first = i
			break
		}
	}
	first = max(first-1, 0)
	last := -1
	for i, id := range items {
		if mustOffset(f.list, id) < bottom {
			last = i
		}
	}
	last = min(max(last, first)+1, len(items)-1)

	require.Equal(t, items[first:last+1], f.mounted())
}

func mustOffset(l *List[int, *node], id int) float64 {
	off, ok := l.Offset(id)
	if !ok {
		panic("unknown id")
	}
	return off
}
