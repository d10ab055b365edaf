package dynlist

import "sort"

// viewWindow is an inclusive index range of mounted items. last already
// includes the trailing lookahead item.
type viewWindow struct {
	first, last int
}

var emptyWindow = viewWindow{first: -1, last: -1}

func (w viewWindow) empty() bool { return w.first < 0 }

func (w viewWindow) contains(i int) bool {
	return !w.empty() && i >= w.first && i <= w.last
}

// computeVisibleRange returns the window for the current scroll position.
//
// first is the item containing viewportTop: the smallest index whose offset
// is >= viewportTop, stepped back by one. last is the final item starting
// above viewportBottom plus one lookahead item.
func (l *List[K, H]) computeVisibleRange() viewWindow {
	n := len(l.items)
	if n == 0 {
		return emptyWindow
	}
	l.ensureLayout()

	scrollTop := l.host.ScrollTop()
	buffer := l.opts.buffer()
	top := scrollTop - buffer
	bottom := scrollTop + l.host.ViewportHeight() + buffer

	offsets := l.offsets[:n]
	first := sort.Search(n, func(i int) bool { return offsets[i] >= top })
	first = max(first-1, 0)

	last := sort.Search(n, func(i int) bool { return offsets[i] >= bottom }) - 1
	last = max(last, first)
	last = min(last+1, n-1)

	return viewWindow{first: first, last: last}
}

// VisibleRange returns the mounted index range, inclusive. ok is false when
// nothing is mounted.
func (l *List[K, H]) VisibleRange() (first, last int, ok bool) {
	if l.window.empty() {
		return 0, 0, false
	}
	return l.window.first, l.window.last, true
}

// FirstItemPosition returns the index of the first mounted item, or -1.
func (l *List[K, H]) FirstItemPosition() int {
	return l.window.first
}

// applyViewChange diffs the current window against the last applied one and
// patches the host. Without force an unchanged window is a no-op.
func (l *List[K, H]) applyViewChange(force bool) {
	if l.state != lifecycleRendered {
		return
	}
	if !l.host.Attached() {
		l.log.Debug().Msg("host detached, view sync skipped")
		return
	}
	l.ensureLayout()
	// a shrink near the bottom moves the offset, so clamp before the lookup
	l.host.SetContentHeight(l.ContentHeight())
	l.clampScroll()

	next := l.computeVisibleRange()
	if !force && !l.windowStale && next == l.window {
		return
	}
	l.windowStale = false
	l.stats.Syncs++

	unmounted := 0
	for id := range l.rendered {
		i, ok := l.index[id]
		if !ok || !next.contains(i) {
			l.unmount(id)
			unmounted++
		}
	}

	var injected []K
	if !next.empty() {
		for i := next.first; i <= next.last; i++ {
			id := l.items[i]
			if _, ok := l.rendered[id]; ok {
				continue
			}
			node := l.opts.ItemRender(id, i)
			if i > next.first {
				l.host.InsertAfter(node, l.rendered[l.items[i-1]])
			} else {
				l.host.Prepend(node)
			}
			l.rendered[id] = node
			injected = append(injected, id)
		}
	}
	l.stats.Mounts += len(injected)

	spacer := 0.0
	if !next.empty() {
		spacer = l.offsets[next.first]
	}
	l.host.SetSpacer(spacer)
	if sb, ok := l.host.(ScrollbarHost); ok {
		sb.UpdateScrollbar()
	}

	moved := next != l.window
	l.window = next

	if unmounted > 0 || len(injected) > 0 {
		l.log.Debug().
			Int("first", next.first).
			Int("last", next.last).
			Int("mounted", len(injected)).
			Int("unmounted", unmounted).
			Msg("view synced")
		if l.opts.OnContentUpdated != nil {
			l.opts.OnContentUpdated()
		}
	}
	if len(injected) > 0 && l.opts.OnNodeInjected != nil {
		l.opts.OnNodeInjected(injected)
	}
	if moved && l.opts.OnViewChange != nil {
		l.opts.OnViewChange()
	}
}

// unmount drops the handle of id and detaches it from the host when the host
// is still attached.
func (l *List[K, H]) unmount(id K) {
	node, ok := l.rendered[id]
	if !ok {
		return
	}
	delete(l.rendered, id)
	l.stats.Unmounts++
	if l.host.Attached() {
		l.host.RemoveNode(node)
	}
}

func (l *List[K, H]) unmountAll() {
	for id := range l.rendered {
		l.unmount(id)
	}
}

// Refresh recomputes the layout and forces a view sync. Call it after Add or
// BatchAdd.
func (l *List[K, H]) Refresh() {
	l.recomputeLayout()
	l.applyViewChange(true)
}
