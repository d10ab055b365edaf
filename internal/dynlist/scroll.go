package dynlist

// ScrollState tracks who is moving the scroll offset. Scroll events that
// arrive while the list itself is scrolling are ignored.
type ScrollState int

const (
	// ScrollIdle means no scroll is being handled.
	ScrollIdle ScrollState = iota
	// ScrollProgrammatic means the list is setting the host offset.
	ScrollProgrammatic
	// ScrollUser means a user scroll is waiting for its coalesced flush.
	ScrollUser
)

func (s ScrollState) String() string {
	switch s {
	case ScrollIdle:
		return "idle"
	case ScrollProgrammatic:
		return "programmatic"
	case ScrollUser:
		return "user"
	default:
		return "unknown"
	}
}

// ScrollState returns the current scroll state.
func (l *List[K, H]) ScrollState() ScrollState { return l.scroll }

// ScrollTop returns the host scroll offset.
func (l *List[K, H]) ScrollTop() float64 { return l.host.ScrollTop() }

// onHostScroll is the listener bound to the host.
func (l *List[K, H]) onHostScroll() {
	if l.state != lifecycleRendered || l.scroll == ScrollProgrammatic {
		return
	}
	if l.cancelScroll != nil {
		// a flush is already pending and will read the latest offset
		return
	}
	l.scroll = ScrollUser
	if l.opts.ScrollThrottle <= 0 {
		l.flushScroll()
		return
	}
	pending := true
	cancel := l.opts.Scheduler.Schedule(l.opts.ScrollThrottle, func() {
		if !pending {
			return
		}
		pending = false
		l.cancelScroll = nil
		l.flushScroll()
	})
	if pending {
		l.cancelScroll = func() {
			pending = false
			cancel()
		}
	}
}

func (l *List[K, H]) flushScroll() {
	if l.scroll != ScrollUser {
		return
	}
	l.scroll = ScrollIdle
	if l.state != lifecycleRendered {
		return
	}
	l.applyViewChange(false)
	if l.opts.OnScroll != nil {
		l.opts.OnScroll()
	}
}

func (l *List[K, H]) cancelPendingScroll() {
	if l.cancelScroll != nil {
		l.cancelScroll()
		l.cancelScroll = nil
	}
	if l.scroll == ScrollUser {
		l.scroll = ScrollIdle
	}
}

// setScrollTop moves the host offset without triggering the scroll handler.
func (l *List[K, H]) setScrollTop(y float64) {
	prev := l.scroll
	l.scroll = ScrollProgrammatic
	l.host.SetScrollTop(max(y, 0))
	l.scroll = prev
}

// clampScroll pulls the offset back so the bottom of content meets the
// bottom of the viewport.
func (l *List[K, H]) clampScroll() {
	limit := max(l.ContentHeight()-l.host.ViewportHeight(), 0)
	if l.host.ScrollTop() > limit {
		l.setScrollTop(limit)
	}
}

// Resized re-reads viewport metrics and forces a view sync.
func (l *List[K, H]) Resized() {
	if l.state != lifecycleRendered {
		return
	}
	l.clampScroll()
	l.applyViewChange(true)
	if l.opts.OnResize != nil {
		l.opts.OnResize()
	}
}

// ScrollToYPosition sets the scroll offset and syncs the view.
func (l *List[K, H]) ScrollToYPosition(y float64) {
	if l.state != lifecycleRendered {
		return
	}
	l.setScrollTop(y)
	l.applyViewChange(true)
}

// ScrollToItemPosition scrolls so the item at index is aligned with the top
// of the viewport, or with its bottom when toBottom is set. Alignment is
// exact, with no viewport buffer added. Out of range indices are ignored.
func (l *List[K, H]) ScrollToItemPosition(index int, toBottom bool) {
	if l.state != lifecycleRendered || index < 0 || index >= len(l.items) {
		return
	}
	l.ensureLayout()
	y := l.offsets[index]
	if toBottom {
		y = l.offsets[index+1] - l.host.ViewportHeight()
	}
	l.ScrollToYPosition(y)
}

// ScrollToItem scrolls the minimum distance needed to show id. It reports
// whether the offset changed.
func (l *List[K, H]) ScrollToItem(id K) bool {
	i, ok := l.index[id]
	if !ok || l.state != lifecycleRendered {
		return false
	}
	l.ensureLayout()
	top, bottom := l.offsets[i], l.offsets[i+1]
	scrollTop := l.host.ScrollTop()
	switch {
	case top < scrollTop:
		l.ScrollToItemPosition(i, false)
	case bottom > scrollTop+l.host.ViewportHeight():
		// items taller than the viewport are aligned by their top
		tall := bottom-top > l.host.ViewportHeight()
		l.ScrollToItemPosition(i, !tall)
	default:
		return false
	}
	return l.host.ScrollTop() != scrollTop
}
