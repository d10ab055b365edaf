package dynlist

import "slices"

// Add appends id to the sequence. It does not recompute layout or sync the
// view; follow a run of adds with Refresh.
func (l *List[K, H]) Add(id K) {
	l.appendIDs([]K{id})
}

// BatchAdd appends ids to the sequence with the same contract as Add.
func (l *List[K, H]) BatchAdd(ids []K) {
	l.appendIDs(ids)
}

// Insert splices ids directly after *after, or at the head when after is nil.
// An unknown after id is ignored. Unless renderUpdate is false the view is
// synced.
func (l *List[K, H]) Insert(after *K, ids []K, renderUpdate bool) {
	pos := 0
	if after != nil {
		i, ok := l.index[*after]
		if !ok {
			l.log.Debug().Interface("after", *after).Msg("insert after unknown id ignored")
			return
		}
		pos = i + 1
	}

	fresh := make([]K, 0, len(ids))
	seen := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := l.index[id]; dup {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 {
		return
	}

	l.items = slices.Insert(l.items, pos, fresh...)
	l.reindex(pos)
	l.recomputeLayout()
	l.windowStale = true

	if renderUpdate {
		l.applyViewChange(true)
	}
}

// Remove drops ids from the sequence. The ids need not be contiguous;
// unknown ids are ignored. Mounted ids are unmounted, the layout is
// recomputed and the scroll offset is clamped to the new content height.
func (l *List[K, H]) Remove(ids []K, renderUpdate bool) {
	drop := make(map[K]struct{}, len(ids))
	lowest := len(l.items)
	for _, id := range ids {
		i, ok := l.index[id]
		if !ok {
			continue
		}
		drop[id] = struct{}{}
		lowest = min(lowest, i)
	}
	if len(drop) == 0 {
		return
	}

	for id := range drop {
		l.unmount(id)
		delete(l.index, id)
		delete(l.heights, id)
	}
	l.items = slices.DeleteFunc(l.items, func(id K) bool {
		_, gone := drop[id]
		return gone
	})
	l.reindex(lowest)
	l.recomputeLayout()
	l.windowStale = true

	if l.state == lifecycleRendered {
		l.host.SetContentHeight(l.ContentHeight())
		l.clampScroll()
	}
	if renderUpdate {
		l.applyViewChange(true)
	}
}

// ItemChanged discards the handle of a mounted item, re-measures it and
// syncs the view so it is rendered afresh.
func (l *List[K, H]) ItemChanged(id K) {
	i, ok := l.index[id]
	if !ok {
		return
	}
	if l.state == lifecycleRendered {
		l.unmount(id)
	}
	l.remeasure(i)
	l.applyViewChange(true)
}

// ItemRenderChanged re-measures an item in place, keeping its handle, and
// syncs the view.
func (l *List[K, H]) ItemRenderChanged(id K) {
	i, ok := l.index[id]
	if !ok {
		return
	}
	l.remeasure(i)
	l.applyViewChange(true)
}

// remeasure refreshes the height of items[i] and the offsets below it.
func (l *List[K, H]) remeasure(i int) {
	id := l.items[i]
	delete(l.heights, id)
	if l.layoutDirty || len(l.offsets) != len(l.items)+1 {
		l.recomputeLayout()
		return
	}
	l.updateOffsetsFrom(i, l.offsets[i])
}

// RemeasureAll drops every cached height and mounted handle, then re-syncs.
// Use it when a change affects all items at once, such as a new wrap width.
func (l *List[K, H]) RemeasureAll() {
	clear(l.heights)
	l.layoutDirty = true
	if l.state != lifecycleRendered {
		return
	}
	l.unmountAll()
	l.window = emptyWindow
	l.clampScroll()
	l.applyViewChange(true)
}
