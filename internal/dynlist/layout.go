package dynlist

// appendIDs adds ids to the end of the sequence, skipping ids already
// present. Layout is marked dirty rather than recomputed.
func (l *List[K, H]) appendIDs(ids []K) int {
	added := 0
	for _, id := range ids {
		if _, dup := l.index[id]; dup {
			l.log.Debug().Interface("id", id).Msg("duplicate id ignored")
			continue
		}
		l.index[id] = len(l.items)
		l.items = append(l.items, id)
		added++
	}
	if added > 0 {
		l.layoutDirty = true
	}
	return added
}

// reindex rebuilds the id to position map from start onwards.
func (l *List[K, H]) reindex(start int) {
	for i := start; i < len(l.items); i++ {
		l.index[l.items[i]] = i
	}
}

// heightOf returns the cached height of id, filling the cache on a miss.
func (l *List[K, H]) heightOf(id K) float64 {
	if h, ok := l.heights[id]; ok {
		return h
	}
	h := l.opts.ItemHeight(id)
	l.heights[id] = h
	return h
}

// recomputeLayout walks the whole sequence and rebuilds the offset cache.
func (l *List[K, H]) recomputeLayout() {
	if cap(l.offsets) >= len(l.items)+1 {
		l.offsets = l.offsets[:len(l.items)+1]
	} else {
		l.offsets = make([]float64, len(l.items)+1)
	}
	l.offsets[0] = 0
	l.updateOffsetsFrom(0, 0)
	l.layoutDirty = false
}

// updateOffsetsFrom recomputes offsets for items[start:] given the top of
// items[start].
func (l *List[K, H]) updateOffsetsFrom(start int, base float64) {
	total := base
	for i := start; i < len(l.items); i++ {
		l.offsets[i] = total
		total += l.heightOf(l.items[i])
	}
	l.offsets[len(l.items)] = total
}

func (l *List[K, H]) ensureLayout() {
	if l.layoutDirty || len(l.offsets) != len(l.items)+1 {
		l.recomputeLayout()
	}
}

// Offset returns the top of id in layout units.
func (l *List[K, H]) Offset(id K) (float64, bool) {
	i, ok := l.index[id]
	if !ok {
		return 0, false
	}
	l.ensureLayout()
	return l.offsets[i], true
}

// Height returns the cached height of id, measuring it on a miss.
func (l *List[K, H]) Height(id K) (float64, bool) {
	if _, ok := l.index[id]; !ok {
		return 0, false
	}
	return l.heightOf(id), true
}

// ContentHeight returns the sum of all item heights.
func (l *List[K, H]) ContentHeight() float64 {
	l.ensureLayout()
	return l.offsets[len(l.items)]
}
