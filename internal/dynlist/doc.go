// Package dynlist implements a windowed list renderer for large, variable-height
// item collections.
//
// A List keeps an ordered sequence of opaque item ids, a height cache filled
// lazily from a caller callback and a prefix-sum offset cache. On every
// view-changing event it computes the slice of items that intersects the
// viewport (plus a buffer margin) and patches the host container minimally:
// items that left the window are removed, items that entered it are rendered
// and inserted next to their logical neighbour. Key properties:
//   - O(log n) visible-range lookup over the offset cache
//   - No host churn when the window did not move
//   - Scroll events coalesced per instance through an injected Scheduler
//   - Programmatic scrolls never feed back into the scroll handler
//
// The package is single-threaded by contract: every method must be called from
// the goroutine that owns the host (for example the Bubble Tea event loop).
package dynlist
