package viewport

import (
	"slices"
	"strconv"
)

// defaultMinThumb is the minimum scrollbar thumb length in track cells.
const defaultMinThumb = 1

// Viewport is a scroll container holding nodes of type H.
// The zero value is not usable; construct with New.
type Viewport[H comparable] struct {
	nodes []H

	classes    []string
	hasContent bool
	attached   bool

	scrollTop      float64
	viewportHeight float64
	contentHeight  float64
	spacer         float64

	onScroll func()

	scrollbar scrollbar
}

// scrollbar holds the state of the optional scrollbar affordance.
type scrollbar struct {
	enabled  bool
	minThumb int
	updates  int
}

// New creates an attached viewport of the given height.
func New[H comparable](height float64) *Viewport[H] {
	return &Viewport[H]{
		viewportHeight: max(height, 0),
		attached:       true,
	}
}

// CreateContent creates the content element.
func (v *Viewport[H]) CreateContent(classes []string) {
	v.classes = slices.Clone(classes)
	v.hasContent = true
}

// DestroyContent discards the content element and every node in it.
func (v *Viewport[H]) DestroyContent() {
	v.hasContent = false
	v.classes = nil
	v.nodes = nil
	v.spacer = 0
	v.contentHeight = 0
	v.scrollTop = 0
}

// HasContent reports whether a content element exists.
func (v *Viewport[H]) HasContent() bool { return v.hasContent }

// Classes returns the content element classes.
func (v *Viewport[H]) Classes() []string { return slices.Clone(v.classes) }

// Prepend inserts node at the head.
func (v *Viewport[H]) Prepend(node H) {
	v.nodes = slices.Insert(v.nodes, 0, node)
}

// InsertAfter inserts node after prev. If prev is not a child, node is
// appended.
func (v *Viewport[H]) InsertAfter(node, prev H) {
	i := slices.Index(v.nodes, prev)
	if i < 0 {
		v.nodes = append(v.nodes, node)
		return
	}
	v.nodes = slices.Insert(v.nodes, i+1, node)
}

// RemoveNode detaches node if present.
func (v *Viewport[H]) RemoveNode(node H) {
	if i := slices.Index(v.nodes, node); i >= 0 {
		v.nodes = slices.Delete(v.nodes, i, i+1)
	}
}

// Nodes returns the children in document order.
func (v *Viewport[H]) Nodes() []H { return slices.Clone(v.nodes) }

// Len returns the number of children.
func (v *Viewport[H]) Len() int { return len(v.nodes) }

// SetSpacer sets the leading spacer height.
func (v *Viewport[H]) SetSpacer(height float64) { v.spacer = max(height, 0) }

// Spacer returns the leading spacer height.
func (v *Viewport[H]) Spacer() float64 { return v.spacer }

// SetContentHeight sets the scrollable height and re-clamps the offset.
func (v *Viewport[H]) SetContentHeight(height float64) {
	v.contentHeight = max(height, 0)
	v.setScrollTop(v.scrollTop)
}

// ContentHeight returns the scrollable height.
func (v *Viewport[H]) ContentHeight() float64 { return v.contentHeight }

// ScrollTop returns the scroll offset.
func (v *Viewport[H]) ScrollTop() float64 { return v.scrollTop }

// MaxScrollTop returns the largest valid scroll offset.
func (v *Viewport[H]) MaxScrollTop() float64 {
	return max(v.contentHeight-v.viewportHeight, 0)
}

// SetScrollTop moves the offset, clamped to the scrollable range, and fires
// the scroll listener when it changed.
func (v *Viewport[H]) SetScrollTop(y float64) {
	if v.setScrollTop(y) && v.onScroll != nil {
		v.onScroll()
	}
}

// ScrollBy moves the offset by dy.
func (v *Viewport[H]) ScrollBy(dy float64) {
	v.SetScrollTop(v.scrollTop + dy)
}

func (v *Viewport[H]) setScrollTop(y float64) bool {
	y = min(max(y, 0), v.MaxScrollTop())
	if y == v.scrollTop {
		return false
	}
	v.scrollTop = y
	return true
}

// ViewportHeight returns the visible height.
func (v *Viewport[H]) ViewportHeight() float64 { return v.viewportHeight }

// Resize changes the visible height. The owner is expected to notify the
// list afterwards.
func (v *Viewport[H]) Resize(height float64) {
	v.viewportHeight = max(height, 0)
	v.setScrollTop(v.scrollTop)
}

// Attached reports whether the container is part of the document.
func (v *Viewport[H]) Attached() bool { return v.attached }

// Detach removes the container from the document.
func (v *Viewport[H]) Detach() { v.attached = false }

// Attach puts the container back into the document.
func (v *Viewport[H]) Attach() { v.attached = true }

// BindScroll registers the scroll listener.
func (v *Viewport[H]) BindScroll(fn func()) { v.onScroll = fn }

// UnbindScroll removes the scroll listener.
func (v *Viewport[H]) UnbindScroll() { v.onScroll = nil }

// Bound reports whether a scroll listener is registered.
func (v *Viewport[H]) Bound() bool { return v.onScroll != nil }

// InitScrollbar enables the scrollbar. Recognised option: "min_thumb".
func (v *Viewport[H]) InitScrollbar(opts map[string]any) {
	v.scrollbar = scrollbar{enabled: true, minThumb: defaultMinThumb}
	if n, ok := intOption(opts["min_thumb"]); ok && n > 0 {
		v.scrollbar.minThumb = n
	}
}

// UpdateScrollbar records that the scrollbar must be redrawn.
func (v *Viewport[H]) UpdateScrollbar() {
	if v.scrollbar.enabled {
		v.scrollbar.updates++
	}
}

// DestroyScrollbar disables the scrollbar.
func (v *Viewport[H]) DestroyScrollbar() { v.scrollbar = scrollbar{} }

// ScrollbarEnabled reports whether the scrollbar is initialised.
func (v *Viewport[H]) ScrollbarEnabled() bool { return v.scrollbar.enabled }

// ScrollbarUpdates returns how many times the scrollbar was refreshed.
func (v *Viewport[H]) ScrollbarUpdates() int { return v.scrollbar.updates }

// Thumb returns the thumb offset and length for a track of the given number
// of cells. ok is false when the content fits and no thumb is drawn.
func (v *Viewport[H]) Thumb(track int) (offset, length int, ok bool) {
	if !v.scrollbar.enabled || track <= 0 || v.contentHeight <= v.viewportHeight {
		return 0, 0, false
	}
	length = int(float64(track) * v.viewportHeight / v.contentHeight)
	length = min(max(length, v.scrollbar.minThumb), track)
	travel := track - length
	if maxTop := v.MaxScrollTop(); maxTop > 0 {
		offset = int(float64(travel)*v.scrollTop/maxTop + 0.5)
	}
	return min(offset, travel), length, true
}

func intOption(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
