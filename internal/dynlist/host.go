package dynlist

import "time"

// Host is the scroll container a List renders into. Nodes are the render
// handles returned by the item render callback; the host only needs to keep
// them in order. Implementations are owned exclusively by one List.
type Host[H comparable] interface {
	// CreateContent creates the scrollable content element.
	CreateContent(classes []string)
	// DestroyContent detaches and discards the content element and its nodes.
	DestroyContent()

	// Prepend inserts node before every other node.
	Prepend(node H)
	// InsertAfter inserts node directly after prev.
	InsertAfter(node, prev H)
	// RemoveNode detaches node.
	RemoveNode(node H)

	// SetSpacer sets the leading space occupied by items above the window.
	SetSpacer(height float64)
	// SetContentHeight sets the total scrollable height.
	SetContentHeight(height float64)

	ScrollTop() float64
	SetScrollTop(y float64)
	ViewportHeight() float64

	// Attached reports whether the container is still part of the document.
	Attached() bool

	// BindScroll registers the scroll listener; UnbindScroll removes it.
	BindScroll(fn func())
	UnbindScroll()
}

// ScrollbarHost is implemented by hosts that draw a scrollbar affordance.
type ScrollbarHost interface {
	InitScrollbar(opts map[string]any)
	UpdateScrollbar()
	DestroyScrollbar()
}

// Scheduler delays fn by delay. The returned func cancels the call if it has
// not run yet. Implementations must invoke fn on the goroutine that owns the
// list.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, fn func()) (cancel func())

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(delay time.Duration, fn func()) func() {
	return f(delay, fn)
}

// inlineScheduler runs fn immediately, ignoring delay.
type inlineScheduler struct{}

func (inlineScheduler) Schedule(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}
