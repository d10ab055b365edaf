package dynlist

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultViewportBuffer is the margin rendered above and below the viewport.
const DefaultViewportBuffer = 50

// HeightFunc returns the layout height of an item.
type HeightFunc[K comparable] func(id K) float64

// RenderFunc materializes an item for mounting at the given sequence index.
type RenderFunc[K comparable, H comparable] func(id K, index int) H

// Options configures a List. ItemHeight and ItemRender are required.
type Options[K comparable, H comparable] struct {
	ItemHeight HeightFunc[K]
	ItemRender RenderFunc[K, H]

	// ScrollbarOptions is passed untouched to a ScrollbarHost.
	ScrollbarOptions map[string]any

	// ViewportBuffer is the pre-render margin; zero means DefaultViewportBuffer.
	ViewportBuffer float64

	OnContentUpdated func()
	OnViewChange     func()
	OnNodeInjected   func(ids []K)
	OnResize         func()
	OnScroll         func()

	// ContentClasses styles the generated content element.
	ContentClasses []string

	// InitialScrollY is restored by InitialRender.
	InitialScrollY float64

	// Items is the initial sequence.
	Items []K

	// ScrollThrottle coalesces scroll events. Zero handles them synchronously.
	ScrollThrottle time.Duration

	// Scheduler defers coalesced scroll handling. Nil runs inline.
	Scheduler Scheduler

	// Logger receives debug output. Nil disables logging.
	Logger *zerolog.Logger
}

func (o *Options[K, H]) buffer() float64 {
	if o.ViewportBuffer == 0 {
		return DefaultViewportBuffer
	}
	return o.ViewportBuffer
}
