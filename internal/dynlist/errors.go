package dynlist

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Contract violations. These are returned rather than swallowed so call sites
// get fixed; none of them is retried.
var (
	// ErrNilHost indicates New was called without a host container.
	ErrNilHost = constError("dynlist: host container is nil")

	// ErrMissingHeightFunc indicates Options.ItemHeight was not provided.
	ErrMissingHeightFunc = constError("dynlist: item height callback is required")

	// ErrMissingRenderFunc indicates Options.ItemRender was not provided.
	ErrMissingRenderFunc = constError("dynlist: item render callback is required")

	// ErrAlreadyRendered indicates InitialRender was called on a rendered list.
	ErrAlreadyRendered = constError("dynlist: list is already rendered")

	// ErrNotPaused indicates Resume was called on a list that is not paused.
	ErrNotPaused = constError("dynlist: list is not paused")
)
