// Package viewport provides an in-memory scroll container that satisfies the
// dynlist host contract.
//
// A Viewport keeps its child nodes in document order together with the
// metrics a real scroll container would expose: scroll offset, viewport
// height, content height and the height of the leading spacer. Terminal
// front-ends read the nodes and metrics back to draw a frame; tests use it to
// observe exactly which nodes the list engine mounted.
package viewport
