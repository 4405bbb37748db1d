package tree

import "errors"

// Errors returned by structural and path-based operations. A failing
// operation leaves the tree unmodified.
var (
	// ErrNotFound reports a path that does not resolve, or a node that
	// does not belong to the tree.
	ErrNotFound = errors.New("tree: item not found")
	// ErrIndexRange reports a child index outside the valid range.
	ErrIndexRange = errors.New("tree: index out of range")
	// ErrNoParent reports an operation that needs a parent on an item
	// that has none (the root or a deparented item).
	ErrNoParent = errors.New("tree: item has no parent")
	// ErrNotChild reports an item that is not an immediate child.
	ErrNotChild = errors.New("tree: item is not a child")
	// ErrCycle reports an attempt to move an item into its own subtree.
	ErrCycle = errors.New("tree: item cannot be moved into its own subtree")
	// ErrAttached reports an attempt to attach an item that already has
	// a parent.
	ErrAttached = errors.New("tree: item is already attached")
	// ErrBufferTooSmall reports a pathname that does not fit the buffer.
	ErrBufferTooSmall = errors.New("tree: pathname buffer too small")
)
