// Package tree holds the search tree used by the MCTS engine: plain nodes
// with per-node statistics, and a zipper-style focus handle for walking it.
// The zipper records, for every step taken down, the parent and the left and
// right siblings of the taken branch, so structural updates at the focus
// never touch the rest of the spine.
package tree

import "github.com/pkg/errors"

// Errors returned by focus navigation
var (
	// Asked to descend from a childless focus
	ErrNoChildren = errors.New("tree: focus has no children")

	// Asked for a nonexistent child index
	ErrOutOfBounds = errors.New("tree: child index out of bounds")
)

// A single search tree node. State is the move prefix identifying the
// node's position, Reward accumulates playout outcomes (0, 0.5 or 1 per
// visit), and Expanded is true iff children exist and every child has been
// visited at least once.
type Node[M any] struct {
	State    []M
	Visits   int
	Reward   float64
	Children []*Node[M]
	Expanded bool
}

// One breadcrumb per step down: the parent node and the siblings to the
// left and right of the branch that was taken
type crumb[M any] struct {
	parent *Node[M]
	left   []*Node[M]
	right  []*Node[M]
}

// Focus is the currently inspected node plus the breadcrumb stack leading
// back to the root
type Focus[M any] struct {
	node   *Node[M]
	crumbs []crumb[M]
}

// Create a focus on the given root node
func NewFocus[M any](root *Node[M]) *Focus[M] {
	return &Focus[M]{node: root}
}

// The focused node
func (f *Focus[M]) Node() *Node[M] {
	return f.node
}

// True iff no breadcrumbs have been pushed net, ie. the focus is the root
func (f *Focus[M]) AtRoot() bool {
	return len(f.crumbs) == 0
}

// Depth of the focus below the root
func (f *Focus[M]) Depth() int {
	return len(f.crumbs)
}

// Descend into child i. The parent keeps no child list while the focus is
// below it, the breadcrumb holds the split instead.
func (f *Focus[M]) Down(i int) error {
	if len(f.node.Children) == 0 {
		return ErrNoChildren
	}
	if i < 0 || i >= len(f.node.Children) {
		return errors.Wrapf(ErrOutOfBounds, "index %d, %d children", i, len(f.node.Children))
	}

	children := f.node.Children
	f.node.Children = nil
	f.crumbs = append(f.crumbs, crumb[M]{
		parent: f.node,
		left:   children[:i:i],
		right:  children[i+1:],
	})
	f.node = children[i]
	return nil
}

// Ascend to the parent, reinserting the focus at its original index.
// Returns false at the root, which the caller may use for termination.
func (f *Focus[M]) Up() bool {
	if f.AtRoot() {
		return false
	}

	c := f.crumbs[len(f.crumbs)-1]
	f.crumbs = f.crumbs[:len(f.crumbs)-1]

	children := make([]*Node[M], 0, len(c.left)+1+len(c.right))
	children = append(children, c.left...)
	children = append(children, f.node)
	children = append(children, c.right...)

	c.parent.Children = children
	f.node = c.parent
	return true
}

// Replace the focused node's payload via an update function, used to bump
// visits, reward and the expanded flag
func (f *Focus[M]) UpdateFocus(fn func(*Node[M])) {
	fn(f.node)
}

// Attach an ordered child list to the focus, used by expansion
func (f *Focus[M]) ReplaceChildren(cs []*Node[M]) {
	f.node.Children = cs
}
