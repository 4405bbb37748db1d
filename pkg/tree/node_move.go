package tree

import "slices"

// Move moves the child at from so that it ends up at index to. Equal
// indices are a no-op. Both indices must be in range.
func (n *Node) Move(from, to int) error {
	if from < 0 || from >= len(n.children) || to < 0 || to >= len(n.children) {
		return ErrIndexRange
	}
	if from == to {
		return nil
	}
	c := n.children[from]
	n.children = slices.Delete(n.children, from, from+1)
	n.children = slices.Insert(n.children, to, c)
	n.relink()
	n.changed()
	return nil
}

// SwapChildren exchanges the children at indices a and b.
func (n *Node) SwapChildren(a, b int) error {
	if a < 0 || a >= len(n.children) || b < 0 || b >= len(n.children) {
		return ErrIndexRange
	}
	if a == b {
		return nil
	}
	n.children[a], n.children[b] = n.children[b], n.children[a]
	n.relink()
	n.changed()
	return nil
}

// SwapChildNodes exchanges two immediate children.
func (n *Node) SwapChildNodes(a, b *Node) error {
	ia, ib := n.IndexOf(a), n.IndexOf(b)
	if ia < 0 || ib < 0 {
		return ErrNotChild
	}
	return n.SwapChildren(ia, ib)
}

// MoveAbove moves n so that it becomes the sibling directly above other.
func (n *Node) MoveAbove(other *Node) error {
	return n.moveBeside(other, 0)
}

// MoveBelow moves n so that it becomes the sibling directly below other.
func (n *Node) MoveBelow(other *Node) error {
	return n.moveBeside(other, 1)
}

func (n *Node) moveBeside(other *Node, offset int) error {
	if other == nil {
		return ErrNotFound
	}
	if n == other {
		return nil
	}
	src, dst := n.parent, other.parent
	if src == nil || dst == nil {
		return ErrNoParent
	}
	if isAncestor(n, other) {
		return ErrCycle
	}
	from := src.IndexOf(n)
	to := dst.IndexOf(other) + offset
	if src == dst {
		if from < to {
			to--
		}
		return src.Move(from, to)
	}
	src.detach(from)
	dst.attach(n, to)
	return nil
}

// MoveInto moves n to become the child of other at pos. pos counts
// other's children as they are after n has been removed from its current
// place, so it must be within [0, other.ChildCount()] (one less when
// other is already n's parent).
func (n *Node) MoveInto(other *Node, pos int) error {
	if other == nil {
		return ErrNotFound
	}
	src := n.parent
	if src == nil {
		return ErrNoParent
	}
	if isAncestor(n, other) {
		return ErrCycle
	}
	limit := len(other.children)
	if other == src {
		limit--
	}
	if pos < 0 || pos > limit {
		return ErrIndexRange
	}
	from := src.IndexOf(n)
	if other == src {
		return src.Move(from, pos)
	}
	src.detach(from)
	other.attach(n, pos)
	return nil
}
