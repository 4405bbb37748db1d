package tree

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.tree != nil && n.tree.root == n
}

// Depth is the number of ancestors; the root has depth 0.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the sibling before n, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// Next returns the item after n in depth-first order, or nil at the end.
func (n *Node) Next() *Node {
	if len(n.children) > 0 {
		return n.children[0]
	}
	for c := n; c != nil; c = c.parent {
		if c.next != nil {
			return c.next
		}
	}
	return nil
}

// Prev returns the item before n in depth-first order, or nil at the
// start.
func (n *Node) Prev() *Node {
	if n.prev != nil {
		return n.prev.LastDescendant()
	}
	return n.parent
}

// LastDescendant returns the last item of n's subtree in depth-first
// order, which is n itself when it has no children.
func (n *Node) LastDescendant() *Node {
	c := n
	for len(c.children) > 0 {
		c = c.children[len(c.children)-1]
	}
	return c
}

// VisibleR reports whether n would be laid out: n is visible and every
// ancestor is both open and visible.
func (n *Node) VisibleR() bool {
	if !n.IsVisible() {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if !p.IsOpen() || !p.IsVisible() {
			return false
		}
	}
	return true
}

func (n *Node) displayable(showRoot bool) bool {
	if n.IsRoot() && !showRoot {
		return false
	}
	return n.VisibleR()
}

// NextVisible returns the next item in depth-first order that would be
// laid out, never descending into closed or hidden items. The root is
// skipped unless showRoot is set.
func (n *Node) NextVisible(showRoot bool) *Node {
	c := n
	for {
		if len(c.children) > 0 && c.IsOpen() && c.IsVisible() {
			c = c.children[0]
		} else {
			c = c.skipSubtree()
		}
		if c == nil {
			return nil
		}
		if c.displayable(showRoot) {
			return c
		}
	}
}

// skipSubtree returns the item after n's subtree in depth-first order.
func (n *Node) skipSubtree() *Node {
	for c := n; c != nil; c = c.parent {
		if c.next != nil {
			return c.next
		}
	}
	return nil
}

// PrevVisible is the reverse of NextVisible.
func (n *Node) PrevVisible(showRoot bool) *Node {
	for c := n.Prev(); c != nil; c = c.Prev() {
		if c.displayable(showRoot) {
			return c
		}
	}
	return nil
}

// hasVisibleChildren reports whether any child takes part in layout.
func (n *Node) hasVisibleChildren() bool {
	for _, c := range n.children {
		if c.IsVisible() {
			return true
		}
	}
	return false
}
