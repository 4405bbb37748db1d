package tree

import "github.com/vanderheijden86/treekit/pkg/draw"

// SetViewport sets the rectangle the tree is drawn into.
func (t *Tree) SetViewport(r draw.Rect) {
	if r == t.viewport {
		return
	}
	t.viewport = r
	t.redraw()
}

// Viewport returns the rectangle the tree is drawn into.
func (t *Tree) Viewport() draw.Rect { return t.viewport }

// VPosition returns the vertical scroll offset.
func (t *Tree) VPosition() int { return t.scrollY }

// ScrollMax is the largest valid scroll offset for the last layout.
func (t *Tree) ScrollMax() int {
	return max(t.contentH-t.viewport.H, 0)
}

// SetVPosition scrolls to y, clamped to [0, ScrollMax()].
func (t *Tree) SetVPosition(y int) {
	t.ensureLayout()
	y = min(max(y, 0), t.ScrollMax())
	if y == t.scrollY {
		return
	}
	t.scrollY = y
	t.redraw()
}

// ShowItem scrolls so that n's row starts yoff units below the top of the
// viewport, as far as the scroll range allows. Items hidden by a closed
// ancestor are not scrolled to; see Display.
func (t *Tree) ShowItem(n *Node, yoff int) {
	if !t.owns(n) {
		return
	}
	t.ensureLayout()
	if !t.laidOut(n) {
		return
	}
	content := n.row.Y - t.viewport.Y + t.scrollY
	t.SetVPosition(content - yoff)
}

// ShowItemTop scrolls n to the top of the viewport.
func (t *Tree) ShowItemTop(n *Node) { t.ShowItem(n, 0) }

// ShowItemMiddle scrolls n to the middle of the viewport.
func (t *Tree) ShowItemMiddle(n *Node) {
	if !t.owns(n) {
		return
	}
	t.ensureLayout()
	t.ShowItem(n, (t.viewport.H-n.row.H)/2)
}

// ShowItemBottom scrolls n to the bottom of the viewport.
func (t *Tree) ShowItemBottom(n *Node) {
	if !t.owns(n) {
		return
	}
	t.ensureLayout()
	t.ShowItem(n, t.viewport.H-n.row.H)
}

// Displayed reports whether n's whole row is inside the viewport.
func (t *Tree) Displayed(n *Node) bool {
	if !t.owns(n) {
		return false
	}
	t.ensureLayout()
	if !t.laidOut(n) {
		return false
	}
	return n.row.Y >= t.viewport.Y && n.row.Bottom() <= t.viewport.Bottom()
}

// Display opens n's ancestors and, if n is then not fully in view,
// scrolls it to the middle of the viewport.
func (t *Tree) Display(n *Node) {
	if !t.owns(n) {
		return
	}
	for p := n.parent; p != nil; p = p.parent {
		p.Open()
	}
	if !t.Displayed(n) {
		t.ShowItemMiddle(n)
	}
}

// keepInView scrolls the minimum needed to bring n fully into view.
func (t *Tree) keepInView(n *Node) {
	if t.Displayed(n) || !t.laidOut(n) {
		return
	}
	if n.row.Y < t.viewport.Y {
		t.ShowItemTop(n)
	} else {
		t.ShowItemBottom(n)
	}
}

// rowStep is the scroll distance of one wheel notch.
func (t *Tree) rowStep() int {
	t.ensureLayout()
	if n := t.FirstVisibleItem(); n != nil && t.laidOut(n) && n.row.H > 0 {
		return n.row.H
	}
	return 1
}

// FindClicked returns the visible item whose row contains (x, y), using
// the geometry of the last layout.
func (t *Tree) FindClicked(x, y int) *Node {
	t.ensureLayout()
	return t.findClicked(t.root, func(r draw.Rect) bool { return r.Contains(x, y) })
}

// FindClickedY returns the visible item whose row spans y regardless of
// x. Drag selection uses it once the pointer leaves the item column.
func (t *Tree) FindClickedY(y int) *Node {
	t.ensureLayout()
	return t.findClicked(t.root, func(r draw.Rect) bool { return r.ContainsY(y) })
}

func (t *Tree) findClicked(n *Node, hit func(draw.Rect) bool) *Node {
	if !n.IsVisible() {
		return nil
	}
	if (!n.IsRoot() || t.prefs.ShowRoot) && n.pass == t.pass && hit(n.row) {
		return n
	}
	if !n.IsOpen() {
		return nil
	}
	for _, c := range n.children {
		if found := t.findClicked(c, hit); found != nil {
			return found
		}
	}
	return nil
}
