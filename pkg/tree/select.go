package tree

import "github.com/vanderheijden86/treekit/pkg/style"

func (t *Tree) single() bool { return t.prefs.SelectMode == style.SelectSingle }

// setSel changes one item's selection and reports it through the
// callback. It returns whether the flag changed.
func (t *Tree) setSel(n *Node, v, cb bool) bool {
	if !n.SetSelected(v) {
		if v && cb && t.prefs.ReselectMode == style.SelectableAlways {
			t.doCallback(n, ReasonReselected)
		}
		return false
	}
	if cb {
		r := ReasonDeselected
		if v {
			r = ReasonSelected
		}
		t.doCallback(n, r)
	}
	return true
}

// Select selects n and reports whether it changed. In single mode every
// other item is deselected first.
func (t *Tree) Select(n *Node, cb bool) bool {
	if !t.owns(n) {
		return false
	}
	if t.single() {
		t.deselectOthers(n, cb)
		if !t.owns(n) {
			return false
		}
	}
	return t.setSel(n, true, cb)
}

// Deselect deselects n and reports whether it changed.
func (t *Tree) Deselect(n *Node, cb bool) bool {
	if !t.owns(n) {
		return false
	}
	return t.setSel(n, false, cb)
}

// SelectToggle flips n's selection.
func (t *Tree) SelectToggle(n *Node, cb bool) {
	if !t.owns(n) {
		return
	}
	if n.IsSelected() {
		t.setSel(n, false, cb)
	} else {
		t.Select(n, cb)
	}
}

// SelectPath selects the item at path. It returns ErrNotFound without
// invoking the callback if the path does not resolve.
func (t *Tree) SelectPath(path string, cb bool) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return t.Select(n, cb), nil
}

// DeselectPath deselects the item at path.
func (t *Tree) DeselectPath(path string, cb bool) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return t.Deselect(n, cb), nil
}

// SelectTogglePath flips the selection of the item at path.
func (t *Tree) SelectTogglePath(path string, cb bool) error {
	n := t.FindItem(path)
	if n == nil {
		return ErrNotFound
	}
	t.SelectToggle(n, cb)
	return nil
}

// IsSelected reports whether the item at path is selected.
func (t *Tree) IsSelected(path string) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return n.IsSelected(), nil
}

// selectedIn collects the selected items of n's subtree, n included.
func selectedIn(n *Node) []*Node {
	var out []*Node
	end := n.skipSubtree()
	for c := n; c != nil && c != end; c = c.Next() {
		if c.IsSelected() {
			out = append(out, c)
		}
	}
	return out
}

func (t *Tree) deselectOthers(keep *Node, cb bool) int {
	count := 0
	for _, n := range selectedIn(t.root) {
		if n == keep || !t.owns(n) {
			continue
		}
		if t.setSel(n, false, cb) {
			count++
		}
	}
	return count
}

// SelectOnly selects n and deselects every other item. Deselections are
// reported first, in depth-first order, then n's selection. It returns
// the number of items whose state changed.
func (t *Tree) SelectOnly(n *Node, cb bool) int {
	if !t.owns(n) {
		return 0
	}
	count := t.deselectOthers(n, cb)
	if !t.owns(n) {
		return count
	}
	if t.setSel(n, true, cb) {
		count++
	}
	return count
}

// SelectAll selects n and its whole subtree, or every item for nil. The
// hidden root is left alone. In single mode it does nothing.
func (t *Tree) SelectAll(n *Node, cb bool) int {
	if t.single() {
		return 0
	}
	return t.setSubtree(n, true, cb)
}

// DeselectAll deselects n and its whole subtree, or every item for nil.
func (t *Tree) DeselectAll(n *Node, cb bool) int {
	return t.setSubtree(n, false, cb)
}

func (t *Tree) setSubtree(n *Node, v, cb bool) int {
	if n == nil {
		n = t.root
	}
	if !t.owns(n) {
		return 0
	}
	var todo []*Node
	end := n.skipSubtree()
	for c := n; c != nil && c != end; c = c.Next() {
		if c.IsSelected() == v {
			continue
		}
		if v && c == t.root && !t.prefs.ShowRoot {
			continue
		}
		todo = append(todo, c)
	}
	count := 0
	for _, c := range todo {
		if t.owns(c) && t.setSel(c, v, cb) {
			count++
		}
	}
	return count
}

// ExtendSelection sets the selection of every item from `from` to `to`
// inclusive, in either direction, to val. With visibleOnly set, items
// hidden by a closed or invisible ancestor are skipped. It returns the
// number of items changed. In single mode only `to` is selected.
func (t *Tree) ExtendSelection(from, to *Node, val, visibleOnly bool) int {
	if !t.owns(from) || !t.owns(to) {
		return 0
	}
	if t.single() {
		if !val {
			if t.Deselect(to, true) {
				return 1
			}
			return 0
		}
		return t.SelectOnly(to, true)
	}
	span := t.span(from, to)
	count := 0
	for _, n := range span {
		if !t.owns(n) {
			continue
		}
		if visibleOnly && !n.displayable(t.prefs.ShowRoot) {
			continue
		}
		if n.IsSelected() != val && t.setSel(n, val, true) {
			count++
		}
	}
	return count
}

// span lists the items from a to b inclusive in the direction from a to b.
func (t *Tree) span(a, b *Node) []*Node {
	var fwd []*Node
	for n := a; n != nil; n = n.Next() {
		fwd = append(fwd, n)
		if n == b {
			return fwd
		}
	}
	var back []*Node
	for n := a; n != nil; n = n.Prev() {
		back = append(back, n)
		if n == b {
			return back
		}
	}
	return nil
}

// FirstSelectedItem returns the first selected item in depth-first order.
func (t *Tree) FirstSelectedItem() *Node {
	return t.NextSelectedItem(nil, 1)
}

// LastSelectedItem returns the last selected item in depth-first order.
func (t *Tree) LastSelectedItem() *Node {
	return t.NextSelectedItem(nil, -1)
}

// NextSelectedItem returns the selected item after n when dir > 0, or
// before it otherwise. A nil n searches from the start or the end.
func (t *Tree) NextSelectedItem(n *Node, dir int) *Node {
	var c *Node
	switch {
	case n == nil && dir > 0:
		c = t.root
	case n == nil:
		c = t.root.LastDescendant()
	case !t.owns(n):
		return nil
	case dir > 0:
		c = n.Next()
	default:
		c = n.Prev()
	}
	for c != nil {
		if c.IsSelected() {
			return c
		}
		if dir > 0 {
			c = c.Next()
		} else {
			c = c.Prev()
		}
	}
	return nil
}

// SelectedItems returns every selected item in depth-first order.
func (t *Tree) SelectedItems() []*Node {
	return selectedIn(t.root)
}
