package tree

import (
	"slices"
	"strings"

	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/style"
	"github.com/vanderheijden86/treekit/pkg/treepath"
)

type nodeFlags uint8

const (
	flagOpen nodeFlags = 1 << iota
	flagVisible
	flagActive
	flagSelected
)

// Node is one item of a tree.
//
// A node exclusively owns its children. Parent and sibling links are
// maintained by the node's structural operations and are never set
// directly; after any operation each child appears exactly once in its
// parent's child list and its sibling links name its neighbours there.
type Node struct {
	label  string
	widget Widget

	// nil icons inherit from the tree's preferences.
	openIcon, closeIcon, userIcon *draw.Icon
	font                          draw.Font
	fg, bg                        draw.Color

	// UserData is opaque to the tree.
	UserData any

	flags nodeFlags

	parent     *Node
	prev, next *Node
	children   []*Node

	tree      *Tree
	destroyed bool

	// geometry from the last layout pass that reached this node
	pass     uint64
	row      draw.Rect
	collapse draw.Rect
	labelBox draw.Rect
}

// NewNode returns a detached node. Attach it with AddItem or Reparent.
func NewNode(label string) *Node {
	return &Node{label: label, flags: flagOpen | flagVisible | flagActive}
}

func (n *Node) newChild(label string) *Node {
	c := NewNode(label)
	c.tree = n.tree
	return c
}

// Label returns the item's label.
func (n *Node) Label() string { return n.label }

// SetLabel changes the label.
func (n *Node) SetLabel(s string) {
	n.label = s
	n.changed()
}

// Widget returns the embedded widget, if any.
func (n *Node) Widget() Widget { return n.widget }

// SetWidget embeds w in the item's row. The previous widget is hidden
// and released; it is not destroyed.
func (n *Node) SetWidget(w Widget) {
	if n.widget != nil && n.widget != w {
		n.widget.Hide()
	}
	n.widget = w
	if w != nil {
		if n.VisibleR() {
			w.Show()
		} else {
			w.Hide()
		}
	}
	n.changed()
}

// OpenIcon returns the per-item open icon, or nil when inherited.
func (n *Node) OpenIcon() *draw.Icon { return n.openIcon }

// CloseIcon returns the per-item closed icon, or nil when inherited.
func (n *Node) CloseIcon() *draw.Icon { return n.closeIcon }

// UserIcon returns the per-item user icon, or nil when inherited.
func (n *Node) UserIcon() *draw.Icon { return n.userIcon }

// SetOpenIcon overrides the open icon; nil restores the default.
func (n *Node) SetOpenIcon(ic *draw.Icon) { n.openIcon = ic; n.changed() }

// SetCloseIcon overrides the closed icon; nil restores the default.
func (n *Node) SetCloseIcon(ic *draw.Icon) { n.closeIcon = ic; n.changed() }

// SetUserIcon overrides the user icon; nil restores the default.
func (n *Node) SetUserIcon(ic *draw.Icon) { n.userIcon = ic; n.changed() }

// Font returns the per-item label font; the zero Font inherits.
func (n *Node) Font() draw.Font { return n.font }

// SetFont overrides the label font.
func (n *Node) SetFont(f draw.Font) { n.font = f; n.changed() }

// FG returns the per-item label color; unset inherits.
func (n *Node) FG() draw.Color { return n.fg }

// SetFG overrides the label color.
func (n *Node) SetFG(c draw.Color) { n.fg = c; n.changed() }

// BG returns the per-item label background; unset shows the tree
// background.
func (n *Node) BG() draw.Color { return n.bg }

// SetBG overrides the label background.
func (n *Node) SetBG(c draw.Color) { n.bg = c; n.changed() }

// Tree returns the tree the item was created in or attached to.
func (n *Node) Tree() *Tree { return n.tree }

// Parent returns the parent item, or nil for the root and detached items.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// ChildCount returns the number of immediate children.
func (n *Node) ChildCount() int { return len(n.children) }

// HasChildren reports whether the item has any children.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Child returns the child at index i, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the index of c among n's children, or -1.
func (n *Node) IndexOf(c *Node) int {
	return slices.Index(n.children, c)
}

// Bounds returns the row rectangle from the last layout pass.
func (n *Node) Bounds() draw.Rect { return n.row }

// CollapseBounds returns the collapse icon rectangle from the last layout.
func (n *Node) CollapseBounds() draw.Rect { return n.collapse }

// LabelBounds returns the label (or replacing widget) rectangle from the
// last layout.
func (n *Node) LabelBounds() draw.Rect { return n.labelBox }

func (n *Node) has(f nodeFlags) bool { return n.flags&f != 0 }

func (n *Node) set(f nodeFlags, v bool) bool {
	if n.has(f) == v {
		return false
	}
	if v {
		n.flags |= f
	} else {
		n.flags &^= f
	}
	return true
}

// IsOpen reports whether the item's children are shown.
func (n *Node) IsOpen() bool { return n.has(flagOpen) }

// IsClosed is the negation of IsOpen.
func (n *Node) IsClosed() bool { return !n.has(flagOpen) }

// IsVisible reports whether the item takes part in layout.
func (n *Node) IsVisible() bool { return n.has(flagVisible) }

// IsActive reports whether the item is enabled.
func (n *Node) IsActive() bool { return n.has(flagActive) }

// IsSelected reports the item's selection flag.
func (n *Node) IsSelected() bool { return n.has(flagSelected) }

// Open shows the item's children and reports whether the state changed.
// Embedded widgets of descendants that become visible are shown.
func (n *Node) Open() bool {
	if !n.set(flagOpen, true) {
		return false
	}
	n.syncWidgets()
	n.changed()
	return true
}

// Close hides the item's children and reports whether the state changed.
// Embedded widgets of all descendants are hidden.
func (n *Node) Close() bool {
	if !n.set(flagOpen, false) {
		return false
	}
	n.syncWidgets()
	n.changed()
	return true
}

// OpenToggle flips the open state.
func (n *Node) OpenToggle() {
	if n.IsOpen() {
		n.Close()
	} else {
		n.Open()
	}
}

// Show makes the item take part in layout again.
func (n *Node) Show() bool {
	if !n.set(flagVisible, true) {
		return false
	}
	n.syncWidgets()
	n.changed()
	return true
}

// Hide removes the item and its subtree from layout.
func (n *Node) Hide() bool {
	if !n.set(flagVisible, false) {
		return false
	}
	n.syncWidgets()
	n.changed()
	return true
}

// Activate enables the item.
func (n *Node) Activate() bool {
	ok := n.set(flagActive, true)
	if ok {
		n.changed()
	}
	return ok
}

// Deactivate disables the item; it is drawn with the inactive color.
func (n *Node) Deactivate() bool {
	ok := n.set(flagActive, false)
	if ok {
		n.changed()
	}
	return ok
}

// SetSelected sets the selection flag without invoking callbacks or
// enforcing the selection mode. Use the Tree's selection methods for
// that.
func (n *Node) SetSelected(v bool) bool {
	ok := n.set(flagSelected, v)
	if ok {
		n.changed()
	}
	return ok
}

// syncWidgets shows the widgets of n's subtree that are on an open,
// visible branch and hides the rest.
func (n *Node) syncWidgets() {
	n.applyWidgets(n.VisibleR())
}

func (n *Node) applyWidgets(shown bool) {
	if n.widget != nil {
		if shown {
			n.widget.Show()
		} else {
			n.widget.Hide()
		}
	}
	for _, c := range n.children {
		c.applyWidgets(shown && n.IsOpen() && c.IsVisible())
	}
}

func (n *Node) changed() {
	if n.tree != nil {
		n.tree.redraw()
	}
}

// relink recomputes the sibling links of every child.
func (n *Node) relink() {
	for i, c := range n.children {
		c.prev, c.next = nil, nil
		if i > 0 {
			c.prev = n.children[i-1]
		}
		if i+1 < len(n.children) {
			c.next = n.children[i+1]
		}
	}
}

// attach inserts an unattached c at pos, clamped to the valid range.
func (n *Node) attach(c *Node, pos int) {
	pos = min(max(pos, 0), len(n.children))
	n.children = slices.Insert(n.children, pos, c)
	c.parent = n
	c.adopt(n.tree)
	n.relink()
	c.syncWidgets()
	n.changed()
}

// detach unlinks the child at i without destroying it.
func (n *Node) detach(i int) *Node {
	c := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	c.parent, c.prev, c.next = nil, nil, nil
	n.relink()
	n.changed()
	return c
}

func (n *Node) adopt(t *Tree) {
	if n.tree == t {
		return
	}
	n.tree = t
	for _, c := range n.children {
		c.adopt(t)
	}
}

// destroy marks the subtree destroyed and releases its widgets.
func (n *Node) destroy() {
	for _, c := range n.children {
		c.destroy()
	}
	if n.widget != nil {
		n.widget.Hide()
		n.widget = nil
	}
	n.children = nil
	n.parent, n.prev, n.next = nil, nil, nil
	n.flags &^= flagSelected
	n.destroyed = true
}

// sortedIndex is where a new child labelled label goes under the tree's
// sort order.
func (n *Node) sortedIndex(label string) int {
	order := style.SortNone
	if n.tree != nil && n.tree.prefs != nil {
		order = n.tree.prefs.SortOrder
	}
	switch order {
	case style.SortAscending:
		for i, c := range n.children {
			if strings.Compare(c.label, label) > 0 {
				return i
			}
		}
	case style.SortDescending:
		for i, c := range n.children {
			if strings.Compare(c.label, label) < 0 {
				return i
			}
		}
	}
	return len(n.children)
}

// Add creates the item addressed by path below n, creating missing
// intermediate items. It returns nil if the final item already exists or
// the path is empty.
func (n *Node) Add(path string) *Node {
	return n.AddSegments(treepath.Parse(path), nil)
}

// AddItem attaches the detached item at path below n, relabelling it with
// the final segment. Intermediate items are created as needed. An item
// with the same label may already exist; item is then attached beside it.
// It returns nil if item is attached elsewhere or n is inside item.
func (n *Node) AddItem(path string, item *Node) *Node {
	return n.AddSegments(treepath.Parse(path), item)
}

// AddSegments is Add and AddItem for an already parsed path.
func (n *Node) AddSegments(segs []string, item *Node) *Node {
	if len(segs) == 0 {
		return nil
	}
	if item != nil {
		if item.parent != nil || item.IsRoot() || item.destroyed || isAncestor(item, n) {
			return nil
		}
	}
	cur := n
	for i, seg := range segs {
		last := i == len(segs)-1
		child := cur.FindChildItem(seg)
		switch {
		case child != nil && !last:
			cur = child
			continue
		case child != nil && item == nil:
			return nil
		case last:
			if item == nil {
				item = cur.newChild(seg)
			}
			item.label = seg
			cur.attach(item, cur.sortedIndex(seg))
			return item
		}
		child = cur.newChild(seg)
		cur.attach(child, cur.sortedIndex(seg))
		cur = child
	}
	return nil
}

// AddChild appends a new child labelled label, honouring the sort order.
// Unlike Add the label is taken literally and duplicates are allowed.
func (n *Node) AddChild(label string) *Node {
	c := n.newChild(label)
	n.attach(c, n.sortedIndex(label))
	return c
}

// Insert creates a child labelled label at pos, clamped to the valid
// range. The sort order is ignored.
func (n *Node) Insert(label string, pos int) *Node {
	c := n.newChild(label)
	n.attach(c, pos)
	return c
}

// InsertAbove creates a sibling labelled label directly above n. It
// returns nil when n has no parent.
func (n *Node) InsertAbove(label string) *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Insert(label, n.parent.IndexOf(n))
}

// RemoveChild detaches and destroys the immediate child c.
func (n *Node) RemoveChild(c *Node) error {
	i := n.IndexOf(c)
	if i < 0 {
		return ErrNotChild
	}
	n.detach(i)
	c.destroy()
	if n.tree != nil {
		n.tree.forgetDestroyed()
	}
	return nil
}

// ClearChildren destroys every child of n.
func (n *Node) ClearChildren() {
	if len(n.children) == 0 {
		return
	}
	kids := n.children
	n.children = nil
	for _, c := range kids {
		c.destroy()
	}
	n.changed()
	if n.tree != nil {
		n.tree.forgetDestroyed()
	}
}

// Deparent detaches the child at index without destroying it and returns
// it. The orphan keeps its subtree and can be attached again with
// Reparent.
func (n *Node) Deparent(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, ErrIndexRange
	}
	return n.detach(index), nil
}

// Reparent attaches the detached item c as a child at pos, which must be
// within [0, ChildCount()].
func (n *Node) Reparent(c *Node, pos int) error {
	switch {
	case c == nil || c.destroyed:
		return ErrNotFound
	case c.parent != nil || c.IsRoot():
		return ErrAttached
	case isAncestor(c, n):
		return ErrCycle
	case pos < 0 || pos > len(n.children):
		return ErrIndexRange
	}
	n.attach(c, pos)
	return nil
}

// FindChild returns the index of the first child labelled label, or -1.
func (n *Node) FindChild(label string) int {
	return slices.IndexFunc(n.children, func(c *Node) bool { return c.label == label })
}

// FindChildItem returns the first child labelled label, or nil.
func (n *Node) FindChildItem(label string) *Node {
	if i := n.FindChild(label); i >= 0 {
		return n.children[i]
	}
	return nil
}

// FindItem resolves segs starting with n itself: the first segment must
// match n's label and the rest descend through children.
func (n *Node) FindItem(segs []string) *Node {
	if len(segs) == 0 || n.label != segs[0] {
		return nil
	}
	if len(segs) == 1 {
		return n
	}
	return n.FindChildPath(segs[1:])
}

// FindChildPath resolves segs starting with n's children.
func (n *Node) FindChildPath(segs []string) *Node {
	if len(segs) == 0 {
		return nil
	}
	for _, c := range n.children {
		if c.label != segs[0] {
			continue
		}
		if len(segs) == 1 {
			return c
		}
		// Labels need not be unique; keep looking if this branch fails.
		if found := c.FindChildPath(segs[1:]); found != nil {
			return found
		}
	}
	return nil
}

// isAncestor reports whether a is b or one of b's ancestors.
func isAncestor(a, b *Node) bool {
	for p := b; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}
