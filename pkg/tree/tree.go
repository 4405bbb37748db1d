// Package tree is a hierarchical tree widget: path-addressable items with
// open/close state, selection and focus, laid out and drawn onto a
// draw.Surface and scrolled through a viewport.
//
// A Tree owns its root item, which is always present and may be hidden
// with style.Prefs.ShowRoot. Items are added by path ("Fruit/Apple"),
// creating missing ancestors on the way. Selection and open/close changes
// made through the Tree invoke the registered callback once per changed
// item; the callback may modify or remove items, including the one being
// reported.
//
// A Tree is not safe for concurrent use.
package tree

import (
	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/style"
	"github.com/vanderheijden86/treekit/pkg/treepath"
)

// Reason says why the callback was invoked.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonSelected
	ReasonDeselected
	ReasonReselected
	ReasonOpened
	ReasonClosed
)

func (r Reason) String() string {
	switch r {
	case ReasonSelected:
		return "selected"
	case ReasonDeselected:
		return "deselected"
	case ReasonReselected:
		return "reselected"
	case ReasonOpened:
		return "opened"
	case ReasonClosed:
		return "closed"
	}
	return "none"
}

// Callback is invoked with the tree and the data given to SetCallback.
// CallbackItem and CallbackReason describe the change while it runs.
type Callback func(t *Tree, data any)

// Tree is the controller for a tree of items.
type Tree struct {
	root  *Node
	prefs *style.Prefs

	// weak references; cleared when their item is destroyed and
	// re-validated on every read
	focus       *Node
	cbItem      *Node
	pushed      *Node
	anchor      *Node
	lastToggled *Node
	pending     *Node

	cbReason Reason
	callback Callback
	cbData   any

	redrawFn func()
	damaged  bool
	dirty    bool
	focused  bool

	viewport draw.Rect
	scrollY  int
	contentW int
	contentH int
	surface  draw.Surface
	pass     uint64

	gesture gestureState
}

// New returns an empty tree with a root labelled "ROOT". A nil prefs uses
// style.Cell().
func New(prefs *style.Prefs) *Tree {
	if prefs == nil {
		prefs = style.Cell()
	}
	t := &Tree{prefs: prefs, dirty: true}
	t.root = NewNode("ROOT")
	t.root.tree = t
	return t
}

// Prefs returns the preferences in use. Call SetPrefs after modifying
// them so the next draw lays out again.
func (t *Tree) Prefs() *style.Prefs { return t.prefs }

// SetPrefs replaces the preferences and schedules a full relayout.
func (t *Tree) SetPrefs(p *style.Prefs) {
	if p == nil {
		p = style.Cell()
	}
	t.prefs = p
	if p.SelectMode == style.SelectSingle {
		t.enforceSingle()
	}
	t.redraw()
}

// SelectMode returns the selection mode from the preferences.
func (t *Tree) SelectMode() style.SelectMode { return t.prefs.SelectMode }

// SetSelectMode changes the selection mode. Switching to single mode
// keeps only the first selected item selected.
func (t *Tree) SetSelectMode(m style.SelectMode) {
	t.prefs.SelectMode = m
	if m == style.SelectSingle {
		t.enforceSingle()
	}
	t.redraw()
}

func (t *Tree) enforceSingle() {
	first := t.FirstSelectedItem()
	for n := first; n != nil; n = n.Next() {
		if n != first {
			n.SetSelected(false)
		}
	}
}

// Root returns the root item.
func (t *Tree) Root() *Node { return t.root }

// SetRootLabel relabels the root.
func (t *Tree) SetRootLabel(label string) { t.root.SetLabel(label) }

// Clear destroys every item except the root.
func (t *Tree) Clear() { t.root.ClearChildren() }

// ClearChildren destroys the children of n.
func (t *Tree) ClearChildren(n *Node) {
	if t.owns(n) {
		n.ClearChildren()
	}
}

// Add creates the item addressed by path below the root. It returns nil
// if the item already exists.
func (t *Tree) Add(path string) *Node {
	return t.root.Add(path)
}

// AddItem attaches the detached item at path. See Node.AddItem.
func (t *Tree) AddItem(path string, item *Node) *Node {
	return t.root.AddItem(path, item)
}

// AddChild appends a child labelled label to parent, taking the label
// literally. It returns nil if parent is not in this tree.
func (t *Tree) AddChild(parent *Node, label string) *Node {
	if !t.owns(parent) {
		return nil
	}
	return parent.AddChild(label)
}

// Insert creates a child of parent at pos.
func (t *Tree) Insert(parent *Node, label string, pos int) *Node {
	if !t.owns(parent) {
		return nil
	}
	return parent.Insert(label, pos)
}

// InsertAbove creates a sibling directly above the given item.
func (t *Tree) InsertAbove(above *Node, label string) *Node {
	if !t.owns(above) {
		return nil
	}
	return above.InsertAbove(label)
}

// Remove destroys n and its subtree. Removing the root clears the tree
// but keeps the root itself.
func (t *Tree) Remove(n *Node) error {
	if !t.owns(n) {
		return ErrNotFound
	}
	if n == t.root {
		t.Clear()
		return nil
	}
	return n.parent.RemoveChild(n)
}

// FindItem returns the item addressed by path, or nil. Paths are relative
// to the root's children. When the root is shown, ItemPathname starts
// paths with the root's label, so that form is tried first.
func (t *Tree) FindItem(path string) *Node {
	segs := treepath.Parse(path)
	if t.prefs.ShowRoot {
		if n := t.root.FindItem(segs); n != nil {
			return n
		}
	}
	return t.root.FindChildPath(segs)
}

// owns reports whether n is a live item attached to this tree.
func (t *Tree) owns(n *Node) bool {
	if n == nil || n.destroyed || n.tree != t {
		return false
	}
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p == t.root
}

// live returns n if it is still owned by the tree, otherwise nil.
func (t *Tree) live(n *Node) *Node {
	if t.owns(n) {
		return n
	}
	return nil
}

// forgetDestroyed clears every weak reference to a destroyed item.
func (t *Tree) forgetDestroyed() {
	for _, slot := range []**Node{&t.focus, &t.cbItem, &t.pushed, &t.anchor, &t.lastToggled, &t.pending} {
		if *slot != nil && (*slot).destroyed {
			*slot = nil
		}
	}
}

// SetCallback registers fn, invoked with data on selection and open/close
// changes.
func (t *Tree) SetCallback(fn Callback, data any) {
	t.callback = fn
	t.cbData = data
}

// CallbackItem returns the item the running callback is about. It is nil
// outside a callback and once that item has been removed.
func (t *Tree) CallbackItem() *Node { return t.live(t.cbItem) }

// CallbackReason returns why the running callback was invoked.
func (t *Tree) CallbackReason() Reason { return t.cbReason }

func (t *Tree) doCallback(n *Node, r Reason) {
	if t.callback == nil {
		return
	}
	prevItem, prevReason := t.cbItem, t.cbReason
	t.cbItem, t.cbReason = n, r
	t.callback(t, t.cbData)
	t.cbItem, t.cbReason = prevItem, prevReason
	t.forgetDestroyed()
}

// SetRedrawFunc registers fn, called whenever the tree needs repainting.
func (t *Tree) SetRedrawFunc(fn func()) { t.redrawFn = fn }

// Damaged reports whether something changed since the last Draw.
func (t *Tree) Damaged() bool { return t.damaged }

// ClearDamage resets the damage flag without drawing.
func (t *Tree) ClearDamage() { t.damaged = false }

func (t *Tree) redraw() {
	t.damaged = true
	t.dirty = true
	if t.redrawFn != nil {
		t.redrawFn()
	}
}

// SetItemFocus moves keyboard focus to n, or clears it for nil. It
// repaints only when focus changes.
func (t *Tree) SetItemFocus(n *Node) {
	n = t.live(n)
	if n == t.live(t.focus) {
		t.focus = n
		return
	}
	t.focus = n
	t.redraw()
}

// ItemFocus returns the focused item, or nil.
func (t *Tree) ItemFocus() *Node { return t.live(t.focus) }

// HasFocus reports whether the tree itself holds keyboard focus.
func (t *Tree) HasFocus() bool { return t.focused }

// Open opens n and reports whether it changed, invoking the callback
// with ReasonOpened when cb is set.
func (t *Tree) Open(n *Node, cb bool) bool {
	if !t.owns(n) || !n.Open() {
		return false
	}
	if cb {
		t.doCallback(n, ReasonOpened)
	}
	return true
}

// Close closes n and reports whether it changed, invoking the callback
// with ReasonClosed when cb is set.
func (t *Tree) Close(n *Node, cb bool) bool {
	if !t.owns(n) || !n.Close() {
		return false
	}
	if cb {
		t.doCallback(n, ReasonClosed)
	}
	return true
}

// OpenToggle flips n's open state.
func (t *Tree) OpenToggle(n *Node, cb bool) {
	if !t.owns(n) {
		return
	}
	if n.IsOpen() {
		t.Close(n, cb)
	} else {
		t.Open(n, cb)
	}
}

// OpenPath opens the item at path. It returns ErrNotFound without
// invoking the callback if the path does not resolve, and false if the
// item was already open.
func (t *Tree) OpenPath(path string, cb bool) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return t.Open(n, cb), nil
}

// ClosePath closes the item at path. See OpenPath.
func (t *Tree) ClosePath(path string, cb bool) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return t.Close(n, cb), nil
}

// IsOpen reports whether the item at path is open.
func (t *Tree) IsOpen(path string) (bool, error) {
	n := t.FindItem(path)
	if n == nil {
		return false, ErrNotFound
	}
	return n.IsOpen(), nil
}

// IsClosed reports whether the item at path is closed.
func (t *Tree) IsClosed(path string) (bool, error) {
	open, err := t.IsOpen(path)
	return !open && err == nil, err
}

// First returns the root.
func (t *Tree) First() *Node { return t.root }

// Last returns the last item in depth-first order.
func (t *Tree) Last() *Node { return t.root.LastDescendant() }

// Next returns the item after n in depth-first order.
func (t *Tree) Next(n *Node) *Node {
	if !t.owns(n) {
		return nil
	}
	return n.Next()
}

// Prev returns the item before n in depth-first order.
func (t *Tree) Prev(n *Node) *Node {
	if !t.owns(n) {
		return nil
	}
	return n.Prev()
}

// FirstVisibleItem returns the first item that would be laid out.
func (t *Tree) FirstVisibleItem() *Node {
	if t.root.displayable(t.prefs.ShowRoot) {
		return t.root
	}
	return t.root.NextVisible(t.prefs.ShowRoot)
}

// LastVisibleItem returns the last item that would be laid out.
func (t *Tree) LastVisibleItem() *Node {
	n := t.root.LastDescendant()
	if n.displayable(t.prefs.ShowRoot) {
		return n
	}
	return n.PrevVisible(t.prefs.ShowRoot)
}

// NextVisibleItem returns the visible item after n when dir > 0, or
// before it otherwise. A nil n starts from the first or last visible item.
func (t *Tree) NextVisibleItem(n *Node, dir int) *Node {
	if n == nil || !t.owns(n) {
		if dir > 0 {
			return t.FirstVisibleItem()
		}
		return t.LastVisibleItem()
	}
	if dir > 0 {
		return n.NextVisible(t.prefs.ShowRoot)
	}
	return n.PrevVisible(t.prefs.ShowRoot)
}
