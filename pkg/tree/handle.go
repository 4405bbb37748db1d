package tree

import "github.com/vanderheijden86/treekit/pkg/style"

// gestureState is the pointer state machine: idle until a press on an
// item, pressed until the pointer moves, dragging until release.
type gestureState int

const (
	gestureIdle gestureState = iota
	gesturePressed
	gestureDragging
)

func (t *Tree) resetGesture() {
	t.gesture = gestureIdle
	t.pushed = nil
	t.pending = nil
	t.lastToggled = nil
}

// Handle processes one input event and reports whether it was used.
//
// Pointer presses on a collapse icon open or close the item; presses on
// the label apply the selection mode. In multi mode ctrl toggles and
// shift extends from the anchor item; a plain press on an item that is
// already part of a larger selection narrows the selection on release,
// unless the release lands elsewhere. Dragging extends or toggles the
// selection and scrolls when the pointer leaves the viewport.
func (t *Tree) Handle(ev Event) bool {
	switch ev.Kind {
	case EventFocus:
		if !t.focused {
			t.focused = true
			t.redraw()
		}
		return true
	case EventUnfocus:
		if t.focused {
			t.focused = false
			t.redraw()
		}
		return true
	case EventPush:
		return t.handlePush(ev)
	case EventDrag:
		return t.handleDrag(ev)
	case EventRelease:
		return t.handleRelease(ev)
	case EventWheel:
		if ev.WheelDY == 0 {
			return false
		}
		t.SetVPosition(t.scrollY + ev.WheelDY*t.rowStep())
		return true
	case EventKey:
		return t.handleKey(ev)
	}
	return false
}

// widgetAt forwards a pointer event to the embedded widget under it.
func (t *Tree) widgetAt(n *Node, ev Event) bool {
	if n == nil || n.widget == nil || !n.widget.Visible() {
		return false
	}
	if !n.widget.Bounds().Contains(ev.X, ev.Y) {
		return false
	}
	return n.widget.Handle(ev)
}

func (t *Tree) handlePush(ev Event) bool {
	if !t.viewport.Contains(ev.X, ev.Y) {
		return false
	}
	n := t.FindClicked(ev.X, ev.Y)
	if n == nil {
		return false
	}
	if t.widgetAt(n, ev) {
		return true
	}
	if t.prefs.ShowCollapse && n.HasChildren() && n.collapse.Contains(ev.X, ev.Y) {
		t.OpenToggle(n, true)
		return true
	}
	if ev.X < n.collapse.Right() {
		// connector area left of the item
		return false
	}

	prevFocus := t.ItemFocus()
	t.SetItemFocus(n)
	t.resetGesture()
	t.gesture = gesturePressed
	t.pushed = n

	if ev.Clicks >= 2 {
		if n.HasChildren() {
			t.OpenToggle(n, true)
		}
		return true
	}

	switch t.prefs.SelectMode {
	case style.SelectSingle:
		t.SelectOnly(n, true)
	case style.SelectMulti:
		switch {
		case ev.Mods.Has(ModCtrl):
			t.SelectToggle(n, true)
			t.lastToggled = t.live(n)
			t.anchor = t.live(n)
		case ev.Mods.Has(ModShift):
			from := t.live(t.anchor)
			if from == nil {
				from = prevFocus
			}
			if from == nil {
				from = n
			}
			t.ExtendSelection(from, n, true, true)
			if t.live(t.anchor) == nil {
				t.anchor = t.live(from)
			}
		default:
			if n.IsSelected() && len(t.SelectedItems()) > 1 {
				t.pending = n
			} else {
				t.SelectOnly(n, true)
			}
			t.anchor = t.live(n)
		}
	}
	if !t.owns(n) {
		t.resetGesture()
	}
	return true
}

func (t *Tree) handleDrag(ev Event) bool {
	if t.gesture == gestureIdle {
		return false
	}
	t.gesture = gestureDragging
	if t.live(t.pushed) != nil && t.widgetAt(t.pushed, ev) {
		return true
	}

	vp := t.viewport
	switch {
	case ev.Y < vp.Y:
		t.SetVPosition(t.scrollY - t.rowStep())
	case ev.Y >= vp.Bottom():
		t.SetVPosition(t.scrollY + t.rowStep())
	}
	y := min(max(ev.Y, vp.Y), vp.Bottom()-1)
	n := t.FindClickedY(y)
	if n == nil {
		return true
	}
	if p := t.live(t.pending); p != nil && p != n {
		// Moving off the pressed item turns the narrowing click into a
		// drag-extend.
		t.pending = nil
	}
	if n == t.live(t.pending) {
		return true
	}

	switch t.prefs.SelectMode {
	case style.SelectSingle:
		if !n.IsSelected() {
			t.SelectOnly(n, true)
		}
	case style.SelectMulti:
		if n == t.live(t.lastToggled) {
			break
		}
		if ev.Mods.Has(ModCtrl) {
			t.SelectToggle(n, true)
		} else {
			from := t.live(t.anchor)
			if from == nil {
				from = n
			}
			t.ExtendSelection(from, n, true, true)
		}
		t.lastToggled = t.live(n)
	}
	if t.owns(n) {
		t.SetItemFocus(n)
	}
	return true
}

func (t *Tree) handleRelease(ev Event) bool {
	if t.gesture == gestureIdle {
		return false
	}
	if p := t.live(t.pushed); p != nil && t.widgetAt(p, ev) {
		t.resetGesture()
		return true
	}
	if p := t.live(t.pending); p != nil {
		if t.FindClicked(ev.X, ev.Y) == p {
			t.SelectOnly(p, true)
		}
	}
	t.resetGesture()
	return true
}

// moveFocus focuses n and applies the keyboard selection policy.
func (t *Tree) moveFocus(n *Node, shift bool) {
	if n == nil {
		return
	}
	t.SetItemFocus(n)
	switch t.prefs.SelectMode {
	case style.SelectSingle:
		t.SelectOnly(n, true)
	case style.SelectMulti:
		if shift && !n.IsSelected() {
			t.Select(n, true)
		}
	}
	if n = t.live(n); n != nil {
		t.keepInView(n)
	}
}

func (t *Tree) handleKey(ev Event) bool {
	focus := t.ItemFocus()
	if focus != nil && !focus.displayable(t.prefs.ShowRoot) {
		focus = nil
	}
	shift := ev.Mods.Has(ModShift)

	switch ev.Key {
	case KeyUp, KeyDown:
		dir := 1
		if ev.Key == KeyUp {
			dir = -1
		}
		next := t.NextVisibleItem(focus, dir)
		if next == nil {
			return false
		}
		t.moveFocus(next, shift)
		return true

	case KeyLeft:
		if focus == nil {
			return false
		}
		if focus.IsOpen() && focus.HasChildren() {
			t.Close(focus, true)
			return true
		}
		if p := focus.parent; p != nil && p.displayable(t.prefs.ShowRoot) {
			t.moveFocus(p, false)
		}
		return true

	case KeyRight:
		if focus == nil {
			return false
		}
		if !focus.HasChildren() {
			return true
		}
		if focus.IsClosed() {
			t.Open(focus, true)
			return true
		}
		if c := focus.NextVisible(t.prefs.ShowRoot); c != nil && c.parent == focus {
			t.moveFocus(c, false)
		}
		return true

	case KeyHome:
		t.moveFocus(t.FirstVisibleItem(), shift)
		return true

	case KeyEnd:
		t.moveFocus(t.LastVisibleItem(), shift)
		return true

	case KeyPageUp, KeyPageDown:
		dir := 1
		if ev.Key == KeyPageUp {
			dir = -1
		}
		t.moveFocus(t.pageFrom(focus, dir), shift)
		return true

	case KeyEnter:
		if focus == nil || t.prefs.SelectMode == style.SelectNone {
			return false
		}
		t.SelectOnly(focus, true)
		return true

	case KeySpace:
		if focus == nil {
			return false
		}
		switch t.prefs.SelectMode {
		case style.SelectMulti:
			t.SelectToggle(focus, true)
		case style.SelectSingle:
			t.SelectOnly(focus, true)
		default:
			return false
		}
		return true

	case KeyRune:
		if ev.Mods.Has(ModCtrl) && (ev.Rune == 'a' || ev.Rune == 'A') && t.prefs.SelectMode == style.SelectMulti {
			t.SelectAll(nil, true)
			return true
		}
	}
	return false
}

// pageFrom walks visible items from n in direction dir until a
// viewport's height has been covered.
func (t *Tree) pageFrom(n *Node, dir int) *Node {
	t.ensureLayout()
	if n == nil {
		return t.NextVisibleItem(nil, dir)
	}
	page := max(t.viewport.H, 1)
	cur := n
	moved := 0
	for {
		next := t.NextVisibleItem(cur, dir)
		if next == nil {
			return cur
		}
		h := next.row.H
		if !t.laidOut(next) || h <= 0 {
			h = 1
		}
		if moved+h > page && cur != n {
			return cur
		}
		moved += h
		cur = next
	}
}
