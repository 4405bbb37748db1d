package tree

import "github.com/vanderheijden86/treekit/pkg/draw"

// EventKind identifies an input event.
type EventKind int

const (
	EventNone EventKind = iota
	// EventPush is a pointer button press.
	EventPush
	// EventDrag is pointer motion with a button held.
	EventDrag
	// EventRelease is a pointer button release.
	EventRelease
	// EventWheel scrolls by WheelDY notches; positive scrolls down.
	EventWheel
	// EventKey is a key press.
	EventKey
	// EventFocus and EventUnfocus report the tree gaining or losing
	// keyboard focus.
	EventFocus
	EventUnfocus
)

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all modifiers in m are held.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// Key is a navigation or editing key. Printable keys are reported as
// KeyRune with the character in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeySpace
	KeyRune
)

// Event is one input event in surface coordinates.
type Event struct {
	Kind   EventKind
	X, Y   int
	Button int
	Mods   Modifiers
	Key    Key
	Rune   rune
	// Clicks counts consecutive presses; 2 or more is a double click.
	Clicks  int
	WheelDY int
}

// Widget is a control embedded in an item's row. The tree positions it
// during layout, shows or hides it as its item's branch opens and closes,
// and forwards pointer events that land on it. The tree never destroys a
// widget.
type Widget interface {
	SetBounds(r draw.Rect)
	Bounds() draw.Rect
	Show()
	Hide()
	Visible() bool
	// PreferredHeight is the height the widget asks for when it is allowed
	// to size its row.
	PreferredHeight() int
	Draw(s draw.Surface)
	// Handle returns true if the widget consumed the event.
	Handle(ev Event) bool
}
