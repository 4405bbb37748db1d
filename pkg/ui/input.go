package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/treekit/pkg/tree"
)

// doubleClickWindow is the longest gap between two presses on the same
// cell that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// clickTracker counts consecutive presses on the same cell.
type clickTracker struct {
	x, y  int
	at    time.Time
	count int
}

func (c *clickTracker) press(x, y int, now time.Time) int {
	if c.count > 0 && x == c.x && y == c.y && now.Sub(c.at) <= doubleClickWindow {
		c.count++
	} else {
		c.count = 1
	}
	c.x, c.y, c.at = x, y, now
	return c.count
}

// keyEvent translates a key press into a tree event. ok is false for keys
// the tree does not handle.
func keyEvent(msg tea.KeyMsg, keys KeyMap) (ev tree.Event, ok bool) {
	ev.Kind = tree.EventKey
	if strings.HasPrefix(msg.String(), "shift+") {
		ev.Mods |= tree.ModShift
	}
	switch {
	case key.Matches(msg, keys.Up):
		ev.Key = tree.KeyUp
	case key.Matches(msg, keys.Down):
		ev.Key = tree.KeyDown
	case key.Matches(msg, keys.Left):
		ev.Key = tree.KeyLeft
	case key.Matches(msg, keys.Right):
		ev.Key = tree.KeyRight
	case key.Matches(msg, keys.Home):
		ev.Key = tree.KeyHome
	case key.Matches(msg, keys.End):
		ev.Key = tree.KeyEnd
	case key.Matches(msg, keys.PageUp):
		ev.Key = tree.KeyPageUp
	case key.Matches(msg, keys.PageDown):
		ev.Key = tree.KeyPageDown
	case key.Matches(msg, keys.Choose):
		ev.Key = tree.KeyEnter
	case key.Matches(msg, keys.Select):
		ev.Key = tree.KeySpace
	case key.Matches(msg, keys.SelectAll):
		ev.Key = tree.KeyRune
		ev.Rune = 'a'
		ev.Mods |= tree.ModCtrl
	default:
		return tree.Event{}, false
	}
	return ev, true
}

// mouseEvent translates a mouse message into a tree event. top is the
// screen row of the tree's viewport.
func mouseEvent(msg tea.MouseMsg, top int) (ev tree.Event, ok bool) {
	ev.X, ev.Y = msg.X, msg.Y-top
	if msg.Shift {
		ev.Mods |= tree.ModShift
	}
	if msg.Ctrl {
		ev.Mods |= tree.ModCtrl
	}
	if msg.Alt {
		ev.Mods |= tree.ModAlt
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.Kind, ev.WheelDY = tree.EventWheel, -1
		return ev, true
	case tea.MouseButtonWheelDown:
		ev.Kind, ev.WheelDY = tree.EventWheel, 1
		return ev, true
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return tree.Event{}, false
		}
		ev.Kind, ev.Button = tree.EventPush, 1
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return tree.Event{}, false
		}
		ev.Kind, ev.Button = tree.EventDrag, 1
	case tea.MouseActionRelease:
		ev.Kind, ev.Button = tree.EventRelease, 1
	default:
		return tree.Event{}, false
	}
	return ev, true
}
