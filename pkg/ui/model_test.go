package ui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/style"
	"github.com/vanderheijden86/treekit/pkg/tree"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	m       Model
	clock   *fakeClock
	yanked  []string
	lastCmd tea.Cmd
}

func testPrefs() *style.Prefs {
	p := style.Cell()
	p.ShowRoot = false
	p.OpenIcon = draw.Icon{Glyph: "-"}
	p.CloseIcon = draw.Icon{Glyph: "+"}
	return p
}

func newHarness(t *testing.T, opts Options, paths ...string) *harness {
	t.Helper()
	tr := tree.New(testPrefs())
	for _, p := range paths {
		tr.Add(p)
	}
	h := &harness{clock: &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	opts.Now = h.clock.Now
	opts.Renderer = lipgloss.NewRenderer(io.Discard)
	opts.Clipboard = func(s string) error {
		h.yanked = append(h.yanked, s)
		return nil
	}
	h.m = NewModel(tr, opts)
	h.send(tea.WindowSizeMsg{Width: 40, Height: 12})
	return h
}

func (h *harness) send(msg tea.Msg) {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.lastCmd = cmd
}

func (h *harness) keys(ks ...tea.KeyMsg) {
	for _, k := range ks {
		h.send(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
}

func focusLabel(m Model) string {
	if n := m.Tree().ItemFocus(); n != nil {
		return n.Label()
	}
	return ""
}

// TestKeyMapHelp verifies every binding shown in help has a key and text.
func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if got := len(km.ShortHelp()); got != 7 {
		t.Errorf("ShortHelp has %d bindings, want 7", got)
	}
	groups := km.FullHelp()
	if len(groups) != 3 {
		t.Fatalf("FullHelp has %d groups, want 3", len(groups))
	}
	for _, g := range groups {
		for _, b := range g {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help", b.Keys())
			}
		}
	}
}

// TestKeyEventTranslation verifies key messages map onto tree keys.
func TestKeyEventTranslation(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		ok   bool
		key  tree.Key
		mods tree.Modifiers
		r    rune
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, true, tree.KeyUp, 0, 0},
		{"vim down", runes("j"), true, tree.KeyDown, 0, 0},
		{"shift down", tea.KeyMsg{Type: tea.KeyShiftDown}, true, tree.KeyDown, tree.ModShift, 0},
		{"end", runes("G"), true, tree.KeyEnd, 0, 0},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, true, tree.KeyPageDown, 0, 0},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true, tree.KeyEnter, 0, 0},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true, tree.KeySpace, 0, 0},
		{"select all", tea.KeyMsg{Type: tea.KeyCtrlA}, true, tree.KeyRune, tree.ModCtrl, 'a'},
		{"unbound", runes("z"), false, tree.KeyNone, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := keyEvent(tt.msg, km)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if ev.Kind != tree.EventKey || ev.Key != tt.key || ev.Mods != tt.mods || ev.Rune != tt.r {
				t.Errorf("got %+v, want key %v mods %v rune %q", ev, tt.key, tt.mods, tt.r)
			}
		})
	}
}

// TestMouseEventTranslation verifies mouse messages map onto pointer
// events relative to the tree's top row.
func TestMouseEventTranslation(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.MouseMsg
		ok    bool
		kind  tree.EventKind
		y     int
		wheel int
	}{
		{"press", tea.MouseMsg{X: 5, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, true, tree.EventPush, 2, 0},
		{"drag", tea.MouseMsg{X: 5, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, true, tree.EventDrag, 3, 0},
		{"release", tea.MouseMsg{X: 5, Y: 4, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}, true, tree.EventRelease, 3, 0},
		{"wheel up", tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, true, tree.EventWheel, -1, -1},
		{"wheel down", tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, true, tree.EventWheel, -1, 1},
		{"right press", tea.MouseMsg{Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, false, 0, 0, 0},
		{"hover", tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}, false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := mouseEvent(tt.msg, 1)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if ev.Kind != tt.kind || ev.Y != tt.y || ev.WheelDY != tt.wheel {
				t.Errorf("got %+v, want kind %v y %d wheel %d", ev, tt.kind, tt.y, tt.wheel)
			}
		})
	}

	ev, _ := mouseEvent(tea.MouseMsg{Ctrl: true, Shift: true, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, 0)
	if !ev.Mods.Has(tree.ModCtrl | tree.ModShift) {
		t.Errorf("mods = %v, want ctrl and shift", ev.Mods)
	}
}

// TestClickTracker verifies presses on one cell within the window count
// up and anything else starts over.
func TestClickTracker(t *testing.T) {
	var c clickTracker
	t0 := time.Unix(100, 0)
	steps := []struct {
		x, y int
		at   time.Duration
		want int
	}{
		{1, 1, 0, 1},
		{1, 1, 100 * time.Millisecond, 2},
		{1, 1, 200 * time.Millisecond, 3},
		{1, 1, 700 * time.Millisecond, 1},
		{2, 1, 750 * time.Millisecond, 1},
	}
	for i, s := range steps {
		if got := c.press(s.x, s.y, t0.Add(s.at)); got != s.want {
			t.Errorf("step %d: press = %d, want %d", i, got, s.want)
		}
	}
}

// TestKeysDriveTree verifies navigation keys reach the tree and the
// callback reports into the status line.
func TestKeysDriveTree(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple", "Fruit/Banana", "Veg/Carrot")

	h.keys(tea.KeyMsg{Type: tea.KeyDown})
	if got := focusLabel(h.m); got != "Fruit" {
		t.Fatalf("focus = %q, want Fruit", got)
	}
	if got := h.m.status.text; got != "selected Fruit" {
		t.Errorf("status = %q, want %q", got, "selected Fruit")
	}

	h.keys(runes("j"), runes("j"))
	if got := focusLabel(h.m); got != "Banana" {
		t.Errorf("focus = %q, want Banana", got)
	}

	h.keys(runes("g"), runes("o"))
	if open, _ := h.m.Tree().IsOpen("Fruit"); open {
		t.Error("Fruit still open after toggle")
	}
	if got := h.m.status.text; got != "closed Fruit" {
		t.Errorf("status = %q, want %q", got, "closed Fruit")
	}
	h.keys(runes("l"))
	if open, _ := h.m.Tree().IsOpen("Fruit"); !open {
		t.Error("right did not open Fruit")
	}
}

// TestMouseSelectsAndDoubleClickToggles verifies clicks select and a
// second quick click on the same cell opens or closes the item.
func TestMouseSelectsAndDoubleClickToggles(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple", "Fruit/Banana", "Veg/Carrot")

	// Apple is the second tree row, below the title bar.
	h.click(9, 2)
	if sel := h.m.Tree().FirstSelectedItem(); sel == nil || sel.Label() != "Apple" {
		t.Fatalf("selected %v, want Apple", sel)
	}

	h.clock.advance(time.Second)
	h.click(6, 1)
	h.clock.advance(100 * time.Millisecond)
	h.click(6, 1)
	if open, _ := h.m.Tree().IsOpen("Fruit"); open {
		t.Error("double click did not close Fruit")
	}

	h.clock.advance(time.Second)
	h.click(6, 1)
	if open, _ := h.m.Tree().IsOpen("Fruit"); open {
		t.Error("slow click toggled Fruit")
	}
}

// TestAddPrompt verifies the add prompt creates and focuses the item, and
// that escape abandons it.
func TestAddPrompt(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple", "Veg/Carrot")

	h.keys(runes("a"))
	if h.m.mode != modeAdd {
		t.Fatalf("mode = %v, want add", h.m.mode)
	}
	h.keys(runes("Veg/Pea"), tea.KeyMsg{Type: tea.KeyEnter})
	if h.m.mode != modeBrowse {
		t.Errorf("mode = %v after enter, want browse", h.m.mode)
	}
	n := h.m.Tree().FindItem("Veg/Pea")
	if n == nil {
		t.Fatal("Veg/Pea not added")
	}
	if h.m.Tree().ItemFocus() != n {
		t.Error("new item not focused")
	}

	h.keys(runes("a"), runes("Veg/Pea"), tea.KeyMsg{Type: tea.KeyEnter})
	if !h.m.status.warn {
		t.Errorf("duplicate add did not warn, status %q", h.m.status.text)
	}

	h.keys(runes("a"), runes("Nuts"), tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.mode != modeBrowse || h.m.Tree().FindItem("Nuts") != nil {
		t.Error("escape did not cancel the prompt")
	}
}

// TestDeleteMovesFocus verifies removing the focused item focuses a
// neighbour.
func TestDeleteMovesFocus(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple", "Fruit/Banana", "Veg/Carrot")
	tr := h.m.Tree()

	tr.SetItemFocus(tr.FindItem("Fruit/Apple"))
	h.keys(runes("x"))
	if tr.FindItem("Fruit/Apple") != nil {
		t.Fatal("Apple not removed")
	}
	if got := focusLabel(h.m); got != "Banana" {
		t.Errorf("focus = %q, want Banana", got)
	}

	h.keys(runes("x"))
	if got := focusLabel(h.m); got != "Fruit" {
		t.Errorf("focus = %q, want Fruit", got)
	}
	if got := h.m.status.text; got != "removed Fruit/Banana" {
		t.Errorf("status = %q", got)
	}
}

// TestYankCopiesPath verifies the focused item's path goes to the
// clipboard.
func TestYankCopiesPath(t *testing.T) {
	h := newHarness(t, Options{}, "a\\/b/c")
	tr := h.m.Tree()

	h.keys(runes("y"))
	if len(h.yanked) != 0 || !h.m.status.warn {
		t.Errorf("yank without focus copied %v", h.yanked)
	}

	tr.SetItemFocus(tr.FindItem("a\\/b/c"))
	h.keys(runes("y"))
	if len(h.yanked) != 1 || h.yanked[0] != "a\\/b/c" {
		t.Errorf("yanked %v, want [a\\/b/c]", h.yanked)
	}
}

// TestHelpModes verifies the help bar toggle and the help page.
func TestHelpModes(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple")
	vp := h.m.Tree().Viewport()

	h.keys(runes("?"))
	if !h.m.help.ShowAll {
		t.Fatal("? did not expand help")
	}
	if got := h.m.Tree().Viewport(); got.H >= vp.H {
		t.Errorf("viewport height %d, want less than %d with full help", got.H, vp.H)
	}

	h.keys(runes("H"))
	if h.m.mode != modeHelp || h.m.helpPage == "" {
		t.Fatal("H did not open the help page")
	}
	h.keys(runes("j"))
	if focusLabel(h.m) != "" {
		t.Error("keys reached the tree on the help page")
	}
	h.keys(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.mode != modeBrowse {
		t.Error("escape did not leave the help page")
	}
}

// TestStyleReload verifies reloaded preferences reach the tree and the
// watcher is listened to again.
func TestStyleReload(t *testing.T) {
	h := newHarness(t, Options{}, "Fruit/Apple")

	p := testPrefs()
	p.SelectMode = style.SelectMulti
	h.send(StyleReloadedMsg{Prefs: p})
	if h.m.Tree().SelectMode() != style.SelectMulti {
		t.Error("prefs not applied")
	}
	if h.lastCmd == nil {
		t.Error("no listen command after reload")
	}
}

// TestStyleReloadKeepsOverrides verifies command line overrides survive a
// reload of the style file.
func TestStyleReloadKeepsOverrides(t *testing.T) {
	h := newHarness(t, Options{Adjust: func(p *style.Prefs) {
		p.SelectMode = style.SelectMulti
	}}, "Fruit/Apple", "Fruit/Banana")
	tr := h.m.Tree()
	multi := testPrefs()
	multi.SelectMode = style.SelectMulti
	tr.SetPrefs(multi)
	tr.Select(tr.FindItem("Fruit/Apple"), false)
	tr.Select(tr.FindItem("Fruit/Banana"), false)

	reloaded := testPrefs()
	reloaded.SelectMode = style.SelectSingle
	reloaded.ShowRoot = true
	h.send(StyleReloadedMsg{Prefs: reloaded})

	if tr.SelectMode() != style.SelectMulti {
		t.Errorf("select mode = %v, want the override kept", tr.SelectMode())
	}
	if !tr.Prefs().ShowRoot {
		t.Error("reloaded setting without an override was not applied")
	}
	if n := len(tr.SelectedItems()); n != 2 {
		t.Errorf("%d items selected after reload, want 2", n)
	}
}

// TestQuitSavesState verifies the open state is written on quit and
// restored by the next model.
func TestQuitSavesState(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state", "tree.json")
	h := newHarness(t, Options{StatePath: state}, "Fruit/Apple", "Veg/Carrot")
	h.m.Tree().Close(h.m.Tree().FindItem("Fruit"), false)

	h.keys(runes("q"))
	if h.lastCmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := h.lastCmd().(tea.QuitMsg); !ok {
		t.Error("quit command does not quit")
	}

	next := newHarness(t, Options{StatePath: state}, "Fruit/Apple", "Veg/Carrot")
	if closed, _ := next.m.Tree().IsClosed("Fruit"); !closed {
		t.Error("Fruit not restored closed")
	}
	if open, _ := next.m.Tree().IsOpen("Veg"); !open {
		t.Error("Veg not restored open")
	}
}

// TestView verifies the frame shows the title, the tree and the footer.
func TestView(t *testing.T) {
	tr := tree.New(testPrefs())
	m := NewModel(tr, Options{Title: "fruit", Renderer: lipgloss.NewRenderer(io.Discard)})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	h := newHarness(t, Options{Title: "fruit"})
	if !strings.Contains(h.m.View(), "Empty tree") {
		t.Error("empty tree hint missing")
	}

	h = newHarness(t, Options{Title: "fruit"}, "Fruit/Apple", "Fruit/Banana")
	view := h.m.View()
	for _, want := range []string{"fruit", "- Fruit", "├─── Apple", "└─── Banana", "0 selected", "↑/k up"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := lipgloss.Height(view); got != 12 {
		t.Errorf("view height = %d, want 12", got)
	}
}
