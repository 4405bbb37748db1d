// Package ui hosts a tree.Tree in a bubbletea program: keyboard and mouse
// input are translated into tree events and the tree is drawn onto a
// terminal canvas between a title bar and a status/help footer.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/style"
	"github.com/vanderheijden86/treekit/pkg/tree"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeHelp
)

// headerHeight is the number of rows above the tree.
const headerHeight = 1

// Options configure a Model. Zero values pick sensible defaults.
type Options struct {
	Title string
	// StatePath, when set, is where the open/closed state is loaded from
	// on start and saved to on quit.
	StatePath string
	// StylePath, when set, is watched and reloaded into the tree's
	// preferences on change.
	StylePath string
	// Adjust, when set, is applied to preferences reloaded from the style
	// file before they reach the tree.
	Adjust  func(*style.Prefs)
	Context context.Context

	Clipboard func(string) error
	Now       func() time.Time
	Renderer  *lipgloss.Renderer
}

// StyleReloadedMsg carries preferences reloaded from the style file.
type StyleReloadedMsg struct {
	Prefs *style.Prefs
}

type styleWatchErrMsg struct{ err error }

// status is shared between the model copies bubbletea passes around and
// the tree callback, which writes to it.
type status struct {
	text string
	warn bool
}

func (s *status) set(warn bool, format string, args ...any) {
	s.text = fmt.Sprintf(format, args...)
	s.warn = warn
}

// Model is the bubbletea model of the tree viewer.
type Model struct {
	tree  *tree.Tree
	opts  Options
	keys  KeyMap
	help  help.Model
	input textinput.Model
	theme Theme

	mode     mode
	helpPage string
	clicks   *clickTracker
	status   *status
	msgs     chan tea.Msg

	width  int
	height int
	ready  bool
}

// NewModel wraps t. The tree's callback is taken over to report changes
// in the status line.
func NewModel(t *tree.Tree, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "tk"
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Fruit/Apple"
	ti.Prompt = "add: "
	ti.CharLimit = 512

	m := Model{
		tree:   t,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		theme:  DefaultTheme(opts.Renderer),
		clicks: &clickTracker{},
		status: &status{},
		msgs:   make(chan tea.Msg, 8),
	}

	if opts.StatePath != "" {
		if err := t.LoadStateFile(opts.StatePath); err != nil {
			logging.Warn("ui", "tree state not loaded: %v", err)
		}
	}
	t.SetCallback(reportChange, m.status)
	t.Handle(tree.Event{Kind: tree.EventFocus})
	return m
}

func reportChange(t *tree.Tree, data any) {
	st := data.(*status)
	n := t.CallbackItem()
	if n == nil {
		return
	}
	path, err := t.ItemPathname(n)
	if err != nil {
		path = n.Label()
	}
	st.set(false, "%s %s", t.CallbackReason(), path)
}

// Tree returns the hosted tree.
func (m Model) Tree() *tree.Tree { return m.tree }

// Init starts the style watcher when a style file was given.
func (m Model) Init() tea.Cmd {
	if m.opts.StylePath == "" {
		return nil
	}
	return tea.Batch(m.startStyleWatch(), m.listen())
}

func (m Model) startStyleWatch() tea.Cmd {
	ctx, path, ch := m.opts.Context, m.opts.StylePath, m.msgs
	return func() tea.Msg {
		err := style.Watch(ctx, path, func(p *style.Prefs) {
			select {
			case ch <- StyleReloadedMsg{Prefs: p}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return styleWatchErrMsg{err}
		}
		return nil
	}
}

// listen waits for the next message pushed by a background goroutine.
func (m Model) listen() tea.Cmd {
	ch := m.msgs
	return func() tea.Msg { return <-ch }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		if m.mode == modeHelp {
			m.helpPage = renderHelpPage(m.width)
		}
		m.resize()
		return m, nil

	case StyleReloadedMsg:
		if m.opts.Adjust != nil {
			m.opts.Adjust(msg.Prefs)
		}
		m.tree.SetPrefs(msg.Prefs)
		m.status.set(false, "style reloaded")
		return m, m.listen()

	case styleWatchErrMsg:
		logging.Warn("ui", "style watch: %v", msg.err)
		m.status.set(true, "style not watched: %v", msg.err)
		return m, nil

	case tea.MouseMsg:
		if m.mode != modeBrowse {
			return m, nil
		}
		ev, ok := mouseEvent(msg, headerHeight)
		if !ok {
			return m, nil
		}
		if ev.Kind == tree.EventPush {
			ev.Clicks = m.clicks.press(ev.X, ev.Y, m.opts.Now())
		}
		m.tree.Handle(ev)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeHelp:
			if key.Matches(msg, m.keys.Esc, m.keys.Quit, m.keys.HelpPage) {
				m.mode = modeBrowse
			}
			return m, nil
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveState()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.HelpPage):
		m.mode = modeHelp
		m.helpPage = renderHelpPage(m.width)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if n := m.tree.ItemFocus(); n != nil {
			m.tree.OpenToggle(n, true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.removeFocused()
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		m.yankFocused()
		return m, nil
	}

	if ev, ok := keyEvent(msg, m.keys); ok {
		m.tree.Handle(ev)
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		n := m.tree.Add(path)
		if n == nil {
			m.status.set(true, "not added: %q is empty or exists", path)
			return m, nil
		}
		m.tree.SetItemFocus(n)
		m.tree.Display(n)
		m.status.set(false, "added %s", path)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) removeFocused() {
	n := m.tree.ItemFocus()
	if n == nil {
		m.status.set(true, "nothing focused")
		return
	}
	path, _ := m.tree.ItemPathname(n)
	next := n.NextSibling()
	if next == nil {
		next = m.tree.NextVisibleItem(n, -1)
	}
	if err := m.tree.Remove(n); err != nil {
		m.status.set(true, "remove %s: %v", path, err)
		return
	}
	m.tree.SetItemFocus(next)
	m.status.set(false, "removed %s", path)
}

func (m Model) yankFocused() {
	n := m.tree.ItemFocus()
	if n == nil {
		m.status.set(true, "nothing focused")
		return
	}
	path, err := m.tree.ItemPathname(n)
	if err != nil {
		m.status.set(true, "%v", err)
		return
	}
	if err := m.opts.Clipboard(path); err != nil {
		logging.Warn("ui", "clipboard: %v", err)
		m.status.set(true, "copy failed: %v", err)
		return
	}
	m.status.set(false, "copied %s", path)
}

func (m Model) saveState() {
	if m.opts.StatePath == "" {
		return
	}
	if err := m.tree.SaveStateFile(m.opts.StatePath); err != nil {
		logging.Warn("ui", "tree state not saved: %v", err)
	}
}

// resize fits the tree's viewport between header and footer and lays it
// out so that pointer events resolve before the first frame is drawn.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.help.Width = m.width
	m.input.Width = max(m.width-len(m.input.Prompt)-1, 10)
	h := max(m.height-headerHeight-lipgloss.Height(m.footer()), 1)
	w := max(m.width, 1)
	m.tree.SetViewport(draw.R(0, 0, w, h))
	m.tree.Layout(draw.NewCanvas(w, h))
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	header := m.theme.Bar.Width(m.width).MaxHeight(1).Render(m.theme.Title.Render(m.opts.Title))

	var body string
	switch {
	case m.mode == modeHelp:
		body = clipLines(m.helpPage, m.tree.Viewport().H)
	case m.tree.FirstVisibleItem() == nil:
		body = m.theme.Status.Render("Empty tree. Press a to add an item.")
	default:
		body = m.renderTree()
	}
	body = lipgloss.NewStyle().Height(m.tree.Viewport().H).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footer())
}

func (m Model) renderTree() string {
	vp := m.tree.Viewport()
	c := draw.NewCanvas(vp.W, vp.H)
	m.tree.Draw(c)
	return c.Render(m.theme.Renderer)
}

func (m Model) footer() string {
	var line string
	switch {
	case m.mode == modeAdd:
		line = m.theme.Prompt.Render(m.input.View())
	case m.status.warn:
		line = m.theme.Warn.Render(m.status.text)
	case m.status.text != "":
		line = m.theme.Status.Render(m.status.text)
	default:
		line = m.theme.Status.Render(fmt.Sprintf("%d selected", len(m.tree.SelectedItems())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.help.View(m.keys))
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
