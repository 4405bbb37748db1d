package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// line direction bits stored per cell; joining bits pick the box glyph.
const (
	lineUp uint8 = 1 << iota
	lineDown
	lineLeft
	lineRight
)

var solidGlyphs = func() [16]rune {
	var g [16]rune
	g[0] = ' '
	g[lineUp], g[lineDown], g[lineUp|lineDown] = '│', '│', '│'
	g[lineLeft], g[lineRight], g[lineLeft|lineRight] = '─', '─', '─'
	g[lineUp|lineRight] = '└'
	g[lineDown|lineRight] = '┌'
	g[lineUp|lineLeft] = '┘'
	g[lineDown|lineLeft] = '┐'
	g[lineUp|lineDown|lineRight] = '├'
	g[lineUp|lineDown|lineLeft] = '┤'
	g[lineLeft|lineRight|lineDown] = '┬'
	g[lineLeft|lineRight|lineUp] = '┴'
	g[lineUp|lineDown|lineLeft|lineRight] = '┼'
	return g
}()

type cell struct {
	r      rune
	cont   bool // right half of a wide rune
	lines  uint8
	dotted bool

	fg, bg, lineFG Color

	bold, italic, underline bool
}

// Canvas is a Surface backed by a grid of terminal cells. One unit is one
// cell; text is always one row high. Lines drawn through the same cell
// join into box-drawing glyphs, so a vertical connector crossed by a
// horizontal one renders as "├".
type Canvas struct {
	w, h  int
	cells []cell

	color Color
	font  Font
	style LineStyle
	clip  clipStack
}

// NewCanvas returns a blank canvas of w x h cells.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	return &Canvas{w: w, h: h, cells: make([]cell, w*h)}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

func (c *Canvas) SetColor(col Color)              { c.color = col }
func (c *Canvas) SetFont(f Font)                  { c.font = f }
func (c *Canvas) SetLineStyle(s LineStyle, _ int) { c.style = s }
func (c *Canvas) PushClip(r Rect)                 { c.clip.push(r) }
func (c *Canvas) PopClip()                        { c.clip.pop() }

// at returns the cell at (x, y) if it is on the canvas and inside the clip.
func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	if r, ok := c.clip.top(); ok && !r.Contains(x, y) {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *Canvas) mark(x, y int, bits uint8) {
	if bits == 0 {
		return
	}
	if cl := c.at(x, y); cl != nil {
		cl.lines |= bits
		cl.dotted = c.style == LineDotted
		cl.lineFG = c.color
	}
}

// DrawLine joins cells between the endpoints. Diagonal lines are drawn as
// a vertical run followed by a horizontal one.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) {
	if x1 != x2 && y1 != y2 {
		c.DrawLine(x1, y1, x1, y2)
		c.DrawLine(x1, y2, x2, y2)
		return
	}
	if x1 == x2 {
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for y := y1; y <= y2; y++ {
			var bits uint8
			if y > y1 {
				bits |= lineUp
			}
			if y < y2 {
				bits |= lineDown
			}
			c.mark(x1, y, bits)
		}
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		var bits uint8
		if x > x1 {
			bits |= lineLeft
		}
		if x < x2 {
			bits |= lineRight
		}
		c.mark(x, y1, bits)
	}
}

// DrawRect outlines r. Rectangles less than two cells high cannot be
// outlined without overdrawing neighbouring rows, so they are underlined
// instead.
func (c *Canvas) DrawRect(r Rect) {
	if r.Empty() {
		return
	}
	if r.H < 2 || r.W < 2 {
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				if cl := c.at(x, y); cl != nil {
					cl.underline = true
				}
			}
		}
		return
	}
	x2, y2 := r.Right()-1, r.Bottom()-1
	c.DrawLine(r.X, r.Y, x2, r.Y)
	c.DrawLine(r.X, y2, x2, y2)
	c.DrawLine(r.X, r.Y, r.X, y2)
	c.DrawLine(x2, r.Y, x2, y2)
}

// FillRect paints the background of r and erases whatever was there.
func (c *Canvas) FillRect(r Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if cl := c.at(x, y); cl != nil {
				*cl = cell{bg: c.color}
			}
		}
	}
}

// DrawText writes s starting at (x, y). Wide runes take two cells.
func (c *Canvas) DrawText(s string, x, y int) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cl := c.at(x, y); cl != nil {
			cl.r = r
			cl.cont = false
			cl.fg = c.color
			cl.bold = c.font.Bold
			cl.italic = c.font.Italic
		}
		if w == 2 {
			if cl := c.at(x+1, y); cl != nil {
				cl.r = 0
				cl.cont = true
			}
		}
		x += w
	}
}

// DrawIcon writes the icon glyph in the icon's own color when it has one.
func (c *Canvas) DrawIcon(ic Icon, x, y int) {
	saved := c.color
	c.color = ic.Color.Or(saved)
	c.DrawText(ic.Glyph, x, y)
	c.color = saved
}

func (c *Canvas) MeasureText(s string) (w, h int) {
	return runewidth.StringWidth(s), 1
}

func (c *Canvas) IconSize(ic Icon) (w, h int) {
	if ic.Glyph == "" && ic.W == 0 {
		return 0, 0
	}
	w, h = ic.W, ic.H
	if w == 0 {
		w = runewidth.StringWidth(ic.Glyph)
	}
	if h == 0 {
		h = 1
	}
	return w, h
}

func (cl *cell) glyph() rune {
	if cl.r != 0 {
		return cl.r
	}
	if cl.lines != 0 {
		if cl.dotted {
			switch cl.lines {
			case lineUp, lineDown, lineUp | lineDown:
				return '┆'
			case lineLeft, lineRight, lineLeft | lineRight:
				return '┄'
			}
		}
		return solidGlyphs[cl.lines]
	}
	return ' '
}

// String returns the canvas as plain text, one line per row, with
// trailing spaces removed.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		var row strings.Builder
		for x := 0; x < c.w; x++ {
			cl := &c.cells[y*c.w+x]
			if cl.cont {
				continue
			}
			row.WriteRune(cl.glyph())
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type cellStyle struct {
	fg, bg                  Color
	bold, italic, underline bool
}

func (cl *cell) style() cellStyle {
	fg := cl.fg
	if cl.r == 0 && cl.lines != 0 {
		fg = cl.lineFG
	}
	return cellStyle{fg: fg, bg: cl.bg, bold: cl.bold, italic: cl.italic, underline: cl.underline}
}

func (s cellStyle) lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	st := r.NewStyle()
	if s.fg.IsSet() {
		st = st.Foreground(lipgloss.Color(s.fg.Hex()))
	}
	if s.bg.IsSet() {
		st = st.Background(lipgloss.Color(s.bg.Hex()))
	}
	return st.Bold(s.bold).Italic(s.italic).Underline(s.underline)
}

// Render returns the canvas with colors and attributes applied through
// the given lipgloss renderer. Runs of identically styled cells are
// rendered together.
func (c *Canvas) Render(r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		var (
			run     strings.Builder
			current cellStyle
			started bool
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == (cellStyle{}) {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(current.lipgloss(r).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := &c.cells[y*c.w+x]
			if cl.cont {
				continue
			}
			st := cl.style()
			if !started || st != current {
				flush()
				current = st
				started = true
			}
			run.WriteRune(cl.glyph())
		}
		flush()
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
