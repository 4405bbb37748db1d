package draw

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
)

// DefaultSVGFontSize is used when the current font has no size.
const DefaultSVGFontSize = 12

// SVG is a vector Surface that streams markup through svgo. Text is
// measured as monospace, six tenths of the font size per column.
//
// Clipping is applied numerically: fills and axis-aligned lines are cut
// to the clip rectangle, text outside it is dropped.
type SVG struct {
	canvas *svg.SVG

	color Color
	font  Font
	style LineStyle
	width int
	clip  clipStack
}

// NewSVG starts a w x h document on out. Call Close to finish it.
func NewSVG(out io.Writer, w, h int) *SVG {
	s := &SVG{canvas: svg.New(out), width: 1}
	s.canvas.Start(max(w, 1), max(h, 1))
	return s
}

// Close writes the closing tag.
func (s *SVG) Close() { s.canvas.End() }

func (s *SVG) SetColor(c Color) { s.color = c }
func (s *SVG) SetFont(f Font)   { s.font = f }

func (s *SVG) SetLineStyle(st LineStyle, width int) {
	s.style = st
	s.width = max(width, 1)
}

func (s *SVG) fontSize() int {
	if s.font.Size > 0 {
		return s.font.Size
	}
	return DefaultSVGFontSize
}

func (s *SVG) stroke() string {
	st := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", s.hex(), s.width)
	if s.style == LineDotted {
		st += ";stroke-dasharray:1,2"
	}
	return st
}

func (s *SVG) hex() string {
	if h := s.color.Hex(); h != "" {
		return h
	}
	return "#000000"
}

func (s *SVG) clipped(r Rect) (Rect, bool) {
	if c, ok := s.clip.top(); ok {
		r = r.Intersect(c)
	}
	return r, !r.Empty()
}

func (s *SVG) DrawRect(r Rect) {
	if c, ok := s.clip.top(); ok && !c.Overlaps(r) {
		return
	}
	s.canvas.Rect(r.X, r.Y, r.W, r.H, s.stroke())
}

func (s *SVG) FillRect(r Rect) {
	r, ok := s.clipped(r)
	if !ok {
		return
	}
	s.canvas.Rect(r.X, r.Y, r.W, r.H, "fill:"+s.hex()+";stroke:none")
}

func (s *SVG) DrawLine(x1, y1, x2, y2 int) {
	if c, ok := s.clip.top(); ok {
		switch {
		case x1 == x2:
			if x1 < c.X || x1 >= c.Right() {
				return
			}
			y1, y2 = max(min(y1, y2), c.Y), min(max(y1, y2), c.Bottom()-1)
			if y1 > y2 {
				return
			}
		case y1 == y2:
			if y1 < c.Y || y1 >= c.Bottom() {
				return
			}
			x1, x2 = max(min(x1, x2), c.X), min(max(x1, x2), c.Right()-1)
			if x1 > x2 {
				return
			}
		}
	}
	s.canvas.Line(x1, y1, x2, y2, s.stroke())
}

func (s *SVG) DrawText(text string, x, y int) {
	w, h := s.MeasureText(text)
	if c, ok := s.clip.top(); ok && !c.Overlaps(R(x, y, w, h)) {
		return
	}
	st := []string{
		"font-family:monospace",
		fmt.Sprintf("font-size:%dpx", s.fontSize()),
		"fill:" + s.hex(),
	}
	if s.font.Bold {
		st = append(st, "font-weight:bold")
	}
	if s.font.Italic {
		st = append(st, "font-style:italic")
	}
	s.canvas.Text(x, y+s.fontSize(), text, strings.Join(st, ";"))
}

func (s *SVG) MeasureText(text string) (w, h int) {
	size := s.fontSize()
	return runewidth.StringWidth(text) * size * 6 / 10, size + size/3
}

func (s *SVG) IconSize(ic Icon) (w, h int) {
	if ic.Glyph == "" && ic.W == 0 {
		return 0, 0
	}
	tw, th := s.MeasureText(ic.Glyph)
	w, h = ic.W, ic.H
	if w == 0 {
		w = tw
	}
	if h == 0 {
		h = th
	}
	return w, h
}

func (s *SVG) DrawIcon(ic Icon, x, y int) {
	w, h := s.IconSize(ic)
	tw, th := s.MeasureText(ic.Glyph)
	saved := s.color
	s.color = ic.Color.Or(saved)
	s.DrawText(ic.Glyph, x+(w-tw)/2, y+(h-th)/2)
	s.color = saved
}

func (s *SVG) PushClip(r Rect) { s.clip.push(r) }
func (s *SVG) PopClip()        { s.clip.pop() }
