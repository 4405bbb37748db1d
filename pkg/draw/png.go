package draw

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// PNG is a raster Surface backed by a gg context. Text uses the 7x13
// bitmap face regardless of the requested font size; bold and italic are
// ignored.
type PNG struct {
	dc   *gg.Context
	face font.Face

	color Color
	font  Font
	style LineStyle
	width int
	clip  clipStack
}

// NewPNG returns a w x h pixel surface cleared to transparent.
func NewPNG(w, h int) *PNG {
	dc := gg.NewContext(max(w, 1), max(h, 1))
	face := basicfont.Face7x13
	dc.SetFontFace(face)
	p := &PNG{dc: dc, face: face, width: 1}
	p.dc.SetLineWidth(1)
	return p
}

func (p *PNG) SetColor(c Color) {
	p.color = c
	p.dc.SetColor(c)
}

func (p *PNG) SetFont(f Font) { p.font = f }

func (p *PNG) SetLineStyle(s LineStyle, width int) {
	p.style = s
	p.width = max(width, 1)
	p.dc.SetLineWidth(float64(p.width))
	if s == LineDotted {
		p.dc.SetDash(1, 2)
	} else {
		p.dc.SetDash()
	}
}

func (p *PNG) DrawRect(r Rect) {
	if r.Empty() {
		return
	}
	p.dc.DrawRectangle(float64(r.X)+0.5, float64(r.Y)+0.5, float64(r.W-1), float64(r.H-1))
	p.dc.Stroke()
}

func (p *PNG) FillRect(r Rect) {
	if r.Empty() {
		return
	}
	p.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	p.dc.Fill()
}

func (p *PNG) DrawLine(x1, y1, x2, y2 int) {
	p.dc.DrawLine(float64(x1)+0.5, float64(y1)+0.5, float64(x2)+0.5, float64(y2)+0.5)
	p.dc.Stroke()
}

func (p *PNG) ascent() int {
	return p.face.Metrics().Ascent.Ceil()
}

func (p *PNG) DrawText(s string, x, y int) {
	p.dc.DrawString(s, float64(x), float64(y+p.ascent()))
}

func (p *PNG) MeasureText(s string) (w, h int) {
	fw, _ := p.dc.MeasureString(s)
	return int(fw + 0.5), p.face.Metrics().Height.Ceil()
}

func (p *PNG) IconSize(ic Icon) (w, h int) {
	if ic.Glyph == "" && ic.W == 0 {
		return 0, 0
	}
	tw, th := p.MeasureText(ic.Glyph)
	w, h = ic.W, ic.H
	if w == 0 {
		w = tw
	}
	if h == 0 {
		h = th
	}
	return w, h
}

// DrawIcon centres the glyph in the icon box.
func (p *PNG) DrawIcon(ic Icon, x, y int) {
	w, h := p.IconSize(ic)
	tw, th := p.MeasureText(ic.Glyph)
	saved := p.color
	p.SetColor(ic.Color.Or(saved))
	p.DrawText(ic.Glyph, x+(w-tw)/2, y+(h-th)/2)
	p.SetColor(saved)
}

func (p *PNG) PushClip(r Rect) {
	p.clip.push(r)
	p.applyClip()
}

func (p *PNG) PopClip() {
	p.clip.pop()
	p.applyClip()
}

func (p *PNG) applyClip() {
	p.dc.ResetClip()
	if r, ok := p.clip.top(); ok {
		p.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		p.dc.Clip()
	}
}

// Image returns the rendered image.
func (p *PNG) Image() image.Image { return p.dc.Image() }

// Encode writes the image as PNG.
func (p *PNG) Encode(w io.Writer) error {
	if err := png.Encode(w, p.dc.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
