package draw

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color. The zero value is "unset", which callers
// use to mean "inherit" (for example a node background that falls back to
// the tree background).
type Color struct {
	R, G, B uint8
	set     bool
}

// RGB returns a set color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// ParseColor parses "#rrggbb" or "#rgb". The empty string yields the unset
// color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// IsSet reports whether the color was explicitly given.
func (c Color) IsSet() bool { return c.set }

// Or returns c if set, otherwise fallback.
func (c Color) Or(fallback Color) Color {
	if c.set {
		return c
	}
	return fallback
}

// Hex formats the color as "#rrggbb", or "" when unset.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements image/color.Color. Unset colors are fully transparent.
func (c Color) RGBA() (r, g, b, a uint32) {
	if !c.set {
		return 0, 0, 0, 0
	}
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Font describes a label font. Size is in surface units; surfaces that
// cannot scale text (Canvas) ignore it. The zero Font means "inherit".
type Font struct {
	Face   string
	Size   int
	Bold   bool
	Italic bool
}

// IsZero reports whether the font is unset.
func (f Font) IsZero() bool { return f == Font{} }

// Or returns f unless it is the zero Font.
func (f Font) Or(fallback Font) Font {
	if f.IsZero() {
		return fallback
	}
	return f
}

// Icon is a small glyph drawn at a fixed size. Terminal surfaces draw the
// glyph text; raster and vector surfaces draw it centred in a W x H box.
// A zero W or H is measured from the glyph.
type Icon struct {
	Glyph string
	W, H  int
	Color Color
}

// LineStyle selects how DrawLine and DrawRect stroke.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDotted
)
