// Package style holds the shared visual preferences of a tree: fonts,
// colors, icons, margins, connector style, selection and sort policy.
//
// A Prefs value is shared by every node of a tree and may be shared by
// several trees. Nodes override individual fields (font, colors, icons)
// on their own; everything else is read from Prefs at layout time.
package style

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/treekit/pkg/draw"
)

// ConnectorStyle selects how parent/child connector lines are stroked.
type ConnectorStyle int

const (
	ConnectorNone ConnectorStyle = iota
	ConnectorDotted
	ConnectorSolid
)

// SelectMode governs how pointer and keyboard input change selection.
type SelectMode int

const (
	SelectNone SelectMode = iota
	SelectSingle
	SelectMulti
)

// SortOrder controls where Add places a new child.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// ReselectMode controls whether selecting an already selected item
// reports a reselection.
type ReselectMode int

const (
	SelectableOnce ReselectMode = iota
	SelectableAlways
)

// ItemDrawMode controls how an item's embedded widget shares its row
// with the label.
type ItemDrawMode int

const (
	// DrawDefault draws the widget in place of the label.
	DrawDefault ItemDrawMode = 0
	// DrawLabelAndWidget draws the label followed by the widget.
	DrawLabelAndWidget ItemDrawMode = 1 << (iota - 1)
	// DrawHeightFromWidget lets the widget's preferred height grow the row.
	DrawHeightFromWidget
)

// SelectBox is how selected rows are highlighted.
type SelectBox int

const (
	SelectBoxFill SelectBox = iota
	SelectBoxFrame
	SelectBoxNone
)

// Prefs are the visual preferences of a tree. Units are surface units:
// cells for terminal canvases, pixels for raster and vector output.
type Prefs struct {
	LabelFont draw.Font
	LabelFG   draw.Color
	// LabelBG is the default label background; unset means the tree
	// background shows through.
	LabelBG    draw.Color
	Background draw.Color
	InactiveFG draw.Color

	ConnectorColor draw.Color
	ConnectorStyle ConnectorStyle
	ConnectorWidth int

	SelectionFG draw.Color
	SelectionBG draw.Color
	SelectBox   SelectBox
	FocusColor  draw.Color

	MarginLeft            int
	MarginTop             int
	MarginBottom          int
	OpenChildMarginBottom int
	UserIconMarginLeft    int
	LabelMarginLeft       int
	WidgetMarginLeft      int
	LineSpacing           int

	OpenIcon  draw.Icon
	CloseIcon draw.Icon
	UserIcon  draw.Icon

	ShowCollapse bool
	ShowRoot     bool
	VisibleFocus bool

	SelectMode   SelectMode
	SortOrder    SortOrder
	ReselectMode ReselectMode
	ItemDrawMode ItemDrawMode
}

// Cell returns preferences sized for terminal cells.
func Cell() *Prefs {
	return &Prefs{
		LabelFont:      draw.Font{Face: "mono", Size: 1},
		LabelFG:        draw.RGB(0xd0, 0xd0, 0xd0),
		InactiveFG:     draw.RGB(0x6c, 0x6c, 0x6c),
		ConnectorColor: draw.RGB(0x6c, 0x6c, 0x6c),
		ConnectorStyle: ConnectorSolid,
		ConnectorWidth: 3,
		SelectionFG:    draw.RGB(0x1c, 0x1c, 0x1c),
		SelectionBG:    draw.RGB(0x5f, 0xaf, 0xd7),
		FocusColor:     draw.RGB(0xff, 0xd7, 0x00),

		LabelMarginLeft:  1,
		WidgetMarginLeft: 1,

		OpenIcon:  draw.Icon{Glyph: "▾"},
		CloseIcon: draw.Icon{Glyph: "▸"},

		ShowCollapse: true,
		ShowRoot:     true,
		VisibleFocus: true,
		SelectMode:   SelectSingle,
	}
}

// Pixel returns preferences sized for raster and vector output.
func Pixel() *Prefs {
	p := Cell()
	p.LabelFont = draw.Font{Face: "sans", Size: 12}
	p.LabelFG = draw.RGB(0, 0, 0)
	p.Background = draw.RGB(0xff, 0xff, 0xff)
	p.InactiveFG = draw.RGB(0x88, 0x88, 0x88)
	p.ConnectorColor = draw.RGB(0x88, 0x88, 0x88)
	p.ConnectorStyle = ConnectorDotted
	p.ConnectorWidth = 17
	p.SelectionFG = draw.RGB(0xff, 0xff, 0xff)
	p.SelectionBG = draw.RGB(0x31, 0x6a, 0xc5)
	p.FocusColor = draw.RGB(0, 0, 0)
	p.MarginLeft = 6
	p.MarginTop = 3
	p.MarginBottom = 3
	p.UserIconMarginLeft = 3
	p.LabelMarginLeft = 3
	p.WidgetMarginLeft = 3
	p.LineSpacing = 2
	p.OpenIcon = draw.Icon{Glyph: "-", W: 11, H: 11}
	p.CloseIcon = draw.Icon{Glyph: "+", W: 11, H: 11}
	return p
}

// Clone returns a copy that can be modified independently.
func (p *Prefs) Clone() *Prefs {
	c := *p
	return &c
}

// Preset returns the named preset, "cell" or "pixel".
func Preset(name string) (*Prefs, error) {
	switch strings.ToLower(name) {
	case "", "cell", "terminal":
		return Cell(), nil
	case "pixel", "png", "svg":
		return Pixel(), nil
	}
	return nil, fmt.Errorf("unknown style preset %q", name)
}

var connectorNames = map[string]ConnectorStyle{
	"none":   ConnectorNone,
	"dotted": ConnectorDotted,
	"solid":  ConnectorSolid,
}

var selectModeNames = map[string]SelectMode{
	"none":   SelectNone,
	"single": SelectSingle,
	"multi":  SelectMulti,
}

var sortOrderNames = map[string]SortOrder{
	"none":       SortNone,
	"ascending":  SortAscending,
	"descending": SortDescending,
}

var selectBoxNames = map[string]SelectBox{
	"fill":  SelectBoxFill,
	"frame": SelectBoxFrame,
	"none":  SelectBoxNone,
}

var reselectNames = map[string]ReselectMode{
	"once":   SelectableOnce,
	"always": SelectableAlways,
}

func lookup[T any](kind string, names map[string]T, s string) (T, error) {
	v, ok := names[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", kind, s)
	}
	return v, nil
}

// ParseSelectMode parses "none", "single" or "multi".
func ParseSelectMode(s string) (SelectMode, error) {
	return lookup("select mode", selectModeNames, s)
}

// ParseSortOrder parses "none", "ascending" or "descending".
func ParseSortOrder(s string) (SortOrder, error) {
	return lookup("sort order", sortOrderNames, s)
}

// ParseConnectorStyle parses "none", "dotted" or "solid".
func ParseConnectorStyle(s string) (ConnectorStyle, error) {
	return lookup("connector style", connectorNames, s)
}

func (m SelectMode) String() string {
	switch m {
	case SelectNone:
		return "none"
	case SelectSingle:
		return "single"
	case SelectMulti:
		return "multi"
	}
	return fmt.Sprintf("SelectMode(%d)", int(m))
}
