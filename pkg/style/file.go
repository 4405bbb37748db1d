package style

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/treekit/pkg/draw"
)

// File is the on-disk form of Prefs (.tk/style.yaml). Every field is
// optional; unset fields keep the value of the preset named by Preset.
//
//	preset: cell
//	label:
//	  fg: "#d0d0d0"
//	  bold: true
//	connector:
//	  style: dotted
//	  width: 3
//	icons:
//	  open: "▾"
//	  closed: "▸"
//	selection:
//	  mode: multi
//	sort: ascending
//	show_root: false
type File struct {
	Preset string `yaml:"preset,omitempty"`

	Label      *LabelFile     `yaml:"label,omitempty"`
	Background *string        `yaml:"background,omitempty"`
	Inactive   *string        `yaml:"inactive,omitempty"`
	Connector  *ConnectorFile `yaml:"connector,omitempty"`
	Selection  *SelectionFile `yaml:"selection,omitempty"`
	Margins    *MarginsFile   `yaml:"margins,omitempty"`
	Icons      *IconsFile     `yaml:"icons,omitempty"`

	Sort         *string `yaml:"sort,omitempty"`
	ShowRoot     *bool   `yaml:"show_root,omitempty"`
	ShowCollapse *bool   `yaml:"show_collapse,omitempty"`
	VisibleFocus *bool   `yaml:"visible_focus,omitempty"`
	WidgetMode   *string `yaml:"widget_mode,omitempty"` // replace, inline, inline-tall
}

// LabelFile configures the default label font and colors.
type LabelFile struct {
	Face   *string `yaml:"face,omitempty"`
	Size   *int    `yaml:"size,omitempty"`
	Bold   *bool   `yaml:"bold,omitempty"`
	Italic *bool   `yaml:"italic,omitempty"`
	FG     *string `yaml:"fg,omitempty"`
	BG     *string `yaml:"bg,omitempty"`
}

// ConnectorFile configures connector lines.
type ConnectorFile struct {
	Style *string `yaml:"style,omitempty"`
	Width *int    `yaml:"width,omitempty"`
	Color *string `yaml:"color,omitempty"`
}

// SelectionFile configures selection policy and highlight.
type SelectionFile struct {
	Mode     *string `yaml:"mode,omitempty"`
	Box      *string `yaml:"box,omitempty"`
	Reselect *string `yaml:"reselect,omitempty"`
	FG       *string `yaml:"fg,omitempty"`
	BG       *string `yaml:"bg,omitempty"`
	Focus    *string `yaml:"focus,omitempty"`
}

// MarginsFile configures spacing.
type MarginsFile struct {
	Left            *int `yaml:"left,omitempty"`
	Top             *int `yaml:"top,omitempty"`
	Bottom          *int `yaml:"bottom,omitempty"`
	OpenChildBottom *int `yaml:"open_child_bottom,omitempty"`
	UserIconLeft    *int `yaml:"user_icon_left,omitempty"`
	LabelLeft       *int `yaml:"label_left,omitempty"`
	WidgetLeft      *int `yaml:"widget_left,omitempty"`
	LineSpacing     *int `yaml:"line_spacing,omitempty"`
}

// IconsFile configures icon glyphs. An empty string removes the icon.
type IconsFile struct {
	Open   *string `yaml:"open,omitempty"`
	Closed *string `yaml:"closed,omitempty"`
	User   *string `yaml:"user,omitempty"`
	Width  *int    `yaml:"width,omitempty"`
	Height *int    `yaml:"height,omitempty"`
}

// LoadFile reads a style file from disk.
func LoadFile(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("style %s: %w", path, err)
	}
	return p, nil
}

// Load reads a style document from r.
func Load(r io.Reader) (*Prefs, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}
	return Parse(data)
}

// Parse decodes a style document. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Parse(data []byte) (*Prefs, error) {
	var f File
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse style: %w", err)
		}
	}
	base, err := Preset(f.Preset)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(base); err != nil {
		return nil, err
	}
	return base, nil
}

// Apply overlays the fields set in f onto p.
func (f *File) Apply(p *Prefs) error {
	var errs []error
	color := func(dst *draw.Color, s *string) {
		if s == nil {
			return
		}
		c, err := draw.ParseColor(*s)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = c
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	if l := f.Label; l != nil {
		if l.Face != nil {
			p.LabelFont.Face = *l.Face
		}
		setInt(&p.LabelFont.Size, l.Size)
		setBool(&p.LabelFont.Bold, l.Bold)
		setBool(&p.LabelFont.Italic, l.Italic)
		color(&p.LabelFG, l.FG)
		color(&p.LabelBG, l.BG)
	}
	color(&p.Background, f.Background)
	color(&p.InactiveFG, f.Inactive)

	if c := f.Connector; c != nil {
		if c.Style != nil {
			st, err := ParseConnectorStyle(*c.Style)
			if err != nil {
				errs = append(errs, err)
			} else {
				p.ConnectorStyle = st
			}
		}
		setInt(&p.ConnectorWidth, c.Width)
		color(&p.ConnectorColor, c.Color)
	}

	if s := f.Selection; s != nil {
		if s.Mode != nil {
			m, err := ParseSelectMode(*s.Mode)
			if err != nil {
				errs = append(errs, err)
			} else {
				p.SelectMode = m
			}
		}
		if s.Box != nil {
			b, err := lookup("select box", selectBoxNames, *s.Box)
			if err != nil {
				errs = append(errs, err)
			} else {
				p.SelectBox = b
			}
		}
		if s.Reselect != nil {
			r, err := lookup("reselect mode", reselectNames, *s.Reselect)
			if err != nil {
				errs = append(errs, err)
			} else {
				p.ReselectMode = r
			}
		}
		color(&p.SelectionFG, s.FG)
		color(&p.SelectionBG, s.BG)
		color(&p.FocusColor, s.Focus)
	}

	if m := f.Margins; m != nil {
		setInt(&p.MarginLeft, m.Left)
		setInt(&p.MarginTop, m.Top)
		setInt(&p.MarginBottom, m.Bottom)
		setInt(&p.OpenChildMarginBottom, m.OpenChildBottom)
		setInt(&p.UserIconMarginLeft, m.UserIconLeft)
		setInt(&p.LabelMarginLeft, m.LabelLeft)
		setInt(&p.WidgetMarginLeft, m.WidgetLeft)
		setInt(&p.LineSpacing, m.LineSpacing)
	}

	if ic := f.Icons; ic != nil {
		if ic.Open != nil {
			p.OpenIcon.Glyph = *ic.Open
		}
		if ic.Closed != nil {
			p.CloseIcon.Glyph = *ic.Closed
		}
		if ic.User != nil {
			p.UserIcon.Glyph = *ic.User
		}
		for _, icon := range []*draw.Icon{&p.OpenIcon, &p.CloseIcon, &p.UserIcon} {
			if icon.Glyph == "" {
				continue
			}
			setInt(&icon.W, ic.Width)
			setInt(&icon.H, ic.Height)
		}
	}

	if f.Sort != nil {
		o, err := ParseSortOrder(*f.Sort)
		if err != nil {
			errs = append(errs, err)
		} else {
			p.SortOrder = o
		}
	}
	setBool(&p.ShowRoot, f.ShowRoot)
	setBool(&p.ShowCollapse, f.ShowCollapse)
	setBool(&p.VisibleFocus, f.VisibleFocus)

	if f.WidgetMode != nil {
		switch *f.WidgetMode {
		case "replace":
			p.ItemDrawMode = DrawDefault
		case "inline":
			p.ItemDrawMode = DrawLabelAndWidget
		case "inline-tall":
			p.ItemDrawMode = DrawLabelAndWidget | DrawHeightFromWidget
		default:
			errs = append(errs, fmt.Errorf("unknown widget mode %q", *f.WidgetMode))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid style: %w", errors.Join(errs...))
	}
	return nil
}
