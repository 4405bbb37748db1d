package tree

import (
	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/style"
)

// drawCtx carries the state of one layout pass.
type drawCtx struct {
	s      draw.Surface
	p      *style.Prefs
	focus  *Node
	clip   draw.Rect
	right  int
	render bool
	lines  bool
	pass   uint64
	xmax   int
	// showFocus is set when the focus rectangle should be drawn.
	showFocus bool
}

func (c *drawCtx) lineStyle() draw.LineStyle {
	if c.p.ConnectorStyle == style.ConnectorDotted {
		return draw.LineDotted
	}
	return draw.LineSolid
}

func (c *drawCtx) connectorPen() {
	c.s.SetColor(c.p.ConnectorColor)
	c.s.SetLineStyle(c.lineStyle(), 1)
}

func (c *drawCtx) vline(x, y1, y2 int) {
	if y2 < y1 || y2 < c.clip.Y || y1 >= c.clip.Bottom() {
		return
	}
	// Keep one cell past each clip edge so the visible ends still join.
	y1 = max(y1, c.clip.Y-1)
	y2 = min(y2, c.clip.Bottom())
	c.s.DrawLine(x, y1, x, y2)
}

func (c *drawCtx) hline(x1, x2, y int) {
	if x2 < x1 {
		return
	}
	c.s.DrawLine(x1, y, x2, y)
}

func hasIcon(ic draw.Icon) bool { return ic.Glyph != "" || ic.W > 0 }

func (n *Node) effOpenIcon(p *style.Prefs) draw.Icon {
	if n.openIcon != nil {
		return *n.openIcon
	}
	return p.OpenIcon
}

func (n *Node) effCloseIcon(p *style.Prefs) draw.Icon {
	if n.closeIcon != nil {
		return *n.closeIcon
	}
	return p.CloseIcon
}

func (n *Node) effUserIcon(p *style.Prefs) draw.Icon {
	if n.userIcon != nil {
		return *n.userIcon
	}
	return p.UserIcon
}

// collapseSize is the box reserved for the collapse icon. Leaves reserve
// it too so that labels of siblings line up.
func (n *Node) collapseSize(c *drawCtx) (w, h int) {
	if !c.p.ShowCollapse {
		return 0, 0
	}
	ow, oh := c.s.IconSize(n.effOpenIcon(c.p))
	cw, ch := c.s.IconSize(n.effCloseIcon(c.p))
	return max(ow, cw), max(oh, ch)
}

// stemX is the column of the vertical connector that links n's children.
func (n *Node) stemX(c *drawCtx, x int) int {
	w, _ := n.collapseSize(c)
	return x + w/2
}

// draw lays out n with its left edge at x and top at y and, when the
// pass renders, paints the rows that intersect the viewport. px is the
// stem column of the parent (negative for the displayed root). noTop
// suppresses the stub above the row; the first child of a hidden root
// starts its connector at its own row. It returns the y below n's block.
func (n *Node) draw(c *drawCtx, x, y, px int, noTop, last bool) int {
	p := c.p
	n.pass = c.pass

	iconW, iconH := n.collapseSize(c)
	ui := n.effUserIcon(p)
	uw, uh := 0, 0
	if hasIcon(ui) {
		uw, uh = c.s.IconSize(ui)
	}
	font := n.font.Or(p.LabelFont)
	lw, lh := draw.Measure(c.s, font, n.label)

	wh := 0
	if n.widget != nil && p.ItemDrawMode&style.DrawHeightFromWidget != 0 {
		wh = n.widget.PreferredHeight()
	}
	h := max(max(lh, iconH), max(uh, wh)) + p.LineSpacing
	h = max(h, 1)

	n.row = draw.R(x, y, max(c.right-x, 0), h)
	n.collapse = draw.R(x, y+(h-iconH)/2, iconW, iconH)

	ux := x + iconW
	lx := ux
	if uw > 0 {
		ux += p.UserIconMarginLeft
		lx = ux + uw
	}
	lx += p.LabelMarginLeft

	showLabel := true
	var wr draw.Rect
	if n.widget != nil {
		ww := n.widget.Bounds().W
		if p.ItemDrawMode&style.DrawLabelAndWidget != 0 {
			wx := lx + lw + p.WidgetMarginLeft
			if ww <= 0 {
				ww = max(c.right-wx, 1)
			}
			wr = draw.R(wx, y, ww, h)
		} else {
			showLabel = false
			if ww <= 0 {
				ww = max(c.right-lx, 1)
			}
			wr = draw.R(lx, y, ww, h)
		}
		n.widget.SetBounds(wr)
	}
	if showLabel {
		n.labelBox = draw.R(lx, y, lw, h)
	} else {
		n.labelBox = wr
	}
	c.xmax = max(c.xmax, n.labelBox.Right(), wr.Right())

	cx, hy := x+iconW/2, y+h/2
	openKids := n.IsOpen() && n.hasVisibleChildren()
	iconShown := p.ShowCollapse && n.HasChildren()

	if c.render && n.row.OverlapsY(c.clip) {
		if c.lines {
			c.connectorPen()
			if px >= 0 {
				hEnd := x - 1
				if !n.HasChildren() {
					hEnd = x + iconW - 1
				}
				c.hline(px, hEnd, hy)
				if !noTop {
					c.vline(px, y, hy)
				}
			}
			if openKids {
				start := hy
				if iconShown {
					start = max(hy, n.collapse.Bottom()-1)
				}
				c.vline(cx, start, y+h)
			}
		}
		n.paintRow(c, font, lw, lh, ux, uw, uh, showLabel, wr)
	}

	yEnd := y + h
	if openKids {
		yEnd = n.drawChildren(c, x+p.ConnectorWidth, yEnd, cx, false)
		yEnd += p.OpenChildMarginBottom
	}
	if !last && px >= 0 && c.render && c.lines {
		c.connectorPen()
		c.vline(px, hy, yEnd)
	}
	return yEnd
}

// drawChildren lays out the visible children of n from y and returns the
// y below the last one.
func (n *Node) drawChildren(c *drawCtx, x, y, px int, synthetic bool) int {
	lastVis := -1
	for i, ch := range n.children {
		if ch.IsVisible() {
			lastVis = i
		}
	}
	first := true
	for i, ch := range n.children {
		if !ch.IsVisible() {
			continue
		}
		y = ch.draw(c, x, y, px, synthetic && first, i == lastVis)
		first = false
	}
	return y
}

// paintRow draws the icons, label (or widget) and focus of one row.
func (n *Node) paintRow(c *drawCtx, font draw.Font, lw, lh, ux, uw, uh int, showLabel bool, wr draw.Rect) {
	p, s := c.p, c.s
	h := n.row.H
	y := n.row.Y

	fg := n.fg.Or(p.LabelFG)
	if !n.IsActive() {
		fg = p.InactiveFG.Or(fg)
	}

	if p.ShowCollapse && n.HasChildren() {
		icon := n.effCloseIcon(p)
		if n.IsOpen() {
			icon = n.effOpenIcon(p)
		}
		s.SetColor(fg)
		s.DrawIcon(icon, n.collapse.X, n.collapse.Y)
	}
	if uw > 0 {
		s.SetColor(fg)
		s.DrawIcon(n.effUserIcon(p), ux, y+(h-uh)/2)
	}

	hl := draw.R(n.labelBox.X, y, max(n.row.Right()-n.labelBox.X, 0), h)
	selected := n.IsSelected()
	switch {
	case selected && p.SelectBox == style.SelectBoxFill:
		s.SetColor(p.SelectionBG)
		s.FillRect(hl)
		fg = p.SelectionFG.Or(fg)
	case selected && p.SelectBox == style.SelectBoxFrame:
		s.SetColor(p.SelectionBG)
		s.SetLineStyle(draw.LineSolid, 1)
		s.DrawRect(n.labelBox)
	default:
		if bg := n.bg.Or(p.LabelBG); bg.IsSet() {
			s.SetColor(bg)
			s.FillRect(n.labelBox)
		}
	}

	if showLabel && n.label != "" {
		s.SetFont(font)
		s.SetColor(fg)
		s.DrawText(n.label, n.labelBox.X, y+(h-lh)/2)
	}
	if n.widget != nil && n.widget.Visible() {
		s.PushClip(wr)
		n.widget.Draw(s)
		s.PopClip()
	}

	if c.showFocus && n == c.focus {
		box := n.labelBox
		if box.W == 0 {
			box.W = max(lw, 1)
		}
		s.SetColor(p.FocusColor)
		s.SetLineStyle(draw.LineDotted, 1)
		s.DrawRect(box)
	}
}

// layout lays out every visible item, records the content extent and
// clamps the scroll offset. When render is set the clamped layout is
// painted onto s.
func (t *Tree) layout(s draw.Surface, render bool) {
	t.surface = s
	t.runPass(s, false)
	if clamped := min(max(t.scrollY, 0), t.ScrollMax()); clamped != t.scrollY {
		t.scrollY = clamped
		if !render {
			t.runPass(s, false)
		}
	}
	if render {
		t.runPass(s, true)
	}
}

func (t *Tree) runPass(s draw.Surface, render bool) {
	t.pass++
	p := t.prefs
	vp := t.viewport
	c := &drawCtx{
		s:         s,
		p:         p,
		focus:     t.ItemFocus(),
		clip:      vp,
		right:     vp.Right(),
		render:    render,
		lines:     p.ConnectorStyle != style.ConnectorNone,
		pass:      t.pass,
		xmax:      vp.X,
		showFocus: p.VisibleFocus && t.focused,
	}
	if render {
		s.PushClip(vp)
		defer s.PopClip()
		if p.Background.IsSet() {
			s.SetColor(p.Background)
			s.FillRect(vp)
		}
	}

	top := vp.Y - t.scrollY
	x := vp.X + p.MarginLeft
	y := top + p.MarginTop
	if p.ShowRoot {
		y = t.root.draw(c, x, y, -1, false, true)
	} else {
		// The hidden root takes no space; its children hang from a
		// connector that starts at the first child's row.
		t.root.pass = c.pass
		t.root.row = draw.Rect{X: x, Y: y}
		t.root.collapse = draw.Rect{X: x, Y: y}
		t.root.labelBox = draw.Rect{X: x, Y: y}
		if t.root.IsOpen() {
			y = t.root.drawChildren(c, x+p.ConnectorWidth, y, t.root.stemX(c, x), true)
		}
	}
	y += p.MarginBottom

	t.contentH = y - top
	t.contentW = c.xmax - vp.X
	t.dirty = false
}

// Layout computes the geometry of every visible item using s for text
// and icon metrics, without drawing.
func (t *Tree) Layout(s draw.Surface) {
	t.layout(s, false)
}

// Draw lays out the tree and paints the part inside the viewport onto s.
func (t *Tree) Draw(s draw.Surface) {
	t.layout(s, true)
	t.damaged = false
}

// ensureLayout refreshes stale geometry using the last surface drawn on.
func (t *Tree) ensureLayout() {
	if t.dirty && t.surface != nil {
		t.layout(t.surface, false)
	}
}

// laidOut reports whether n has geometry from the current layout.
func (t *Tree) laidOut(n *Node) bool {
	return n.pass == t.pass && !t.dirty && n.displayable(t.prefs.ShowRoot)
}

// ContentSize returns the extent of the laid out content.
func (t *Tree) ContentSize() (w, h int) {
	return t.contentW, t.contentH
}
