package draw

// Surface is the set of primitives the tree layout engine draws with.
//
// All drawing is clipped to the intersection of the pushed clip
// rectangles. Text is positioned by the top-left corner of its box.
type Surface interface {
	SetColor(c Color)
	SetFont(f Font)
	SetLineStyle(s LineStyle, width int)

	DrawRect(r Rect)
	FillRect(r Rect)
	// DrawLine strokes from (x1,y1) to (x2,y2), both ends inclusive.
	DrawLine(x1, y1, x2, y2 int)
	DrawText(s string, x, y int)
	DrawIcon(ic Icon, x, y int)

	// MeasureText returns the extent of s in the current font.
	MeasureText(s string) (w, h int)
	// IconSize returns the box an icon occupies.
	IconSize(ic Icon) (w, h int)

	PushClip(r Rect)
	PopClip()
}

// Measure is a convenience for measuring text in a specific font.
func Measure(s Surface, f Font, text string) (w, h int) {
	s.SetFont(f)
	return s.MeasureText(text)
}
