// Package draw defines the drawing surface the tree renders onto and the
// small set of value types (rectangles, colors, fonts, icons) shared by
// the layout engine and its surfaces.
//
// Three surfaces are provided: Canvas renders to a grid of terminal cells,
// PNG rasterizes with gg, and SVG emits vector markup. Coordinates are in
// surface units: cells for Canvas, pixels for PNG and SVG.
package draw

// Rect is an axis-aligned rectangle. W and H may be zero.
type Rect struct {
	X, Y, W, H int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first x coordinate past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first y coordinate past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsY reports whether y lies within the rectangle's rows.
func (r Rect) ContainsY(y int) bool {
	return y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o, or an empty rectangle.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// OverlapsY reports whether the vertical spans of r and o intersect.
func (r Rect) OverlapsY(o Rect) bool {
	return r.Y < o.Bottom() && o.Y < r.Bottom()
}

// clipStack is the push/pop clip bookkeeping shared by the surfaces.
type clipStack struct {
	stack []Rect
}

func (c *clipStack) push(r Rect) {
	if n := len(c.stack); n > 0 {
		r = c.stack[n-1].Intersect(r)
	}
	c.stack = append(c.stack, r)
}

func (c *clipStack) pop() {
	if n := len(c.stack); n > 0 {
		c.stack = c.stack[:n-1]
	}
}

// top returns the active clip and whether one is set.
func (c *clipStack) top() (Rect, bool) {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1], true
	}
	return Rect{}, false
}
