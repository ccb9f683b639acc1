package textedit

// Point is a position in widget-local coordinates (origin at the widget's
// top-left corner).
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle in widget-local coordinates.
// Used both for caret glyphs and for text-range bounding boxes.
// Rects are plain values; implementations must not hand out references
// into widget-owned state.
type Rect struct {
	X, Y          float32 // Top-left corner
	Width, Height float32
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains checks if a point is within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Union returns the smallest rectangle covering both r and o.
// An empty rectangle is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RectList is a set of rectangles covering a text range. A range that spans
// multiple visual lines produces one rectangle per line.
type RectList []Rect

// Bounds returns the union of all rectangles in the list, or a zero Rect
// if the list is empty.
func (l RectList) Bounds() Rect {
	var u Rect
	for _, r := range l {
		u = u.Union(r)
	}
	return u
}
