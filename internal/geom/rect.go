// Package geom provides the integer rectangle primitives used by the packing
// engine. All arithmetic is exact; coordinates grow to the right (x) and
// upwards (y) from the bin origin at (0, 0).
package geom

import "fmt"

// Size is the width and height of an unplaced rectangle.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns width * height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Rotated returns the size turned by 90 degrees.
func (s Size) Rotated() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// FitsIn reports whether s fits inside other without rotation.
func (s Size) FitsIn(other Size) bool {
	return s.Width <= other.Width && s.Height <= other.Height
}

// Positive reports whether both sides are strictly positive.
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle with its lower-left corner at (X, Y).
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect builds a rect of size s with its corner at (x, y).
func NewRect(x, y int, s Size) Rect {
	return Rect{X: x, Y: y, Width: s.Width, Height: s.Height}
}

// Size returns the dimensions of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Area returns width * height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Perimeter returns the length of the boundary of r.
func (r Rect) Perimeter() int {
	return 2 * (r.Width + r.Height)
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int {
	return r.Y + r.Height
}

// Overlaps reports whether r and other share a region of positive area.
// Rectangles that only touch along an edge or at a corner do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return CommonLength(r.X, r.Right(), other.X, other.Right()) > 0 &&
		CommonLength(r.Y, r.Top(), other.Y, other.Top()) > 0
}

// ContainedIn reports whether r lies fully inside other. Equal rectangles
// are contained in each other.
func (r Rect) ContainedIn(other Rect) bool {
	return r.X >= other.X && r.Y >= other.Y &&
		r.Right() <= other.Right() && r.Top() <= other.Top()
}

// TouchingLength returns the total length of boundary r shares with other:
// coinciding vertical edges contribute their common y extent and coinciding
// horizontal edges their common x extent.
func (r Rect) TouchingLength(other Rect) int {
	length := 0
	if r.X == other.Right() || r.Right() == other.X {
		length += CommonLength(r.Y, r.Top(), other.Y, other.Top())
	}
	if r.Y == other.Top() || r.Top() == other.Y {
		length += CommonLength(r.X, r.Right(), other.X, other.Right())
	}
	return length
}

// Within reports whether r lies inside the box [0,width]x[0,height].
func (r Rect) Within(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= width && r.Top() <= height
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(w=%d, h=%d, x=%d, y=%d)", r.Width, r.Height, r.X, r.Y)
}

// CommonLength returns the length of the intersection of the intervals
// [start1,end1] and [start2,end2], or 0 if they are disjoint or only touch.
func CommonLength(start1, end1, start2, end2 int) int {
	if start2 >= end1 || end2 <= start1 {
		return 0
	}
	return min(end1, end2) - max(start1, start2)
}
