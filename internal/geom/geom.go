package geom

import (
	"fmt"
	"image"
	"math"
)

// Point represents a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// ChebyshevDist returns max(|dx|, |dy|) between p and q, which is the spiral
// ring a point lies on when scanning outward from the other.
func (p Point) ChebyshevDist(q Point) int {
	return max(absInt(p.X-q.X), absInt(p.Y-q.Y))
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned box anchored at its top-left pixel.
//
// W and H count pixels and are never negative.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// RectFromImage converts an image.Rectangle (exclusive max) into a Rect.
func RectFromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns W*H.
func (r Rect) Area() int {
	return r.W * r.H
}

// MaxX returns the right-most column covered by the rect.
func (r Rect) MaxX() int {
	return r.X + r.W - 1
}

// MaxY returns the bottom-most row covered by the rect.
func (r Rect) MaxY() int {
	return r.Y + r.H - 1
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRect reports whether every pixel of o is also covered by r.
// An empty o is contained in any rect.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersect returns the pixels covered by both rects. The result is the zero
// Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Scale maps a rect measured on a raster scaled by factor back onto the
// unscaled source. Coordinates are truncated toward zero.
func (r Rect) Scale(factor float64) Rect {
	if factor <= 0 || math.IsNaN(factor) {
		return r
	}
	return Rect{
		X: int(float64(r.X) / factor),
		Y: int(float64(r.Y) / factor),
		W: int(float64(r.W) / factor),
		H: int(float64(r.H) / factor),
	}
}

// Image converts the rect to an image.Rectangle with exclusive max corner.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
