package raster

// Raster is a read-only binary image.
//
// Foreground is only ever called with 0 <= x < Width() and 0 <= y < Height().
type Raster interface {
	Width() int
	Height() int
	Foreground(x, y int) bool
}

// Mutable is a Raster that supports clearing rectangular areas.
//
// ClearRect sets every pixel of the rectangle (x, y, w, h), clipped to the
// raster bounds, to background. Rectangles that fall entirely outside the
// raster or have a non-positive size are a no-op.
type Mutable interface {
	Raster
	ClearRect(x, y, w, h int) error
}

// InBounds reports whether (x, y) addresses a pixel of r.
func InBounds(r Raster, x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width() && y < r.Height()
}

// IsForeground reports whether (x, y) is a foreground pixel of r.
// Coordinates outside the raster are background.
func IsForeground(r Raster, x, y int) bool {
	if !InBounds(r, x, y) {
		return false
	}
	return r.Foreground(x, y)
}

// CountForeground returns the number of foreground pixels in r.
func CountForeground(r Raster) int {
	n := 0
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if r.Foreground(x, y) {
				n++
			}
		}
	}
	return n
}
