package textrect

import (
	"github.com/GSam/Capture2Text/internal/geom"
	"github.com/GSam/Capture2Text/internal/raster"
)

// NotFound is the point FindNearest returns when the search is exhausted.
var NotFound = geom.Point{X: -1, Y: -1}

// leg is one straight run of the spiral.
type leg struct {
	dir geom.Direction
	n   int
}

// FindNearest returns the first foreground pixel met by a square spiral scan
// around start, checking rings 1 through maxDist-1.
//
// Ring d holds exactly the pixels at Chebyshev distance d from start, so the
// result is never farther from start than any other foreground pixel. Within a
// ring the scan starts just right of start and runs down, left, up and right.
// The start pixel itself is never tested.
//
// The second result is false, with NotFound, when no foreground pixel exists
// within range.
func FindNearest(r raster.Raster, start geom.Point, maxDist int) (geom.Point, bool) {
	p := start

	for d := 1; d < maxDist; d++ {
		if ringOutside(r, start, d) {
			break
		}

		legs := [...]leg{
			{geom.Right, 1},
			{geom.Bottom, 2*d - 1},
			{geom.Left, 2 * d},
			{geom.Top, 2 * d},
			{geom.Right, 2 * d},
		}
		for _, l := range legs {
			off := l.dir.Offset()
			for i := 0; i < l.n; i++ {
				p = p.Add(off)
				if raster.IsForeground(r, p.X, p.Y) {
					return p, true
				}
			}
		}
	}

	return NotFound, false
}

// ringOutside reports whether ring d around start, and so every ring after
// it, lies entirely outside the raster.
func ringOutside(r raster.Raster, start geom.Point, d int) bool {
	return start.X-d < 0 && start.Y-d < 0 &&
		start.X+d >= r.Width() && start.Y+d >= r.Height()
}
