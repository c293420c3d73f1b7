package textrect

import (
	"github.com/GSam/Capture2Text/internal/geom"
	"github.com/GSam/Capture2Text/internal/raster"
)

// expand applies a single step to rect. It returns the grown rect and true
// when the probed line or pixel holds foreground, or rect unchanged and false.
func expand(r raster.Raster, rect geom.Rect, s Step) (geom.Rect, bool) {
	d := s.Dist
	switch s.Dir {
	case geom.Top:
		if !rowHasForeground(r, rect.Y-d, rect.X, rect.MaxX()) {
			return rect, false
		}
		rect.Y -= d
		rect.H += d
	case geom.Bottom:
		if !rowHasForeground(r, rect.MaxY()+d, rect.X, rect.MaxX()) {
			return rect, false
		}
		rect.H += d
	case geom.Left:
		if !colHasForeground(r, rect.X-d, rect.Y, rect.MaxY()) {
			return rect, false
		}
		rect.X -= d
		rect.W += d
	case geom.Right:
		if !colHasForeground(r, rect.MaxX()+d, rect.Y, rect.MaxY()) {
			return rect, false
		}
		rect.W += d
	case geom.TopRight:
		if !raster.IsForeground(r, rect.MaxX()+d, rect.Y-d) {
			return rect, false
		}
		rect.Y -= d
		rect.W += d
		rect.H += d
	case geom.BottomRight:
		if !raster.IsForeground(r, rect.MaxX()+d, rect.MaxY()+d) {
			return rect, false
		}
		rect.W += d
		rect.H += d
	case geom.BottomLeft:
		if !raster.IsForeground(r, rect.X-d, rect.MaxY()+d) {
			return rect, false
		}
		rect.X -= d
		rect.W += d
		rect.H += d
	case geom.TopLeft:
		if !raster.IsForeground(r, rect.X-d, rect.Y-d) {
			return rect, false
		}
		rect.X -= d
		rect.Y -= d
		rect.W += d
		rect.H += d
	default:
		return rect, false
	}
	return rect, true
}

// apply walks steps in order against rect.
//
// A failed step retires it. A successful step is retried when keepGoing is
// set, so one direction keeps extending while foreground continues; without
// keepGoing the walk stops after the first success.
func apply(r raster.Raster, rect geom.Rect, steps StepList, keepGoing bool) geom.Rect {
	for i := 0; i < steps.Len(); {
		next, ok := expand(r, rect, steps.At(i))
		if !ok {
			i++
			continue
		}
		rect = next
		if !keepGoing {
			break
		}
	}
	return rect
}

// rowHasForeground reports whether row y holds foreground between columns
// x0 and x1 inclusive, clipped to the raster.
func rowHasForeground(r raster.Raster, y, x0, x1 int) bool {
	if y < 0 || y >= r.Height() {
		return false
	}
	x0 = max(x0, 0)
	x1 = min(x1, r.Width()-1)
	for x := x0; x <= x1; x++ {
		if r.Foreground(x, y) {
			return true
		}
	}
	return false
}

// colHasForeground is rowHasForeground for column x between rows y0 and y1.
func colHasForeground(r raster.Raster, x, y0, y1 int) bool {
	if x < 0 || x >= r.Width() {
		return false
	}
	y0 = max(y0, 0)
	y1 = min(y1, r.Height()-1)
	for y := y0; y <= y1; y++ {
		if r.Foreground(x, y) {
			return true
		}
	}
	return false
}
