package textrect

import (
	"github.com/GSam/Capture2Text/internal/geom"
	"github.com/GSam/Capture2Text/internal/raster"
)

// MaxIterations caps the number of axis+corner passes in one Grow call.
const MaxIterations = 10

// Params controls a growth run.
type Params struct {
	// Vertical selects top-to-bottom text. Otherwise text reads left to right.
	Vertical bool `json:"vertical"`

	// Lookahead is the widest gap bridged in the reading direction.
	Lookahead int `json:"lookahead"`

	// Lookbehind is the widest gap bridged against the reading direction.
	Lookbehind int `json:"lookbehind"`

	// MaxSearchDist bounds the spiral search for the anchor pixel.
	MaxSearchDist int `json:"max_search_dist"`
}

// Grow returns the bounding rect of the text nearest start.
//
// When no foreground pixel lies within p.MaxSearchDist the result is a
// zero-size rect at NotFound.
func Grow(r raster.Raster, start geom.Point, p Params) geom.Rect {
	return grow(r, start, p, nil)
}

// grow is Grow with an optional callback invoked after every iteration with
// its 1-based number and the rect it produced.
func grow(r raster.Raster, start geom.Point, p Params, visit func(iter int, rect geom.Rect)) geom.Rect {
	anchor, ok := FindNearest(r, start, p.MaxSearchDist)
	if !ok {
		return geom.Rect{X: NotFound.X, Y: NotFound.Y}
	}

	plan := NewPlan(p.Vertical, p.Lookahead, p.Lookbehind)
	rect := geom.Rect{X: anchor.X, Y: anchor.Y, W: 1, H: 1}

	for iter := 1; iter <= MaxIterations; iter++ {
		prev := rect
		rect = apply(r, rect, plan.Axis, true)
		rect = apply(r, rect, plan.Corners, false)

		if visit != nil {
			visit(iter, rect)
		}
		if rect == prev {
			break
		}
	}

	return rect
}

// BoundingRect is Grow with the click point and parameters passed
// individually, the form the preprocessing pipeline calls.
func BoundingRect(r raster.Raster, startX, startY int, vertical bool, lookahead, lookbehind, maxSearchDist int) geom.Rect {
	return Grow(r, geom.Point{X: startX, Y: startY}, Params{
		Vertical:      vertical,
		Lookahead:     lookahead,
		Lookbehind:    lookbehind,
		MaxSearchDist: maxSearchDist,
	})
}
