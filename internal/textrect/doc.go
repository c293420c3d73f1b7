// Package textrect finds the bounding rectangle of a line or block of text
// on a binary raster, starting from a single click point.
//
// # Algorithm Overview
//
// Finding a rectangle is a three stage process:
//
//  1. Anchor: FindNearest scans a square spiral outward from the click point
//     and returns the first foreground pixel it meets.
//  2. Plan: NewPlan builds two ordered step lists from the text orientation
//     and the lookahead/lookbehind distances. The axis list probes the four
//     edges of the rect, the corner list probes its four diagonals.
//  3. Grow: starting from a 1x1 rect on the anchor, Grow repeatedly walks the
//     axis list (expanding as far as foreground continues) and then the corner
//     list (expanding at most once), until the rect stops changing or
//     MaxIterations is reached.
//
// Lookahead and lookbehind model the reading direction: gaps between glyphs
// along the line are bridged up to lookahead pixels forward and lookbehind
// pixels backward, while the perpendicular axis only ever grows one pixel
// line at a time. This keeps neighboring lines of text out of the rect.
//
// # Determinism
//
// The result is a pure function of the raster contents and the parameters.
// Step order is fixed by the planner, so no other tie-break is needed.
//
// # Degenerate Input
//
// Nothing here panics on empty rasters, zero search radii or zero distances.
// When no foreground pixel lies within the search radius the returned rect
// has zero size at NotFound; callers reject undersized rects themselves.
package textrect
