package raster

import "github.com/GSam/Capture2Text/internal/geom"

// component is one 8-connected group of foreground pixels.
type component struct {
	pixels        []geom.Point
	bounds        geom.Rect
	touchesBorder bool
}

// findComponents groups the foreground pixels of b into 8-connected
// components, scanning in row-major order.
func findComponents(b *Bitmap) []component {
	visited := make([]bool, len(b.pix))
	comps := make([]component, 0)

	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			i := y*b.w + x
			if b.pix[i] == 0 || visited[i] {
				continue
			}
			comps = append(comps, floodFill(b, visited, geom.Point{X: x, Y: y}))
		}
	}

	return comps
}

// floodFill collects the component containing start.
//
// Uses an explicit stack so large components cannot overflow the goroutine
// stack. Every pixel is pushed at most once.
func floodFill(b *Bitmap, visited []bool, start geom.Point) component {
	c := component{}
	minX, minY, maxX, maxY := start.X, start.Y, start.X, start.Y

	visited[start.Y*b.w+start.X] = true
	stack := []geom.Point{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c.pixels = append(c.pixels, p)

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		if p.X == 0 || p.Y == 0 || p.X == b.w-1 || p.Y == b.h-1 {
			c.touchesBorder = true
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= b.w || ny >= b.h {
					continue
				}
				ni := ny*b.w + nx
				if b.pix[ni] == 0 || visited[ni] {
					continue
				}
				visited[ni] = true
				stack = append(stack, geom.Point{X: nx, Y: ny})
			}
		}
	}

	c.bounds = geom.Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
	return c
}

// filterComponents returns a copy of b holding only the components keep
// accepts.
func filterComponents(b *Bitmap, keep func(component) bool) *Bitmap {
	out := New(b.w, b.h)
	for _, c := range findComponents(b) {
		if !keep(c) {
			continue
		}
		for _, p := range c.pixels {
			out.pix[p.Y*out.w+p.X] = 1
		}
	}
	return out
}

// RemoveBorderComponents drops every component that touches the outer edge
// of the bitmap. Frames and speech-bubble outlines that run off a capture
// are removed this way.
func RemoveBorderComponents(b *Bitmap) *Bitmap {
	return filterComponents(b, func(c component) bool {
		return !c.touchesBorder
	})
}

// RemoveSmallComponents drops components whose bounding box is no larger
// than minSize in both dimensions. A component survives when either side
// exceeds minSize.
func RemoveSmallComponents(b *Bitmap, minSize int) *Bitmap {
	return filterComponents(b, func(c component) bool {
		return c.bounds.W > minSize || c.bounds.H > minSize
	})
}

// SeedFill returns the 8-connected region of mask's foreground that contains
// seed. The result is blank when seed is outside mask or on background.
func SeedFill(mask *Bitmap, seed geom.Point) *Bitmap {
	out := New(mask.w, mask.h)
	if !IsForeground(mask, seed.X, seed.Y) {
		return out
	}
	visited := make([]bool, len(mask.pix))
	for _, p := range floodFill(mask, visited, seed).pixels {
		out.pix[p.Y*out.w+p.X] = 1
	}
	return out
}
