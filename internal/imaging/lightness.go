package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/GSam/Capture2Text/internal/geom"
)

const (
	// DarkThreshold is the mean CIE L* below which a background is dark.
	DarkThreshold = 0.5

	// DefaultSampleSize is the side of the square sampled around a click.
	DefaultSampleSize = 40
)

// MeanLightness returns the mean CIE L* lightness, from 0 (black) to 1
// (white), of the pixels of img inside r. r uses image coordinates relative to
// img.Bounds().Min and is clipped. Fully transparent pixels are skipped; ok is
// false when nothing was sampled.
func MeanLightness(img image.Image, r geom.Rect) (mean float64, ok bool) {
	bounds := img.Bounds()
	r = r.Intersect(geom.Rect{W: bounds.Dx(), H: bounds.Dy()})

	sum, n := 0.0, 0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c, opaque := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			if !opaque {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// IsDarkAround reports whether the size x size square centered on pt has a
// dark background. A non-positive size selects DefaultSampleSize.
func IsDarkAround(img image.Image, pt geom.Point, size int) bool {
	if size <= 0 {
		size = DefaultSampleSize
	}
	half := size / 2
	mean, ok := MeanLightness(img, geom.Rect{X: pt.X - half, Y: pt.Y - half, W: size, H: size})
	return ok && mean < DarkThreshold
}

// IsDarkBorder reports whether the outermost rows and columns of img are dark
// on average. Used for whole images, where no click point marks the text.
func IsDarkBorder(img image.Image) bool {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return false
	}

	edges := []geom.Rect{
		{X: 0, Y: 0, W: w, H: 1},
		{X: 0, Y: h - 1, W: w, H: 1},
		{X: 0, Y: 0, W: 1, H: h},
		{X: w - 1, Y: 0, W: 1, H: h},
	}

	sum, n := 0.0, 0
	for _, e := range edges {
		if mean, ok := MeanLightness(img, e); ok {
			sum += mean * float64(e.Area())
			n += e.Area()
		}
	}
	return n > 0 && sum/float64(n) < DarkThreshold
}
