package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"

	"github.com/GSam/Capture2Text/internal/raster"
)

// Default unsharp mask parameters applied before thresholding.
const (
	DefaultUnsharpRadius = 5.0
	DefaultUnsharpAmount = 2.5
)

// BinarizeOptions controls Binarize.
type BinarizeOptions struct {
	// Scale enlarges the image before sharpening. Values <= 0 mean 1.
	Scale float64

	// Invert flips the grayscale image first, turning light text on a dark
	// background into dark text on a light one.
	Invert bool

	// UnsharpRadius and UnsharpAmount configure the unsharp mask. Zero
	// values select the defaults; a negative amount disables sharpening.
	UnsharpRadius float64
	UnsharpAmount float64
}

// Binarize converts img into a binary raster with dark pixels as foreground.
//
// The chain is grayscale, optional inversion, linear upscaling, unsharp
// masking and a global Otsu threshold. The returned bitmap has the scaled
// dimensions.
func Binarize(img image.Image, opts BinarizeOptions) *raster.Bitmap {
	bounds := img.Bounds()
	if bounds.Empty() {
		return raster.New(0, 0)
	}

	var src image.Image = effect.Grayscale(img)
	if opts.Invert {
		src = effect.Invert(src)
	}

	if scale := opts.Scale; scale > 0 && scale != 1 {
		w := max(int(math.Round(float64(bounds.Dx())*scale)), 1)
		h := max(int(math.Round(float64(bounds.Dy())*scale)), 1)
		src = transform.Resize(src, w, h, transform.Linear)
	}

	radius, amount := opts.UnsharpRadius, opts.UnsharpAmount
	if radius <= 0 {
		radius = DefaultUnsharpRadius
	}
	if amount == 0 {
		amount = DefaultUnsharpAmount
	}
	if amount > 0 {
		src = effect.UnsharpMask(src, radius, amount)
	}

	level := OtsuLevel(src)
	return raster.FromGray(segment.Threshold(src, level), 128)
}

// OtsuLevel returns the threshold level that best separates the gray values
// of img into two classes. Pixels below the level form the dark class. Color
// images are judged by their red channel, so pass a grayscale image.
func OtsuLevel(img image.Image) uint8 {
	bins := histogram.NewRGBAHistogram(img).R.Bins
	return otsu(bins)
}

// otsu maximizes the between-class variance over a 256-bin histogram and
// returns one past the brightest value of the dark class. A single-valued
// histogram yields 1.
func otsu(bins []int) uint8 {
	total, sum := 0, 0.0
	for v, n := range bins {
		total += n
		sum += float64(v * n)
	}
	if total == 0 {
		return 128
	}

	var (
		best      float64
		bestLevel int
		weightBg  int
		sumBg     float64
	)
	for t := 0; t < len(bins)-1; t++ {
		weightBg += bins[t]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}

		sumBg += float64(t * bins[t])
		meanBg := sumBg / float64(weightBg)
		meanFg := (sum - sumBg) / float64(weightFg)

		between := float64(weightBg) * float64(weightFg) * (meanBg - meanFg) * (meanBg - meanFg)
		if between > best {
			best = between
			bestLevel = t
		}
	}

	return uint8(bestLevel + 1)
}

// Dilate grows the foreground of b by radius pixels.
func Dilate(b *raster.Bitmap, radius float64) *raster.Bitmap {
	if radius <= 0 {
		return b.Clone()
	}
	// Foreground renders black, so eroding the white background grows it.
	grown := effect.Erode(b.ToImage(), radius)
	return raster.FromGray(segment.Threshold(grown, 128), 128)
}
