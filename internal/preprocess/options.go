package preprocess

import (
	"errors"
	"math"
)

// Default pipeline parameters.
const (
	DefaultScale        = 3.5
	MinScale            = 0.71
	MaxScale            = 5.0
	DefaultLookahead    = 14
	DefaultLookbehind   = 14
	DefaultSearchRadius = 30

	// BorderSize is the white margin added around extracted text.
	BorderSize = 10

	// NoiseSize is the largest blob, in both dimensions, dropped as noise.
	NoiseSize = 3

	// minRectSize rejects bounding rects smaller than this in both dimensions.
	minRectSize = 4
)

var (
	// ErrRectTooSmall is returned when no text of usable size lies near the
	// click point.
	ErrRectTooSmall = errors.New("text region too small")

	// ErrNoForeground is returned when cleanup leaves no text pixels.
	ErrNoForeground = errors.New("no foreground pixels in text region")

	// ErrPointOutside is returned when a click point lies outside the image.
	ErrPointOutside = errors.New("point outside image")
)

// Options configures the preprocessing pipeline. Distances are in source
// image pixels and get multiplied by Scale internally.
type Options struct {
	// Scale enlarges the source before binarization. Clamped to
	// [MinScale, MaxScale]; zero selects DefaultScale.
	Scale float64 `json:"scale_factor"`

	// Vertical selects top-to-bottom text.
	Vertical bool `json:"vertical"`

	// RemoveFurigana erases ruby text next to the main lines.
	RemoveFurigana bool `json:"remove_furigana"`

	// Lookahead, Lookbehind and SearchRadius drive the bounding rect search.
	Lookahead    int `json:"lookahead"`
	Lookbehind   int `json:"lookbehind"`
	SearchRadius int `json:"search_radius"`

	// Trim clips ProcessImage output to its text and adds a margin.
	Trim bool `json:"trim"`
}

// DefaultOptions returns horizontal-text options with the default distances.
func DefaultOptions() Options {
	return Options{
		Scale:        DefaultScale,
		Lookahead:    DefaultLookahead,
		Lookbehind:   DefaultLookbehind,
		SearchRadius: DefaultSearchRadius,
	}
}

// ClampScale returns s limited to [MinScale, MaxScale], or DefaultScale when
// s is zero or NaN.
func ClampScale(s float64) float64 {
	if s == 0 || math.IsNaN(s) {
		return DefaultScale
	}
	return math.Min(math.Max(s, MinScale), MaxScale)
}

// scaled multiplies a source-pixel distance by scale, truncating.
func scaled(v int, scale float64) int {
	return int(float64(v) * scale)
}
