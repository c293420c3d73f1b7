package preprocess

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/GSam/Capture2Text/internal/furigana"
	"github.com/GSam/Capture2Text/internal/geom"
	"github.com/GSam/Capture2Text/internal/imaging"
	"github.com/GSam/Capture2Text/internal/raster"
	"github.com/GSam/Capture2Text/internal/textrect"
)

// Block is cleaned text ready for OCR.
type Block struct {
	// Binary holds the text as foreground, clipped and padded by BorderSize.
	Binary *raster.Bitmap

	// Bounds locates the text in source image pixels.
	Bounds geom.Rect

	// ScaledBounds locates the text in the binarized, scaled raster.
	ScaledBounds geom.Rect

	// TextLines is the number of lines furigana erasure found, or 1 when it
	// did not run.
	TextLines int

	// SingleLine tells the OCR engine to read one line only.
	SingleLine bool

	// Inverted is set when the source had light text on a dark background.
	Inverted bool
}

// ExtractTextBlock isolates the line of text nearest pt.
//
// The whole image is binarized (inverted first when the area around pt is
// dark), stripped of border-connected shapes and noise, and searched for the
// bounding rect of the text closest to pt. That rect is cut from the
// binarized image, cleaned of furigana when enabled, and clipped to its text.
func ExtractTextBlock(img image.Image, pt geom.Point, opts Options) (*Block, error) {
	scale := ClampScale(opts.Scale)

	dark := imaging.IsDarkAround(img, pt, imaging.DefaultSampleSize)
	bin := imaging.Binarize(img, imaging.BinarizeOptions{Scale: scale, Invert: dark})
	log.Debug().Str("stage", "extract").Bool("inverted", dark).
		Int("width", bin.Width()).Int("height", bin.Height()).Msg("binarized")

	search := raster.RemoveSmallComponents(raster.RemoveBorderComponents(bin), NoiseSize)

	rect := textrect.BoundingRect(search,
		scaled(pt.X, scale), scaled(pt.Y, scale),
		opts.Vertical,
		scaled(opts.Lookahead, scale),
		scaled(opts.Lookbehind, scale),
		scaled(opts.SearchRadius, scale))

	if tooSmall(rect) {
		log.Debug().Str("stage", "extract").Stringer("rect", rect).Msg("bounding rect too small")
		return nil, ErrRectTooSmall
	}
	log.Debug().Str("stage", "extract").Stringer("rect", rect).Msg("bounding rect found")

	cropped, lines, err := eraseFurigana(bin.Crop(rect), scale, opts)
	if err != nil {
		return nil, err
	}

	block, err := finish(cropped, scale, rect.X, rect.Y)
	if err != nil {
		return nil, err
	}
	block.TextLines = lines
	block.SingleLine = true
	block.Inverted = dark
	return block, nil
}

// ExtractBubbleText isolates the text enclosed by the shape around pt, such
// as a speech bubble.
//
// The binarized image is inverted when pt lands on foreground, so bubbles
// with light text on a dark fill work too. Outlines are thickened to close
// small gaps, the enclosed area is flood filled from pt, and only the text
// inside that area is kept.
func ExtractBubbleText(img image.Image, pt geom.Point, opts Options) (*Block, error) {
	scale := ClampScale(opts.Scale)

	bin := imaging.Binarize(img, imaging.BinarizeOptions{Scale: scale})
	seed := geom.Point{X: scaled(pt.X, scale), Y: scaled(pt.Y, scale)}
	if !raster.InBounds(bin, seed.X, seed.Y) {
		return nil, fmt.Errorf("%w: %v", ErrPointOutside, pt)
	}

	inverted := bin.Foreground(seed.X, seed.Y)
	if inverted {
		bin = bin.Invert()
	}

	thick := imaging.Dilate(bin, scale)
	interior := raster.SeedFill(thick.Invert(), seed)
	holes := raster.RemoveBorderComponents(interior.Invert())

	text, err := bin.And(holes)
	if err != nil {
		return nil, fmt.Errorf("mask bubble text: %w", err)
	}
	text = raster.RemoveSmallComponents(text, NoiseSize)
	log.Debug().Str("stage", "bubble").Bool("inverted", inverted).
		Int("pixels", text.Count()).Msg("bubble text isolated")

	text, lines, err := eraseFurigana(text, scale, opts)
	if err != nil {
		return nil, err
	}

	block, err := finish(text, scale, 0, 0)
	if err != nil {
		return nil, err
	}
	block.TextLines = lines
	block.SingleLine = opts.RemoveFurigana && lines == 1
	block.Inverted = inverted
	return block, nil
}

// ProcessImage cleans up a whole image for OCR. Background darkness is judged
// from the image border. With opts.Trim the result is clipped to its text and
// padded; otherwise it keeps the scaled image size.
func ProcessImage(img image.Image, opts Options) (*Block, error) {
	scale := ClampScale(opts.Scale)

	dark := imaging.IsDarkBorder(img)
	bin := imaging.Binarize(img, imaging.BinarizeOptions{Scale: scale, Invert: dark})
	log.Debug().Str("stage", "process").Bool("inverted", dark).
		Int("width", bin.Width()).Int("height", bin.Height()).Msg("binarized")

	bin, lines, err := eraseFurigana(bin, scale, opts)
	if err != nil {
		return nil, err
	}

	var block *Block
	if opts.Trim {
		if block, err = finish(bin, scale, 0, 0); err != nil {
			return nil, err
		}
	} else {
		block = &Block{
			Binary:       bin,
			Bounds:       geom.Rect{W: img.Bounds().Dx(), H: img.Bounds().Dy()},
			ScaledBounds: bin.Bounds(),
		}
	}

	block.TextLines = lines
	block.SingleLine = opts.RemoveFurigana && lines == 1
	block.Inverted = dark
	return block, nil
}

// eraseFurigana runs furigana erasure on b when enabled, drops the noise
// left behind and returns the result with the number of text lines.
func eraseFurigana(b *raster.Bitmap, scale float64, opts Options) (*raster.Bitmap, int, error) {
	if !opts.RemoveFurigana {
		return b, 1, nil
	}

	axis := furigana.Horizontal
	if opts.Vertical {
		axis = furigana.Vertical
	}

	res, err := furigana.Erase(b, scale, axis)
	if err != nil {
		return nil, 0, fmt.Errorf("erase furigana: %w", err)
	}
	log.Debug().Str("stage", "furigana").Stringer("axis", axis).
		Int("spans", len(res.Spans)).Int("lines", res.TextLines).Msg("furigana erased")

	return raster.RemoveSmallComponents(b, NoiseSize), res.TextLines, nil
}

// tooSmall reports whether a bounding rect is too small in both dimensions
// to hold text.
func tooSmall(r geom.Rect) bool {
	return r.W < minRectSize && r.H < minRectSize
}

// finish clips b to its foreground, pads it and locates it. offX and offY
// place b inside the full scaled raster.
func finish(b *raster.Bitmap, scale float64, offX, offY int) (*Block, error) {
	clipped, fg := b.ClipToForeground()
	if clipped == nil {
		return nil, ErrNoForeground
	}

	scaledBounds := fg.Translate(offX, offY)
	return &Block{
		Binary:       clipped.AddBorder(BorderSize),
		Bounds:       scaledBounds.Scale(scale),
		ScaledBounds: scaledBounds,
		TextLines:    1,
	}, nil
}
