package raster

import (
	"fmt"
	"image"
	"strings"

	"github.com/GSam/Capture2Text/internal/geom"
)

// Bitmap is an in-memory binary raster with one byte per pixel.
//
// The zero value is an empty 0x0 bitmap.
type Bitmap struct {
	w, h int
	pix  []uint8
}

// New returns an all-background bitmap of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) *Bitmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Bitmap{w: width, h: height, pix: make([]uint8, width*height)}
}

// FromStrings builds a bitmap from text rows where '#' or '1' marks
// foreground and any other byte is background. Rows shorter than the longest
// row are padded with background.
func FromStrings(rows ...string) *Bitmap {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	b := New(width, len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' || row[x] == '1' {
				b.pix[y*b.w+x] = 1
			}
		}
	}
	return b
}

// FromGray converts a grayscale image to a bitmap. Pixels darker than level
// become foreground.
func FromGray(img *image.Gray, level uint8) *Bitmap {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		row := img.Pix[off : off+b.w]
		for x, v := range row {
			if v < level {
				b.pix[y*b.w+x] = 1
			}
		}
	}
	return b
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.w }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.h }

// Foreground reports whether (x, y) is set. The caller guarantees bounds.
func (b *Bitmap) Foreground(x, y int) bool {
	return b.pix[y*b.w+x] != 0
}

// Set assigns the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, fg bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	if fg {
		b.pix[y*b.w+x] = 1
	} else {
		b.pix[y*b.w+x] = 0
	}
}

// FillRect sets every pixel of r (clipped) to foreground.
func (b *Bitmap) FillRect(r geom.Rect) {
	b.fill(r, 1)
}

// ClearRect sets every pixel of the clipped rectangle to background.
// It never fails; the error return satisfies Mutable.
func (b *Bitmap) ClearRect(x, y, w, h int) error {
	b.fill(geom.Rect{X: x, Y: y, W: w, H: h}, 0)
	return nil
}

func (b *Bitmap) fill(r geom.Rect, v uint8) {
	r = r.Intersect(b.Bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		row := b.pix[y*b.w+r.X : y*b.w+r.X+r.W]
		for i := range row {
			row[i] = v
		}
	}
}

// Bounds returns the rect covering the whole bitmap.
func (b *Bitmap) Bounds() geom.Rect {
	return geom.Rect{W: b.w, H: b.h}
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{w: b.w, h: b.h, pix: make([]uint8, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i := range b.pix {
		if (b.pix[i] != 0) != (o.pix[i] != 0) {
			return false
		}
	}
	return true
}

// Crop returns a copy of the pixels inside r, clipped to the bitmap.
func (b *Bitmap) Crop(r geom.Rect) *Bitmap {
	r = r.Intersect(b.Bounds())
	c := New(r.W, r.H)
	for y := 0; y < r.H; y++ {
		src := (r.Y+y)*b.w + r.X
		copy(c.pix[y*c.w:(y+1)*c.w], b.pix[src:src+r.W])
	}
	return c
}

// ForegroundBounds returns the smallest rect containing every foreground
// pixel. The second result is false when the bitmap has no foreground.
func (b *Bitmap) ForegroundBounds() (geom.Rect, bool) {
	minX, minY := b.w, b.h
	maxX, maxY := -1, -1
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}, true
}

// ClipToForeground crops the bitmap to its foreground bounds. The returned
// rect locates the crop inside b. The bitmap is nil when b is blank.
func (b *Bitmap) ClipToForeground() (*Bitmap, geom.Rect) {
	r, ok := b.ForegroundBounds()
	if !ok {
		return nil, geom.Rect{}
	}
	return b.Crop(r), r
}

// AddBorder returns a copy padded with n background pixels on every side.
func (b *Bitmap) AddBorder(n int) *Bitmap {
	n = max(n, 0)
	c := New(b.w+2*n, b.h+2*n)
	for y := 0; y < b.h; y++ {
		dst := (y+n)*c.w + n
		copy(c.pix[dst:dst+b.w], b.pix[y*b.w:(y+1)*b.w])
	}
	return c
}

// Invert returns a copy with foreground and background swapped.
func (b *Bitmap) Invert() *Bitmap {
	c := New(b.w, b.h)
	for i, v := range b.pix {
		if v == 0 {
			c.pix[i] = 1
		}
	}
	return c
}

// And returns the pixels set in both b and mask. The bitmaps must have the
// same dimensions.
func (b *Bitmap) And(mask *Bitmap) (*Bitmap, error) {
	if b.w != mask.w || b.h != mask.h {
		return nil, fmt.Errorf("bitmap size mismatch: %dx%d vs %dx%d", b.w, b.h, mask.w, mask.h)
	}
	c := New(b.w, b.h)
	for i := range b.pix {
		if b.pix[i] != 0 && mask.pix[i] != 0 {
			c.pix[i] = 1
		}
	}
	return c, nil
}

// ToImage renders the bitmap as black foreground on a white background.
func (b *Bitmap) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.w, b.h))
	for i, v := range b.pix {
		y, x := i/max(b.w, 1), i%max(b.w, 1)
		if v != 0 {
			img.Pix[y*img.Stride+x] = 0
		} else {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	return img
}

// String renders the bitmap with '#' for foreground and '.' for background,
// one row per line.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < b.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
