package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/GSam/Capture2Text/internal/geom"
)

// createQuadrantImage returns an image with red, green, blue and white
// quadrants starting at the top-left.
func createQuadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	img := createQuadrantImage(40, 30)

	result, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if result.Width != 40 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}

	r, g, b, _ := decoded.At(35, 5).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("top-right pixel: got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}
}

func TestCropRegion(t *testing.T) {
	img := createQuadrantImage(100, 100)

	cropped, err := CropRegion(img, geom.Rect{X: 50, Y: 50, W: 30, H: 20})
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	if cropped.Bounds().Dx() != 30 || cropped.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %v, want 30x20", cropped.Bounds())
	}
	if got := cropped.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel: got %v, want white", got)
	}
}

func TestCropRegion_SubImage(t *testing.T) {
	img := createQuadrantImage(100, 100)
	sub := img.SubImage(image.Rect(50, 0, 100, 50))

	// Region coordinates are relative to the sub-image origin.
	cropped, err := CropRegion(sub, geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	if got := cropped.NRGBAAt(5, 5); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pixel: got %v, want green", got)
	}
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createQuadrantImage(100, 100)

	tests := []struct {
		name string
		r    geom.Rect
	}{
		{"negative origin", geom.Rect{X: -1, Y: 0, W: 10, H: 10}},
		{"past right edge", geom.Rect{X: 95, Y: 0, W: 10, H: 10}},
		{"past bottom edge", geom.Rect{X: 0, Y: 95, W: 10, H: 10}},
		{"zero width", geom.Rect{X: 10, Y: 10, W: 0, H: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CropRegion(img, tt.r); err == nil {
				t.Errorf("CropRegion(%v) should fail", tt.r)
			}
		})
	}
}
