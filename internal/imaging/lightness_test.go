package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/GSam/Capture2Text/internal/geom"
)

func TestMeanLightness(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"white", color.White, 1.0},
		{"black", color.Black, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.c)
			got, ok := MeanLightness(img, geom.Rect{W: 10, H: 10})
			if !ok {
				t.Fatal("nothing sampled")
			}
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("got %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestMeanLightness_Clipped(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	if _, ok := MeanLightness(img, geom.Rect{X: 20, Y: 20, W: 5, H: 5}); ok {
		t.Error("region outside the image should sample nothing")
	}

	transparent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, ok := MeanLightness(transparent, geom.Rect{W: 4, H: 4}); ok {
		t.Error("transparent pixels should be skipped")
	}
}

func TestIsDarkAround(t *testing.T) {
	img := createQuadrantImage(100, 100)
	// Make the bottom-right quadrant black.
	for y := 50; y < 100; y++ {
		for x := 50; x < 100; x++ {
			img.Set(x, y, color.Black)
		}
	}

	if !IsDarkAround(img, geom.Point{X: 75, Y: 75}, 0) {
		t.Error("black quadrant should be dark")
	}
	if IsDarkAround(img, geom.Point{X: 75, Y: 75}, -1) != IsDarkAround(img, geom.Point{X: 75, Y: 75}, DefaultSampleSize) {
		t.Error("non-positive size should select the default")
	}
	if IsDarkAround(createInMemoryImage(50, 50, color.White), geom.Point{X: 25, Y: 25}, 10) {
		t.Error("white image should not be dark")
	}
}

func TestIsDarkBorder(t *testing.T) {
	img := createInMemoryImage(30, 30, color.Black)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.Set(x, y, color.White)
		}
	}
	if !IsDarkBorder(img) {
		t.Error("black frame should be dark")
	}

	if IsDarkBorder(createInMemoryImage(30, 30, color.White)) {
		t.Error("white image should not be dark")
	}
	if IsDarkBorder(image.NewGray(image.Rect(0, 0, 0, 0))) {
		t.Error("empty image should not be dark")
	}
}
