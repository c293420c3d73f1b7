package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/GSam/Capture2Text/internal/geom"
)

// EncodedImage is an image ready to return to an MCP client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropRegion copies the pixels of r out of img. r is in image coordinates
// relative to img.Bounds().Min and must lie inside the image.
func CropRegion(img image.Image, r geom.Rect) (*image.NRGBA, error) {
	bounds := img.Bounds()
	full := geom.Rect{W: bounds.Dx(), H: bounds.Dy()}

	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: width and height must be positive", r)
	}
	if !full.ContainsRect(r) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, full)
	}

	return imaging.Crop(img, r.Image().Add(bounds.Min)), nil
}
