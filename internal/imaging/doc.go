// Package imaging turns source screenshots into binary rasters the text
// region algorithms can work on.
//
// It covers loading and caching images, measuring background lightness,
// binarizing (grayscale, optional inversion, upscaling, unsharp masking and
// an Otsu threshold), morphological dilation of a raster, cropping, and
// encoding results as base64 PNG for MCP clients.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner of
// the image, relative to img.Bounds().Min. Regions use geom.Rect, whose W and
// H count pixels.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and never modify their input images.
//
// # Performance Considerations
//
// Binarize works on the upscaled image, so memory and time grow with the
// square of the scale factor. Crop the screenshot to the area of interest
// first when possible, and use Evict or Clear to bound the cache in
// long-running processes.
package imaging
