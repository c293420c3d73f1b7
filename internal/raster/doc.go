// Package raster defines the binary raster contract used by the text-region
// algorithms and provides Bitmap, an in-memory 1-bit implementation.
//
// # Contract
//
// Raster is the read side: dimensions plus a foreground test. Mutable adds a
// single mutation, ClearRect, which sets a clipped rectangle to background.
// Algorithms in textrect and furigana only ever talk to these interfaces and
// always bounds-check coordinates before calling Foreground, so
// implementations may assume in-range queries.
//
// # Bitmap
//
// Bitmap stores one byte per pixel. Besides the contract it offers the
// whole-raster operations the preprocessing pipeline needs: cropping,
// clipping to foreground, padding, inversion, masking and connected-component
// filters. These operations return new bitmaps and leave the receiver
// untouched; only Set and ClearRect mutate in place.
//
// # Thread Safety
//
// A Bitmap has no internal locking. Concurrent reads are safe; a caller that
// mutates a Bitmap must serialize access itself.
package raster
