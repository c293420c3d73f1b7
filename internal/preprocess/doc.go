// Package preprocess prepares screenshots for OCR.
//
// Three entry points cover the capture modes:
//
//   - ExtractTextBlock isolates the line or block of text nearest a click.
//   - ExtractBubbleText isolates the text inside an enclosed area, such as a
//     comic speech bubble, around a click.
//   - ProcessImage cleans up a whole image.
//
// Each returns a Block: a cleaned binary raster with a white margin, the
// location of the text in source image coordinates and the number of text
// lines found by furigana erasure.
//
// The pipeline binarizes at an enlarged scale (Options.Scale) because
// Tesseract reads small glyphs poorly. All distances in Options are given in
// source pixels and scaled internally.
package preprocess
