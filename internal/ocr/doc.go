// Package ocr reads text from cleaned binary images with Tesseract.
//
// The engine wraps gosseract/v2. It chooses the page segmentation mode from
// the text orientation and line count, tunes Tesseract for vertical Japanese
// and Chinese, and adds the vertical traineddata (for example jpn_vert) when
// it is installed next to the main model.
//
// # Prerequisites
//
// Tesseract and its development headers must be installed:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-jpn tesseract-ocr-jpn-vert
//
// # Post-processing
//
// PostProcess turns raw Tesseract output into a single line of text: line
// breaks are dropped for Japanese and Chinese and replaced by spaces for other
// languages, the result is NFC-normalized, and user supplied regular
// expression replacements are applied in order.
//
// # Thread Safety
//
// Engine serializes recognitions behind a mutex. Tesseract is CPU bound, so
// running several engines in parallel rarely helps.
package ocr
