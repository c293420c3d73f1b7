// Package furigana removes ruby annotations that run alongside the main text
// of a binarized text block.
//
// Erase scans the raster one line at a time across the text direction: rows
// for horizontal text, columns for vertical text. A line is "good" once it
// holds enough foreground pixels. Runs of good lines wide enough to be text
// become spans, and spans are split into major (main text) and minor
// (furigana or noise) by comparing each span with the mean thickness of the
// thicker half of all spans. Everything outside the major spans is cleared.
//
// Erase mutates the raster in place through raster.Mutable and never adds
// foreground. It does not lock; callers own the raster for the duration of
// the call.
package furigana
