package furigana

import (
	"fmt"
	"math"
	"sort"

	"github.com/GSam/Capture2Text/internal/raster"
)

// majorRatio is the fraction of the main line thickness a span must reach to
// count as main text.
const majorRatio = 0.6

// Result describes one erasure run.
type Result struct {
	// Spans lists every span wide enough to be kept, in scan order.
	Spans []Span `json:"spans"`

	// Major lists the spans classified as main text, in scan order.
	Major []Span `json:"major"`

	// TextLines is the number of major spans, and at least 1.
	TextLines int `json:"text_lines"`
}

// Erase clears furigana and inter-line noise from r in place.
//
// scale is the factor the raster was enlarged by before binarization. A line
// is good when it holds at least round(scale) foreground pixels (minimum 1)
// and a run of good lines becomes a span when it has at least round(5*scale)
// lines. Non-positive or NaN scales are treated as 1.
//
// When no span is found the raster is left untouched and TextLines is 1.
// Errors come only from r's ClearRect.
func Erase(r raster.Mutable, scale float64, axis Axis) (Result, error) {
	if math.IsNaN(scale) || scale <= 0 {
		scale = 1
	}
	minFg := max(int(math.Round(scale)), 1)
	minSpanWidth := int(math.Round(5 * scale))

	spans := findSpans(r, axis, minFg, minSpanWidth)
	res := Result{Spans: spans, Major: []Span{}, TextLines: 1}
	if len(spans) == 0 {
		return res, nil
	}

	threshold := majorRatio * upperHalfMean(spans)

	cursor := 0
	for _, s := range spans {
		if float64(s.Len()) < threshold {
			continue
		}
		res.Major = append(res.Major, s)
		if err := clearLines(r, axis, cursor, s.Start); err != nil {
			return Result{}, err
		}
		cursor = s.End + 1
	}
	if err := clearLines(r, axis, cursor, lineCount(r, axis)); err != nil {
		return Result{}, err
	}

	res.TextLines = max(len(res.Major), 1)
	return res, nil
}

// EraseHorizontal erases furigana above and below horizontal text lines and
// returns the number of text lines found.
func EraseHorizontal(r raster.Mutable, scale float64) (int, error) {
	res, err := Erase(r, scale, Horizontal)
	return res.TextLines, err
}

// EraseVertical erases furigana beside vertical text columns and returns the
// number of text columns found.
func EraseVertical(r raster.Mutable, scale float64) (int, error) {
	res, err := Erase(r, scale, Vertical)
	return res.TextLines, err
}

// findSpans returns the runs of good lines that reach minSpanWidth.
//
// A run closes on the first bad line and the span ends on that line. A good
// final line is treated as bad so an open run always closes, but it still
// counts toward the run. It never opens a run of its own.
func findSpans(r raster.Raster, axis Axis, minFg, minSpanWidth int) []Span {
	spans := make([]Span, 0)
	n := lineCount(r, axis)

	start, good := -1, 0
	for i := 0; i < n; i++ {
		isGood := lineIsGood(r, axis, i, minFg)
		if isGood && i == n-1 {
			isGood = false
			good++
		}
		if isGood {
			if start < 0 {
				start = i
			}
			good++
			continue
		}
		if start >= 0 && good >= minSpanWidth {
			spans = append(spans, Span{Start: start, End: i})
		}
		start, good = -1, 0
	}

	return spans
}

// upperHalfMean returns the mean length of the longer half of spans, which
// stands in for the thickness of one line of main text.
func upperHalfMean(spans []Span) float64 {
	lengths := make([]int, len(spans))
	for i, s := range spans {
		lengths[i] = s.Len()
	}
	sort.Ints(lengths)

	upper := lengths[len(lengths)/2:]
	sum := 0
	for _, l := range upper {
		sum += l
	}
	return float64(sum) / float64(len(upper))
}

// lineIsGood counts foreground pixels on line i until minFg is reached.
func lineIsGood(r raster.Raster, axis Axis, i, minFg int) bool {
	count := 0
	if axis == Vertical {
		for y := 0; y < r.Height(); y++ {
			if r.Foreground(i, y) {
				count++
				if count >= minFg {
					return true
				}
			}
		}
		return false
	}
	for x := 0; x < r.Width(); x++ {
		if r.Foreground(x, i) {
			count++
			if count >= minFg {
				return true
			}
		}
	}
	return false
}

func lineCount(r raster.Raster, axis Axis) int {
	if axis == Vertical {
		return r.Width()
	}
	return r.Height()
}

// clearLines clears lines from (inclusive) to to (exclusive).
func clearLines(r raster.Mutable, axis Axis, from, to int) error {
	if to <= from {
		return nil
	}

	var err error
	if axis == Vertical {
		err = r.ClearRect(from, 0, to-from, r.Height())
	} else {
		err = r.ClearRect(0, from, r.Width(), to-from)
	}
	if err != nil {
		return fmt.Errorf("clear %s lines %d-%d: %w", axis, from, to-1, err)
	}
	return nil
}
