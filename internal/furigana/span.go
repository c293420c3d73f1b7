package furigana

import "fmt"

// Axis selects the scan direction.
type Axis int

const (
	// Horizontal scans rows, for text written left to right.
	Horizontal Axis = iota

	// Vertical scans columns, for text written top to bottom.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Span is a run of lines along the scan axis, Start and End inclusive.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines the span covers.
func (s Span) Len() int {
	if s.End >= s.Start {
		return s.End - s.Start + 1
	}
	return s.Start - s.End + 1
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}
