package geom

// Direction is one of the eight compass directions used to grow a rect.
type Direction int

const (
	Top Direction = iota
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

var directionNames = [...]string{
	Top:         "top",
	TopRight:    "top-right",
	Right:       "right",
	BottomRight: "bottom-right",
	Bottom:      "bottom",
	BottomLeft:  "bottom-left",
	Left:        "left",
	TopLeft:     "top-left",
}

func (d Direction) String() string {
	if d < Top || d > TopLeft {
		return "unknown"
	}
	return directionNames[d]
}

// Offset returns the unit vector for d, with Y increasing downward.
func (d Direction) Offset() Point {
	switch d {
	case Top:
		return Point{X: 0, Y: -1}
	case TopRight:
		return Point{X: 1, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case BottomRight:
		return Point{X: 1, Y: 1}
	case Bottom:
		return Point{X: 0, Y: 1}
	case BottomLeft:
		return Point{X: -1, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case TopLeft:
		return Point{X: -1, Y: -1}
	}
	return Point{}
}
