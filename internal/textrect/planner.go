package textrect

import (
	"fmt"

	"github.com/GSam/Capture2Text/internal/geom"
)

// Step is a single probe-and-expand instruction: look Dist pixels beyond the
// rect edge (or corner) named by Dir.
type Step struct {
	Dir  geom.Direction `json:"direction"`
	Dist int            `json:"distance"`
}

func (s Step) String() string {
	return fmt.Sprintf("%s(%d)", s.Dir, s.Dist)
}

// StepList is an ordered, read-only sequence of steps.
//
// Order decides growth priority, so a StepList is never reordered once built.
type StepList struct {
	steps []Step
}

func newStepList(steps ...Step) StepList {
	return StepList{steps: steps}
}

// Len returns the number of steps.
func (l StepList) Len() int { return len(l.steps) }

// At returns the i-th step.
func (l StepList) At(i int) Step { return l.steps[i] }

// Steps returns a copy of the steps in order.
func (l StepList) Steps() []Step {
	out := make([]Step, len(l.steps))
	copy(out, l.steps)
	return out
}

// Plan holds the two step lists one growth run consumes.
type Plan struct {
	// Axis probes the four edges. It is applied with keep-going semantics.
	Axis StepList

	// Corners probes the four diagonals. It is applied with
	// stop-after-first-success semantics.
	Corners StepList
}

var cornerSteps = []Step{
	{geom.TopRight, 1},
	{geom.BottomRight, 1},
	{geom.BottomLeft, 1},
	{geom.TopLeft, 1},
}

// NewPlan builds the step lists for the given orientation.
//
// Vertical text reads top to bottom: Top 1..lookbehind, Right 1, Left 1,
// Bottom 1..lookahead. Horizontal text reads left to right: Top 1,
// Left 1..lookbehind, Bottom 1, Right 1..lookahead. The corner list is the
// same for both. Negative distances are treated as zero.
func NewPlan(vertical bool, lookahead, lookbehind int) Plan {
	lookahead = max(lookahead, 0)
	lookbehind = max(lookbehind, 0)

	axis := make([]Step, 0, lookahead+lookbehind+2)
	if vertical {
		axis = appendRun(axis, geom.Top, lookbehind)
		axis = append(axis, Step{geom.Right, 1}, Step{geom.Left, 1})
		axis = appendRun(axis, geom.Bottom, lookahead)
	} else {
		axis = append(axis, Step{geom.Top, 1})
		axis = appendRun(axis, geom.Left, lookbehind)
		axis = append(axis, Step{geom.Bottom, 1})
		axis = appendRun(axis, geom.Right, lookahead)
	}

	corners := make([]Step, len(cornerSteps))
	copy(corners, cornerSteps)

	return Plan{
		Axis:    newStepList(axis...),
		Corners: newStepList(corners...),
	}
}

// appendRun appends dir at distances 1..n.
func appendRun(steps []Step, dir geom.Direction, n int) []Step {
	for d := 1; d <= n; d++ {
		steps = append(steps, Step{Dir: dir, Dist: d})
	}
	return steps
}
