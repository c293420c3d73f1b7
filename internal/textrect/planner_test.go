package textrect

import (
	"reflect"
	"testing"

	"github.com/GSam/Capture2Text/internal/geom"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name       string
		vertical   bool
		lookahead  int
		lookbehind int
		want       []Step
	}{
		{
			name:       "horizontal",
			lookahead:  2,
			lookbehind: 3,
			want: []Step{
				{geom.Top, 1},
				{geom.Left, 1}, {geom.Left, 2}, {geom.Left, 3},
				{geom.Bottom, 1},
				{geom.Right, 1}, {geom.Right, 2},
			},
		},
		{
			name:       "vertical",
			vertical:   true,
			lookahead:  2,
			lookbehind: 3,
			want: []Step{
				{geom.Top, 1}, {geom.Top, 2}, {geom.Top, 3},
				{geom.Right, 1},
				{geom.Left, 1},
				{geom.Bottom, 1}, {geom.Bottom, 2},
			},
		},
		{
			name: "horizontal zero distances",
			want: []Step{{geom.Top, 1}, {geom.Bottom, 1}},
		},
		{
			name:     "vertical zero distances",
			vertical: true,
			want:     []Step{{geom.Right, 1}, {geom.Left, 1}},
		},
		{
			name:       "negative distances",
			lookahead:  -3,
			lookbehind: -1,
			want:       []Step{{geom.Top, 1}, {geom.Bottom, 1}},
		},
	}

	wantCorners := []Step{
		{geom.TopRight, 1},
		{geom.BottomRight, 1},
		{geom.BottomLeft, 1},
		{geom.TopLeft, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan(tt.vertical, tt.lookahead, tt.lookbehind)

			if got := plan.Axis.Steps(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("axis steps:\n got %v\nwant %v", got, tt.want)
			}
			if got := plan.Corners.Steps(); !reflect.DeepEqual(got, wantCorners) {
				t.Errorf("corner steps:\n got %v\nwant %v", got, wantCorners)
			}
		})
	}
}

func TestStepList_StepsIsCopy(t *testing.T) {
	plan := NewPlan(false, 1, 1)

	steps := plan.Axis.Steps()
	steps[0] = Step{geom.Bottom, 99}

	if plan.Axis.At(0) != (Step{geom.Top, 1}) {
		t.Errorf("mutating Steps() changed the plan: %v", plan.Axis.At(0))
	}

	corners := plan.Corners.Steps()
	corners[0] = Step{geom.Left, 5}
	if got := NewPlan(true, 0, 0).Corners.At(0); got != (Step{geom.TopRight, 1}) {
		t.Errorf("corner list leaked between plans: %v", got)
	}
}

func TestStep_String(t *testing.T) {
	if got := (Step{geom.BottomLeft, 3}).String(); got != "bottom-left(3)" {
		t.Errorf("got %q", got)
	}
}
