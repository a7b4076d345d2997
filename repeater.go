package lottie

import (
	"math"
	"slices"

	"github.com/gogpu/lottie/geom"
)

// maxRepeaterCopies bounds the copies of one repeater.
const maxRepeaterCopies = 1000

// placement is one repeater copy: its matrix and opacity in [0, 1].
type placement struct {
	matrix  geom.Matrix
	opacity float64
}

// placements returns the copies of r at frame in drawing order.
//
// Copy i of N is transformed with offset = i + Offset: scale is raised to
// the offset, rotation and position are multiplied by it, all around the
// anchor. Opacity steps linearly from StartOpacity on the first copy to
// EndOpacity on the last. StackBelow draws the copies in reverse.
func (r *Repeater) placements(frame float64) []placement {
	n := int(math.Ceil(r.Copies.Value(frame)))
	if n <= 0 {
		return nil
	}
	n = min(n, maxRepeaterCopies)

	t := &r.Transform
	anchor := t.Anchor.Value(frame)
	scale := t.Scale.Value(frame)
	sx, sy := scale.X/100, scale.Y/100
	rot := degrees(t.Rotation.Value(frame))
	pos := t.position(frame)
	shift := r.Offset.Value(frame)

	so := r.StartOpacity.Value(frame) / 100
	eo := r.EndOpacity.Value(frame) / 100
	step := 0.0
	if n > 1 {
		step = (eo - so) / float64(n-1)
	}

	out := make([]placement, n)
	for i := range n {
		off := float64(i) + shift
		m := geom.Translate(-anchor.X, -anchor.Y).
			Then(geom.Scale(math.Pow(sx, off), math.Pow(sy, off))).
			Then(geom.Rotate(rot * off)).
			Then(geom.Translate(anchor.X, anchor.Y)).
			Then(geom.Translate(pos.X*off, pos.Y*off))
		out[i] = placement{matrix: m, opacity: math.Max(0, math.Min(1, so+step*float64(i)))}
	}
	if r.Stacking == StackBelow {
		slices.Reverse(out)
	}
	return out
}
