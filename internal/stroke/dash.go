package stroke

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

// Dash splits polylines into the "on" intervals of pattern, which
// alternates dash and gap lengths. offset shifts the pattern start along
// each polyline. Patterns that are empty, negative or sum to zero leave the
// input unchanged. Dashing restarts on every polyline.
func Dash(lines []geom.Polyline, pattern []float64, offset float64) []geom.Polyline {
	var total float64
	for _, d := range pattern {
		if d < 0 {
			return lines
		}
		total += d
	}
	if len(pattern) == 0 || total <= 0 {
		return lines
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
		total *= 2
	}

	var out []geom.Polyline
	for _, l := range lines {
		out = dashOne(out, l, pattern, total, offset)
	}
	return out
}

func dashOne(out []geom.Polyline, l geom.Polyline, pattern []float64, total, offset float64) []geom.Polyline {
	pts := l.Points
	if l.Closed && len(pts) > 0 {
		pts = append(append([]geom.Point(nil), pts...), pts[0])
	}
	if len(pts) < 2 {
		return out
	}

	// Locate the pattern phase for distance zero.
	phase := math.Mod(offset, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remaining := pattern[idx] - phase
	on := idx%2 == 0

	var cur []geom.Point
	if on {
		cur = []geom.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			p := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, p)
				out = append(out, geom.Polyline{Points: cur})
				cur = nil
			} else {
				cur = []geom.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, geom.Polyline{Points: cur})
	}
	return out
}
