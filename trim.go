package lottie

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

// trimWindow returns the window of tp at frame as fractions of a length:
// start in [0, 1) and span in [0, 1]. A span of 1 keeps everything.
func (tp *TrimPath) trimWindow(frame float64) (start, span float64) {
	s := tp.Start.Value(frame) / 100
	e := tp.End.Value(frame) / 100
	span = e - s
	if span < 0 {
		span++
	}
	span = math.Max(0, math.Min(1, span))
	start = s + tp.Offset.Value(frame)/360
	start -= math.Floor(start)
	return start, span
}

// ring splits the window [from, from+length) of a ring of the given
// circumference into at most two ranges: the primary range up to the end of
// the ring, then the rewound range from zero.
func ring(from, length, circumference float64) [][2]float64 {
	to := from + length
	if to <= circumference {
		return [][2]float64{{from, to}}
	}
	return [][2]float64{{from, circumference}, {0, to - circumference}}
}

// trim replaces the paths of the shape nodes under ids with their trimmed
// parts.
func (t *drawTree) trim(ids []int, tp *TrimPath) {
	start, span := tp.trimWindow(t.frame)
	if span >= 1 {
		return
	}

	var shapes []*node
	t.walkShapes(ids, false, func(n *node, _ geom.Matrix, _ float64) {
		shapes = append(shapes, n)
	})
	if len(shapes) == 0 {
		return
	}
	if span <= 0 {
		for _, n := range shapes {
			n.path = geom.NewPath(0)
		}
		return
	}

	measures := make([]*geom.Measure, len(shapes))
	var total float64
	for i, n := range shapes {
		measures[i] = geom.NewMeasure(n.path, geom.DefaultAccuracy)
		total += measures[i].Length()
	}

	if tp.Mode == TrimSimultaneous {
		for i, n := range shapes {
			l := measures[i].Length()
			n.path = extract(measures[i], ring(start*l, span*l, l), 0)
		}
		return
	}

	if total <= 0 {
		return
	}
	regions := ring(start*total, span*total, total)
	var offset float64
	for i, n := range shapes {
		n.path = extract(measures[i], regions, offset)
		offset += measures[i].Length()
	}
}

// extract returns the parts of the measured path that fall into regions,
// whose lengths are shifted by offset from the path's own.
func extract(m *geom.Measure, regions [][2]float64, offset float64) *geom.Path {
	out := geom.NewPath(8)
	l := m.Length()
	for _, r := range regions {
		from := math.Max(r[0]-offset, 0)
		to := math.Min(r[1]-offset, l)
		if to > from {
			m.Segment(from, to, out)
		}
	}
	return out
}
