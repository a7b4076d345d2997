package geom

// DefaultAccuracy is the arclength error bound used when a caller passes a
// non-positive accuracy.
const DefaultAccuracy = 0.01

type measureSeg struct {
	c      CubicBez
	line   bool
	length float64
}

type contour struct {
	start  Point
	segs   []measureSeg
	closed bool
	length float64
}

// Measure holds the arclength table of a path and extracts sub-ranges of
// it by distance along the path. Closed subpaths include their closing
// edge. Subpaths are laid end to end in path order, so a distance in
// [0, Length()] addresses exactly one point of the path.
type Measure struct {
	contours []contour
	length   float64
	accuracy float64
}

// NewMeasure measures p. The path is not retained.
func NewMeasure(p *Path, accuracy float64) *Measure {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	m := &Measure{accuracy: accuracy}
	for _, sp := range p.subpaths() {
		ct := contour{start: sp.start, closed: sp.closed}
		cur := sp.start
		for _, elem := range sp.elements {
			var seg measureSeg
			switch e := elem.(type) {
			case LineTo:
				seg = measureSeg{c: LineCubic(cur, e.Point), line: true, length: cur.Distance(e.Point)}
			case QuadTo:
				c := QuadBez{P0: cur, P1: e.Control, P2: e.Point}.Raise()
				seg = measureSeg{c: c, length: cubicLength(c, accuracy)}
			case CubicTo:
				c := CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}
				seg = measureSeg{c: c, length: cubicLength(c, accuracy)}
			}
			cur = endPoint(elem)
			ct.segs = append(ct.segs, seg)
			ct.length += seg.length
		}
		if sp.closed && !cur.Near(sp.start, 1e-12) {
			seg := measureSeg{c: LineCubic(cur, sp.start), line: true, length: cur.Distance(sp.start)}
			ct.segs = append(ct.segs, seg)
			ct.length += seg.length
		}
		m.contours = append(m.contours, ct)
		m.length += ct.length
	}
	return m
}

// Length returns the total arclength.
func (m *Measure) Length() float64 {
	return m.length
}

// ContourLengths returns the arclength of every subpath in path order.
func (m *Measure) ContourLengths() []float64 {
	out := make([]float64, len(m.contours))
	for i, c := range m.contours {
		out[i] = c.length
	}
	return out
}

// Segment emits the part of the path between distances from and to into
// dst. Each touched subpath starts with a MoveTo; a closed subpath covered
// completely is emitted closed. Distances are clamped to [0, Length()].
func (m *Measure) Segment(from, to float64, dst Sink) {
	from = max(from, 0)
	to = min(to, m.length)
	if to <= from {
		return
	}

	const eps = 1e-9
	var acc float64
	for _, ct := range m.contours {
		a := from - acc
		b := to - acc
		acc += ct.length
		if b <= 0 || a >= ct.length || nearZero(ct.length) {
			continue
		}
		a = max(a, 0)
		b = min(b, ct.length)
		if ct.closed && a <= eps && b >= ct.length-eps {
			ct.emitWhole(dst)
			continue
		}
		m.emitRange(ct, a, b, dst)
	}
}

func (ct contour) emitWhole(dst Sink) {
	dst.MoveTo(ct.start)
	n := len(ct.segs)
	for i, s := range ct.segs {
		if i == n-1 && s.line && s.c.P3 == ct.start {
			break // closing edge is implied by Close
		}
		emitSeg(s, 0, 1, dst)
	}
	dst.Close()
}

func (m *Measure) emitRange(ct contour, a, b float64, dst Sink) {
	started := false
	var s0 float64
	for _, s := range ct.segs {
		segStart := s0
		s0 += s.length
		if s.length == 0 || s0 <= a || segStart >= b {
			continue
		}
		la := max(a-segStart, 0)
		lb := min(b-segStart, s.length)
		t0 := m.paramAt(s, la)
		t1 := m.paramAt(s, lb)
		if !started {
			dst.MoveTo(s.pointAt(t0))
			started = true
		}
		emitSeg(s, t0, t1, dst)
	}
}

func (s measureSeg) pointAt(t float64) Point {
	if s.line {
		return s.c.P0.Lerp(s.c.P3, t)
	}
	return s.c.Eval(t)
}

func emitSeg(s measureSeg, t0, t1 float64, dst Sink) {
	if s.line {
		dst.LineTo(s.pointAt(t1))
		return
	}
	sub := s.c
	if t0 != 0 || t1 != 1 {
		sub = s.c.Subsegment(t0, t1)
	}
	dst.CubicTo(sub.P1, sub.P2, sub.P3)
}

// paramAt inverts arclength within one segment by bisection.
func (m *Measure) paramAt(s measureSeg, l float64) float64 {
	switch {
	case l <= 0:
		return 0
	case l >= s.length:
		return 1
	case s.line:
		return l / s.length
	}

	lo, hi := 0.0, 1.0
	for range 32 {
		mid := (lo + hi) / 2
		left, _ := s.c.SplitAt(mid)
		if cubicLength(left, m.accuracy) < l {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-7 {
			break
		}
	}
	return (lo + hi) / 2
}
