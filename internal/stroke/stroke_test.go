package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/lottie/geom"
)

func polyline(closed bool, pts ...geom.Point) geom.Polyline {
	return geom.Polyline{Points: pts, Closed: closed}
}

func TestOutlineArea(t *testing.T) {
	corner := polyline(false, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))

	tests := []struct {
		name  string
		lines []geom.Polyline
		style Style
		want  float64
		tol   float64
	}{
		{
			name:  "butt line",
			lines: []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(10, 0))},
			style: Style{Width: 2},
			want:  20,
			tol:   1e-9,
		},
		{
			name:  "square caps extend both ends",
			lines: []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(10, 0))},
			style: Style{Width: 2, Cap: CapSquare},
			want:  24,
			tol:   1e-9,
		},
		{
			name:  "round caps add two discs",
			lines: []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(10, 0))},
			style: Style{Width: 2, Cap: CapRound, Tolerance: 0.001},
			want:  20 + 2*math.Pi,
			tol:   0.05,
		},
		{
			name:  "bevel join",
			lines: []geom.Polyline{corner},
			style: Style{Width: 2, Join: JoinBevel},
			want:  40.5,
			tol:   1e-9,
		},
		{
			name:  "miter join",
			lines: []geom.Polyline{corner},
			style: Style{Width: 2, Join: JoinMiter},
			want:  41,
			tol:   1e-9,
		},
		{
			name:  "miter limit falls back to bevel",
			lines: []geom.Polyline{corner},
			style: Style{Width: 2, Join: JoinMiter, MiterLimit: 1.2},
			want:  40.5,
			tol:   1e-9,
		},
		{
			name:  "zero width",
			lines: []geom.Polyline{corner},
			style: Style{Width: 0},
			want:  0,
			tol:   0,
		},
		{
			name:  "square dot",
			lines: []geom.Polyline{polyline(false, geom.Pt(5, 5))},
			style: Style{Width: 4, Cap: CapSquare},
			want:  16,
			tol:   1e-9,
		},
		{
			name:  "butt dot draws nothing",
			lines: []geom.Polyline{polyline(false, geom.Pt(5, 5), geom.Pt(5, 5))},
			style: Style{Width: 4},
			want:  0,
			tol:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := math.Abs(Outline(tt.lines, tt.style).Area())
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("area = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutlineOrientation(t *testing.T) {
	lines := []geom.Polyline{
		polyline(false, geom.Pt(0, 0), geom.Pt(10, 0)),
		polyline(false, geom.Pt(10, 5), geom.Pt(0, 5)),
		polyline(true, geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10)),
	}
	out := Outline(lines, Style{Width: 1, Join: JoinRound, Cap: CapRound})

	var pts []geom.Point
	check := func() {
		if len(pts) < 3 {
			return
		}
		var area float64
		for i := range pts {
			area += pts[i].Cross(pts[(i+1)%len(pts)])
		}
		if area > 0 {
			t.Errorf("polygon %v has positive orientation", pts)
		}
	}
	for _, e := range out.Elements() {
		switch e := e.(type) {
		case geom.MoveTo:
			check()
			pts = []geom.Point{e.Point}
		case geom.LineTo:
			pts = append(pts, e.Point)
		}
	}
	check()
}

func TestOutlineClosedHasNoCaps(t *testing.T) {
	sq := polyline(true, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10))
	butt := Outline([]geom.Polyline{sq}, Style{Width: 2, Join: JoinBevel}).Area()
	round := Outline([]geom.Polyline{sq}, Style{Width: 2, Join: JoinBevel, Cap: CapRound}).Area()
	if butt != round {
		t.Errorf("caps changed closed outline: %v vs %v", butt, round)
	}
	// Four segment quads plus four bevel triangles.
	if got := math.Abs(butt); math.Abs(got-82) > 1e-9 {
		t.Errorf("area = %v, want 82", got)
	}
}
