package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/lottie/geom"
)

func lineLength(l geom.Polyline) float64 {
	var sum float64
	for i := 1; i < len(l.Points); i++ {
		sum += l.Points[i-1].Distance(l.Points[i])
	}
	return sum
}

func TestDash(t *testing.T) {
	line := []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(10, 0))}

	tests := []struct {
		name    string
		pattern []float64
		offset  float64
		starts  []float64
		lengths []float64
	}{
		{"even pattern", []float64{2, 2}, 0, []float64{0, 4, 8}, []float64{2, 2, 2}},
		{"offset shifts phase", []float64{2, 2}, 1, []float64{0, 3, 7}, []float64{1, 2, 2}},
		{"negative offset", []float64{2, 2}, -1, []float64{1, 5, 9}, []float64{2, 2, 1}},
		{"odd pattern repeats", []float64{3}, 0, []float64{0, 6}, []float64{3, 3}},
		{"dash longer than line", []float64{20, 1}, 0, []float64{0}, []float64{10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dash(line, tt.pattern, tt.offset)
			if len(got) != len(tt.starts) {
				t.Fatalf("got %d dashes, want %d: %v", len(got), len(tt.starts), got)
			}
			for i, d := range got {
				if math.Abs(d.Points[0].X-tt.starts[i]) > 1e-9 {
					t.Errorf("dash %d starts at %v, want %v", i, d.Points[0].X, tt.starts[i])
				}
				if math.Abs(lineLength(d)-tt.lengths[i]) > 1e-9 {
					t.Errorf("dash %d length = %v, want %v", i, lineLength(d), tt.lengths[i])
				}
				if d.Closed {
					t.Errorf("dash %d is closed", i)
				}
			}
		})
	}
}

func TestDashCrossesVertices(t *testing.T) {
	corner := []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(3, 0), geom.Pt(3, 3))}
	got := Dash(corner, []float64{4, 1}, 0)
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2", len(got))
	}
	if n := len(got[0].Points); n != 3 {
		t.Errorf("first dash has %d points, want 3 (bends at the corner)", n)
	}
	if !got[0].Points[2].Near(geom.Pt(3, 1), 1e-9) {
		t.Errorf("first dash ends at %v, want (3, 1)", got[0].Points[2])
	}
}

func TestDashClosedPolyline(t *testing.T) {
	sq := []geom.Polyline{polyline(true, geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 4), geom.Pt(0, 4))}
	got := Dash(sq, []float64{1, 1}, 0)
	if len(got) != 8 {
		t.Fatalf("got %d dashes, want 8", len(got))
	}
	var total float64
	for _, d := range got {
		total += lineLength(d)
	}
	if math.Abs(total-8) > 1e-9 {
		t.Errorf("total dash length = %v, want 8", total)
	}
}

func TestDashInvalidPatternIsNoop(t *testing.T) {
	line := []geom.Polyline{polyline(false, geom.Pt(0, 0), geom.Pt(10, 0))}
	for _, p := range [][]float64{nil, {0, 0}, {2, -1}} {
		if got := Dash(line, p, 0); len(got) != 1 || len(got[0].Points) != 2 {
			t.Errorf("Dash(%v) = %v, want input unchanged", p, got)
		}
	}
}
