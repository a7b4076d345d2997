package geom

import (
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate * Scale applies the scale first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !got.Near(Pt(12, 2), 1e-12) {
		t.Errorf("TransformPoint = %v, want (12, 2)", got)
	}

	then := Scale(2, 2).Then(Translate(10, 0))
	if !then.Near(m, 1e-12) {
		t.Errorf("Then = %v, want %v", then, m)
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(3, -4)},
		{"rotate", Rotate(0.7)},
		{"skew", SkewX(0.3).Multiply(Scale(2, 0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !got.Near(Identity(), 1e-9) {
				t.Errorf("m * m^-1 = %v, want identity", got)
			}
		})
	}

	if !(Matrix{}).Invert().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestRotateDirection(t *testing.T) {
	// Positive angles turn +X towards +Y (clockwise on a y-down surface).
	got := Rotate(math.Pi / 2).TransformPoint(Pt(1, 0))
	if !got.Near(Pt(0, 1), 1e-12) {
		t.Errorf("Rotate(pi/2) * (1,0) = %v, want (0,1)", got)
	}
}

func TestSkewX(t *testing.T) {
	got := SkewX(math.Pi / 4).TransformPoint(Pt(0, 2))
	if !got.Near(Pt(2, 2), 1e-12) {
		t.Errorf("SkewX(45deg) * (0,2) = %v, want (2,2)", got)
	}
}

func TestMaxScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"uniform", Scale(3, 3), 3},
		{"non-uniform", Scale(2, 5), 5},
		{"rotated", Rotate(1.1).Multiply(Scale(4, 1)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MaxScale(); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("MaxScale() = %v, want %v", got, tt.want)
			}
		})
	}
}
