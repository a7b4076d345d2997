package lottie

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

func degrees(d float64) float64 { return d * math.Pi / 180 }

// position samples the position, from the split channels when set.
func (t *Transform) position(frame float64) geom.Point {
	if t.SplitPosition {
		return geom.Pt(t.PositionX.Value(frame), t.PositionY.Value(frame))
	}
	return t.Position.Value(frame)
}

func (t *Transform) positionAnimated() bool {
	if t.SplitPosition {
		return t.PositionX.IsAnimated() || t.PositionY.IsAnimated()
	}
	return t.Position.IsAnimated()
}

// Matrix returns the transform matrix and the opacity in [0, 1] at frame.
//
// Points are moved by -anchor, then scaled, skewed along the skew axis,
// rotated, turned along the motion path when autoOrient is set and the
// position is animated, and finally moved to the position.
//
// A non-zero z position or 3D rotation returns an
// *UnsupportedFeatureError.
func (t *Transform) Matrix(frame float64, autoOrient bool) (geom.Matrix, float64, error) {
	if t.SplitPosition && t.PositionZ.Value(frame) != 0 {
		return geom.Identity(), 0, &UnsupportedFeatureError{Feature: "z position"}
	}
	if t.RotationX.Value(frame) != 0 || t.RotationY.Value(frame) != 0 {
		return geom.Identity(), 0, &UnsupportedFeatureError{Feature: "3D rotation"}
	}

	anchor := t.Anchor.Value(frame)
	scale := t.Scale.Value(frame)
	pos := t.position(frame)

	m := geom.Translate(-anchor.X, -anchor.Y).
		Then(geom.Scale(scale.X/100, scale.Y/100))

	if skew := t.Skew.Value(frame); skew != 0 {
		axis := degrees(t.SkewAxis.Value(frame))
		m = m.Then(geom.Rotate(-axis)).
			Then(geom.SkewX(degrees(-skew))).
			Then(geom.Rotate(axis))
	}
	m = m.Then(geom.Rotate(degrees(t.Rotation.Value(frame))))

	if autoOrient && t.positionAnimated() {
		d := pos.Sub(t.position(frame - 1))
		if d.X != 0 || d.Y != 0 {
			m = m.Then(geom.Rotate(math.Atan2(d.Y, d.X)))
		}
	}
	m = m.Then(geom.Translate(pos.X, pos.Y))

	opacity := math.Max(0, math.Min(1, t.Opacity.Value(frame)/100))
	return m, opacity, nil
}
