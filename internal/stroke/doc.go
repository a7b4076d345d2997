// Package stroke converts flattened polylines into fillable stroke outlines.
//
// The outline of a stroke is the union of simple polygons: one quad per
// segment, a join wedge (or disc) at every interior vertex and a cap at
// each open end. All polygons share one orientation, so filling the
// result with the non-zero rule yields the union without self-overlap
// artifacts.
//
// Dash patterns are applied first by Dash, which splits polylines into
// open dash pieces by arclength.
//
//	lines := path.Transform(m).Flatten(0.25)
//	lines = stroke.Dash(lines, []float64{4, 2}, 0)
//	outline := stroke.Outline(lines, stroke.Style{Width: 2, Join: stroke.JoinRound})
package stroke
