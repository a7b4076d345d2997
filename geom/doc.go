// Package geom provides the 2D geometry primitives shared by the animation
// engine and its rendering backends: points, affine matrices, quadratic and
// cubic Bezier segments, and a concrete bezier Path.
//
// Path implements the path-building half of the backend port, so the engine
// can generate geometry once and replay it into any backend's own path type.
// Arclength measurement and extraction of arclength sub-ranges live in
// measure.go and back the trim-path modifier.
package geom
