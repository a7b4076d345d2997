package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/lottie/geom"
)

// Backend errors. Every error a backend returns wraps ErrBackend.
var (
	// ErrBackend is the base of all backend failures.
	ErrBackend = errors.New("backend: failure")

	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = fmt.Errorf("%w: not available", ErrBackend)

	// ErrTargetAllocation is returned when an offscreen target cannot be
	// allocated.
	ErrTargetAllocation = fmt.Errorf("%w: offscreen target allocation failed", ErrBackend)

	// ErrSizeMismatch is returned when targets of different sizes are
	// combined, or a surface has an unusable size.
	ErrSizeMismatch = fmt.Errorf("%w: size mismatch", ErrBackend)

	// ErrForeignPath is returned when FillStroke receives a path that was
	// not built by the same backend.
	ErrForeignPath = fmt.Errorf("%w: path from another backend", ErrBackend)

	// ErrUnknownTarget is returned for targets that were never allocated
	// or were already released.
	ErrUnknownTarget = fmt.Errorf("%w: unknown target", ErrBackend)
)

// PathBuilder accumulates path geometry in a backend-specific form.
// *geom.Path implements PathBuilder.
type PathBuilder interface {
	geom.Sink

	// CurrentPosition returns the end of the last command, and false for
	// an empty path.
	CurrentPosition() (geom.Point, bool)

	// AddArc appends an elliptical arc around center starting at
	// startAngle and sweeping sweepAngle radians.
	AddArc(center, radii geom.Point, startAngle, sweepAngle float64)

	// EllipticArcTo appends an SVG-style endpoint arc.
	EllipticArcTo(radii geom.Point, xRotation float64, largeArc, sweep bool, end geom.Point)
}

// PathFactory creates path builders.
type PathFactory interface {
	NewPath(capacityHint int) PathBuilder
}

// Paint is a backend-specific paint value produced by StyleConv.
type Paint any

// StyleConv converts colors and gradients into backend paints.
// Gradient geometry is in the coordinate space of the path it paints.
type StyleConv interface {
	SolidColor(c Color) Paint
	LinearGradient(start, end geom.Point, stops []GradientStop) Paint
	RadialGradient(center, focus geom.Point, radius float64, stops []GradientStop) Paint
}

// Target identifies a drawing surface of a RenderContext.
type Target int

// Screen is the surface the backend was created for.
const Screen Target = 0

// State is the transform state of a RenderContext.
type State struct {
	Matrix  geom.Matrix
	Opacity float64
}

// DefaultState is the identity transform at full opacity.
func DefaultState() State {
	return State{Matrix: geom.Identity(), Opacity: 1}
}

// RenderContext issues draw calls to the current target.
type RenderContext interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	// ClearRect replaces the pixels of a device-space rectangle of the
	// current target with c, ignoring the transform state.
	ClearRect(x, y, w, h float64, c Color)

	// ApplyTransform concatenates m onto the current matrix (m applies
	// first) and multiplies the current opacity by *opacity when given.
	// It returns the state before the call.
	ApplyTransform(m geom.Matrix, opacity *float64) State

	// ResetTransform restores prev, or DefaultState when prev is nil.
	ResetTransform(prev *State)

	// FillStroke draws path, which must come from the same backend, with
	// the current transform and opacity.
	FillStroke(path PathBuilder, style *Style) error

	// NewTarget allocates a transparent offscreen target of surface size.
	NewTarget() (Target, error)

	// SetTarget redirects drawing to t.
	SetTarget(t Target) error

	// CurrentTarget returns the target drawing goes to.
	CurrentTarget() Target

	// Composite combines src into dst with op. Both must be live.
	Composite(dst, src Target, op CompositeOp) error

	// ReleaseTarget frees t. Releasing Screen or an unknown target is a
	// no-op.
	ReleaseTarget(t Target)
}

// Backend is the full capability set the engine renders through.
type Backend interface {
	PathFactory
	StyleConv
	RenderContext
}
