package lottie

import (
	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// ShapeItem is an entry of a shape layer's item list. The set of
// implementations is closed: Group, Rectangle, Ellipse, Polystar,
// FreePath, Fill, Stroke, GradientFill, GradientStroke, TrimPath, Repeater
// and Modifier.
type ShapeItem interface {
	shapeItem()
}

func (*Group) shapeItem()          {}
func (*Rectangle) shapeItem()      {}
func (*Ellipse) shapeItem()        {}
func (*Polystar) shapeItem()       {}
func (*FreePath) shapeItem()       {}
func (*Fill) shapeItem()           {}
func (*Stroke) shapeItem()         {}
func (*GradientFill) shapeItem()   {}
func (*GradientStroke) shapeItem() {}
func (*TrimPath) shapeItem()       {}
func (*Repeater) shapeItem()       {}
func (*Modifier) shapeItem()       {}

// Direction is the winding of generated geometry.
type Direction uint8

const (
	// Clockwise is the default winding in y-down coordinates.
	Clockwise Direction = iota
	CounterClockwise
)

// Group nests items under their own transform.
type Group struct {
	Name      string
	Hidden    bool
	Items     []ShapeItem
	Transform Transform
}

// Rectangle is centered on Position.
type Rectangle struct {
	Name      string
	Hidden    bool
	Direction Direction
	Position  anim.Property[geom.Point]
	Size      anim.Property[geom.Point]
	Radius    anim.Property[float64]
}

// Ellipse is centered on Position.
type Ellipse struct {
	Name      string
	Hidden    bool
	Direction Direction
	Position  anim.Property[geom.Point]
	Size      anim.Property[geom.Point]
}

// StarKind selects between stars and regular polygons.
type StarKind uint8

const (
	Star StarKind = iota
	Polygon
)

// Polystar is a star or regular polygon. Rotation is in degrees,
// roundness in percent. Polygons use only the outer radius and roundness.
type Polystar struct {
	Name           string
	Hidden         bool
	Direction      Direction
	Kind           StarKind
	Position       anim.Property[geom.Point]
	Points         anim.Property[float64]
	Rotation       anim.Property[float64]
	OuterRadius    anim.Property[float64]
	InnerRadius    anim.Property[float64]
	OuterRoundness anim.Property[float64]
	InnerRoundness anim.Property[float64]
}

// FreePath is an animated bezier shape.
type FreePath struct {
	Name      string
	Hidden    bool
	Direction Direction
	Shape     anim.Property[anim.Bezier]
}

// Fill paints the shapes before it with a solid color. Opacity is in
// percent.
type Fill struct {
	Name    string
	Hidden  bool
	Color   anim.Property[anim.Color]
	Opacity anim.Property[float64]
	Rule    backend.FillRule
}

// DashKind tells what a Dash entry measures.
type DashKind uint8

const (
	DashLength DashKind = iota
	DashGap
	DashOffset
)

// Dash is one entry of a stroke dash pattern.
type Dash struct {
	Kind   DashKind
	Length anim.Property[float64]
}

// StrokeOptions are the outline settings shared by solid and gradient
// strokes.
type StrokeOptions struct {
	Width      anim.Property[float64]
	Cap        backend.LineCap
	Join       backend.LineJoin
	MiterLimit float64
	Dashes     []Dash
}

// Stroke outlines the shapes before it with a solid color.
type Stroke struct {
	Name    string
	Hidden  bool
	Color   anim.Property[anim.Color]
	Opacity anim.Property[float64]
	StrokeOptions
}

// GradientKind selects the gradient geometry.
type GradientKind uint8

const (
	LinearGradient GradientKind = iota
	RadialGradient
)

// Gradient describes gradient geometry and stops.
//
// Stops is a flat list: StopCount color stops of (offset, r, g, b)
// followed by optional opacity stops of (offset, alpha).
// HighlightLength (percent of the radius) and HighlightAngle (degrees)
// place the focal point of radial gradients.
type Gradient struct {
	Kind            GradientKind
	Start, End      anim.Property[geom.Point]
	HighlightLength anim.Property[float64]
	HighlightAngle  anim.Property[float64]
	StopCount       int
	Stops           anim.Property[anim.Scalars]
}

// GradientFill paints the shapes before it with a gradient.
type GradientFill struct {
	Name    string
	Hidden  bool
	Opacity anim.Property[float64]
	Rule    backend.FillRule
	Gradient
}

// GradientStroke outlines the shapes before it with a gradient.
type GradientStroke struct {
	Name    string
	Hidden  bool
	Opacity anim.Property[float64]
	Gradient
	StrokeOptions
}

// TrimMode selects how a trim window spans several paths.
type TrimMode uint8

const (
	// TrimSimultaneous trims every path with the same window.
	TrimSimultaneous TrimMode = iota
	// TrimIndividual trims the concatenation of all paths as one.
	TrimIndividual
)

// TrimPath keeps a window of the shapes before it. Start and End are in
// percent of the length, Offset in degrees of a full turn.
type TrimPath struct {
	Name   string
	Hidden bool
	Start  anim.Property[float64]
	End    anim.Property[float64]
	Offset anim.Property[float64]
	Mode   TrimMode
}

// Stacking orders repeater copies.
type Stacking uint8

const (
	// StackAbove draws each copy above the previous one.
	StackAbove Stacking = iota
	// StackBelow draws each copy below the previous one.
	StackBelow
)

// Repeater draws Copies transformed copies of the items before it.
// Offset shifts the copy index the transform is raised to.
type Repeater struct {
	Name     string
	Hidden   bool
	Copies   anim.Property[float64]
	Offset   anim.Property[float64]
	Stacking Stacking

	// Transform applies once per copy index. Its Opacity is ignored in
	// favor of StartOpacity and EndOpacity, both in percent.
	Transform    Transform
	StartOpacity anim.Property[float64]
	EndOpacity   anim.Property[float64]
}

// Modifier is a decoded shape modifier without geometric effect: merge,
// offset path, twist, pucker and bloat, zig zag or rounded corners.
type Modifier struct {
	Name   string
	Hidden bool
	Type   string
}
