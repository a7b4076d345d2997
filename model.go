package lottie

import (
	"fmt"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/geom"
)

// Animation is a decoded document. It is immutable once built and may be
// shared by players on different goroutines.
type Animation struct {
	Version   string
	Name      string
	FrameRate float64

	// InPoint and OutPoint bound the playable frames, OutPoint exclusive.
	InPoint  float64
	OutPoint float64

	Width, Height float64

	// Layers are ordered top to bottom: Layers[0] is drawn last.
	Layers  []*Layer
	Assets  []*Asset
	Markers []Marker
}

// Asset is a precomposition that precomp layers reference by ID.
type Asset struct {
	ID            string
	Width, Height float64
	Layers        []*Layer
}

// Asset returns the asset with the given ID, or nil.
func (a *Animation) Asset(id string) *Asset {
	for _, as := range a.Assets {
		if as.ID == id {
			return as
		}
	}
	return nil
}

// Duration returns the playable length in seconds.
func (a *Animation) Duration() float64 {
	if a.FrameRate <= 0 {
		return 0
	}
	return (a.OutPoint - a.InPoint) / a.FrameRate
}

// LayerKind is the content type of a layer.
type LayerKind uint8

const (
	LayerPrecomp LayerKind = iota
	LayerSolid
	LayerImage
	LayerNull
	LayerShape
	LayerText
)

var layerKindNames = [...]string{
	LayerPrecomp: "precomp",
	LayerSolid:   "solid",
	LayerImage:   "image",
	LayerNull:    "null",
	LayerShape:   "shape",
	LayerText:    "text",
}

func (k LayerKind) String() string {
	if int(k) < len(layerKindNames) {
		return layerKindNames[k]
	}
	return fmt.Sprintf("LayerKind(%d)", k)
}

// MatteMode selects how a layer uses its track matte.
type MatteMode uint8

const (
	MatteNone MatteMode = iota
	MatteAlpha
	MatteAlphaInverted
	MatteLuma
	MatteLumaInverted
)

// BlendMode is a layer blend mode.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAdd
	BlendHardMix
)

// Layer is one entry of a composition's layer stack.
type Layer struct {
	Name string

	// Index identifies the layer among its siblings for parenting and
	// mattes.
	Index  int
	Parent *int

	Kind LayerKind

	// InPoint and OutPoint bound the frames the layer is visible in,
	// OutPoint exclusive.
	InPoint, OutPoint float64

	// StartTime offsets the layer's own timeline. TimeStretch scales only
	// the frames passed to a precomp's asset.
	StartTime   float64
	TimeStretch float64

	Transform  Transform
	AutoOrient bool
	ThreeD     bool
	Hidden     bool
	Blend      BlendMode

	// MatteMode is set on the layer that consumes a matte; MatteSource on
	// the layer that provides it. MatteParent names the source explicitly
	// by index, otherwise the preceding layer is used.
	MatteMode   MatteMode
	MatteSource bool
	MatteParent *int

	Masks  []Mask
	Shapes []ShapeItem

	// RefID names the asset of a precomp layer.
	RefID         string
	Width, Height float64
	TimeRemap     *anim.Property[float64]

	SolidColor anim.Color

	// EffectCount and StyleCount record effects and layer styles the
	// renderer does not apply.
	EffectCount int
	StyleCount  int
}

// visible reports whether the layer shows at frame.
func (l *Layer) visible(frame float64) bool {
	return !l.Hidden && frame >= l.InPoint && frame < l.OutPoint
}

// layerFrame maps a composition frame to the layer's own timeline, which
// its properties are keyed in. Time stretch does not apply here.
func (l *Layer) layerFrame(frame float64) float64 {
	return frame - l.StartTime
}

// childFrame maps a composition frame to the frame of a precomp layer's
// asset. A time remap, in seconds, replaces the stretched layer timeline.
func (l *Layer) childFrame(frame, frameRate float64) float64 {
	lf := l.layerFrame(frame)
	if l.TimeRemap != nil {
		return l.TimeRemap.Value(lf) * frameRate
	}
	stretch := l.TimeStretch
	if stretch == 0 {
		stretch = 1
	}
	return lf / stretch
}

// MaskMode is how a mask combines with the masks before it.
type MaskMode uint8

const (
	MaskNone MaskMode = iota
	MaskAdd
	MaskSubtract
	MaskIntersect
	MaskLighten
	MaskDarken
	MaskDifference
)

var maskModeNames = [...]string{
	MaskNone:       "none",
	MaskAdd:        "add",
	MaskSubtract:   "subtract",
	MaskIntersect:  "intersect",
	MaskLighten:    "lighten",
	MaskDarken:     "darken",
	MaskDifference: "difference",
}

func (m MaskMode) String() string {
	if int(m) < len(maskModeNames) {
		return maskModeNames[m]
	}
	return fmt.Sprintf("MaskMode(%d)", m)
}

// Mask is a shape stencil owned by a layer. Opacity is in percent.
type Mask struct {
	Name     string
	Mode     MaskMode
	Inverted bool
	Shape    anim.Property[anim.Bezier]
	Opacity  anim.Property[float64]
	Expand   anim.Property[float64]
}

// Marker is a named time range, in frames.
type Marker struct {
	Name     string
	Time     float64
	Duration float64
}

// Transform is an animated 2D transform. Angles are in degrees, scale and
// opacity in percent.
type Transform struct {
	Anchor   anim.Property[geom.Point]
	Position anim.Property[geom.Point]

	// SplitPosition selects PositionX, PositionY and PositionZ over
	// Position.
	SplitPosition bool
	PositionX     anim.Property[float64]
	PositionY     anim.Property[float64]
	PositionZ     anim.Property[float64]

	Scale    anim.Property[geom.Point]
	Rotation anim.Property[float64]
	Skew     anim.Property[float64]
	SkewAxis anim.Property[float64]
	Opacity  anim.Property[float64]

	// RotationX and RotationY are 3D rotations, which are unsupported
	// when non-zero.
	RotationX anim.Property[float64]
	RotationY anim.Property[float64]
}

// DefaultTransform returns the identity transform: 100% scale and
// opacity, everything else zero.
func DefaultTransform() Transform {
	return Transform{
		Scale:   anim.Static(geom.Pt(100, 100)),
		Opacity: anim.Static(100.0),
	}
}
