package backend

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// GradientStop is a color at an offset in [0, 1] along a gradient.
type GradientStop struct {
	Offset float64
	Color  Color
}

// FillRule selects how path winding decides coverage.
type FillRule uint8

const (
	// NonZero fills wherever the winding number is not zero.
	NonZero FillRule = iota
	// EvenOdd fills wherever the winding number is odd.
	EvenOdd
)

// LineCap is the shape at the open ends of stroked lines.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape where stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle describes how a path outline is stroked.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Dashes alternates dash and gap lengths; empty means solid.
	Dashes     []float64
	DashOffset float64
}

// Style is the paint and fill-or-stroke options of one FillStroke call.
// A nil Stroke fills the path.
type Style struct {
	Paint    Paint
	Opacity  float64
	FillRule FillRule
	Stroke   *StrokeStyle
}

// CompositeOp is a compositing operator: a Porter-Duff operator or a
// separable or non-separable blend mode applied with source-over
// coverage. Names follow the canvas globalCompositeOperation vocabulary.
type CompositeOp uint8

const (
	SourceOver CompositeOp = iota
	DestinationIn
	DestinationOut
	DestinationAtop
	Lighter
	SourceIn

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
)

var compositeOpNames = [...]string{
	SourceOver:      "source-over",
	DestinationIn:   "destination-in",
	DestinationOut:  "destination-out",
	DestinationAtop: "destination-atop",
	Lighter:         "lighter",
	SourceIn:        "source-in",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
	BlendHue:        "hue",
	BlendSaturation: "saturation",
	BlendColor:      "color",
	BlendLuminosity: "luminosity",
}

// String returns the canvas name of the operator.
func (op CompositeOp) String() string {
	if int(op) < len(compositeOpNames) {
		return compositeOpNames[op]
	}
	return "unknown"
}
