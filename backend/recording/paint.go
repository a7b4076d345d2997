package recording

import (
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// Paint is the sealed set of paints the recorder produces.
type Paint interface {
	isPaint()
}

// SolidPaint is a single color.
type SolidPaint struct {
	Color backend.Color
}

func (SolidPaint) isPaint() {}

// LinearGradientPaint varies color along the line Start-End.
type LinearGradientPaint struct {
	Start, End geom.Point
	Stops      []backend.GradientStop
}

func (LinearGradientPaint) isPaint() {}

// RadialGradientPaint varies color from Focus out to the circle at Center.
type RadialGradientPaint struct {
	Center, Focus geom.Point
	Radius        float64
	Stops         []backend.GradientStop
}

func (RadialGradientPaint) isPaint() {}

// convertPaint rebuilds p with another backend's StyleConv.
func convertPaint(p Paint, dst backend.StyleConv) backend.Paint {
	switch p := p.(type) {
	case SolidPaint:
		return dst.SolidColor(p.Color)
	case LinearGradientPaint:
		return dst.LinearGradient(p.Start, p.End, p.Stops)
	case RadialGradientPaint:
		return dst.RadialGradient(p.Center, p.Focus, p.Radius, p.Stops)
	}
	return dst.SolidColor(backend.Black)
}
