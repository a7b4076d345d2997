package raster

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
	"github.com/gogpu/lottie/internal/blend"
	"github.com/gogpu/lottie/internal/stroke"
)

func init() {
	backend.Register("raster", func(width, height int) (backend.Backend, error) {
		return New(width, height)
	})
}

// flattenTolerance is the device-space chord error used when strokes are
// flattened.
const flattenTolerance = 0.2

// Backend draws into RGBA images.
//
// A Backend is not safe for concurrent use.
type Backend struct {
	width, height int

	targets map[backend.Target]*image.RGBA
	current backend.Target
	next    backend.Target
	state   backend.State

	ras     *vector.Rasterizer
	mask    *image.Alpha
	scratch *image.Alpha

	log *slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

// New creates a backend with a transparent width x height screen.
func New(width, height int) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d surface", backend.ErrSizeMismatch, width, height)
	}
	b := &Backend{
		targets: map[backend.Target]*image.RGBA{},
		next:    backend.Screen + 1,
		state:   backend.DefaultState(),
		log:     slog.New(slog.DiscardHandler),
	}
	b.allocate(width, height)
	return b, nil
}

func (b *Backend) allocate(width, height int) {
	b.width, b.height = width, height
	r := image.Rect(0, 0, width, height)
	b.targets[backend.Screen] = image.NewRGBA(r)
	b.ras = vector.NewRasterizer(width, height)
	b.mask = image.NewAlpha(r)
	b.scratch = image.NewAlpha(r)
}

// SetLogger sets the logger for target lifecycle diagnostics. A nil
// logger disables logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.log = l
}

// Image returns the screen surface. The image is reused across frames.
func (b *Backend) Image() *image.RGBA {
	return b.targets[backend.Screen]
}

// Resize reallocates the screen with a new size. Offscreen targets are
// released.
func (b *Backend) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d surface", backend.ErrSizeMismatch, width, height)
	}
	for t := range b.targets {
		b.ReleaseTarget(t)
	}
	b.current = backend.Screen
	b.allocate(width, height)
	return nil
}

// NewPath implements backend.PathFactory.
func (b *Backend) NewPath(capacityHint int) backend.PathBuilder {
	return geom.NewPath(capacityHint)
}

// SolidColor implements backend.StyleConv.
func (b *Backend) SolidColor(c backend.Color) backend.Paint {
	return Solid{Color: c}
}

// LinearGradient implements backend.StyleConv.
func (b *Backend) LinearGradient(start, end geom.Point, stops []backend.GradientStop) backend.Paint {
	return Linear{Start: start, End: end, Stops: sortedStops(stops)}
}

// RadialGradient implements backend.StyleConv.
func (b *Backend) RadialGradient(center, focus geom.Point, radius float64, stops []backend.GradientStop) backend.Paint {
	return Radial{Center: center, Focus: focus, Radius: radius, Stops: sortedStops(stops)}
}

// Size implements backend.RenderContext.
func (b *Backend) Size() (int, int) {
	return b.width, b.height
}

// ClearRect implements backend.RenderContext.
func (b *Backend) ClearRect(x, y, w, h float64, c backend.Color) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	dst := b.targets[b.current]
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(nrgba(c, 1)), image.Point{}, draw.Src)
}

// ApplyTransform implements backend.RenderContext.
func (b *Backend) ApplyTransform(m geom.Matrix, opacity *float64) backend.State {
	prev := b.state
	b.state.Matrix = b.state.Matrix.Multiply(m)
	if opacity != nil {
		b.state.Opacity *= *opacity
	}
	return prev
}

// ResetTransform implements backend.RenderContext.
func (b *Backend) ResetTransform(prev *backend.State) {
	if prev == nil {
		b.state = backend.DefaultState()
		return
	}
	b.state = *prev
}

// FillStroke implements backend.RenderContext.
func (b *Backend) FillStroke(path backend.PathBuilder, style *backend.Style) error {
	p, ok := path.(*geom.Path)
	if !ok {
		return fmt.Errorf("%w: %T", backend.ErrForeignPath, path)
	}
	opacity := b.state.Opacity * style.Opacity
	src, ok := source(style.Paint, b.state.Matrix, opacity)
	if !ok {
		return fmt.Errorf("%w: unknown paint %T", backend.ErrBackend, style.Paint)
	}
	if opacity <= 0 || p.IsEmpty() {
		return nil
	}

	dev := p.Transform(b.state.Matrix)
	if style.Stroke != nil {
		outline := strokeOutline(dev, style.Stroke, b.state.Matrix)
		if outline.IsEmpty() {
			return nil
		}
		b.coverage(outline, b.mask)
	} else if style.FillRule == backend.EvenOdd {
		b.evenOdd(dev)
	} else {
		b.coverage(dev, b.mask)
	}

	dst := b.targets[b.current]
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, b.mask, image.Point{}, draw.Over)
	return nil
}

// strokeOutline expands the device-space path dev into a fill outline.
// Widths and dash lengths scale with the area scale of m.
func strokeOutline(dev *geom.Path, s *backend.StrokeStyle, m geom.Matrix) *geom.Path {
	scale := math.Sqrt(math.Abs(m.Determinant()))
	lines := dev.Flatten(flattenTolerance)
	if len(s.Dashes) > 0 {
		dashes := make([]float64, len(s.Dashes))
		for i, d := range s.Dashes {
			dashes[i] = d * scale
		}
		lines = stroke.Dash(lines, dashes, s.DashOffset*scale)
	}
	return stroke.Outline(lines, stroke.Style{
		Width:      s.Width * scale,
		Cap:        strokeCap(s.Cap),
		Join:       strokeJoin(s.Join),
		MiterLimit: s.MiterLimit,
		Tolerance:  flattenTolerance,
	})
}

func strokeCap(c backend.LineCap) stroke.Cap {
	switch c {
	case backend.CapRound:
		return stroke.CapRound
	case backend.CapSquare:
		return stroke.CapSquare
	}
	return stroke.CapButt
}

func strokeJoin(j backend.LineJoin) stroke.Join {
	switch j {
	case backend.JoinRound:
		return stroke.JoinRound
	case backend.JoinBevel:
		return stroke.JoinBevel
	}
	return stroke.JoinMiter
}

// coverage scan converts the device-space path p with the non-zero rule
// into dst.
func (b *Backend) coverage(p *geom.Path, dst *image.Alpha) {
	b.ras.Reset(b.width, b.height)
	b.ras.DrawOp = draw.Src
	p.Replay(&rasterSink{z: b.ras})
	b.ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
}

// evenOdd combines the coverage of each subpath of p into b.mask with XOR.
func (b *Backend) evenOdd(p *geom.Path) {
	clear(b.mask.Pix)
	var sub *geom.Path
	flush := func() {
		if sub == nil {
			return
		}
		b.coverage(sub, b.scratch)
		for i, s := range b.scratch.Pix {
			d := uint32(b.mask.Pix[i])
			c := d + uint32(s) - 2*d*uint32(s)/255
			b.mask.Pix[i] = uint8(min(c, 255))
		}
		sub = nil
	}
	for _, e := range p.Elements() {
		if m, ok := e.(geom.MoveTo); ok {
			flush()
			sub = geom.NewPath(8)
			sub.MoveTo(m.Point)
			continue
		}
		if sub == nil {
			sub = geom.NewPath(8)
		}
		switch e := e.(type) {
		case geom.LineTo:
			sub.LineTo(e.Point)
		case geom.QuadTo:
			sub.QuadTo(e.Control, e.Point)
		case geom.CubicTo:
			sub.CubicTo(e.Control1, e.Control2, e.Point)
		case geom.Close:
			sub.Close()
		}
	}
	flush()
}

// rasterSink feeds path commands to a vector.Rasterizer, closing every
// subpath.
type rasterSink struct {
	z    *vector.Rasterizer
	open bool
}

func (s *rasterSink) MoveTo(p geom.Point) {
	s.Close()
	s.z.MoveTo(float32(p.X), float32(p.Y))
	s.open = true
}

func (s *rasterSink) LineTo(p geom.Point) {
	s.z.LineTo(float32(p.X), float32(p.Y))
}

func (s *rasterSink) QuadTo(c, p geom.Point) {
	s.z.QuadTo(float32(c.X), float32(c.Y), float32(p.X), float32(p.Y))
}

func (s *rasterSink) CubicTo(c1, c2, p geom.Point) {
	s.z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(p.X), float32(p.Y))
}

func (s *rasterSink) Close() {
	if s.open {
		s.z.ClosePath()
		s.open = false
	}
}

// NewTarget implements backend.RenderContext.
func (b *Backend) NewTarget() (backend.Target, error) {
	t := b.next
	b.next++
	b.targets[t] = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	b.log.Debug("raster: target allocated", "target", int(t), "live", len(b.targets)-1)
	return t, nil
}

// SetTarget implements backend.RenderContext.
func (b *Backend) SetTarget(t backend.Target) error {
	if _, ok := b.targets[t]; !ok {
		return fmt.Errorf("%w: %d", backend.ErrUnknownTarget, t)
	}
	b.current = t
	return nil
}

// CurrentTarget implements backend.RenderContext.
func (b *Backend) CurrentTarget() backend.Target {
	return b.current
}

// Composite implements backend.RenderContext.
func (b *Backend) Composite(dst, src backend.Target, op backend.CompositeOp) error {
	d, ok1 := b.targets[dst]
	s, ok2 := b.targets[src]
	if !ok1 || !ok2 {
		return fmt.Errorf("%w: composite %d onto %d", backend.ErrUnknownTarget, src, dst)
	}
	if d.Rect != s.Rect {
		return fmt.Errorf("%w: composite %v onto %v", backend.ErrSizeMismatch, s.Rect.Size(), d.Rect.Size())
	}
	blend.Pixels(d.Pix, s.Pix, blendOp(op))
	return nil
}

// ReleaseTarget implements backend.RenderContext.
func (b *Backend) ReleaseTarget(t backend.Target) {
	if t == backend.Screen {
		return
	}
	if _, ok := b.targets[t]; !ok {
		return
	}
	delete(b.targets, t)
	if b.current == t {
		b.current = backend.Screen
	}
	b.log.Debug("raster: target released", "target", int(t), "live", len(b.targets)-1)
}

var blendOps = map[backend.CompositeOp]blend.Op{
	backend.SourceOver:      blend.SourceOver,
	backend.SourceIn:        blend.SourceIn,
	backend.DestinationIn:   blend.DestinationIn,
	backend.DestinationOut:  blend.DestinationOut,
	backend.DestinationAtop: blend.DestinationAtop,
	backend.Lighter:         blend.Plus,
	backend.BlendMultiply:   blend.Multiply,
	backend.BlendScreen:     blend.Screen,
	backend.BlendOverlay:    blend.Overlay,
	backend.BlendDarken:     blend.Darken,
	backend.BlendLighten:    blend.Lighten,
	backend.BlendColorDodge: blend.ColorDodge,
	backend.BlendColorBurn:  blend.ColorBurn,
	backend.BlendHardLight:  blend.HardLight,
	backend.BlendSoftLight:  blend.SoftLight,
	backend.BlendDifference: blend.Difference,
	backend.BlendExclusion:  blend.Exclusion,
	backend.BlendHue:        blend.Hue,
	backend.BlendSaturation: blend.Saturation,
	backend.BlendColor:      blend.Color,
	backend.BlendLuminosity: blend.Luminosity,
}

func blendOp(op backend.CompositeOp) blend.Op {
	if o, ok := blendOps[op]; ok {
		return o
	}
	return blend.SourceOver
}
