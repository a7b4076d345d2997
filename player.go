package lottie

import (
	"math"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// Player renders an Animation frame by frame into a backend.
//
// A Player is not safe for concurrent use. The Animation it plays is only
// read, so many players on different goroutines may share one.
type Player struct {
	anim *Animation
	opts options
	r    *renderer

	width, height int
	base          geom.Matrix
	seen          backend.Backend

	// start and end bound playback, end exclusive.
	start, end float64
	frame      float64

	// acc holds elapsed frames not yet consumed.
	acc      float64
	rendered bool
}

// NewPlayer creates a player positioned at the first frame of a.
func NewPlayer(a *Animation, opts ...Option) *Player {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Player{
		anim:  a,
		opts:  o,
		r:     newRenderer(a),
		base:  geom.Identity(),
		start: a.InPoint,
		end:   a.OutPoint,
		frame: a.InPoint,
	}
	if o.segment != "" {
		if err := p.PlaySegment(o.segment); err != nil {
			Logger().Warn("lottie: segment ignored", "marker", o.segment, "err", err)
		}
	}
	return p
}

// Frame returns the current frame.
func (p *Player) Frame() float64 {
	return p.frame
}

// Seek moves playback to frame, clamped to the playback range. The next
// RenderNextFrame call renders it.
func (p *Player) Seek(frame float64) {
	p.frame = p.clamp(frame)
	p.acc = 0
	p.rendered = false
}

// PlaySegment restricts playback to the range of the named marker and
// seeks to its start.
func (p *Player) PlaySegment(name string) error {
	m, err := p.anim.Marker(name)
	if err != nil {
		return err
	}
	p.start, p.end = m.Time, m.End()
	Logger().Info("lottie: playing segment", "marker", m.Name, "start", p.start, "end", p.end)
	p.Seek(p.start)
	return nil
}

// Resize recomputes the transform that fits the composition into a
// width x height surface.
func (p *Player) Resize(width, height int) {
	p.width, p.height = width, height
	p.base = fitViewport(p.anim.Width, p.anim.Height, width, height)
}

// RenderNextFrame advances playback by elapsed wall-clock seconds and
// renders when at least one whole frame has passed. It reports whether it
// drew. The first call always draws. After a stall of more than two frames
// playback skips ahead by the whole number of elapsed frames and draws
// once.
func (p *Player) RenderNextFrame(b backend.Backend, elapsed float64) (bool, error) {
	if !p.rendered {
		p.rendered = true
		return true, p.RenderFrame(b, p.frame)
	}

	p.acc += elapsed * p.anim.FrameRate
	if p.acc < 1 {
		return false, nil
	}
	step := 1.0
	if p.acc > 2 {
		step = math.Floor(p.acc)
		Logger().Debug("lottie: frames skipped", "count", step-1, "frame", p.frame)
	}
	p.acc -= step

	next := p.advance(step)
	if next == p.frame && !p.opts.loop {
		return false, nil
	}
	return true, p.RenderFrame(b, next)
}

// advance returns the frame step frames after the current one, wrapped
// into the playback range or held at its last frame.
func (p *Player) advance(step float64) float64 {
	next := p.frame + step
	if next < p.end {
		return next
	}
	if !p.opts.loop {
		return p.last()
	}
	span := p.end - p.start
	if span <= 0 {
		return p.start
	}
	return p.start + math.Mod(next-p.start, span)
}

// last returns the final frame of the playback range.
func (p *Player) last() float64 {
	return math.Max(p.start, p.end-1)
}

func (p *Player) clamp(frame float64) float64 {
	return math.Max(p.start, math.Min(frame, p.last()))
}

// RenderFrame clears the surface of b and draws frame into it. It resizes
// the viewport when the surface size changed since the last call.
// Unsupported features are skipped and logged; backend failures are
// returned.
func (p *Player) RenderFrame(b backend.Backend, frame float64) error {
	if w, h := b.Size(); w != p.width || h != p.height {
		p.Resize(w, h)
	}
	if b != p.seen {
		propagateLogger(b)
		p.seen = b
	}
	p.frame = frame
	p.r.b = b

	b.ResetTransform(nil)
	if err := b.SetTarget(backend.Screen); err != nil {
		return err
	}
	b.ClearRect(0, 0, float64(p.width), float64(p.height), p.opts.background)
	b.ApplyTransform(p.base, nil)
	defer b.ResetTransform(nil)
	return p.r.renderComposition(p.anim.Layers, frame, 0)
}
