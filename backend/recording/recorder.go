package recording

import (
	"fmt"
	"io"
	"slices"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

func init() {
	backend.Register("recording", func(width, height int) (backend.Backend, error) {
		return NewRecorder(width, height), nil
	})
}

// Recorder implements backend.Backend by recording commands.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command

	state   backend.State
	current backend.Target
	live    map[backend.Target]bool
	next    backend.Target

	// maxTargets caps live offscreen targets; zero means unlimited.
	maxTargets int
}

var _ backend.Backend = (*Recorder)(nil)

// NewRecorder creates a Recorder for a width x height surface.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 64),
		state:    backend.DefaultState(),
		live:     map[backend.Target]bool{backend.Screen: true},
		next:     backend.Screen + 1,
	}
}

// SetTargetLimit caps the number of live offscreen targets. Allocations
// beyond the cap fail with backend.ErrTargetAllocation.
func (r *Recorder) SetTargetLimit(n int) {
	r.maxTargets = n
}

// Resize changes the surface size.
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Reset drops recorded commands. Transform state and targets are kept.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// LiveTargets returns the number of allocated offscreen targets.
func (r *Recorder) LiveTargets() int {
	return len(r.live) - 1
}

// Finish returns an immutable Recording of the commands so far and resets
// the recorder.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{width: r.width, height: r.height, commands: slices.Clone(r.commands)}
	r.Reset()
	return rec
}

// NewPath implements backend.PathFactory.
func (r *Recorder) NewPath(capacityHint int) backend.PathBuilder {
	return geom.NewPath(capacityHint)
}

// SolidColor implements backend.StyleConv.
func (r *Recorder) SolidColor(c backend.Color) backend.Paint {
	return SolidPaint{Color: c}
}

// LinearGradient implements backend.StyleConv.
func (r *Recorder) LinearGradient(start, end geom.Point, stops []backend.GradientStop) backend.Paint {
	return LinearGradientPaint{Start: start, End: end, Stops: slices.Clone(stops)}
}

// RadialGradient implements backend.StyleConv.
func (r *Recorder) RadialGradient(center, focus geom.Point, radius float64, stops []backend.GradientStop) backend.Paint {
	return RadialGradientPaint{Center: center, Focus: focus, Radius: radius, Stops: slices.Clone(stops)}
}

// Size implements backend.RenderContext.
func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// ClearRect implements backend.RenderContext.
func (r *Recorder) ClearRect(x, y, w, h float64, c backend.Color) {
	r.commands = append(r.commands, ClearRectCommand{
		Rect:  geom.NewRect(geom.Pt(x, y), geom.Pt(x+w, y+h)),
		Color: c,
	})
}

// ApplyTransform implements backend.RenderContext.
func (r *Recorder) ApplyTransform(m geom.Matrix, opacity *float64) backend.State {
	prev := r.state
	r.state.Matrix = r.state.Matrix.Multiply(m)
	if opacity != nil {
		r.state.Opacity *= *opacity
	}
	return prev
}

// ResetTransform implements backend.RenderContext.
func (r *Recorder) ResetTransform(prev *backend.State) {
	if prev == nil {
		r.state = backend.DefaultState()
		return
	}
	r.state = *prev
}

// State returns the current transform state.
func (r *Recorder) State() backend.State {
	return r.state
}

// FillStroke implements backend.RenderContext.
func (r *Recorder) FillStroke(path backend.PathBuilder, style *backend.Style) error {
	p, ok := path.(*geom.Path)
	if !ok {
		return fmt.Errorf("%w: %T", backend.ErrForeignPath, path)
	}
	paint, ok := style.Paint.(Paint)
	if !ok {
		return fmt.Errorf("%w: unknown paint %T", backend.ErrBackend, style.Paint)
	}

	opacity := r.state.Opacity * style.Opacity
	if style.Stroke != nil {
		stroke := *style.Stroke
		stroke.Dashes = slices.Clone(stroke.Dashes)
		r.commands = append(r.commands, StrokePathCommand{
			Path: p.Clone(), Paint: paint, Opacity: opacity, Transform: r.state.Matrix, Stroke: stroke,
		})
		return nil
	}
	r.commands = append(r.commands, FillPathCommand{
		Path: p.Clone(), Paint: paint, Opacity: opacity, Transform: r.state.Matrix, Rule: style.FillRule,
	})
	return nil
}

// NewTarget implements backend.RenderContext.
func (r *Recorder) NewTarget() (backend.Target, error) {
	if r.maxTargets > 0 && r.LiveTargets() >= r.maxTargets {
		return 0, fmt.Errorf("%w: %d targets live", backend.ErrTargetAllocation, r.LiveTargets())
	}
	t := r.next
	r.next++
	r.live[t] = true
	r.commands = append(r.commands, NewTargetCommand{Target: t})
	return t, nil
}

// SetTarget implements backend.RenderContext.
func (r *Recorder) SetTarget(t backend.Target) error {
	if !r.live[t] {
		return fmt.Errorf("%w: %d", backend.ErrUnknownTarget, t)
	}
	r.current = t
	r.commands = append(r.commands, SetTargetCommand{Target: t})
	return nil
}

// CurrentTarget implements backend.RenderContext.
func (r *Recorder) CurrentTarget() backend.Target {
	return r.current
}

// Composite implements backend.RenderContext.
func (r *Recorder) Composite(dst, src backend.Target, op backend.CompositeOp) error {
	if !r.live[dst] || !r.live[src] {
		return fmt.Errorf("%w: composite %d onto %d", backend.ErrUnknownTarget, src, dst)
	}
	r.commands = append(r.commands, CompositeCommand{Dst: dst, Src: src, Op: op})
	return nil
}

// ReleaseTarget implements backend.RenderContext.
func (r *Recorder) ReleaseTarget(t backend.Target) {
	if t == backend.Screen || !r.live[t] {
		return
	}
	delete(r.live, t)
	if r.current == t {
		r.current = backend.Screen
	}
	r.commands = append(r.commands, ReleaseTargetCommand{Target: t})
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Size returns the surface size the recording was made for.
func (r *Recording) Size() (int, int) {
	return r.width, r.height
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Playback replays the recording into dst, which must have the same size.
func (r *Recording) Playback(dst backend.Backend) error {
	if w, h := dst.Size(); w != r.width || h != r.height {
		return fmt.Errorf("%w: recording %dx%d, target %dx%d", backend.ErrSizeMismatch, r.width, r.height, w, h)
	}

	targets := map[backend.Target]backend.Target{backend.Screen: backend.Screen}
	defer func() {
		for src, t := range targets {
			if src != backend.Screen {
				dst.ReleaseTarget(t)
			}
		}
		dst.ResetTransform(nil)
	}()

	draw := func(p *geom.Path, paint Paint, opacity float64, m geom.Matrix, style backend.Style) error {
		dst.ResetTransform(&backend.State{Matrix: m, Opacity: 1})
		pb := dst.NewPath(len(p.Elements()))
		p.Replay(pb)
		style.Paint = convertPaint(paint, dst)
		style.Opacity = opacity
		return dst.FillStroke(pb, &style)
	}

	for _, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case ClearRectCommand:
			dst.ClearRect(c.Rect.Min.X, c.Rect.Min.Y, c.Rect.Width(), c.Rect.Height(), c.Color)
		case FillPathCommand:
			err = draw(c.Path, c.Paint, c.Opacity, c.Transform, backend.Style{FillRule: c.Rule})
		case StrokePathCommand:
			stroke := c.Stroke
			err = draw(c.Path, c.Paint, c.Opacity, c.Transform, backend.Style{Stroke: &stroke})
		case NewTargetCommand:
			targets[c.Target], err = dst.NewTarget()
		case SetTargetCommand:
			err = dst.SetTarget(targets[c.Target])
		case CompositeCommand:
			err = dst.Composite(targets[c.Dst], targets[c.Src], c.Op)
		case ReleaseTargetCommand:
			dst.ReleaseTarget(targets[c.Target])
			delete(targets, c.Target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes a line per command in a human-readable form.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := fmt.Fprintf(w, "recording %dx%d, %d commands\n", r.width, r.height, len(r.commands))
	total += int64(n)
	if err != nil {
		return total, err
	}
	for i, cmd := range r.commands {
		n, err = fmt.Fprintf(w, "%4d %-13s %s\n", i, cmd.Type(), describe(cmd))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func describe(cmd Command) string {
	switch c := cmd.(type) {
	case ClearRectCommand:
		return fmt.Sprintf("rect=%v color=%v", c.Rect, c.Color)
	case FillPathCommand:
		bb := c.Path.BoundingBox()
		return fmt.Sprintf("elements=%d bounds=%v opacity=%.3f paint=%T rule=%d",
			len(c.Path.Elements()), bb, c.Opacity, c.Paint, c.Rule)
	case StrokePathCommand:
		return fmt.Sprintf("elements=%d width=%.2f opacity=%.3f paint=%T",
			len(c.Path.Elements()), c.Stroke.Width, c.Opacity, c.Paint)
	case NewTargetCommand:
		return fmt.Sprintf("target=%d", c.Target)
	case SetTargetCommand:
		return fmt.Sprintf("target=%d", c.Target)
	case CompositeCommand:
		return fmt.Sprintf("dst=%d src=%d op=%s", c.Dst, c.Src, c.Op)
	case ReleaseTargetCommand:
		return fmt.Sprintf("target=%d", c.Target)
	}
	return ""
}
