package lottie

import (
	"fmt"
	"slices"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// compositorState tracks the offscreen work of one layer.
type compositorState uint8

const (
	stateIdle compositorState = iota
	stateMatteSourceOpen
	stateMaskAccumulate
	stateMatteConsumed
)

var compositorStateNames = [...]string{
	stateIdle:            "idle",
	stateMatteSourceOpen: "matte-source-open",
	stateMaskAccumulate:  "mask-accumulate",
	stateMatteConsumed:   "matte-consumed",
}

func (s compositorState) String() string {
	if int(s) < len(compositorStateNames) {
		return compositorStateNames[s]
	}
	return fmt.Sprintf("compositorState(%d)", s)
}

// compositorTransitions lists the states reachable from each state.
// Release returns to idle from anywhere.
var compositorTransitions = [...][]compositorState{
	stateIdle:            {stateMatteSourceOpen, stateMaskAccumulate},
	stateMatteSourceOpen: {stateMaskAccumulate, stateMatteConsumed},
	stateMaskAccumulate:  {stateMaskAccumulate, stateMatteConsumed},
	stateMatteConsumed:   nil,
}

// compositor renders one layer through offscreen targets:
//
//	Idle → MatteSourceOpen → [MaskAccumulate]* → MatteConsumed → Idle
//
// The matte source is drawn into a stencil target, masks fold into a
// second stencil that starts opaque, the layer content is drawn into its
// own target, cut by both stencils and composited onto the parent target
// with the layer blend mode. Every target is released before run returns.
type compositor struct {
	r     *renderer
	set   *layerSet
	layer int
	frame float64
	depth int

	state   compositorState
	parent  backend.Target
	targets []backend.Target
}

// open allocates a target and makes it current.
func (c *compositor) open() (backend.Target, error) {
	b := c.r.b
	t, err := b.NewTarget()
	if err != nil {
		return t, err
	}
	c.targets = append(c.targets, t)
	if err := b.SetTarget(t); err != nil {
		return t, err
	}
	return t, nil
}

// clearOpaque fills the current target with opaque white.
func (c *compositor) clearOpaque() {
	w, h := c.r.b.Size()
	c.r.b.ClearRect(0, 0, float64(w), float64(h), backend.White)
}

// enter moves to next, failing on transitions the state machine does
// not allow.
func (c *compositor) enter(next compositorState) error {
	if int(c.state) >= len(compositorTransitions) || !slices.Contains(compositorTransitions[c.state], next) {
		return fmt.Errorf("lottie: compositor cannot go from %v to %v", c.state, next)
	}
	c.state = next
	return nil
}

func (c *compositor) release() {
	b := c.r.b
	Logger().Debug("lottie: layer composited",
		"layer", c.set.layers[c.layer].Name, "state", c.state, "targets", len(c.targets))
	for _, t := range c.targets {
		b.ReleaseTarget(t)
	}
	c.targets = c.targets[:0]
	// SetTarget cannot fail for the parent, which outlives this layer.
	_ = b.SetTarget(c.parent)
	c.state = stateIdle
}

func (c *compositor) run(world geom.Matrix, opacity float64, useMatte bool) error {
	r, b := c.r, c.r.b
	l := c.set.layers[c.layer]
	c.parent = b.CurrentTarget()
	defer c.release()

	var matte backend.Target
	matteOp := backend.DestinationIn
	hasMatte := false
	if useMatte {
		switch l.MatteMode {
		case MatteLuma, MatteLumaInverted:
			r.warn(&UnsupportedFeatureError{Feature: "luma matte"}, l)
			return nil
		case MatteAlphaInverted:
			matteOp = backend.DestinationOut
		}
		if src, ok := c.set.matteSource(c.layer); ok {
			t, err := c.open()
			if err != nil {
				return err
			}
			matte, hasMatte = t, true
			if err := c.enter(stateMatteSourceOpen); err != nil {
				return err
			}
			if c.set.layers[src].visible(c.frame) {
				if err := r.renderLayer(c.set, src, c.frame, c.depth, false); err != nil {
					return err
				}
			}
		} else {
			Logger().Debug("lottie: matte source missing, drawing without matte", "layer", l.Name)
		}
	}

	var stencil backend.Target
	hasMasks := hasActiveMasks(l)
	if hasMasks {
		t, err := c.open()
		if err != nil {
			return err
		}
		stencil = t
		c.clearOpaque()
		lf := l.layerFrame(c.frame)
		for k := range l.Masks {
			if err := c.enter(stateMaskAccumulate); err != nil {
				return err
			}
			if err := c.foldMask(stencil, &l.Masks[k], world, lf); err != nil {
				return err
			}
		}
	}

	content, err := c.open()
	if err != nil {
		return err
	}
	if err := r.drawContent(l, world, opacity, c.frame, c.depth); err != nil {
		return err
	}
	if hasMasks {
		if err := b.Composite(content, stencil, backend.DestinationIn); err != nil {
			return err
		}
	}
	if hasMatte {
		if err := b.Composite(content, matte, matteOp); err != nil {
			return err
		}
		if err := c.enter(stateMatteConsumed); err != nil {
			return err
		}
	}

	op, err := compositeOp(l.Blend)
	if err != nil {
		r.warn(err, l)
	}
	if err := b.SetTarget(c.parent); err != nil {
		return err
	}
	return b.Composite(c.parent, content, op)
}

// foldMask draws mask m into a scratch target and combines it into
// stencil with the operator of its mode.
func (c *compositor) foldMask(stencil backend.Target, m *Mask, world geom.Matrix, frame float64) error {
	r, b := c.r, c.r.b
	l := c.set.layers[c.layer]

	var op backend.CompositeOp
	switch m.Mode {
	case MaskNone:
		return nil
	case MaskAdd:
		op = backend.DestinationIn
	case MaskSubtract:
		op = backend.DestinationOut
	case MaskIntersect:
		op = backend.DestinationAtop
	case MaskLighten:
		op = backend.Lighter
	default:
		r.warn(&UnsupportedFeatureError{Feature: m.Mode.String() + " mask"}, l)
		return nil
	}
	if m.Expand.Value(frame) != 0 {
		r.warn(&UnsupportedFeatureError{Feature: "mask expansion"}, l)
	}

	scratch, err := c.open()
	if err != nil {
		return err
	}
	prev := b.ApplyTransform(world, nil)
	pb := b.NewPath(16)
	appendBezier(pb, m.Shape.Value(frame), false)
	err = b.FillStroke(pb, &backend.Style{Paint: b.SolidColor(backend.White), Opacity: percent(m.Opacity, frame)})
	b.ResetTransform(&prev)
	if err != nil {
		return err
	}

	if m.Inverted {
		inv, err := c.open()
		if err != nil {
			return err
		}
		c.clearOpaque()
		if err := b.Composite(inv, scratch, backend.DestinationOut); err != nil {
			return err
		}
		b.ReleaseTarget(scratch)
		scratch = inv
	}
	if err := b.Composite(stencil, scratch, op); err != nil {
		return err
	}
	b.ReleaseTarget(scratch)
	return b.SetTarget(stencil)
}

func hasActiveMasks(l *Layer) bool {
	for _, m := range l.Masks {
		if m.Mode != MaskNone {
			return true
		}
	}
	return false
}

var blendOps = [...]backend.CompositeOp{
	BlendNormal:     backend.SourceOver,
	BlendMultiply:   backend.BlendMultiply,
	BlendScreen:     backend.BlendScreen,
	BlendOverlay:    backend.BlendOverlay,
	BlendDarken:     backend.BlendDarken,
	BlendLighten:    backend.BlendLighten,
	BlendColorDodge: backend.BlendColorDodge,
	BlendColorBurn:  backend.BlendColorBurn,
	BlendHardLight:  backend.BlendHardLight,
	BlendSoftLight:  backend.BlendSoftLight,
	BlendDifference: backend.BlendDifference,
	BlendExclusion:  backend.BlendExclusion,
	BlendHue:        backend.BlendHue,
	BlendSaturation: backend.BlendSaturation,
	BlendColor:      backend.BlendColor,
	BlendLuminosity: backend.BlendLuminosity,
	BlendAdd:        backend.Lighter,
}

// compositeOp maps a layer blend mode to a backend operator. Unknown
// modes fall back to source-over with an error.
func compositeOp(m BlendMode) (backend.CompositeOp, error) {
	if int(m) < len(blendOps) {
		return blendOps[m], nil
	}
	return backend.SourceOver, &UnsupportedFeatureError{Feature: "blend mode"}
}
