package lottie

import (
	"errors"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// renderer draws the layer stacks of one animation. It keeps the set of
// unsupported features already reported so each is logged once per layer.
type renderer struct {
	anim   *Animation
	b      backend.Backend
	warned map[warnKey]struct{}
}

type warnKey struct {
	feature string
	layer   string
}

func newRenderer(a *Animation) *renderer {
	return &renderer{anim: a, warned: map[warnKey]struct{}{}}
}

// warn logs an unsupported feature the first time it is seen in a layer.
// Other errors are logged every time.
func (r *renderer) warn(err error, l *Layer) {
	var name string
	if l != nil {
		name = l.Name
	}
	var uf *UnsupportedFeatureError
	if !errors.As(err, &uf) {
		Logger().Warn("lottie: layer skipped", "layer", name, "err", err)
		return
	}
	key := warnKey{feature: uf.Feature, layer: name}
	if _, ok := r.warned[key]; ok {
		return
	}
	r.warned[key] = struct{}{}
	Logger().Warn("lottie: unsupported feature skipped", "feature", uf.Feature, "layer", name)
}

// layerSet is one composition's layer list with parent lookup.
type layerSet struct {
	layers  []*Layer
	byIndex map[int]int
	world   map[int]geom.Matrix
}

func newLayerSet(layers []*Layer) *layerSet {
	s := &layerSet{layers: layers, byIndex: make(map[int]int, len(layers)), world: map[int]geom.Matrix{}}
	for i, l := range layers {
		s.byIndex[l.Index] = i
	}
	return s
}

// worldMatrix returns the matrix of layer i composed with its parent
// chain, and the layer's own opacity. Parent opacity does not inherit.
func (s *layerSet) worldMatrix(i int, frame float64) (geom.Matrix, float64, error) {
	l := s.layers[i]
	m, opacity, err := l.Transform.Matrix(l.layerFrame(frame), l.AutoOrient)
	if err != nil {
		return m, 0, err
	}

	base := geom.Identity()
	var parents []int
	for p := l.Parent; p != nil; {
		j, ok := s.byIndex[*p]
		if !ok {
			return m, 0, schemaErrorf(l.Name, "parent %d does not exist", *p)
		}
		if len(parents) >= maxNestingDepth {
			return m, 0, schemaErrorf(l.Name, "parent chain longer than %d", maxNestingDepth)
		}
		if w, ok := s.world[j]; ok {
			base = w
			break
		}
		parents = append(parents, j)
		p = s.layers[j].Parent
	}
	return s.chain(base, parents, m, frame), opacity, nil
}

// chain applies the parents, nearest first, after m and then base, and
// caches each parent's world matrix. Parents whose transform is
// unsupported count as identity.
func (s *layerSet) chain(base geom.Matrix, parents []int, m geom.Matrix, frame float64) geom.Matrix {
	acc := base
	for k := len(parents) - 1; k >= 0; k-- {
		j := parents[k]
		p := s.layers[j]
		pm, _, err := p.Transform.Matrix(p.layerFrame(frame), p.AutoOrient)
		if err != nil {
			pm = geom.Identity()
		}
		acc = acc.Multiply(pm)
		s.world[j] = acc
	}
	return acc.Multiply(m)
}

// matteSource returns the index of the layer that provides the matte of
// layer i: the layer named by MatteParent, or the preceding layer when it
// is flagged as a matte source.
func (s *layerSet) matteSource(i int) (int, bool) {
	l := s.layers[i]
	if l.MatteParent != nil {
		j, ok := s.byIndex[*l.MatteParent]
		return j, ok && j != i
	}
	if i > 0 && s.layers[i-1].MatteSource {
		return i - 1, true
	}
	return -1, false
}

// renderComposition draws layers back to front at frame.
func (r *renderer) renderComposition(layers []*Layer, frame float64, depth int) error {
	if depth > maxNestingDepth {
		return schemaErrorf("assets", "precomps nested deeper than %d", maxNestingDepth)
	}
	set := newLayerSet(layers)
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.MatteSource || !l.visible(frame) {
			continue
		}
		if err := r.renderLayer(set, i, frame, depth, true); err != nil {
			return err
		}
	}
	return nil
}

// renderLayer draws layer i, through offscreen targets when it has a
// matte, masks or a blend mode. withMatte is false for matte sources.
func (r *renderer) renderLayer(set *layerSet, i int, frame float64, depth int, withMatte bool) error {
	l := set.layers[i]
	if l.ThreeD {
		r.warn(&UnsupportedFeatureError{Feature: "3D layer"}, l)
		return nil
	}
	if l.EffectCount > 0 {
		r.warn(&UnsupportedFeatureError{Feature: "layer effects"}, l)
	}
	if l.StyleCount > 0 {
		r.warn(&UnsupportedFeatureError{Feature: "layer styles"}, l)
	}

	world, opacity, err := set.worldMatrix(i, frame)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			r.warn(err, l)
			return nil
		}
		return err
	}

	matte := withMatte && l.MatteMode != MatteNone
	if matte || hasActiveMasks(l) || l.Blend != BlendNormal {
		c := &compositor{r: r, set: set, layer: i, frame: frame, depth: depth}
		return c.run(world, opacity, matte)
	}
	return r.drawContent(l, world, opacity, frame, depth)
}

// drawContent draws the layer's own content into the current target.
func (r *renderer) drawContent(l *Layer, world geom.Matrix, opacity, frame float64, depth int) error {
	b := r.b
	prev := b.ApplyTransform(world, &opacity)
	defer b.ResetTransform(&prev)

	switch l.Kind {
	case LayerShape:
		tree, err := buildDrawTree(l.Shapes, l.layerFrame(frame), func(err error) { r.warn(err, l) })
		if err != nil {
			return err
		}
		return tree.draw(b)
	case LayerSolid:
		if l.SolidColor.A <= 0 {
			return nil
		}
		pb := b.NewPath(5)
		pb.MoveTo(geom.Pt(0, 0))
		pb.LineTo(geom.Pt(l.Width, 0))
		pb.LineTo(geom.Pt(l.Width, l.Height))
		pb.LineTo(geom.Pt(0, l.Height))
		pb.Close()
		return b.FillStroke(pb, &backend.Style{Paint: b.SolidColor(solidColor(l.SolidColor)), Opacity: 1})
	case LayerPrecomp:
		asset := r.anim.Asset(l.RefID)
		if asset == nil {
			return schemaErrorf(l.Name, "asset %q does not exist", l.RefID)
		}
		return r.renderComposition(asset.Layers, l.childFrame(frame, r.anim.FrameRate), depth+1)
	case LayerImage:
		r.warn(&UnsupportedFeatureError{Feature: "image layer"}, l)
	case LayerText:
		r.warn(&UnsupportedFeatureError{Feature: "text layer"}, l)
	}
	return nil
}
