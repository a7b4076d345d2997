package lottie

import (
	"slices"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// maxNestingDepth bounds group and precomp nesting.
const maxNestingDepth = 256

type nodeKind uint8

const (
	nodeShape nodeKind = iota
	nodeStyle
	nodeGroup
	nodeRepli
)

// node is a draw-item. Children are indices into drawTree.nodes.
type node struct {
	kind nodeKind

	path  *geom.Path  // nodeShape
	style *paintStyle // nodeStyle

	children   []int       // nodeGroup, nodeRepli
	matrix     geom.Matrix // nodeGroup
	opacity    float64     // nodeGroup
	placements []placement // nodeRepli
}

// drawTree is the draw-item tree of one shape list at one frame. Nodes
// live in an arena and reference each other by index.
type drawTree struct {
	nodes []node
	root  []int
	frame float64

	// warn reports unsupported items.
	warn func(error)
}

// buildDrawTree walks items left to right and builds the tree at frame.
func buildDrawTree(items []ShapeItem, frame float64, warn func(error)) (*drawTree, error) {
	if warn == nil {
		warn = func(error) {}
	}
	t := &drawTree{nodes: make([]node, 0, len(items)), frame: frame, warn: warn}
	root, err := t.build(items, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *drawTree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *drawTree) build(items []ShapeItem, depth int) ([]int, error) {
	if depth > maxNestingDepth {
		return nil, schemaErrorf("shapes", "groups nested deeper than %d", maxNestingDepth)
	}
	frame := t.frame
	ids := make([]int, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case *Group:
			if it.Hidden {
				continue
			}
			m, opacity, err := it.Transform.Matrix(frame, false)
			if err != nil {
				t.warn(err)
				continue
			}
			children, err := t.build(it.Items, depth+1)
			if err != nil {
				return nil, err
			}
			ids = append(ids, t.add(node{kind: nodeGroup, children: children, matrix: m, opacity: opacity}))
		case *Rectangle:
			ids = t.addShape(ids, it, it.Hidden)
		case *Ellipse:
			ids = t.addShape(ids, it, it.Hidden)
		case *Polystar:
			ids = t.addShape(ids, it, it.Hidden)
		case *FreePath:
			ids = t.addShape(ids, it, it.Hidden)
		case *Fill:
			if !it.Hidden {
				ids = append(ids, t.add(node{kind: nodeStyle, style: fillStyle(it, frame)}))
			}
		case *Stroke:
			if !it.Hidden {
				ids = append(ids, t.add(node{kind: nodeStyle, style: strokeStyle(it, frame)}))
			}
		case *GradientFill:
			if !it.Hidden {
				ids = append(ids, t.add(node{kind: nodeStyle, style: gradientFillStyle(it, frame)}))
			}
		case *GradientStroke:
			if !it.Hidden {
				ids = append(ids, t.add(node{kind: nodeStyle, style: gradientStrokeStyle(it, frame)}))
			}
		case *TrimPath:
			if !it.Hidden {
				t.trim(ids, it)
			}
		case *Repeater:
			if it.Hidden {
				continue
			}
			placements := it.placements(frame)
			ids = []int{t.add(node{kind: nodeRepli, children: ids, placements: placements})}
		case *Modifier:
			if !it.Hidden {
				t.warn(&UnsupportedFeatureError{Feature: "shape modifier " + it.Type})
			}
		}
	}
	return ids, nil
}

func (t *drawTree) addShape(ids []int, g Geometry, hidden bool) []int {
	if hidden {
		return ids
	}
	return append(ids, t.add(node{kind: nodeShape, path: ToPath(g, t.frame)}))
}

// walkItem is a pending node of a shape walk with the transform and
// opacity accumulated from the walk root.
type walkItem struct {
	id      int
	matrix  geom.Matrix
	opacity float64
}

// walkShapes calls fn for every shape node under ids in traversal order.
// With expand set, repeater children are visited once per placement;
// otherwise once, untransformed.
func (t *drawTree) walkShapes(ids []int, expand bool, fn func(n *node, m geom.Matrix, opacity float64)) {
	stack := make([]walkItem, 0, len(ids))
	push := func(children []int, m geom.Matrix, opacity float64) {
		for _, id := range slices.Backward(children) {
			stack = append(stack, walkItem{id: id, matrix: m, opacity: opacity})
		}
	}
	push(ids, geom.Identity(), 1)

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[w.id]
		switch n.kind {
		case nodeShape:
			fn(n, w.matrix, w.opacity)
		case nodeGroup:
			push(n.children, w.matrix.Multiply(n.matrix), w.opacity*n.opacity)
		case nodeRepli:
			if !expand {
				push(n.children, w.matrix, w.opacity)
				continue
			}
			for _, pl := range slices.Backward(n.placements) {
				push(n.children, w.matrix.Multiply(pl.matrix), w.opacity*pl.opacity)
			}
		}
	}
}

// levelItem is a pending sibling list of a render walk. next counts down
// because siblings render back to front.
type levelItem struct {
	ids     []int
	next    int
	matrix  geom.Matrix
	opacity float64
}

// draw renders the tree through b under the current transform of b.
func (t *drawTree) draw(b backend.Backend) error {
	stack := []levelItem{{ids: t.root, next: len(t.root) - 1, matrix: geom.Identity(), opacity: 1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.next
		top.next--
		lvl := *top

		n := &t.nodes[lvl.ids[i]]
		switch n.kind {
		case nodeStyle:
			if err := t.drawStyle(b, n.style, lvl.ids[:i], lvl.matrix, lvl.opacity); err != nil {
				return err
			}
		case nodeGroup:
			stack = append(stack, levelItem{
				ids: n.children, next: len(n.children) - 1,
				matrix: lvl.matrix.Multiply(n.matrix), opacity: lvl.opacity * n.opacity,
			})
		case nodeRepli:
			// Pushed last-to-first so the first placement draws first.
			for _, pl := range slices.Backward(n.placements) {
				stack = append(stack, levelItem{
					ids: n.children, next: len(n.children) - 1,
					matrix: lvl.matrix.Multiply(pl.matrix), opacity: lvl.opacity * pl.opacity,
				})
			}
		}
	}
	return nil
}

// drawStyle paints every shape in prefix with s. Shapes are brought into
// the coordinate space of the style's level; consecutive shapes with the
// same opacity are merged into one path.
func (t *drawTree) drawStyle(b backend.Backend, s *paintStyle, prefix []int, m geom.Matrix, opacity float64) error {
	if s.skip() {
		return nil
	}
	paint := s.paint.convert(b)

	var run *geom.Path
	runOpacity := -1.0
	flush := func() error {
		if run == nil || run.IsEmpty() {
			return nil
		}
		op := opacity * runOpacity
		prev := b.ApplyTransform(m, &op)
		defer b.ResetTransform(&prev)

		pb := b.NewPath(len(run.Elements()))
		run.Replay(pb)
		style := s.backendStyle(paint)
		return b.FillStroke(pb, &style)
	}

	var err error
	t.walkShapes(prefix, true, func(n *node, rel geom.Matrix, o float64) {
		if err != nil || n.path.IsEmpty() {
			return
		}
		if o != runOpacity {
			if err = flush(); err != nil {
				return
			}
			run, runOpacity = geom.NewPath(len(n.path.Elements())), o
		}
		if rel.IsIdentity() {
			run.Append(n.path)
		} else {
			run.Append(n.path.Transform(rel))
		}
	})
	if err != nil {
		return err
	}
	return flush()
}
