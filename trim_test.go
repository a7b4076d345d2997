package lottie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie/geom"
)

func trimPath(start, end, offset float64) *TrimPath {
	return &TrimPath{Start: num(start), End: num(end), Offset: num(offset)}
}

// trimmedShapes builds items at frame 0 and returns the shape paths.
func trimmedShapes(t *testing.T, items ...ShapeItem) []*geom.Path {
	t.Helper()
	tree, err := buildDrawTree(items, 0, nil)
	require.NoError(t, err)
	var out []*geom.Path
	tree.walkShapes(tree.root, false, func(n *node, _ geom.Matrix, _ float64) {
		out = append(out, n.path)
	})
	return out
}

func length(p *geom.Path) float64 {
	return geom.NewMeasure(p, geom.DefaultAccuracy).Length()
}

func subpaths(p *geom.Path) []geom.Point {
	var starts []geom.Point
	for _, e := range p.Elements() {
		if m, ok := e.(geom.MoveTo); ok {
			starts = append(starts, m.Point)
		}
	}
	return starts
}

func TestTrimWindow(t *testing.T) {
	tests := []struct {
		name              string
		tp                *TrimPath
		wantStart, wantSp float64
	}{
		{"full", trimPath(0, 100, 0), 0, 1},
		{"half", trimPath(0, 50, 0), 0, 0.5},
		{"reversed ends wrap", trimPath(75, 25, 0), 0.75, 0.5},
		{"offset turns the window", trimPath(0, 50, 90), 0.25, 0.5},
		{"negative offset", trimPath(0, 50, -90), 0.75, 0.5},
		{"empty", trimPath(40, 40, 0), 0.4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, span := tt.tp.trimWindow(0)
			assert.InDelta(t, tt.wantStart, start, 1e-12)
			assert.InDelta(t, tt.wantSp, span, 1e-12)
		})
	}
}

func TestRing(t *testing.T) {
	assert.Equal(t, [][2]float64{{10, 30}}, ring(10, 20, 40))
	assert.Equal(t, [][2]float64{{30, 40}, {0, 10}}, ring(30, 20, 40))
}

func TestTrimFullIsNoOp(t *testing.T) {
	r := rect(5, 5, 10, 10)
	want := ToPath(r, 0)
	paths := trimmedShapes(t, r, trimPath(0, 100, 0))
	require.Len(t, paths, 1)
	assert.Equal(t, want.Elements(), paths[0].Elements())
}

func TestTrimHalf(t *testing.T) {
	paths := trimmedShapes(t, rect(5, 5, 10, 10), trimPath(0, 50, 0))
	require.Len(t, paths, 1)
	assert.InDelta(t, 20, length(paths[0]), 1e-6)
	assert.Equal(t, []geom.Point{geom.Pt(10, 0)}, subpaths(paths[0]))
}

func TestTrimWrapsAround(t *testing.T) {
	// The window [0.75, 1.25) starts at the top-left corner and continues
	// from the top-right corner where the rectangle starts.
	paths := trimmedShapes(t, rect(5, 5, 10, 10), trimPath(75, 25, 0))
	require.Len(t, paths, 1)
	assert.InDelta(t, 20, length(paths[0]), 1e-6)
	starts := subpaths(paths[0])
	require.Len(t, starts, 2)
	assert.True(t, starts[0].Near(geom.Pt(0, 0), 1e-9), "primary starts at %v", starts[0])
	assert.True(t, starts[1].Near(geom.Pt(10, 0), 1e-9), "rewound starts at %v", starts[1])
}

func TestTrimEmpty(t *testing.T) {
	paths := trimmedShapes(t, rect(5, 5, 10, 10), trimPath(30, 30, 0))
	require.Len(t, paths, 1)
	assert.True(t, paths[0].IsEmpty())
}

func TestTrimModes(t *testing.T) {
	// Two 10x10 rectangles: 80 units of outline in total.
	tests := []struct {
		name       string
		mode       TrimMode
		start, end float64
		want       []float64
	}{
		{"simultaneous trims each path", TrimSimultaneous, 0, 25, []float64{10, 10}},
		{"individual trims the sequence", TrimIndividual, 0, 25, []float64{20, 0}},
		{"individual middle half spans both paths", TrimIndividual, 25, 75, []float64{20, 20}},
		{"individual wraparound", TrimIndividual, 80, 30, []float64{24, 16}},
		{"simultaneous wraparound", TrimSimultaneous, 80, 30, []float64{20, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := trimPath(tt.start, tt.end, 0)
			tp.Mode = tt.mode
			paths := trimmedShapes(t, rect(5, 5, 10, 10), rect(25, 5, 10, 10), tp)
			require.Len(t, paths, 2)
			var total float64
			for i, want := range tt.want {
				assert.InDelta(t, want, length(paths[i]), 1e-6, "path %d", i)
				total += length(paths[i])
			}
			if tt.start > tt.end {
				assert.InDelta(t, 40, total, 1e-6, "kept length")
			}
		})
	}
}

func TestTrimReachesIntoGroups(t *testing.T) {
	g := &Group{Items: []ShapeItem{rect(5, 5, 10, 10)}, Transform: DefaultTransform()}
	paths := trimmedShapes(t, g, trimPath(0, 50, 0))
	require.Len(t, paths, 1)
	assert.InDelta(t, 20, length(paths[0]), 1e-6)
}

func TestTrimLeavesLaterShapes(t *testing.T) {
	paths := trimmedShapes(t, rect(5, 5, 10, 10), trimPath(0, 50, 0), rect(25, 5, 10, 10))
	require.Len(t, paths, 2)
	assert.InDelta(t, 20, length(paths[0]), 1e-6)
	assert.InDelta(t, 40, length(paths[1]), 1e-6)
}
