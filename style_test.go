package lottie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/backend/recording"
	"github.com/gogpu/lottie/geom"
)

func TestGradientStops(t *testing.T) {
	colors := anim.Scalars{0, 1, 0, 0, 1, 0, 0, 1}

	stops := gradientStops(colors, 2)
	require.Len(t, stops, 2)
	assert.Equal(t, backend.GradientStop{Offset: 0, Color: backend.Color{R: 1, A: 1}}, stops[0])
	assert.Equal(t, backend.GradientStop{Offset: 1, Color: backend.Color{B: 1, A: 1}}, stops[1])

	withAlpha := append(colors, 0, 1, 0.5, 0)
	stops = gradientStops(withAlpha, 2)
	assert.Equal(t, 1.0, stops[0].Color.A)
	assert.Equal(t, 0.0, stops[1].Color.A)

	// A count larger than the data is clamped.
	assert.Len(t, gradientStops(colors, 5), 2)
}

func TestAlphaAt(t *testing.T) {
	pairs := anim.Scalars{0.2, 1, 0.6, 0}
	assert.Equal(t, 1.0, alphaAt(pairs, 0))
	assert.InDelta(t, 0.5, alphaAt(pairs, 0.4), 1e-12)
	assert.Equal(t, 0.0, alphaAt(pairs, 0.9))
}

func TestStrokeOptionsResolve(t *testing.T) {
	o := StrokeOptions{
		Width: num(4),
		Cap:   backend.CapRound,
		Dashes: []Dash{
			{Kind: DashLength, Length: num(5)},
			{Kind: DashGap, Length: num(3)},
			{Kind: DashOffset, Length: num(2)},
		},
	}
	s := o.resolve(0)
	assert.Equal(t, 4.0, s.Width)
	assert.Equal(t, backend.CapRound, s.Cap)
	assert.Equal(t, []float64{5, 3}, s.Dashes)
	assert.Equal(t, 2.0, s.DashOffset)

	o.Dashes = []Dash{{Kind: DashLength, Length: num(0)}, {Kind: DashGap, Length: num(0)}}
	s = o.resolve(0)
	assert.Nil(t, s.Dashes)
}

func TestRadialGradientFocus(t *testing.T) {
	g := Gradient{
		Kind:            RadialGradient,
		Start:           vec(10, 10),
		End:             vec(20, 10),
		HighlightLength: num(50),
		HighlightAngle:  num(90),
		StopCount:       2,
		Stops:           anim.Static(anim.Scalars{0, 1, 1, 1, 1, 0, 0, 0}),
	}
	spec := g.resolve(0)
	assert.InDelta(t, 10, spec.radius, 1e-12)
	assert.True(t, spec.focus.Near(geom.Pt(10, 15), 1e-9), "focus %v", spec.focus)

	g.HighlightLength = num(100)
	spec = g.resolve(0)
	assert.InDelta(t, 9.9, spec.focus.Y-10, 1e-9)
}

func TestDrawMergesShapesOfOneStyle(t *testing.T) {
	items := []ShapeItem{rect(10, 10, 10, 10), rect(30, 10, 10, 10), solid(1, 0, 0)}
	fills := commandsOf[recording.FillPathCommand](record(t, testAnimation(shapeLayer(1, items...)), 0))
	require.Len(t, fills, 1)
	assert.InDelta(t, 200, fills[0].Path.Area(), 1e-9)
}

func TestDrawSplitsRunsByOpacity(t *testing.T) {
	half := &Group{Items: []ShapeItem{rect(30, 10, 10, 10)}, Transform: DefaultTransform()}
	half.Transform.Opacity = num(50)
	half.Transform.Position = vec(0, 20)
	items := []ShapeItem{rect(10, 10, 10, 10), half, solid(1, 0, 0)}

	fills := commandsOf[recording.FillPathCommand](record(t, testAnimation(shapeLayer(1, items...)), 0))
	require.Len(t, fills, 2)
	assert.Equal(t, 1.0, fills[0].Opacity)
	assert.Equal(t, 0.5, fills[1].Opacity)
	// Shapes of nested groups are brought into the style's space.
	assert.InDelta(t, 25, fills[1].Path.BoundingBox().Min.Y, 1e-9)
}

func TestDrawGroupStyleStaysInGroup(t *testing.T) {
	inner := &Group{Items: []ShapeItem{rect(10, 10, 10, 10), solid(0, 1, 0)}, Transform: DefaultTransform()}
	items := []ShapeItem{inner, rect(30, 10, 10, 10), solid(1, 0, 0)}

	fills := commandsOf[recording.FillPathCommand](record(t, testAnimation(shapeLayer(1, items...)), 0))
	require.Len(t, fills, 2)
	// The outer fill paints both rectangles, the inner one only its own.
	assert.InDelta(t, 200, fills[0].Path.Area(), 1e-9)
	assert.InDelta(t, 100, fills[1].Path.Area(), 1e-9)
}

func TestDrawStrokeAndGradients(t *testing.T) {
	stroke := &Stroke{
		Color:         anim.Static(anim.Color{A: 1}),
		Opacity:       num(100),
		StrokeOptions: StrokeOptions{Width: num(3), Join: backend.JoinBevel},
	}
	grad := &GradientFill{
		Opacity: num(100),
		Gradient: Gradient{
			Kind:      LinearGradient,
			Start:     vec(0, 0),
			End:       vec(100, 0),
			StopCount: 2,
			Stops:     anim.Static(anim.Scalars{0, 1, 0, 0, 1, 0, 0, 1}),
		},
	}
	items := []ShapeItem{rect(50, 50, 20, 20), stroke, grad}
	rec := record(t, testAnimation(shapeLayer(1, items...)), 0)

	strokes := commandsOf[recording.StrokePathCommand](rec)
	require.Len(t, strokes, 1)
	assert.Equal(t, 3.0, strokes[0].Stroke.Width)
	assert.Equal(t, backend.JoinBevel, strokes[0].Stroke.Join)

	fills := commandsOf[recording.FillPathCommand](rec)
	require.Len(t, fills, 1)
	lg, ok := fills[0].Paint.(recording.LinearGradientPaint)
	require.True(t, ok, "paint %T", fills[0].Paint)
	assert.Equal(t, geom.Pt(100, 0), lg.End)
	assert.Len(t, lg.Stops, 2)
}

func TestDrawSkipsInvisibleStyles(t *testing.T) {
	invisible := solid(1, 0, 0)
	invisible.Opacity = num(0)
	thin := &Stroke{Color: anim.Static(anim.Color{A: 1}), Opacity: num(100)}
	items := []ShapeItem{rect(50, 50, 20, 20), invisible, thin}

	rec := record(t, testAnimation(shapeLayer(1, items...)), 0)
	assert.Empty(t, commandsOf[recording.FillPathCommand](rec))
	assert.Empty(t, commandsOf[recording.StrokePathCommand](rec))
}

func TestDrawTreeNestingLimit(t *testing.T) {
	var items []ShapeItem
	for range maxNestingDepth + 2 {
		items = []ShapeItem{&Group{Items: items, Transform: DefaultTransform()}}
	}
	_, err := buildDrawTree(items, 0, nil)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestDrawTreeWarnsOnModifiers(t *testing.T) {
	var warned []error
	_, err := buildDrawTree([]ShapeItem{&Modifier{Type: "rd"}}, 0, func(err error) { warned = append(warned, err) })
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.ErrorIs(t, warned[0], ErrUnsupported)
}
