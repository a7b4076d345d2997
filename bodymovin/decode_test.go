package bodymovin

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/backend/recording"
	"github.com/gogpu/lottie/geom"
)

func decodeBasic(t *testing.T) *lottie.Animation {
	t.Helper()
	a, err := DecodeFile("testdata/basic.json")
	require.NoError(t, err)
	return a
}

func TestDecodeDocument(t *testing.T) {
	a := decodeBasic(t)

	assert.Equal(t, "5.7.4", a.Version)
	assert.Equal(t, "basic", a.Name)
	assert.Equal(t, 30.0, a.FrameRate)
	assert.Equal(t, 60.0, a.OutPoint)
	assert.Equal(t, 2.0, a.Duration(), "seconds")
	assert.Equal(t, 100.0, a.Width)
	require.Len(t, a.Layers, 4)

	require.Len(t, a.Assets, 1, "image assets are skipped")
	assert.Equal(t, "comp_0", a.Assets[0].ID)
	assert.NotNil(t, a.Asset("comp_0"))

	require.Len(t, a.Markers, 2)
	m, err := a.Marker("outro")
	require.NoError(t, err)
	assert.Equal(t, lottie.Marker{Name: "Outro", Time: 30, Duration: 30}, m)
}

func TestDecodeShapeLayer(t *testing.T) {
	l := decodeBasic(t).Layers[0]

	assert.Equal(t, lottie.LayerShape, l.Kind)
	assert.Equal(t, 1, l.Index)
	assert.Equal(t, 1.0, l.TimeStretch)
	require.True(t, l.Transform.Position.IsAnimated())
	assert.Equal(t, geom.Pt(0, 0), l.Transform.Position.Value(0))
	assert.Equal(t, geom.Pt(50, 0), l.Transform.Position.Value(30))
	// Ease-in-out keeps the midpoint of a symmetric curve.
	assert.InDelta(t, 25, l.Transform.Position.Value(15).X, 1e-3)
	assert.Equal(t, geom.Pt(100, 100), l.Transform.Scale.Value(0))

	require.Len(t, l.Shapes, 4)
	g, ok := l.Shapes[0].(*lottie.Group)
	require.True(t, ok, "shape 0 is %T", l.Shapes[0])
	require.Len(t, g.Items, 3, "the transform item is not a shape")
	assert.Equal(t, geom.Pt(5, 0), g.Transform.Position.Value(0))
	assert.Equal(t, 50.0, g.Transform.Opacity.Value(0))

	rect := g.Items[0].(*lottie.Rectangle)
	assert.Equal(t, lottie.Clockwise, rect.Direction)
	assert.Equal(t, geom.Pt(20, 10), rect.Size.Value(0))
	assert.Equal(t, 2.0, rect.Radius.Value(0))

	fill := g.Items[1].(*lottie.Fill)
	assert.Equal(t, anim.Color{R: 1, A: 1}, fill.Color.Value(0))
	assert.Equal(t, 80.0, fill.Opacity.Value(0))
	assert.Equal(t, backend.EvenOdd, fill.Rule)

	stroke := g.Items[2].(*lottie.Stroke)
	assert.Equal(t, 3.0, stroke.Width.Value(0))
	assert.Equal(t, backend.CapRound, stroke.Cap)
	assert.Equal(t, backend.JoinBevel, stroke.Join)
	assert.Equal(t, 4.0, stroke.MiterLimit)
	require.Len(t, stroke.Dashes, 3)
	assert.Equal(t, lottie.DashOffset, stroke.Dashes[2].Kind)
	assert.Equal(t, 1.0, stroke.Dashes[2].Length.Value(0))

	trim := l.Shapes[1].(*lottie.TrimPath)
	assert.Equal(t, lottie.TrimIndividual, trim.Mode)
	assert.Equal(t, 0.0, trim.End.Value(5), "hold keyframe")
	assert.Equal(t, 100.0, trim.End.Value(10))

	rep := l.Shapes[2].(*lottie.Repeater)
	assert.Equal(t, 3.0, rep.Copies.Value(0))
	assert.Equal(t, lottie.StackBelow, rep.Stacking)
	assert.Equal(t, geom.Pt(10, 0), rep.Transform.Position.Value(0))
	assert.Equal(t, geom.Pt(100, 100), rep.Transform.Scale.Value(0))
	assert.Equal(t, 20.0, rep.EndOpacity.Value(0))

	mod := l.Shapes[3].(*lottie.Modifier)
	assert.Equal(t, "rd", mod.Type)
}

func TestDecodeSolidLayer(t *testing.T) {
	l := decodeBasic(t).Layers[1]

	assert.Equal(t, lottie.LayerSolid, l.Kind)
	require.NotNil(t, l.Parent)
	assert.Equal(t, 1, *l.Parent)
	assert.Equal(t, 100.0, l.Width)
	assert.Equal(t, 50.0, l.Height)
	assert.InDelta(t, 1, l.SolidColor.R, 1e-9)
	assert.InDelta(t, 128.0/255, l.SolidColor.G, 1e-9)
	assert.Equal(t, 1.0, l.SolidColor.A)

	assert.True(t, l.Transform.SplitPosition)
	assert.Equal(t, 3.0, l.Transform.PositionX.Value(0))
	assert.Equal(t, 100.0, l.Transform.Opacity.Value(0), "default opacity")

	require.Len(t, l.Masks, 1)
	mask := l.Masks[0]
	assert.Equal(t, lottie.MaskSubtract, mask.Mode)
	assert.Equal(t, 100.0, mask.Opacity.Value(0))
	shape := mask.Shape.Value(0)
	assert.True(t, shape.Closed)
	assert.Len(t, shape.Vertices, 3)
}

func TestDecodePrecompLayer(t *testing.T) {
	a := decodeBasic(t)
	l := a.Layers[2]

	assert.Equal(t, lottie.LayerPrecomp, l.Kind)
	assert.Equal(t, "comp_0", l.RefID)
	assert.Equal(t, 2.0, l.TimeStretch)
	assert.Equal(t, 10.0, l.StartTime)
	assert.Equal(t, lottie.MatteAlphaInverted, l.MatteMode)
	assert.Equal(t, lottie.BlendMultiply, l.Blend)

	inner := a.Assets[0].Layers[0]
	grad := inner.Shapes[1].(*lottie.GradientFill)
	assert.Equal(t, lottie.RadialGradient, grad.Kind)
	assert.Equal(t, 2, grad.StopCount)
	assert.Len(t, grad.Stops.Value(0), 12)
	assert.Equal(t, 20.0, grad.HighlightLength.Value(0))

	assert.Equal(t, lottie.LayerNull, a.Layers[3].Kind, "camera layers draw nothing")
}

func TestDecodedDocumentRenders(t *testing.T) {
	a := decodeBasic(t)
	rec := recording.NewRecorder(100, 100)
	p := lottie.NewPlayer(a)

	for _, frame := range []float64{0, 15, 45} {
		rec.Reset()
		require.NoError(t, p.RenderFrame(rec, frame), "frame %v", frame)
		assert.NotEmpty(t, rec.Commands())
		assert.Zero(t, rec.LiveTargets())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		is   error
	}{
		{
			name: "malformed JSON",
			doc:  `{"fr": 30,`,
		},
		{
			name: "frame rate",
			doc:  `{"fr": 0, "op": 10, "layers": []}`,
			path: "fr",
		},
		{
			name: "keyframes out of order",
			doc: `{"fr": 30, "op": 10, "layers": [{"ty": 3, "ind": 1, "ks": {"o": {"a": 1, "k": [
				{"t": 5, "s": [0]}, {"t": 2, "s": [100]}]}}}]}`,
			path: "layers[0].ks.o",
			is:   anim.ErrInvalidKeyframes,
		},
		{
			name: "mismatched bezier",
			doc: `{"fr": 30, "op": 10, "layers": [{"ty": 4, "ind": 1, "ks": {}, "shapes": [
				{"ty": "sh", "ks": {"a": 0, "k": {"c": true, "v": [[0, 0], [1, 1]], "i": [[0, 0]], "o": [[0, 0], [0, 0]]}}}]}]}`,
			path: "layers[0].shapes[0].ks",
			is:   anim.ErrMismatchedLength,
		},
		{
			name: "unknown mask mode",
			doc:  `{"fr": 30, "op": 10, "layers": [{"ty": 3, "ind": 1, "ks": {}, "masksProperties": [{"mode": "q"}]}]}`,
			path: "layers[0].masksProperties[0].mode",
		},
		{
			name: "bad color",
			doc: `{"fr": 30, "op": 10, "layers": [{"ty": 4, "ind": 1, "ks": {}, "shapes": [
				{"ty": "fl", "c": {"a": 0, "k": [1, 0]}}]}]}`,
			path: "layers[0].shapes[0].c",
		},
		{
			name: "dangling parent",
			doc:  `{"fr": 30, "op": 10, "layers": [{"ty": 3, "ind": 1, "parent": 7, "ks": {}}]}`,
			path: "layers[0].parent",
		},
		{
			name: "missing precomp",
			doc:  `{"fr": 30, "op": 10, "layers": [{"ty": 0, "ind": 1, "refId": "x", "ks": {}}]}`,
			path: "layers[0].refId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, lottie.ErrSchema)
			var se *lottie.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.path, se.Path)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
