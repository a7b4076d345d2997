package bodymovin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/geom"
)

func TestFlag(t *testing.T) {
	tests := []struct {
		in   string
		want flag
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"null", false},
	}
	for _, tt := range tests {
		var f flag
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), tt.in)
		assert.Equal(t, tt.want, f, tt.in)
	}
	var f flag
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &f))
}

func TestDecodeScalarProperty(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		frame float64
		want  float64
	}{
		{"absent uses default", ``, 0, 7},
		{"static number", `{"a": 0, "k": 3}`, 0, 3},
		{"static array", `{"a": 0, "k": [4]}`, 0, 4},
		{"missing flag", `{"k": [{"t": 0, "s": [0]}, {"t": 10, "s": [10]}]}`, 5, 5},
		{"legacy end values", `{"a": 1, "k": [{"t": 0, "s": [0], "e": [20]}, {"t": 10}]}`, 5, 10},
		{"hold", `{"a": 1, "k": [{"t": 0, "s": [0], "h": 1}, {"t": 10, "s": [10]}]}`, 9, 0},
		{"after last keyframe", `{"a": 1, "k": [{"t": 0, "s": [0]}, {"t": 10, "s": [10]}]}`, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := decodeProperty(json.RawMessage(tt.json), parseScalar, 7)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p.Value(tt.frame), 1e-9)
		})
	}
}

func TestDecodeEasing(t *testing.T) {
	// A handle pair that holds the value until the very end.
	data := `{"a": 1, "k": [
		{"t": 0, "s": [0], "o": {"x": 1, "y": 0}, "i": {"x": [1], "y": [0]}},
		{"t": 10, "s": [10]}]}`
	p, err := decodeProperty(json.RawMessage(data), parseScalar, 0)
	require.NoError(t, err)
	kfs := p.Keyframes()
	require.Len(t, kfs, 2)
	require.NotNil(t, kfs[0].Out)
	assert.Equal(t, anim.Handle{X: 1, Y: 0}, *kfs[0].Out)
	require.NotNil(t, kfs[0].In)
	assert.Equal(t, anim.Handle{X: 1, Y: 0}, *kfs[0].In)
	assert.Less(t, p.Value(5), 5.0)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want anim.Color
	}{
		{`[1, 0.5, 0]`, anim.Color{R: 1, G: 0.5, A: 1}},
		{`[1, 0, 0, 0.5]`, anim.Color{R: 1, A: 0.5}},
		{`[255, 0, 51, 255]`, anim.Color{R: 1, B: 0.2, A: 1}},
		{`[255, 0, 0, 1]`, anim.Color{R: 1, A: 1}},
	}
	for _, tt := range tests {
		got, err := parseColor(json.RawMessage(tt.in))
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want.R, got.R, 1e-9, tt.in)
		assert.InDelta(t, tt.want.G, got.G, 1e-9, tt.in)
		assert.InDelta(t, tt.want.B, got.B, 1e-9, tt.in)
		assert.InDelta(t, tt.want.A, got.A, 1e-9, tt.in)
	}

	_, err := parseColor(json.RawMessage(`[1]`))
	assert.ErrorIs(t, err, errValue)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(json.RawMessage(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1, 2), p)

	p, err = parsePoint(json.RawMessage(`5`))
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(5, 5), p)

	_, err = parsePoint(json.RawMessage(`"x"`))
	assert.ErrorIs(t, err, errValue)
}

func TestDecodeBezierKeyframes(t *testing.T) {
	data := `{"a": 1, "k": [
		{"t": 0, "s": [{"c": false, "v": [[0, 0], [10, 0]], "i": [[0, 0], [0, 0]], "o": [[0, 0], [0, 0]]}]},
		{"t": 10, "s": [{"c": false, "v": [[0, 10], [10, 10]], "i": [[0, 0], [0, 0]], "o": [[0, 0], [0, 0]]}]}]}`
	p, err := decodeProperty(json.RawMessage(data), parseBezier, anim.Bezier{})
	require.NoError(t, err)
	b := p.Value(5)
	require.Len(t, b.Vertices, 2)
	assert.Equal(t, geom.Pt(10, 5), b.Vertices[1])
	assert.False(t, b.Closed)
}

func TestIsKeyframeList(t *testing.T) {
	assert.True(t, isKeyframeList(json.RawMessage(` [ {"t": 0}]`)))
	assert.False(t, isKeyframeList(json.RawMessage(`[1, 2]`)))
	assert.False(t, isKeyframeList(json.RawMessage(`{"v": []}`)))
	assert.False(t, isKeyframeList(json.RawMessage(`[]`)))
}
