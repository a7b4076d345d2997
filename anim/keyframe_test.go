package anim

import (
	"testing"

	"github.com/gogpu/lottie/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatic(t *testing.T) {
	kfs, err := Normalize(Raw[float64]{Static: ptr(42.0)})
	require.NoError(t, err)
	require.Len(t, kfs, 1)

	kf := kfs[0]
	assert.Equal(t, 0.0, kf.StartFrame)
	assert.Equal(t, 0.0, kf.EndFrame)
	assert.Equal(t, 42.0, kf.StartValue)
	assert.Equal(t, 42.0, kf.EndValue)
}

func TestNormalizeLegacyList(t *testing.T) {
	out := &Handle{X: 0.3, Y: 0}
	in := &Handle{X: 0.7, Y: 1}
	kfs, err := Normalize(Raw[float64]{Keyframes: []RawKeyframe[float64]{
		{Frame: 0, Start: ptr(1.0), End: ptr(2.0), Out: out, In: in},
		{Frame: 10, Start: ptr(5.0)},
		{Frame: 20, Start: ptr(6.0), Hold: true},
		{Frame: 30, Start: ptr(7.0)},
	}})
	require.NoError(t, err)
	require.Len(t, kfs, 4)

	assert.Equal(t, Keyframe[float64]{StartFrame: 0, EndFrame: 10, StartValue: 1, EndValue: 2, Out: out, In: in}, kfs[0])
	assert.Equal(t, 20.0, kfs[1].EndFrame)
	assert.Equal(t, 6.0, kfs[1].EndValue, "missing end comes from the next start")
	assert.Equal(t, 6.0, kfs[2].EndValue, "hold keeps its start value")
	assert.True(t, kfs[2].Hold)
	assert.Equal(t, Keyframe[float64]{StartFrame: 30, EndFrame: 30, StartValue: 7, EndValue: 7}, kfs[3])
}

func TestNormalizeTrailingMarker(t *testing.T) {
	kfs, err := Normalize(Raw[float64]{Keyframes: []RawKeyframe[float64]{
		{Frame: 0, Start: ptr(1.0), End: ptr(3.0)},
		{Frame: 5, Start: ptr(3.0)},
		{Frame: 12},
	}})
	require.NoError(t, err)
	require.Len(t, kfs, 2, "the marker never becomes a keyframe")
	assert.Equal(t, 12.0, kfs[1].EndFrame)
	assert.Equal(t, 3.0, kfs[1].EndValue)
}

func TestNormalizeErrors(t *testing.T) {
	tri := Bezier{
		Vertices:    []geom.Point{{}, {X: 1}, {Y: 1}},
		InTangents:  make([]geom.Point, 3),
		OutTangents: make([]geom.Point, 3),
	}
	bad := Bezier{Vertices: tri.Vertices, InTangents: make([]geom.Point, 2), OutTangents: tri.OutTangents}
	line := Bezier{
		Vertices:    tri.Vertices[:2],
		InTangents:  make([]geom.Point, 2),
		OutTangents: make([]geom.Point, 2),
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"empty", func() error {
			_, err := Normalize(Raw[float64]{})
			return err
		}, ErrInvalidKeyframes},
		{"marker in the middle", func() error {
			_, err := Normalize(Raw[float64]{Keyframes: []RawKeyframe[float64]{
				{Frame: 0, Start: ptr(1.0)}, {Frame: 4}, {Frame: 8, Start: ptr(2.0)},
			}})
			return err
		}, ErrInvalidKeyframes},
		{"decreasing frames", func() error {
			_, err := Normalize(Raw[float64]{Keyframes: []RawKeyframe[float64]{
				{Frame: 8, Start: ptr(1.0)}, {Frame: 4, Start: ptr(2.0)},
			}})
			return err
		}, ErrInvalidKeyframes},
		{"static tangent mismatch", func() error {
			_, err := Normalize(Raw[Bezier]{Static: &bad})
			return err
		}, ErrMismatchedLength},
		{"start and end vertex counts differ", func() error {
			_, err := Normalize(Raw[Bezier]{Keyframes: []RawKeyframe[Bezier]{
				{Frame: 0, Start: &tri, End: &line}, {Frame: 4},
			}})
			return err
		}, ErrMismatchedLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}
}
