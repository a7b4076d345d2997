package lottie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie/backend/recording"
)

func TestCompositorTransitions(t *testing.T) {
	tests := []struct {
		from, to compositorState
		ok       bool
	}{
		{stateIdle, stateMatteSourceOpen, true},
		{stateIdle, stateMaskAccumulate, true},
		{stateIdle, stateMatteConsumed, false},
		{stateMatteSourceOpen, stateMaskAccumulate, true},
		{stateMatteSourceOpen, stateMatteConsumed, true},
		{stateMatteSourceOpen, stateMatteSourceOpen, false},
		{stateMaskAccumulate, stateMaskAccumulate, true},
		{stateMaskAccumulate, stateMatteConsumed, true},
		{stateMaskAccumulate, stateMatteSourceOpen, false},
		{stateMatteConsumed, stateMaskAccumulate, false},
		{stateMatteConsumed, stateIdle, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			c := &compositor{state: tt.from}
			err := c.enter(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, c.state)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.from, c.state, "state unchanged")
			}
		})
	}
}

func TestCompositorReachesFinalState(t *testing.T) {
	tests := []struct {
		name  string
		matte bool
		masks bool
		want  string
	}{
		{"matte", true, false, "state=matte-consumed"},
		{"masks", false, true, "state=mask-accumulate"},
		{"matte and masks", true, true, "state=matte-consumed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			source, consumer := matteLayers(MatteNone)
			if tt.matte {
				consumer.MatteMode = MatteAlpha
			}
			if tt.masks {
				consumer.Masks = []Mask{{Mode: MaskAdd, Shape: leftHalf(), Opacity: num(100)}}
			}

			rec := recording.NewRecorder(100, 100)
			require.NoError(t, NewPlayer(testAnimation(source, consumer)).RenderFrame(rec, 0))
			assert.Zero(t, rec.LiveTargets())
			assert.Contains(t, buf.String(), "layer composited")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
