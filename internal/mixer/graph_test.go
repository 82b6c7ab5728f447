package mixer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

func TestNewGraph_RequiresVoice(t *testing.T) {
	_, err := mixer.NewGraph(nil, 44100)
	assert.ErrorIs(t, err, mixer.ErrEmptyPlan)

	_, err = mixer.NewGraph(&mixer.Plan{}, 44100)
	assert.ErrorIs(t, err, mixer.ErrEmptyPlan)
}

func TestGraph_SumsGainedSources(t *testing.T) {
	plan := &mixer.Plan{
		Voice: mixer.Track{
			Buffer: constBuffer(time.Second, 100, 0.5),
			Gain:   audio.ConstantGain(1),
		},
		Music: &mixer.Track{
			Buffer: constBuffer(time.Second, 100, 0.5),
			Gain:   audio.ConstantGain(0.2),
		},
		Duration: 2 * time.Second,
	}

	g, err := mixer.NewGraph(plan, 100)
	require.NoError(t, err)
	assert.Equal(t, 200, g.Frames())
	assert.Len(t, g.Sources(), 2)

	out := make([]float32, 200)
	g.Render(out, 0)

	assert.InDelta(t, 0.6, out[10], 1e-6)
	assert.InDelta(t, 0.6, out[98], 1e-6)
	assert.InDelta(t, 0.0, out[150], 1e-6, "both sources have played out")
}

func TestGraph_ResamplesVoiceToGraphRate(t *testing.T) {
	// A ramp at 10 Hz read at 20 Hz should interpolate half-steps.
	voice := audio.NewSampleBuffer([]float32{0, 0.2, 0.4, 0.6}, 10)
	g, err := mixer.NewGraph(&mixer.Plan{Voice: mixer.Track{Buffer: voice}}, 20)
	require.NoError(t, err)

	out := make([]float32, 8)
	g.Render(out, 0)

	expected := []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.3}
	for i := range expected {
		assert.InDelta(t, expected[i], out[i], 1e-6, "frame %d", i)
	}
}

func TestGraph_LoopingSourceWraps(t *testing.T) {
	bed := audio.NewSampleBuffer([]float32{0.1, 0.2, 0.3, 0.4}, 4)
	plan := &mixer.Plan{
		Voice: mixer.Track{Buffer: audio.NewSampleBuffer([]float32{0}, 4), Gain: audio.ConstantGain(0)},
		Music: &mixer.Track{Buffer: bed, Gain: audio.ConstantGain(1), Loop: true},
	}

	g, err := mixer.NewGraph(plan, 4)
	require.NoError(t, err)

	out := make([]float32, 4)
	g.Render(out, 8)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3, 0.4}, out, 1e-6)

	assert.False(t, g.Finished(1000), "a looping bed never ends on its own")
	assert.True(t, g.VoiceEnded(1))
}

func TestGraph_StopAllIsIdempotent(t *testing.T) {
	plan := &mixer.Plan{
		Voice: mixer.Track{Buffer: constBuffer(time.Second, 100, 0.5)},
		Music: &mixer.Track{Buffer: constBuffer(time.Second, 100, 0.5), Loop: true},
	}
	g, err := mixer.NewGraph(plan, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, g.ActiveSources(0))

	assert.NotPanics(t, func() {
		g.StopAll()
		g.StopAll()
	})
	assert.Equal(t, 0, g.ActiveSources(0))
	assert.True(t, g.Finished(0))

	out := make([]float32, 10)
	g.Render(out, 0)
	assert.InDeltaSlice(t, make([]float32, 10), out, 0)
}

func TestGraph_FinishedAtWindowEnd(t *testing.T) {
	plan := &mixer.Plan{
		Voice:    mixer.Track{Buffer: constBuffer(time.Second, 100, 0.5)},
		Music:    &mixer.Track{Buffer: constBuffer(time.Second, 100, 0.5), Loop: true},
		Duration: 3 * time.Second,
	}
	g, err := mixer.NewGraph(plan, 100)
	require.NoError(t, err)

	assert.False(t, g.Finished(299))
	assert.True(t, g.Finished(300))
}
