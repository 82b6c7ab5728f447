package mixer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

func constBuffer(d time.Duration, rate int, v float32) *audio.SampleBuffer {
	samples := make([]float32, audio.FramesFor(d, rate))
	for i := range samples {
		samples[i] = v
	}

	return audio.NewSampleBuffer(samples, rate)
}

func TestScheduler_NoVoiceAborts(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	music := constBuffer(10*time.Second, 44100, 0.5)

	plan, err := s.Plan(nil, music, mixer.ExportProfile())
	assert.ErrorIs(t, err, mixer.ErrNoVoice)
	assert.Nil(t, plan)

	plan, err = s.Plan(audio.NewSampleBuffer(nil, 24000), music, mixer.PreviewProfile())
	assert.ErrorIs(t, err, mixer.ErrNoVoice)
	assert.Nil(t, plan)
}

func TestScheduler_ContentTooLong(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	voice := constBuffer(36*time.Second, 24000, 0.1)

	_, err := s.Plan(voice, nil, mixer.ExportProfile())
	assert.ErrorIs(t, err, mixer.ErrContentTooLong)

	// Preview is open-ended and accepts any length.
	plan, err := s.Plan(voice, nil, mixer.PreviewProfile())
	require.NoError(t, err)
	assert.Zero(t, plan.Duration)
}

func TestScheduler_FixedDipEnvelope(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	profile := mixer.ExportProfile()

	tests := map[string]time.Duration{
		"two_second_voice":   2 * time.Second,
		"sub_attack_voice":   400 * time.Millisecond,
		"twenty_second_spot": 20 * time.Second,
	}

	for name, voiceDur := range tests {
		t.Run(name, func(t *testing.T) {
			voice := constBuffer(voiceDur, 24000, 0.2)
			music := constBuffer(10*time.Second, 44100, 0.5)

			plan, err := s.Plan(voice, music, profile)
			require.NoError(t, err)
			require.NotNil(t, plan.Music)
			assert.False(t, plan.Music.Loop)
			assert.Equal(t, 35*time.Second, plan.Duration)

			gain := plan.Music.Gain
			assert.InDelta(t, profile.MusicBaseline, gain.ValueAt(0), 1e-12)

			hold := max(voiceDur, profile.DuckAttack)
			assert.Less(t, gain.ValueAt(hold), profile.MusicBaseline)
			assert.InDelta(t, profile.MusicDucked, gain.ValueAt(hold), 1e-9)

			restored := hold + profile.DuckRelease
			assert.GreaterOrEqual(t, gain.ValueAt(restored)+1e-12, profile.MusicBaseline)
			assert.GreaterOrEqual(t, gain.ValueAt(plan.Duration)+1e-12, profile.MusicBaseline)

			assert.InDelta(t, profile.VoiceGain, plan.Voice.Gain.ValueAt(hold), 1e-12)
		})
	}
}

func TestScheduler_ReleaseEndsByMixEnd(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	voice := constBuffer(34500*time.Millisecond, 24000, 0.2)
	music := constBuffer(10*time.Second, 44100, 0.5)

	plan, err := s.Plan(voice, music, mixer.ExportProfile())
	require.NoError(t, err)

	points := plan.Music.Gain.Points()
	last := points[len(points)-1]
	assert.Equal(t, audio.ExponentialRamp, last.Kind)
	assert.LessOrEqual(t, last.At, plan.Duration)
}

func TestScheduler_PreviewLoopsBed(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	voice := constBuffer(3*time.Second, 24000, 0.2)
	music := constBuffer(time.Second, 48000, 0.5)

	plan, err := s.Plan(voice, music, mixer.PreviewProfile())
	require.NoError(t, err)
	require.NotNil(t, plan.Music)

	assert.True(t, plan.Music.Loop)
	for _, at := range []time.Duration{0, time.Second, 30 * time.Second} {
		assert.InDelta(t, 0.04, plan.Music.Gain.ValueAt(at), 1e-12)
	}
}

func TestScheduler_VoiceOnly(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))

	plan, err := s.Plan(constBuffer(time.Second, 24000, 0.2), nil, mixer.ExportProfile())
	require.NoError(t, err)
	assert.Nil(t, plan.Music)
}
