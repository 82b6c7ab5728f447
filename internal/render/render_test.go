package render_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

func constBuffer(d time.Duration, rate int, v float32) *audio.SampleBuffer {
	samples := make([]float32, audio.FramesFor(d, rate))
	for i := range samples {
		samples[i] = v
	}

	return audio.NewSampleBuffer(samples, rate)
}

// fakeOutput consumes frames at roughly 10x realtime.
type fakeOutput struct {
	rate      int
	frameSize int

	resumes   atomic.Int32
	frames    atomic.Int64
	resumeErr error
	writeErr  error
}

func newFakeOutput() *fakeOutput {
	return &fakeOutput{rate: 48000, frameSize: 480}
}

func (o *fakeOutput) SampleRate() int { return o.rate }
func (o *fakeOutput) FrameSize() int  { return o.frameSize }

func (o *fakeOutput) Resume(context.Context) error {
	o.resumes.Add(1)

	return o.resumeErr
}

func (o *fakeOutput) WriteFrame(ctx context.Context, frame []float32) error {
	if o.writeErr != nil {
		return o.writeErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Millisecond):
	}
	o.frames.Add(1)

	return nil
}

func previewPlan(t *testing.T, voice time.Duration) *mixer.Plan {
	t.Helper()

	plan, err := mixer.NewScheduler(zaptest.NewLogger(t)).Plan(
		constBuffer(voice, 24000, 0.3),
		constBuffer(time.Second, 48000, 0.5),
		mixer.PreviewProfile(),
	)
	require.NoError(t, err)

	return plan
}

func TestOffline_EndToEndWindow(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	profile := mixer.ExportProfile()

	voice := audio.NewPCMDecoder(nil).DecodePCM16(audio.PCMInt16ToLE(make([]int16, 48000)))
	require.NotNil(t, voice)
	music := constBuffer(10*time.Second, 44100, 0.25)

	plan, err := s.Plan(voice, music, profile)
	require.NoError(t, err)

	master, err := render.NewOffline(zaptest.NewLogger(t)).Render(context.Background(), plan, audio.ExportSampleRate)
	require.NoError(t, err)
	assert.Equal(t, 1_543_500, len(master.Samples))
	assert.Equal(t, 44100, master.SampleRate)
	assert.Equal(t, 1, master.Channels)

	wav, err := audio.EncodeWAV(master)
	require.NoError(t, err)
	assert.Equal(t, 3_087_044, len(wav))
}

func TestOffline_Deterministic(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	voice := audio.NewSampleBuffer(make([]float32, 24000), 24000)
	for i := range voice.Samples {
		voice.Samples[i] = float32(i%97) / 97
	}
	music := constBuffer(3*time.Second, 22050, 0.4)

	profile := mixer.ExportProfile()
	profile.MaxDuration = 4 * time.Second
	plan, err := s.Plan(voice, music, profile)
	require.NoError(t, err)

	r := render.NewOffline(zaptest.NewLogger(t))
	a, err := r.Render(context.Background(), plan, 44100)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), plan, 44100)
	require.NoError(t, err)

	assert.Equal(t, a.Samples, b.Samples)
}

func TestOffline_DuckingShapesMusic(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	profile := mixer.ExportProfile()
	profile.MaxDuration = 6 * time.Second

	silentVoice := constBuffer(2*time.Second, 24000, 0)
	music := constBuffer(6*time.Second, 1000, 1)

	plan, err := s.Plan(silentVoice, music, profile)
	require.NoError(t, err)

	master, err := render.NewOffline(zaptest.NewLogger(t)).Render(context.Background(), plan, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 0.15, master.Samples[0], 1e-6)
	assert.InDelta(t, 0.05, master.Samples[1500], 1e-6)
	assert.InDelta(t, 0.15, master.Samples[3500], 1e-6)
}

func TestOffline_RejectsOpenEndedPlan(t *testing.T) {
	_, err := render.NewOffline(zaptest.NewLogger(t)).Render(context.Background(), previewPlan(t, time.Second), 44100)
	assert.ErrorIs(t, err, render.ErrUnboundedPlan)
}

func TestOffline_Cancelled(t *testing.T) {
	s := mixer.NewScheduler(zaptest.NewLogger(t))
	plan, err := s.Plan(constBuffer(time.Second, 24000, 0.1), nil, mixer.ExportProfile())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = render.NewOffline(zaptest.NewLogger(t)).Render(ctx, plan, 44100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayer_StopIsIdempotent(t *testing.T) {
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		return newFakeOutput(), nil
	}, 0)

	assert.NotPanics(t, func() {
		p.Stop()
		p.Stop()
	})
	assert.False(t, p.Playing())

	pb, err := p.Play(context.Background(), previewPlan(t, 10*time.Second))
	require.NoError(t, err)
	assert.True(t, p.Playing())

	p.Stop()
	p.Stop()
	pb.Stop()
	assert.False(t, p.Playing())
	assert.True(t, pb.Finished())
	assert.Nil(t, p.Active())
}

func TestPlayer_SecondPreviewStopsFirst(t *testing.T) {
	out := newFakeOutput()
	var created atomic.Int32
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		created.Add(1)

		return out, nil
	}, time.Second)

	first, err := p.Play(context.Background(), previewPlan(t, 10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, first.ActiveSources())

	second, err := p.Play(context.Background(), previewPlan(t, 10*time.Second))
	require.NoError(t, err)

	assert.True(t, first.Finished())
	assert.Equal(t, 0, first.ActiveSources())
	assert.Equal(t, 2, second.ActiveSources())
	assert.Same(t, second, p.Active())

	assert.Equal(t, int32(1), created.Load(), "output is created once and reused")
	assert.Equal(t, int32(2), out.resumes.Load(), "output is resumed before every playback")

	p.Stop()
}

func TestPlayer_VoiceCompletionChainsCleanup(t *testing.T) {
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		return newFakeOutput(), nil
	}, 50*time.Millisecond)

	pb, err := p.Play(context.Background(), previewPlan(t, 200*time.Millisecond))
	require.NoError(t, err)

	select {
	case <-pb.VoiceDone():
	case <-time.After(5 * time.Second):
		t.Fatal("voice completion never resolved")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pb.Wait(ctx))

	assert.False(t, p.Playing())
	assert.GreaterOrEqual(t, pb.Position(), 200*time.Millisecond)
}

func TestPlayer_StoppedEarlyNeverResolvesVoice(t *testing.T) {
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		return newFakeOutput(), nil
	}, 0)

	pb, err := p.Play(context.Background(), previewPlan(t, 30*time.Second))
	require.NoError(t, err)
	p.Stop()

	select {
	case <-pb.VoiceDone():
		t.Fatal("voice completion resolved for a stopped playback")
	default:
	}
}

func TestPlayer_OutputFailuresKeepPlayerUsable(t *testing.T) {
	out := newFakeOutput()
	out.resumeErr = errors.New("device suspended")

	var mu sync.Mutex
	calls := 0
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return nil, errors.New("no device yet")
		}

		return out, nil
	}, 0)

	_, err := p.Play(context.Background(), previewPlan(t, time.Second))
	require.Error(t, err)

	_, err = p.Play(context.Background(), previewPlan(t, time.Second))
	require.ErrorContains(t, err, "device suspended")

	out.resumeErr = nil
	pb, err := p.Play(context.Background(), previewPlan(t, time.Second))
	require.NoError(t, err)
	pb.Stop()
	assert.Equal(t, 2, calls)
}

func TestPlayer_WriteErrorEndsPlayback(t *testing.T) {
	out := newFakeOutput()
	out.writeErr = errors.New("voice connection lost")
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) { return out, nil }, 0)

	pb, err := p.Play(context.Background(), previewPlan(t, time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorContains(t, pb.Wait(ctx), "voice connection lost")
	assert.False(t, p.Playing())
}

func TestPlayer_NoFactory(t *testing.T) {
	p := render.NewPlayer(zaptest.NewLogger(t), nil, 0)

	_, err := p.Play(context.Background(), previewPlan(t, time.Second))
	assert.ErrorIs(t, err, render.ErrNoOutput)
}

// dialingOutput blocks in Resume until released, like a voice dial.
type dialingOutput struct {
	*fakeOutput
	entered chan struct{}
	release chan struct{}
}

func (o *dialingOutput) Resume(ctx context.Context) error {
	close(o.entered)
	<-o.release

	return o.fakeOutput.Resume(ctx)
}

func TestPlayer_StopDuringResumeIsImmediate(t *testing.T) {
	out := &dialingOutput{
		fakeOutput: newFakeOutput(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	p := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) { return out, nil }, 0)

	type result struct {
		pb  *render.Playback
		err error
	}
	plan := previewPlan(t, 10*time.Second)
	played := make(chan result, 1)
	go func() {
		pb, err := p.Play(context.Background(), plan)
		played <- result{pb, err}
	}()

	<-out.entered

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop waited for the output to resume")
	}

	close(out.release)
	res := <-played
	require.ErrorIs(t, res.err, render.ErrSuperseded)
	assert.Nil(t, res.pb)
	assert.Nil(t, p.Active())
	assert.False(t, p.Playing())
}
