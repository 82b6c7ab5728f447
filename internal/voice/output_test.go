package voice_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-adstudio/internal/voice"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

type fakeConn struct {
	mu      sync.Mutex
	packets [][]byte
	left    bool
	err     error
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.packets = append(c.packets, append([]byte(nil), b...))

	return len(b), nil
}

func (c *fakeConn) Leave(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left = true

	return nil
}

// pcmEncoder records the stereo frames it is given.
type pcmEncoder struct {
	frames [][]int16
}

func (e *pcmEncoder) Encode(pcm []int16, frameSize, _ int) ([]byte, error) {
	if len(pcm) != frameSize*2 {
		return nil, errors.New("bad frame")
	}
	e.frames = append(e.frames, append([]int16(nil), pcm...))

	return []byte{0xF8, 0xFF, 0xFE}, nil
}

type dialLog struct {
	joined []discord.ChannelID
	conns  []*fakeConn
}

func (d *dialLog) dial(_ context.Context, ch discord.ChannelID) (voice.Connection, error) {
	c := &fakeConn{}
	d.joined = append(d.joined, ch)
	d.conns = append(d.conns, c)

	return c, nil
}

func TestOutput_RequiresRoute(t *testing.T) {
	var d dialLog
	out := voice.NewOutput(zaptest.NewLogger(t), d.dial, &pcmEncoder{})

	assert.ErrorIs(t, out.Resume(context.Background()), voice.ErrNoChannel)
	assert.ErrorIs(t, out.WriteFrame(context.Background(), make([]float32, 960)), voice.ErrNoChannel)
	assert.Empty(t, d.joined)
}

func TestOutput_WritesPacedStereoFrames(t *testing.T) {
	var d dialLog
	enc := &pcmEncoder{}
	out := voice.NewOutput(zaptest.NewLogger(t), d.dial, enc)
	assert.Equal(t, 48000, out.SampleRate())
	assert.Equal(t, 960, out.FrameSize())

	out.Route(42)
	require.NoError(t, out.Resume(context.Background()))

	frame := make([]float32, 960)
	frame[0] = 0.5
	frame[1] = -1

	start := time.Now()
	for range 5 {
		require.NoError(t, out.WriteFrame(context.Background(), frame))
	}
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 4*audio.FrameDuration, "frames are sent at 20 ms slots")
	require.Len(t, enc.frames, 5)
	assert.Equal(t, []int16{16383, 16383, -32768, -32768}, enc.frames[0][:4])
	assert.Len(t, d.conns[0].packets, 5)
}

func TestOutput_ReusesAndSwitchesChannels(t *testing.T) {
	var d dialLog
	out := voice.NewOutput(zaptest.NewLogger(t), d.dial, &pcmEncoder{})
	ctx := context.Background()

	out.Route(1)
	require.NoError(t, out.Resume(ctx))
	require.NoError(t, out.Resume(ctx))
	assert.Equal(t, []discord.ChannelID{1}, d.joined, "same channel is joined once")

	out.Route(2)
	require.NoError(t, out.Resume(ctx))
	assert.Equal(t, []discord.ChannelID{1, 2}, d.joined)
	assert.True(t, d.conns[0].left)
	assert.Equal(t, discord.ChannelID(2), out.Channel())

	require.NoError(t, out.Close(ctx))
	assert.True(t, d.conns[1].left)
	assert.Equal(t, discord.ChannelID(0), out.Channel())
}

func TestOutput_WriteRespectsContext(t *testing.T) {
	var d dialLog
	out := voice.NewOutput(zaptest.NewLogger(t), d.dial, &pcmEncoder{})
	out.Route(7)
	require.NoError(t, out.Resume(context.Background()))
	require.NoError(t, out.WriteFrame(context.Background(), make([]float32, 960)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, out.WriteFrame(ctx, make([]float32, 960)), context.Canceled)
}

func TestOutput_RejectsWrongFrameSize(t *testing.T) {
	var d dialLog
	out := voice.NewOutput(zaptest.NewLogger(t), d.dial, &pcmEncoder{})
	out.Route(7)
	require.NoError(t, out.Resume(context.Background()))

	assert.Error(t, out.WriteFrame(context.Background(), make([]float32, 480)))
}
