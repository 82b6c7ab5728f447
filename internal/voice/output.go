// Package voice plays rendered audio into a Discord voice channel.
package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// ErrNoChannel is returned when the output has not been routed to a channel.
var ErrNoChannel = errors.New("no voice channel selected")

// maxOpusFrame is the largest packet the encoder may produce.
const maxOpusFrame = 4000

// driftTolerance is how late a frame may be before it is logged.
const driftTolerance = 5 * time.Millisecond

// Connection is a joined voice channel.
type Connection interface {
	Write(opus []byte) (int, error)
	Leave(ctx context.Context) error
}

// Dialer joins a voice channel and marks the bot as speaking.
type Dialer func(ctx context.Context, channelID discord.ChannelID) (Connection, error)

// Encoder compresses one interleaved stereo frame.
type Encoder interface {
	Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error)
}

// Output is a realtime output that streams 20 ms Opus frames to Discord.
// Frames are paced against a clock started by Resume, so the pump runs at
// playback speed.
type Output struct {
	logger *zap.Logger
	dial   Dialer
	enc    Encoder

	mu      sync.Mutex
	target  discord.ChannelID
	conn    Connection
	channel discord.ChannelID

	clock  time.Time
	frames int64
	stereo []int16
}

// NewOutput creates an output. Nothing is joined until Resume.
func NewOutput(logger *zap.Logger, dial Dialer, enc Encoder) *Output {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Output{
		logger: logger.Named("voice"),
		dial:   dial,
		enc:    enc,
		stereo: make([]int16, audio.DiscordFrameSize*audio.DiscordChannels),
	}
}

// Route selects the channel the next Resume connects to.
func (o *Output) Route(channelID discord.ChannelID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.target = channelID
}

// Channel returns the connected channel, or zero.
func (o *Output) Channel() discord.ChannelID {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.channel
}

func (o *Output) SampleRate() int { return audio.DiscordSampleRate }

func (o *Output) FrameSize() int { return audio.DiscordFrameSize }

// Resume joins the routed channel if needed and restarts the frame clock.
func (o *Output) Resume(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.target == 0 {
		return ErrNoChannel
	}

	if o.conn != nil && o.channel != o.target {
		o.leaveLocked(ctx)
	}

	if o.conn == nil {
		conn, err := o.dial(ctx, o.target)
		if err != nil {
			return fmt.Errorf("join voice channel %s: %w", o.target, err)
		}
		o.conn = conn
		o.channel = o.target
		o.logger.Info("Joined voice channel", zap.Stringer("channel_id", o.channel))
	}

	o.clock = time.Now()
	o.frames = 0

	return nil
}

// WriteFrame encodes frame as stereo Opus and sends it at its slot on the
// frame clock.
func (o *Output) WriteFrame(ctx context.Context, frame []float32) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.conn == nil {
		return ErrNoChannel
	}
	if len(frame) != audio.DiscordFrameSize {
		return fmt.Errorf("frame has %d samples, want %d", len(frame), audio.DiscordFrameSize)
	}

	for i, s := range frame {
		v := audio.FloatToPCM16(s)
		o.stereo[2*i] = v
		o.stereo[2*i+1] = v
	}

	opus, err := o.enc.Encode(o.stereo, audio.DiscordFrameSize, maxOpusFrame)
	if err != nil {
		return fmt.Errorf("encode opus frame: %w", err)
	}

	expected := o.clock.Add(time.Duration(o.frames) * audio.FrameDuration)
	if now := time.Now(); now.Before(expected) {
		timer := time.NewTimer(expected.Sub(now))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		}
	} else if drift := now.Sub(expected); drift > driftTolerance {
		o.logger.Debug("Frame timing drift detected",
			zap.Int64("frame_index", o.frames),
			zap.Duration("drift", drift))
		// Re-anchor so one stall does not turn into a burst.
		o.clock = now.Add(-time.Duration(o.frames) * audio.FrameDuration)
	}

	if _, err := o.conn.Write(opus); err != nil {
		return fmt.Errorf("send opus frame: %w", err)
	}
	o.frames++

	return nil
}

// Close leaves the channel, if any.
func (o *Output) Close(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.leaveLocked(ctx)

	return nil
}

func (o *Output) leaveLocked(ctx context.Context) {
	if o.conn == nil {
		return
	}

	if err := o.conn.Leave(ctx); err != nil {
		o.logger.Warn("Failed to leave voice channel cleanly",
			zap.Stringer("channel_id", o.channel),
			zap.Error(err))
	} else {
		o.logger.Info("Left voice channel", zap.Stringer("channel_id", o.channel))
	}

	o.conn = nil
	o.channel = 0
}
