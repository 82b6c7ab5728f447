// Package speaker plays live previews on the local default audio device.
package speaker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

const (
	sampleRate = audio.DiscordSampleRate
	frameSize  = sampleRate / 50 // 20 ms
)

// Output streams mono PCM16 into an oto player. Writes block on the
// device pipe, which paces the pump at playback speed.
type Output struct {
	logger *zap.Logger
	ctx    *oto.Context

	mu     sync.Mutex
	player oto.Player
	w      *io.PipeWriter
	buf    []byte
}

// NewOutput opens the default device and waits until it is ready.
func NewOutput(ctx context.Context, logger *zap.Logger) (*Output, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	otoCtx, ready, err := oto.NewContext(sampleRate, 1, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Output{
		logger: logger.Named("speaker"),
		ctx:    otoCtx,
		buf:    make([]byte, 0, frameSize*2),
	}, nil
}

func (o *Output) SampleRate() int { return sampleRate }

func (o *Output) FrameSize() int { return frameSize }

// Resume wakes the device and starts a fresh player.
func (o *Output) Resume(context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.ctx.Resume(); err != nil {
		return fmt.Errorf("resume audio device: %w", err)
	}

	o.closePlayerLocked()

	r, w := io.Pipe()
	o.player = o.ctx.NewPlayer(r)
	o.w = w
	o.player.Play()

	return nil
}

// WriteFrame blocks until the device has taken the frame or ctx ends.
func (o *Output) WriteFrame(ctx context.Context, frame []float32) error {
	o.mu.Lock()
	w := o.w
	o.buf = EncodeFrame(o.buf[:0], frame)
	data := o.buf
	o.mu.Unlock()

	if w == nil {
		return errors.New("speaker output not resumed")
	}

	done := make(chan error, 1)
	go func() {
		_, err := w.Write(data)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = w.CloseWithError(ctx.Err())
		<-done

		return ctx.Err()
	}
}

// Close stops playback and suspends the device.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closePlayerLocked()

	return o.ctx.Suspend()
}

func (o *Output) closePlayerLocked() {
	if o.w != nil {
		_ = o.w.Close()
		o.w = nil
	}
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			o.logger.Debug("Closing player", zap.Error(err))
		}
		o.player = nil
	}
}

// EncodeFrame appends frame to dst as PCM16 little-endian.
func EncodeFrame(dst []byte, frame []float32) []byte {
	for _, s := range frame {
		v := uint16(audio.FloatToPCM16(s))
		dst = append(dst, byte(v), byte(v>>8))
	}

	return dst
}
