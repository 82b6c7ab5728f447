package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/mixer"
)

// Output is a realtime audio sink. Implementations pace WriteFrame to the
// wall clock (or block on the device) so the pump runs at playback speed.
type Output interface {
	SampleRate() int
	// FrameSize is the number of mono frames per WriteFrame call.
	FrameSize() int
	// Resume readies a possibly suspended output. It is called before every
	// playback and must be cheap when already running.
	Resume(ctx context.Context) error
	WriteFrame(ctx context.Context, frame []float32) error
}

// OutputFactory creates the process-wide Output on first use.
type OutputFactory func() (Output, error)

var (
	// ErrNoOutput is returned when the player has no way to create an output.
	ErrNoOutput = errors.New("no realtime output configured")
	// ErrSuperseded is returned by Play when Stop or another Play ran while
	// the output was resuming.
	ErrSuperseded = errors.New("playback superseded before it started")
)

// Player owns the realtime output and at most one active Playback.
// It is created once per process and shared by reference.
type Player struct {
	logger  *zap.Logger
	factory OutputFactory
	tail    time.Duration

	mu     sync.Mutex
	out    Output
	active *Playback
	// gen counts Play and Stop calls so a Play can tell it was overtaken
	// while resuming without the lock.
	gen uint64
}

// NewPlayer creates a player. tail is the delay between the voice ending
// and the playback being stopped.
func NewPlayer(logger *zap.Logger, factory OutputFactory, tail time.Duration) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Player{
		logger:  logger.Named("player"),
		factory: factory,
		tail:    tail,
	}
}

// Play stops whatever is playing, resumes the output and starts plan.
// The resume runs without the player lock because it may dial the
// network; Stop stays immediate meanwhile.
func (p *Player) Play(ctx context.Context, plan *mixer.Plan) (*Playback, error) {
	p.mu.Lock()
	p.stopLocked()
	p.gen++
	gen := p.gen
	out, err := p.outputLocked()
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := out.Resume(ctx); err != nil {
		return nil, fmt.Errorf("resume output: %w", err)
	}

	graph, err := mixer.NewGraph(plan, out.SampleRate())
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		p.logger.Debug("Playback overtaken while resuming output")

		return nil, ErrSuperseded
	}

	pb := newPlayback(graph, p.logger)
	pumpCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pb.cancel = cancel

	go pb.pump(pumpCtx, out)
	go pb.cleanupAfterVoice(p.tail)

	p.active = pb
	p.logger.Info("Playback started",
		zap.String("playback_id", pb.ID),
		zap.String("profile", plan.Profile),
		zap.Duration("voice", plan.VoiceDuration()),
		zap.Int("rate_hz", out.SampleRate()))

	return pb, nil
}

// Stop halts the active playback, if any. Safe to call at any time.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.stopLocked()
}

// SampleRate returns the rate of the realtime output, creating it if needed.
func (p *Player) SampleRate() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out, err := p.outputLocked()
	if err != nil {
		return 0, err
	}

	return out.SampleRate(), nil
}

// Playing reports whether a playback is still producing audio.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active != nil && !p.active.Finished()
}

// Active returns the current playback, or nil.
func (p *Player) Active() *Playback {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active
}

func (p *Player) stopLocked() {
	if p.active == nil {
		return
	}

	p.active.Stop()
	p.logger.Info("Playback stopped", zap.String("playback_id", p.active.ID))
	p.active = nil
}

func (p *Player) outputLocked() (Output, error) {
	if p.out != nil {
		return p.out, nil
	}
	if p.factory == nil {
		return nil, ErrNoOutput
	}

	out, err := p.factory()
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	p.out = out
	p.logger.Debug("Created realtime output",
		zap.Int("rate_hz", out.SampleRate()),
		zap.Int("frame_size", out.FrameSize()))

	return out, nil
}

// Playback is one live run of a plan.
type Playback struct {
	ID string

	logger *zap.Logger
	graph  *mixer.Graph
	cancel context.CancelFunc

	position  atomic.Int64
	voiceOnce sync.Once
	voiceDone chan struct{}
	stopOnce  sync.Once
	done      chan struct{}

	errMu sync.Mutex
	err   error
}

func newPlayback(graph *mixer.Graph, logger *zap.Logger) *Playback {
	id := uuid.NewString()

	return &Playback{
		ID:        id,
		logger:    logger.With(zap.String("playback_id", id)),
		graph:     graph,
		voiceDone: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// VoiceDone is closed when the voice source reaches the end of its buffer.
// It never closes if the playback is stopped first.
func (pb *Playback) VoiceDone() <-chan struct{} { return pb.voiceDone }

// Done is closed once every source is stopped and the pump has exited.
func (pb *Playback) Done() <-chan struct{} { return pb.done }

// Finished reports whether Done is closed.
func (pb *Playback) Finished() bool {
	select {
	case <-pb.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the playback finishes or ctx ends.
func (pb *Playback) Wait(ctx context.Context) error {
	select {
	case <-pb.done:
		return pb.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the output error that ended the playback, if any.
func (pb *Playback) Err() error {
	pb.errMu.Lock()
	defer pb.errMu.Unlock()

	return pb.err
}

// Stop stops every source and waits for the pump to exit. Idempotent.
func (pb *Playback) Stop() {
	pb.stopOnce.Do(func() {
		pb.graph.StopAll()
		if pb.cancel != nil {
			pb.cancel()
		}
	})
	<-pb.done
}

// ActiveSources counts sources still scheduled at the current position.
func (pb *Playback) ActiveSources() int {
	return pb.graph.ActiveSources(int(pb.position.Load()))
}

// Position returns the number of frames written so far.
func (pb *Playback) Position() time.Duration {
	rate := pb.graph.SampleRate()

	return time.Duration(pb.position.Load() * int64(time.Second) / int64(rate))
}

func (pb *Playback) pump(ctx context.Context, out Output) {
	defer close(pb.done)
	defer pb.graph.StopAll()

	frame := make([]float32, out.FrameSize())
	offset := 0
	for ctx.Err() == nil {
		if pb.graph.Finished(offset) {
			return
		}

		pb.graph.Render(frame, offset)
		if err := out.WriteFrame(ctx, frame); err != nil {
			if ctx.Err() == nil {
				pb.setErr(err)
				pb.logger.Warn("Output write failed, ending playback", zap.Error(err))
			}

			return
		}

		offset += len(frame)
		pb.position.Store(int64(offset))

		if pb.graph.VoiceEnded(offset) && !pb.graph.Voice().Stopped() {
			pb.voiceOnce.Do(func() {
				pb.logger.Debug("Voice reached end of buffer", zap.Int("frame", offset))
				close(pb.voiceDone)
			})
		}
	}
}

// cleanupAfterVoice chains a fixed-delay stop onto VoiceDone.
func (pb *Playback) cleanupAfterVoice(tail time.Duration) {
	select {
	case <-pb.voiceDone:
	case <-pb.done:
		return
	}

	timer := time.NewTimer(tail)
	defer timer.Stop()

	select {
	case <-timer.C:
		pb.Stop()
	case <-pb.done:
	}
}

func (pb *Playback) setErr(err error) {
	pb.errMu.Lock()
	defer pb.errMu.Unlock()

	pb.err = err
}
