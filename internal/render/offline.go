// Package render executes mix plans, either offline into memory or live
// into a realtime Output.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// ErrUnboundedPlan is returned when an offline render has no fixed window.
var ErrUnboundedPlan = errors.New("offline render needs a fixed duration")

const offlineChunk = 8192

// Offline renders plans as fast as possible into a RenderedMaster.
type Offline struct {
	logger *zap.Logger
}

// NewOffline creates an offline renderer.
func NewOffline(logger *zap.Logger) *Offline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Offline{logger: logger.Named("offline")}
}

// Render builds a fresh graph for plan at sampleRate and computes its full
// fixed-length window. ctx is checked between chunks.
func (o *Offline) Render(ctx context.Context, plan *mixer.Plan, sampleRate int) (*audio.RenderedMaster, error) {
	graph, err := mixer.NewGraph(plan, sampleRate)
	if err != nil {
		return nil, err
	}

	frames := graph.Frames()
	if frames <= 0 {
		return nil, ErrUnboundedPlan
	}

	start := time.Now()
	samples := make([]float32, frames)
	for off := 0; off < frames; off += offlineChunk {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("offline render interrupted at frame %d: %w", off, err)
		}
		end := min(off+offlineChunk, frames)
		graph.Render(samples[off:end], off)
	}

	o.logger.Debug("Rendered master",
		zap.String("profile", plan.Profile),
		zap.Int("frames", frames),
		zap.Int("rate_hz", sampleRate),
		zap.Duration("elapsed", time.Since(start)))

	return &audio.RenderedMaster{
		SampleRate: sampleRate,
		Channels:   1,
		Samples:    samples,
	}, nil
}
