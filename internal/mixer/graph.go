// Package mixer schedules and sums the voice and music channels of a master.
//
//	voice buffer ──▶ Source ──▶ gain envelope ──┐
//	                                            ├──▶ Σ ──▶ renderer
//	music buffer ──▶ Source ──▶ gain envelope ──┘
//
// Every timestamp is relative to mix start, so the same Plan produces the
// same automation whether it is rendered live or offline.
package mixer

import (
	"errors"
	"time"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// ErrEmptyPlan is returned when a graph is built from a plan without voice.
var ErrEmptyPlan = errors.New("mix plan has no voice track")

// Track is one channel of a Plan.
type Track struct {
	Buffer *audio.SampleBuffer
	Gain   *audio.GainEnvelope
	Loop   bool
}

// Plan pairs the voice with an optional music bed. Both start at 0.
// A zero Duration means open-ended (live playback only).
type Plan struct {
	Profile  string
	Voice    Track
	Music    *Track
	Duration time.Duration
}

// Frames returns the fixed render length at rate, or 0 when open-ended.
func (p *Plan) Frames(rate int) int {
	return audio.FramesFor(p.Duration, rate)
}

// VoiceDuration returns the length of the voice buffer.
func (p *Plan) VoiceDuration() time.Duration {
	return p.Voice.Buffer.Duration()
}

// Graph is a runnable instance of a Plan at one sample rate. Graphs are
// not reused: offline renders build a fresh one per export and each live
// playback owns its own.
type Graph struct {
	rate    int
	frames  int
	voice   *Source
	sources []*Source
}

// NewGraph instantiates the plan's sources at the given output rate.
func NewGraph(plan *Plan, rate int) (*Graph, error) {
	if plan == nil || plan.Voice.Buffer == nil {
		return nil, ErrEmptyPlan
	}
	if rate <= 0 {
		return nil, errors.New("graph sample rate must be positive")
	}

	voice := newSource("voice", plan.Voice)
	g := &Graph{
		rate:    rate,
		frames:  plan.Frames(rate),
		voice:   voice,
		sources: []*Source{voice},
	}

	if plan.Music != nil && plan.Music.Buffer != nil {
		g.sources = append(g.sources, newSource("music", *plan.Music))
	}

	return g, nil
}

// SampleRate returns the output rate of the graph.
func (g *Graph) SampleRate() int { return g.rate }

// Frames returns the fixed length of the graph, 0 when open-ended.
func (g *Graph) Frames() int { return g.frames }

// Voice returns the voice source.
func (g *Graph) Voice() *Source { return g.voice }

// Sources returns every scheduled source.
func (g *Graph) Sources() []*Source { return g.sources }

// Render sums all sources into out, starting at frame offset.
// out is overwritten, not accumulated.
func (g *Graph) Render(out []float32, offset int) {
	rate := float64(g.rate)
	for i := range out {
		t := float64(offset+i) / rate

		var sum float32
		for _, s := range g.sources {
			sum += s.sampleAt(t)
		}
		out[i] = sum
	}
}

// VoiceEnded reports whether the voice has played out by frame offset.
func (g *Graph) VoiceEnded(offset int) bool {
	return g.voice.Ended(float64(offset) / float64(g.rate))
}

// Finished reports whether nothing audible remains at frame offset:
// the fixed window has elapsed, or every source has ended or been stopped.
func (g *Graph) Finished(offset int) bool {
	if g.frames > 0 && offset >= g.frames {
		return true
	}

	t := float64(offset) / float64(g.rate)
	for _, s := range g.sources {
		if s.Active(t) {
			return false
		}
	}

	return true
}

// StopAll stops every source. Idempotent.
func (g *Graph) StopAll() {
	for _, s := range g.sources {
		s.Stop()
	}
}

// ActiveSources counts sources that are neither stopped nor played out.
func (g *Graph) ActiveSources(offset int) int {
	t := float64(offset) / float64(g.rate)

	n := 0
	for _, s := range g.sources {
		if s.Active(t) {
			n++
		}
	}

	return n
}
