package mixer

import (
	"math"
	"sync/atomic"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// Source plays one SampleBuffer against a render clock, resampling it to the
// graph rate by linear interpolation, optionally looping.
type Source struct {
	name    string
	buf     *audio.SampleBuffer
	loop    bool
	gain    *audio.GainEnvelope
	stopped atomic.Bool
}

func newSource(name string, t Track) *Source {
	gain := t.Gain
	if gain == nil {
		gain = audio.ConstantGain(1)
	}

	return &Source{name: name, buf: t.Buffer, loop: t.Loop, gain: gain}
}

// Name identifies the source in logs ("voice", "music").
func (s *Source) Name() string { return s.name }

// Stop silences the source. It is safe to call any number of times,
// before the source has produced a sample or after it has ended.
func (s *Source) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Source) Stopped() bool {
	return s.stopped.Load()
}

// Ended reports whether a non-looping source has played past its end at t.
func (s *Source) Ended(t float64) bool {
	if s.stopped.Load() {
		return true
	}
	if s.loop {
		return false
	}

	return t >= s.buf.Seconds()
}

// Active reports whether the source can still contribute audio at t.
func (s *Source) Active(t float64) bool {
	return !s.Ended(t)
}

// sampleAt returns the gained output of the source at t seconds.
func (s *Source) sampleAt(t float64) float32 {
	if s.stopped.Load() || t < 0 {
		return 0
	}

	n := len(s.buf.Samples)
	if n == 0 {
		return 0
	}

	pos := t * float64(s.buf.SampleRate)
	if s.loop {
		pos = math.Mod(pos, float64(n))
	} else if pos >= float64(n) {
		return 0
	}

	i := int(pos)
	frac := float32(pos - float64(i))
	a := s.buf.Samples[i]

	var b float32
	switch {
	case i+1 < n:
		b = s.buf.Samples[i+1]
	case s.loop:
		b = s.buf.Samples[0]
	}

	v := a + (b-a)*frac

	return v * float32(s.gain.ValueAtSeconds(t))
}
