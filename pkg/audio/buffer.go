package audio

import (
	"errors"
	"time"
)

// ErrEmptyMaster is returned when a master carries no samples to encode.
var ErrEmptyMaster = errors.New("rendered master has no samples")

// SampleBuffer is decoded mono audio. It is never mutated after decoding;
// the stage that produced it hands it to the next stage by pointer.
type SampleBuffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// NewSampleBuffer wraps mono samples at the given rate.
func NewSampleBuffer(samples []float32, sampleRate int) *SampleBuffer {
	return &SampleBuffer{
		SampleRate: sampleRate,
		Channels:   1,
		Samples:    samples,
	}
}

// Len returns the number of sample frames.
func (b *SampleBuffer) Len() int {
	if b == nil {
		return 0
	}

	return len(b.Samples)
}

// Duration returns the buffer's playback length at its own sample rate.
func (b *SampleBuffer) Duration() time.Duration {
	if b == nil {
		return 0
	}

	return DurationOf(len(b.Samples), b.SampleRate)
}

// Seconds is Duration in float seconds, used by the envelope math.
func (b *SampleBuffer) Seconds() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}

	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// RenderedMaster is the float output of an offline render.
// Samples are interleaved when Channels > 1.
type RenderedMaster struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames (samples per channel).
func (m *RenderedMaster) Frames() int {
	if m == nil || m.Channels <= 0 {
		return 0
	}

	return len(m.Samples) / m.Channels
}

// Duration returns the master's playback length.
func (m *RenderedMaster) Duration() time.Duration {
	if m == nil {
		return 0
	}

	return DurationOf(m.Frames(), m.SampleRate)
}
