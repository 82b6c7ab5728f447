package mixer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

var (
	// ErrNoVoice means there is nothing to narrate; nothing is scheduled.
	ErrNoVoice = errors.New("no voice buffer to mix")
	// ErrContentTooLong means the voice does not fit the fixed render window.
	ErrContentTooLong = errors.New("voice exceeds the render window")
)

// Ducking selects the music automation of a profile.
type Ducking int

const (
	// FixedDip lowers the bed under the voice and restores it afterwards.
	FixedDip Ducking = iota
	// LoopingBed keeps a looping bed at a constant low gain.
	LoopingBed
)

// Profile is one configuration of the single mix design.
type Profile struct {
	Name    string
	Ducking Ducking

	VoiceGain float64

	// FixedDip.
	MusicBaseline float64
	MusicDucked   float64
	DuckAttack    time.Duration // time to reach MusicDucked from mix start
	DuckRelease   time.Duration // time to return to MusicBaseline after the voice

	// LoopingBed.
	BedGain float64

	// Fixed render window; zero means open-ended.
	MaxDuration time.Duration
}

// ExportProfile is the canonical fixed-dip curve used for downloads.
func ExportProfile() Profile {
	return Profile{
		Name:          "export",
		Ducking:       FixedDip,
		VoiceGain:     1.0,
		MusicBaseline: 0.15,
		MusicDucked:   0.05,
		DuckAttack:    time.Second,
		DuckRelease:   time.Second,
		MaxDuration:   35 * time.Second,
	}
}

// PreviewProfile loops the bed quietly under a single pass of the voice.
func PreviewProfile() Profile {
	return Profile{
		Name:      "preview",
		Ducking:   LoopingBed,
		VoiceGain: 1.0,
		BedGain:   0.04,
	}
}

// Scheduler turns decoded buffers into a Plan.
type Scheduler struct {
	logger *zap.Logger
}

// NewScheduler creates a scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{logger: logger.Named("mixer")}
}

// Plan builds the mix for voice and an optional music bed under profile.
func (s *Scheduler) Plan(voice, music *audio.SampleBuffer, profile Profile) (*Plan, error) {
	if voice == nil || voice.Len() == 0 {
		return nil, ErrNoVoice
	}

	voiceDur := voice.Duration()
	if profile.MaxDuration > 0 && voiceDur > profile.MaxDuration {
		return nil, fmt.Errorf("%w: voice %s, window %s", ErrContentTooLong, voiceDur, profile.MaxDuration)
	}

	plan := &Plan{
		Profile:  profile.Name,
		Voice:    Track{Buffer: voice, Gain: audio.ConstantGain(profile.VoiceGain)},
		Duration: profile.MaxDuration,
	}

	if music != nil && music.Len() > 0 {
		track := &Track{Buffer: music}
		switch profile.Ducking {
		case LoopingBed:
			track.Loop = true
			track.Gain = audio.ConstantGain(profile.BedGain)
		default:
			track.Gain = fixedDip(voiceDur, profile)
		}
		plan.Music = track
	}

	s.logger.Debug("Planned mix",
		zap.String("profile", profile.Name),
		zap.Duration("voice", voiceDur),
		zap.Duration("music", music.Duration()),
		zap.Duration("window", plan.Duration))

	return plan, nil
}

// fixedDip:
//
//	gain
//	base ─┐                              ┌── base
//	       ╲                            ╱
//	duck    └──────────────────────────┘
//	      0  attack               voice end  +release
func fixedDip(voiceDur time.Duration, p Profile) *audio.GainEnvelope {
	env := audio.NewGainEnvelope(p.MusicBaseline).
		SetValueAt(p.MusicBaseline, 0).
		ExponentialRampTo(p.MusicDucked, p.DuckAttack)

	holdEnd := max(voiceDur, p.DuckAttack)
	releaseEnd := holdEnd + p.DuckRelease
	if p.MaxDuration > 0 {
		releaseEnd = min(releaseEnd, p.MaxDuration)
	}
	if releaseEnd > holdEnd {
		env.SetValueAt(p.MusicDucked, holdEnd).
			ExponentialRampTo(p.MusicBaseline, releaseEnd)
	}

	return env
}
