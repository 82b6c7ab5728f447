// Package speech narrates ad scripts with the hosted text-to-speech model.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/metrics"
)

var (
	// ErrEmptyText is returned when there is nothing to narrate.
	ErrEmptyText = errors.New("script text is empty")
	// ErrUnknownVoice is returned for voices outside the configured list.
	ErrUnknownVoice = errors.New("unknown voice")
	// ErrAudioTooLong is returned when the narration exceeds MaxAudioBytes.
	ErrAudioTooLong = errors.New("narration audio too long")
)

// MaxAudioBytes bounds a single narration, about 174 s of 24 kHz PCM16.
const MaxAudioBytes = 8 << 20

// Client is the part of the OpenAI client used for speech.
type Client interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// Request is one narration.
type Request struct {
	Text  string
	Style Style
	Voice string
	// Preview requests a lighter direction, used for quick auditions.
	Preview bool
}

// Synthesizer turns script text into the base64 PCM16 payload the
// mastering pipeline consumes.
type Synthesizer struct {
	logger  *zap.Logger
	client  Client
	model   string
	voices  []string
	metrics *metrics.Metrics
}

// SynthesizerParams holds dependencies for NewSynthesizer.
type SynthesizerParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Client  Client
	Metrics *metrics.Metrics `optional:"true"`
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(params SynthesizerParams) *Synthesizer {
	return &Synthesizer{
		logger:  params.Logger.Named("speech"),
		client:  params.Client,
		model:   params.Config.OpenAI.SpeechModel,
		voices:  params.Config.OpenAI.Voices,
		metrics: params.Metrics,
	}
}

// Voices returns the configured voices, default first.
func (s *Synthesizer) Voices() []string {
	return slices.Clone(s.voices)
}

// ResolveVoice maps an empty name to the default voice and rejects
// unknown ones.
func (s *Synthesizer) ResolveVoice(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		if len(s.voices) == 0 {
			return "", ErrUnknownVoice
		}

		return s.voices[0], nil
	}
	if !slices.Contains(s.voices, name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVoice, name)
	}

	return name, nil
}

// Synthesize narrates req.Text and returns base64-encoded 24 kHz mono
// PCM16 little-endian audio. An empty audio body yields an empty payload
// and no error; the caller decides what silence means.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", ErrEmptyText
	}

	voice, err := s.ResolveVoice(req.Voice)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Instructions:   Instructions(req.Style, req.Preview),
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		s.metrics.RecordSpeech(false)
		s.logger.Error("Speech request failed", zap.String("voice", voice), zap.Error(err))

		return "", fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(io.LimitReader(resp, MaxAudioBytes+1))
	if err != nil {
		s.metrics.RecordSpeech(false)

		return "", fmt.Errorf("read speech audio: %w", err)
	}
	if len(pcm) > MaxAudioBytes {
		s.metrics.RecordSpeech(false)
		s.logger.Warn("Speech audio exceeds the narration limit",
			zap.String("voice", voice),
			zap.Int("limit_bytes", MaxAudioBytes))

		return "", fmt.Errorf("%w: more than %d bytes", ErrAudioTooLong, MaxAudioBytes)
	}
	s.metrics.RecordSpeech(true)

	s.logger.Debug("Synthesized narration",
		zap.String("voice", voice),
		zap.Stringer("style", req.Style),
		zap.Bool("preview", req.Preview),
		zap.Int("pcm_bytes", len(pcm)),
		zap.Duration("elapsed", time.Since(start)))

	if len(pcm) == 0 {
		s.logger.Warn("Speech model returned no audio", zap.String("voice", voice))

		return "", nil
	}

	return base64.StdEncoding.EncodeToString(pcm), nil
}

// Instructions is the delivery direction sent alongside the script. The
// model reads Input aloud verbatim, so the direction never goes there.
func Instructions(style Style, preview bool) string {
	if preview {
		return "Quick audition read as a radio announcer. " + style.Direction()
	}

	return "Act as a radio announcer. " + style.Direction()
}
