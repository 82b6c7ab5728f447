// Package mastering turns synthesized narration and a music bed into either
// a live preview or a downloadable WAV master.
package mastering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/metrics"
	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// MusicSource loads a music bed at a given sample rate. An empty URL yields
// a nil buffer and no error.
type MusicSource interface {
	Load(ctx context.Context, url string, sampleRate int) (*audio.SampleBuffer, error)
}

// WavFile is a finished export.
type WavFile struct {
	Name       string
	Data       []byte
	Duration   time.Duration
	SampleRate int
}

// ExportRequest describes one offline master.
type ExportRequest struct {
	SpeechPayload string // base64 PCM16 at 24 kHz
	MusicURL      string
	Project       string
	Style         string
	OnStage       StageFunc
}

// PreviewRequest describes one live preview.
type PreviewRequest struct {
	SpeechPayload string
	MusicURL      string
	OnStage       StageFunc
}

// Service runs mastering jobs.
type Service struct {
	logger    *zap.Logger
	decoder   *audio.PCMDecoder
	music     MusicSource
	scheduler *mixer.Scheduler
	offline   *render.Offline
	player    *render.Player
	metrics   *metrics.Metrics

	exportRate int
	export     mixer.Profile
	preview    mixer.Profile
}

// ServiceParams holds dependencies for NewService.
type ServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Music   MusicSource
	Player  *render.Player `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

// NewService creates the mastering service.
func NewService(params ServiceParams) *Service {
	logger := params.Logger.Named("mastering")
	m := params.Config.Mastering

	return &Service{
		logger:     logger,
		decoder:    audio.NewPCMDecoder(logger),
		music:      params.Music,
		scheduler:  mixer.NewScheduler(logger),
		offline:    render.NewOffline(logger),
		player:     params.Player,
		metrics:    params.Metrics,
		exportRate: m.ExportSampleRate,
		export:     ExportProfile(m),
		preview:    PreviewProfile(m),
	}
}

// ExportProfile builds the fixed-dip profile from configuration.
func ExportProfile(m config.MasteringConfig) mixer.Profile {
	p := mixer.ExportProfile()
	p.VoiceGain = m.VoiceGain
	p.MusicBaseline = m.MusicBaseline
	p.MusicDucked = m.MusicDucked
	p.DuckAttack = m.DuckAttack
	p.DuckRelease = m.DuckRelease
	p.MaxDuration = m.MaxDuration

	return p
}

// PreviewProfile builds the looping-bed profile from configuration.
func PreviewProfile(m config.MasteringConfig) mixer.Profile {
	p := mixer.PreviewProfile()
	p.VoiceGain = m.VoiceGain
	p.BedGain = m.PreviewMusicGain

	return p
}

// Export renders the request offline and serializes it as a WAV file.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*WavFile, error) {
	j := newJob("export", s.logger, s.metrics, req.OnStage)
	started := time.Now()

	j.enter(StageVoiceDecoding)
	voice := s.decoder.Decode(req.SpeechPayload)
	if voice == nil {
		return nil, j.fail(NoVoiceFault, ErrNoVoice)
	}

	j.enter(StageMusicLoading)
	bed, err := s.music.Load(ctx, req.MusicURL, s.exportRate)
	if err != nil {
		return nil, j.fail(classifyLoad(err), err)
	}

	j.enter(StageMixing)
	plan, err := s.scheduler.Plan(voice, bed, s.export)
	if err != nil {
		return nil, j.fail(classifyPlan(err), err)
	}

	j.enter(StageRendering)
	master, err := s.offline.Render(ctx, plan, s.exportRate)
	if err != nil {
		return nil, j.fail(RenderFault, err)
	}

	j.enter(StageSerializing)
	data, err := audio.EncodeWAV(master)
	if err != nil {
		return nil, j.fail(RenderFault, err)
	}

	j.ready()
	s.metrics.ObserveRender(time.Since(started), len(data))

	file := &WavFile{
		Name:       DownloadName(req.Project, req.Style),
		Data:       data,
		Duration:   master.Duration(),
		SampleRate: master.SampleRate,
	}

	j.logger.Info("Export ready",
		zap.String("file", file.Name),
		zap.Int("bytes", len(data)),
		zap.Duration("voice", plan.VoiceDuration()),
		zap.Bool("music", plan.Music != nil),
		zap.Duration("elapsed", time.Since(started)))

	return file, nil
}

// Preview starts live playback of the request, replacing any preview that
// is already playing.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*render.Playback, error) {
	j := newJob("preview", s.logger, s.metrics, req.OnStage)

	j.enter(StageVoiceDecoding)
	voice := s.decoder.Decode(req.SpeechPayload)
	if voice == nil {
		return nil, j.fail(NoVoiceFault, ErrNoVoice)
	}
	if s.player == nil {
		return nil, j.fail(RenderFault, render.ErrNoOutput)
	}

	rate, err := s.player.SampleRate()
	if err != nil {
		return nil, j.fail(RenderFault, err)
	}

	j.enter(StageMusicLoading)
	bed, err := s.music.Load(ctx, req.MusicURL, rate)
	if err != nil {
		return nil, j.fail(classifyLoad(err), err)
	}

	j.enter(StageMixing)
	plan, err := s.scheduler.Plan(voice, bed, s.preview)
	if err != nil {
		return nil, j.fail(classifyPlan(err), err)
	}

	j.enter(StageRendering)
	pb, err := s.player.Play(ctx, plan)
	if err != nil {
		return nil, j.fail(RenderFault, err)
	}

	j.ready()
	s.metrics.PreviewStarted()
	go func() {
		<-pb.Done()
		s.metrics.PreviewEnded()
	}()

	j.logger.Info("Preview playing",
		zap.String("playback_id", pb.ID),
		zap.Duration("voice", plan.VoiceDuration()),
		zap.Bool("music", plan.Music != nil))

	return pb, nil
}

// StopPreview stops the live preview, if any.
func (s *Service) StopPreview() {
	if s.player == nil {
		return
	}
	s.player.Stop()
}

// PreviewPlaying reports whether a live preview is producing audio.
func (s *Service) PreviewPlaying() bool {
	return s.player != nil && s.player.Playing()
}

func classifyLoad(err error) FaultKind {
	if errors.Is(err, ErrAsset) {
		return AssetFault
	}

	return RenderFault
}

func classifyPlan(err error) FaultKind {
	if errors.Is(err, mixer.ErrNoVoice) {
		return NoVoiceFault
	}

	return RenderFault
}

// DownloadName builds "<PROJECT>_<STYLE>.wav", replacing every rune that is
// not an ASCII letter or digit with an underscore.
func DownloadName(project, style string) string {
	return fmt.Sprintf("%s_%s.wav", namePart(project, "AD"), namePart(style, "MASTER"))
}

func namePart(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}
