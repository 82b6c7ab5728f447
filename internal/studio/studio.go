// Package studio runs the user-facing ad workflow: write scripts, narrate
// one in a style, then preview it live or export a mastered WAV.
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/music"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
)

// ErrNarration wraps failures of the speech model.
var ErrNarration = errors.New("narration failed")

// ScriptWriter generates scripts for a project.
type ScriptWriter interface {
	Generate(ctx context.Context, p scripts.Project) ([]scripts.Script, error)
}

// Narrator synthesizes a script into a base64 PCM payload.
type Narrator interface {
	Synthesize(ctx context.Context, req speech.Request) (string, error)
}

// Masterer renders narrations.
type Masterer interface {
	Export(ctx context.Context, req mastering.ExportRequest) (*mastering.WavFile, error)
	Preview(ctx context.Context, req mastering.PreviewRequest) (*render.Playback, error)
	StopPreview()
}

// Prefetcher warms the music cache.
type Prefetcher interface {
	Prefetch(ctx context.Context, url string, sampleRate int) error
}

// Take selects one script of a user's session in one style.
type Take struct {
	User   string
	Script int // 1-based
	Style  speech.Style
}

func (t Take) String() string {
	return fmt.Sprintf("%s#%d/%s", t.User, t.Script, t.Style)
}

// PreviewResult reports what a preview request did.
type PreviewResult struct {
	Playback *render.Playback
	Script   scripts.Script
	// Stopped is set when the request toggled off the take already playing.
	Stopped bool
}

// Studio coordinates the script, speech and mastering services.
type Studio struct {
	logger     *zap.Logger
	writer     ScriptWriter
	store      *scripts.Store
	narrator   Narrator
	masterer   Masterer
	prefetcher Prefetcher
	catalog    *music.Catalog
	exportRate int

	mu      sync.Mutex
	playing *Take
	pb      *render.Playback
}

// Params holds dependencies for New.
type Params struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	Writer     ScriptWriter
	Store      *scripts.Store
	Narrator   Narrator
	Masterer   Masterer
	Prefetcher Prefetcher `optional:"true"`
	Catalog    *music.Catalog
}

// New creates a Studio.
func New(params Params) *Studio {
	return &Studio{
		logger:     params.Logger.Named("studio"),
		writer:     params.Writer,
		store:      params.Store,
		narrator:   params.Narrator,
		masterer:   params.Masterer,
		prefetcher: params.Prefetcher,
		catalog:    params.Catalog,
		exportRate: params.Config.Mastering.ExportSampleRate,
	}
}

// Catalog returns the vibe catalog.
func (s *Studio) Catalog() *music.Catalog { return s.catalog }

// Write generates scripts for p and stores them as user's session.
func (s *Studio) Write(ctx context.Context, user string, p scripts.Project) (*scripts.Session, error) {
	if p.Vibe == "" {
		p.Vibe = s.catalog.Default().ID
	}
	if _, err := s.catalog.Get(p.Vibe); err != nil {
		return nil, err
	}

	generated, err := s.writer.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	session := &scripts.Session{Project: p, Scripts: generated, CreatedAt: time.Now()}
	s.store.Put(user, session)

	s.logger.Info("Stored script session",
		zap.String("user", user),
		zap.String("project", p.DisplayName()),
		zap.Int("scripts", len(generated)))

	return session, nil
}

// Export narrates the take and masters it into a WAV file. The music bed
// is fetched while the narration is synthesized.
func (s *Studio) Export(ctx context.Context, take Take, onStage mastering.StageFunc) (*mastering.WavFile, error) {
	project, script, vibe, err := s.resolve(take)
	if err != nil {
		return nil, err
	}

	var payload string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payload, err = s.narrate(gctx, project, script, take.Style, false)

		return err
	})
	if s.prefetcher != nil && vibe.MusicURL != "" {
		g.Go(func() error {
			// A failed prefetch surfaces again, classified, when mastering loads the bed.
			if err := s.prefetcher.Prefetch(gctx, vibe.MusicURL, s.exportRate); err != nil {
				s.logger.Warn("Music prefetch failed", zap.String("vibe", vibe.ID), zap.Error(err))
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.masterer.Export(ctx, mastering.ExportRequest{
		SpeechPayload: payload,
		MusicURL:      vibe.MusicURL,
		Project:       project.DisplayName(),
		Style:         string(take.Style),
		OnStage:       onStage,
	})
}

// Preview plays the take live over the vibe's looping bed. Requesting the
// take that is already playing stops it instead.
func (s *Studio) Preview(ctx context.Context, take Take, onStage mastering.StageFunc) (*PreviewResult, error) {
	if s.togglesOff(take) {
		s.Stop()

		return &PreviewResult{Stopped: true}, nil
	}

	project, script, vibe, err := s.resolve(take)
	if err != nil {
		return nil, err
	}

	// Whatever is playing stops now, before the narration round trip.
	s.Stop()

	payload, err := s.narrate(ctx, project, script, take.Style, true)
	if err != nil {
		return nil, err
	}

	pb, err := s.masterer.Preview(ctx, mastering.PreviewRequest{
		SpeechPayload: payload,
		MusicURL:      vibe.MusicURL,
		OnStage:       onStage,
	})
	if errors.Is(err, render.ErrSuperseded) {
		return &PreviewResult{Script: script, Stopped: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	t := take
	s.playing, s.pb = &t, pb
	s.mu.Unlock()

	return &PreviewResult{Playback: pb, Script: script}, nil
}

// Stop halts any live preview.
func (s *Studio) Stop() {
	s.masterer.StopPreview()

	s.mu.Lock()
	s.playing, s.pb = nil, nil
	s.mu.Unlock()
}

// NowPlaying returns the take currently previewing, if any.
func (s *Studio) NowPlaying() (Take, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing == nil || s.pb == nil || s.pb.Finished() {
		return Take{}, false
	}

	return *s.playing, true
}

func (s *Studio) togglesOff(take Take) bool {
	cur, ok := s.NowPlaying()

	return ok && cur == take
}

func (s *Studio) resolve(take Take) (scripts.Project, scripts.Script, music.Vibe, error) {
	project, script, err := s.store.Lookup(take.User, take.Script)
	if err != nil {
		return scripts.Project{}, scripts.Script{}, music.Vibe{}, err
	}

	vibe, err := s.catalog.Get(project.Vibe)
	if err != nil {
		return scripts.Project{}, scripts.Script{}, music.Vibe{}, err
	}

	return project, script, vibe, nil
}

func (s *Studio) narrate(ctx context.Context, p scripts.Project, sc scripts.Script, style speech.Style, preview bool) (string, error) {
	payload, err := s.narrator.Synthesize(ctx, speech.Request{
		Text:    sc.Text,
		Style:   style,
		Voice:   p.Voice,
		Preview: preview,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNarration, err)
	}

	return payload, nil
}

// UserMessage maps studio errors to text for end users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, scripts.ErrNoSession):
		return "You have no scripts yet. Run /adscript first."
	case errors.Is(err, scripts.ErrScriptIndex):
		return "That script number does not exist. Pick 1, 2 or 3."
	case errors.Is(err, scripts.ErrIncompleteProject):
		return "Please give at least a category and a briefing."
	case errors.Is(err, scripts.ErrNoScripts):
		return "The model did not return usable scripts. Please try again."
	case errors.Is(err, music.ErrUnknownVibe):
		return "That vibe does not exist. Pick one from /studio."
	case errors.Is(err, speech.ErrUnknownVoice):
		return "That voice is not available."
	case errors.Is(err, speech.ErrAudioTooLong):
		return "The narration came out too long. Try a shorter script."
	case errors.Is(err, ErrNarration):
		return "The narration could not be generated. Please try again."
	case errors.Is(err, render.ErrNoOutput):
		return "Live preview is not available here."
	default:
		return mastering.UserMessage(err)
	}
}
