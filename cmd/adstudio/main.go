// Command adstudio masters and previews ad narrations without Discord.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/infrastructure"
	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/metrics"
	"github.com/Raikerian/go-adstudio/internal/music"
	"github.com/Raikerian/go-adstudio/internal/openai"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/internal/speaker"
	"github.com/Raikerian/go-adstudio/internal/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "adstudio",
		Short:         "Master radio ad narrations over a music bed",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file; defaults and environment apply when empty")

	root.AddCommand(
		newMasterCmd(&configPath),
		newPreviewCmd(&configPath),
		newVibesCmd(&configPath),
	)

	return root
}

// takeFlags select the narration and its music bed.
type takeFlags struct {
	speechFile string
	text       string
	style      string
	voice      string
	vibe       string
	musicURL   string
	noMusic    bool
}

func (f *takeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.speechFile, "speech", "", "file with a base64 PCM16 24 kHz narration (- for stdin)")
	fl.StringVar(&f.text, "text", "", "script text to narrate with the speech model instead of --speech")
	fl.StringVar(&f.style, "style", string(speech.StyleSales), "delivery style: sales, friendly or institutional")
	fl.StringVar(&f.voice, "voice", "", "speech model voice")
	fl.StringVar(&f.vibe, "vibe", "", "music bed from the vibe catalog")
	fl.StringVar(&f.musicURL, "music", "", "music URL overriding the vibe")
	fl.BoolVar(&f.noMusic, "no-music", false, "render the voice alone")
}

// studio is what one CLI run needs.
type studio struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	catalog *music.Catalog
	loader  *music.Loader
}

func setup(configPath string) (*studio, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.BuildLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	loader, err := mastering.NewMusicLoader(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &studio{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(prometheus.NewRegistry()),
		catalog: mastering.NewCatalog(cfg),
		loader:  loader,
	}, nil
}

func (s *studio) service(player *render.Player) *mastering.Service {
	return mastering.NewService(mastering.ServiceParams{
		Config:  s.cfg,
		Logger:  s.logger,
		Music:   s.loader,
		Player:  player,
		Metrics: s.metrics,
	})
}

// payload reads or synthesizes the base64 narration.
func (s *studio) payload(ctx context.Context, in io.Reader, f *takeFlags, style speech.Style, preview bool) (string, error) {
	switch {
	case f.speechFile == "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return strings.TrimSpace(string(data)), nil
	case f.speechFile != "":
		data, err := os.ReadFile(f.speechFile)
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(data)), nil
	case f.text != "":
		client, err := openai.NewClient(s.cfg, s.logger)
		if err != nil {
			return "", err
		}
		synth := speech.NewSynthesizer(speech.SynthesizerParams{
			Config:  s.cfg,
			Logger:  s.logger,
			Client:  client,
			Metrics: s.metrics,
		})

		return synth.Synthesize(ctx, speech.Request{Text: f.text, Style: style, Voice: f.voice, Preview: preview})
	default:
		return "", errors.New("one of --speech or --text is required")
	}
}

func (s *studio) music(f *takeFlags) (string, error) {
	switch {
	case f.noMusic:
		return "", nil
	case f.musicURL != "":
		return f.musicURL, nil
	case f.vibe == "":
		return s.catalog.Default().MusicURL, nil
	}

	v, err := s.catalog.Get(f.vibe)
	if err != nil {
		return "", err
	}

	return v.MusicURL, nil
}

func stageReporter(w io.Writer) mastering.StageFunc {
	return func(st mastering.Stage) {
		if status := st.Status(); status != "" {
			fmt.Fprintf(w, "%-14s %s\n", st, status)
		}
	}
}

func newMasterCmd(configPath *string) *cobra.Command {
	var (
		take    takeFlags
		project string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "master",
		Short: "Render a 35 s WAV master of a narration over its music bed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.logger.Sync() }()

			style, err := speech.ParseStyle(take.style)
			if err != nil {
				return err
			}
			payload, err := st.payload(cmd.Context(), cmd.InOrStdin(), &take, style, false)
			if err != nil {
				return err
			}
			musicURL, err := st.music(&take)
			if err != nil {
				return err
			}

			wav, err := st.service(nil).Export(cmd.Context(), mastering.ExportRequest{
				SpeechPayload: payload,
				MusicURL:      musicURL,
				Project:       project,
				Style:         style.String(),
				OnStage:       stageReporter(cmd.ErrOrStderr()),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", mastering.UserMessage(err), err)
			}

			path := outputPath(out, wav.Name)
			if err := os.WriteFile(path, wav.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes, %s at %d Hz)\n", path, len(wav.Data), wav.Duration, wav.SampleRate)

			return nil
		},
	}

	take.register(cmd)
	cmd.Flags().StringVar(&project, "project", "", "project name used in the file name")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (default: download name in the working directory)")

	return cmd
}

// outputPath resolves --out against the download name.
func outputPath(out, name string) string {
	if out == "" {
		return name
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name)
	}

	return out
}

func newPreviewCmd(configPath *string) *cobra.Command {
	var take takeFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play a narration over its looping bed on the default audio device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.logger.Sync() }()

			style, err := speech.ParseStyle(take.style)
			if err != nil {
				return err
			}
			payload, err := st.payload(ctx, cmd.InOrStdin(), &take, style, true)
			if err != nil {
				return err
			}
			musicURL, err := st.music(&take)
			if err != nil {
				return err
			}

			out, err := speaker.NewOutput(ctx, st.logger)
			if err != nil {
				return err
			}
			defer func() { _ = out.Close() }()

			player := render.NewPlayer(st.logger, func() (render.Output, error) {
				return out, nil
			}, st.cfg.Mastering.PreviewTail)
			svc := st.service(player)

			pb, err := svc.Preview(ctx, mastering.PreviewRequest{
				SpeechPayload: payload,
				MusicURL:      musicURL,
				OnStage:       stageReporter(cmd.ErrOrStderr()),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", mastering.UserMessage(err), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Playing, Ctrl+C to stop")
			if err := pb.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			svc.StopPreview()

			return nil
		},
	}

	take.register(cmd)

	return cmd
}

func newVibesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "vibes",
		Short: "List the music beds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			catalog := mastering.NewCatalog(cfg)
			def := catalog.Default().ID
			for _, v := range catalog.All() {
				marker := " "
				if v.ID == def {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %-10s %s\n", marker, v.ID, v.Name, v.Description)
			}

			return nil
		},
	}
}
