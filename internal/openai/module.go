// Package openai provides OpenAI-related infrastructure and Fx modules.
package openai

import (
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
)

// Module provides the OpenAI client, also as the narrow clients the
// script and speech services depend on.
var Module = fx.Module("openai",
	fx.Provide(
		fx.Annotate(
			NewClient,
			fx.As(fx.Self()),
			fx.As(new(scripts.Client)),
			fx.As(new(speech.Client)),
		),
	),
)

// NewClient creates and configures a new OpenAI client.
func NewClient(cfg *config.Config, logger *zap.Logger) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		logger.Error("OpenAI API key is not configured")

		return nil, errors.New("OpenAI API key (openai.api_key or OPENAI_API_KEY) is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}

	client := openai.NewClientWithConfig(clientConfig)
	logger.Info("OpenAI client created successfully.",
		zap.String("base_url", clientConfig.BaseURL),
		zap.String("script_model", cfg.OpenAI.ScriptModel),
		zap.String("speech_model", cfg.OpenAI.SpeechModel),
	)

	return client, nil
}
