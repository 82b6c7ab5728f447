// Package scripts writes radio ad scripts with the hosted language model
// and keeps the latest set per user.
package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/metrics"
)

// ScriptCount is how many alternatives are requested per brief.
const ScriptCount = 3

// ErrNoScripts is returned when the model's answer holds no usable script.
var ErrNoScripts = errors.New("model returned no scripts")

const systemPrompt = `You are a senior creative director for regional radio with a long track record writing for local businesses.
Write %d alternative scripts for %s for the client below.

Rules:
1. Tone: warm, close and professional. Plain regional language, no big-city slang.
2. Address the listener directly and naturally.
3. Put delivery directions for the announcer in square brackets, e.g. [calm, friendly tone].
4. Keep each script speakable within the time limit.

Project:
Category: %s
Location: %s
Idea: %s
Mood: %s

Reply ONLY with a JSON object:
{"scripts": [{"title": "Name", "text": "Script text...", "sfx": "Sound effects description", "tone": "Tone description"}]}`

// Client is the part of the OpenAI client used for script generation.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Writer generates scripts for a project.
type Writer struct {
	logger  *zap.Logger
	client  Client
	model   string
	metrics *metrics.Metrics
}

// WriterParams holds dependencies for NewWriter.
type WriterParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Client  Client
	Metrics *metrics.Metrics `optional:"true"`
}

// NewWriter creates a script writer.
func NewWriter(params WriterParams) *Writer {
	return &Writer{
		logger:  params.Logger.Named("scripts"),
		client:  params.Client,
		model:   params.Config.OpenAI.ScriptModel,
		metrics: params.Metrics,
	}
}

// Generate asks the model for ScriptCount scripts for p.
func (w *Writer) Generate(ctx context.Context, p Project) ([]Script, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: w.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: Prompt(p)},
			{Role: openai.ChatMessageRoleUser, Content: "Write the scripts."},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		w.metrics.RecordScripts(false)
		w.logger.Error("Script generation failed", zap.String("model", w.model), zap.Error(err))

		return nil, fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		w.metrics.RecordScripts(false)

		return nil, ErrNoScripts
	}

	scripts, err := ParseScripts(resp.Choices[0].Message.Content)
	if err != nil {
		w.metrics.RecordScripts(false)
		w.logger.Warn("Unusable script response",
			zap.String("model", w.model),
			zap.Error(err))

		return nil, err
	}
	w.metrics.RecordScripts(true)

	w.logger.Info("Generated scripts",
		zap.String("model", w.model),
		zap.String("category", p.Category),
		zap.Int("count", len(scripts)),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return scripts, nil
}

// Prompt renders the system prompt for p.
func Prompt(p Project) string {
	format := p.Format
	if format == "" {
		format = FormatAd
	}

	return fmt.Sprintf(systemPrompt,
		ScriptCount,
		format.Describe(),
		strings.TrimSpace(p.Category),
		orDash(p.Location),
		strings.TrimSpace(p.Briefing),
		orDash(p.Vibe))
}

// ParseScripts decodes the model's JSON answer, drops scripts without text
// and keeps at most ScriptCount.
func ParseScripts(content string) ([]Script, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var body struct {
		Scripts []Script `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoScripts, err)
	}

	out := make([]Script, 0, ScriptCount)
	for _, s := range body.Scripts {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		s.Title = strings.TrimSpace(s.Title)
		out = append(out, s)
		if len(out) == ScriptCount {
			break
		}
	}
	if len(out) == 0 {
		return nil, ErrNoScripts
	}

	return out, nil
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}

	return s
}
