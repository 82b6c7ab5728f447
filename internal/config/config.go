package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Raikerian/go-adstudio/internal/music"
)

// DiscordConfig stores Discord specific configurations.
type DiscordConfig struct {
	BotToken      string             `yaml:"bot_token"`
	ApplicationID *discord.Snowflake `yaml:"application_id"`
	GuildIDs      []string           `yaml:"guild_ids"`
	VoiceBitrate  int                `yaml:"voice_bitrate"`
}

// OpenAIConfig stores OpenAI specific configurations.
type OpenAIConfig struct {
	APIKey          string   `yaml:"api_key"`
	BaseURL         string   `yaml:"base_url"`
	ScriptModel     string   `yaml:"script_model"`
	SpeechModel     string   `yaml:"speech_model"`
	Voices          []string `yaml:"voices"`
	ScriptCacheSize int      `yaml:"script_cache_size"`
}

// MasteringConfig tunes the mix and render stages.
type MasteringConfig struct {
	ExportSampleRate int           `yaml:"export_sample_rate"`
	MaxDuration      time.Duration `yaml:"max_duration"`
	VoiceGain        float64       `yaml:"voice_gain"`
	MusicBaseline    float64       `yaml:"music_baseline"`
	MusicDucked      float64       `yaml:"music_ducked"`
	DuckAttack       time.Duration `yaml:"duck_attack"`
	DuckRelease      time.Duration `yaml:"duck_release"`
	PreviewMusicGain float64       `yaml:"preview_music_gain"`
	PreviewTail      time.Duration `yaml:"preview_tail"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	MusicCacheSize   int           `yaml:"music_cache_size"`
	MaxAssetBytes    int64         `yaml:"max_asset_bytes"`
}

// ServerConfig configures the health and metrics listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config stores the application configuration.
type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Mastering MasteringConfig `yaml:"mastering"`
	Vibes     []music.Vibe    `yaml:"vibes"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

// secrets may come from the environment (or a .env file) instead of the
// YAML file. Non-empty values win.
type secrets struct {
	DiscordBotToken string `envconfig:"DISCORD_BOT_TOKEN"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `envconfig:"OPENAI_BASE_URL"`
	LogLevel        string `envconfig:"ADSTUDIO_LOG_LEVEL"`
}

// LoadConfig loads the configuration from the given file path, overlays
// environment secrets, fills defaults and validates the result. An empty
// path starts from the defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse unmarshals YAML and applies defaults without touching the environment.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()

	return cfg
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Discord.VoiceBitrate <= 0 {
		c.Discord.VoiceBitrate = 64_000
	}

	o := &c.OpenAI
	if o.ScriptModel == "" {
		o.ScriptModel = "gpt-4o-mini"
	}
	if o.SpeechModel == "" {
		o.SpeechModel = "gpt-4o-mini-tts"
	}
	if len(o.Voices) == 0 {
		o.Voices = []string{"coral", "alloy", "ash", "nova", "onyx", "sage"}
	}
	if o.ScriptCacheSize <= 0 {
		o.ScriptCacheSize = 500
	}

	m := &c.Mastering
	if m.ExportSampleRate <= 0 {
		m.ExportSampleRate = 44_100
	}
	if m.MaxDuration <= 0 {
		m.MaxDuration = 35 * time.Second
	}
	if m.VoiceGain <= 0 {
		m.VoiceGain = 1.0
	}
	if m.MusicBaseline <= 0 {
		m.MusicBaseline = 0.15
	}
	if m.MusicDucked <= 0 {
		m.MusicDucked = 0.05
	}
	if m.DuckAttack <= 0 {
		m.DuckAttack = time.Second
	}
	if m.DuckRelease <= 0 {
		m.DuckRelease = time.Second
	}
	if m.PreviewMusicGain <= 0 {
		m.PreviewMusicGain = 0.04
	}
	if m.PreviewTail <= 0 {
		m.PreviewTail = 750 * time.Millisecond
	}
	if m.FetchTimeout <= 0 {
		m.FetchTimeout = 60 * time.Second
	}
	if m.MusicCacheSize <= 0 {
		m.MusicCacheSize = 16
	}
	if m.MaxAssetBytes <= 0 {
		m.MaxAssetBytes = 32 << 20
	}

	if len(c.Vibes) == 0 {
		c.Vibes = music.DefaultVibes()
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":9090"
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	m := c.Mastering
	if m.MusicDucked >= m.MusicBaseline {
		return errors.New("mastering.music_ducked must be below mastering.music_baseline")
	}
	if m.ExportSampleRate < 8000 {
		return fmt.Errorf("mastering.export_sample_rate %d is too low", m.ExportSampleRate)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if s.DiscordBotToken != "" {
		c.Discord.BotToken = s.DiscordBotToken
	}
	if s.OpenAIAPIKey != "" {
		c.OpenAI.APIKey = s.OpenAIAPIKey
	}
	if s.OpenAIBaseURL != "" {
		c.OpenAI.BaseURL = s.OpenAIBaseURL
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}

	return nil
}
