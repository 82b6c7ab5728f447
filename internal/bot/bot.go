package bot

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/commands"
	"github.com/Raikerian/go-adstudio/internal/config"
)

// ErrNotReady is reported by Healthy until the gateway says Ready.
var ErrNotReady = errors.New("discord gateway not ready")

// Bot represents the Discord bot.
type Bot struct {
	Session    *session.Session
	Config     *config.Config
	CmdManager *commands.CommandManager
	Logger     *zap.Logger

	ready atomic.Bool
}

// NewBotParameters holds dependencies for NewBot.
type NewBotParameters struct {
	fx.In

	Cfg        *config.Config
	S          *session.Session
	CmdManager *commands.CommandManager
	Logger     *zap.Logger
}

// NewBot creates the bot and subscribes it to gateway events.
func NewBot(params NewBotParameters) (*Bot, error) {
	if params.S == nil {
		return nil, errors.New("session provided to NewBot is nil")
	}
	if params.Cfg == nil {
		return nil, errors.New("config provided to NewBot is nil")
	}
	if params.Logger == nil {
		return nil, errors.New("logger provided to NewBot is nil")
	}

	b := &Bot{
		Session:    params.S,
		Config:     params.Cfg,
		CmdManager: params.CmdManager,
		Logger:     params.Logger.Named("bot"),
	}

	params.S.AddHandler(func(*gateway.ReadyEvent) {
		b.ready.Store(true)
		b.Logger.Info("Discord gateway ready")
	})
	params.S.AddHandler(func(e *gateway.InteractionCreateEvent) {
		handleInteraction(context.Background(), params.S, e, b.CmdManager, b.Logger)
	})

	return b, nil
}

// Start registers the slash commands in the configured guilds.
func (b *Bot) Start(_ context.Context) error {
	if b.CmdManager == nil {
		return errors.New("command manager is not initialized in Bot")
	}

	guildIDs := b.guildIDs()
	if len(guildIDs) == 0 {
		b.Logger.Warn("No guild IDs configured, slash commands will not be registered")

		return nil
	}

	// A guild the bot was removed from should not keep the others offline.
	if err := b.CmdManager.RegisterCommands(b.Session, guildIDs); err != nil {
		b.Logger.Error("Some guilds did not accept the slash commands", zap.Error(err))
	}

	return nil
}

// Stop removes the slash commands so stale ones do not linger.
func (b *Bot) Stop(_ context.Context) error {
	b.ready.Store(false)
	if b.CmdManager == nil {
		return nil
	}

	return b.CmdManager.UnregisterAllCommands(b.Session, b.guildIDs())
}

// Healthy reports whether the gateway connection is up.
func (b *Bot) Healthy(context.Context) error {
	if !b.ready.Load() {
		return ErrNotReady
	}

	return nil
}

func (b *Bot) guildIDs() []discord.GuildID {
	var guildIDs []discord.GuildID
	for _, idStr := range b.Config.Discord.GuildIDs {
		sf, err := discord.ParseSnowflake(idStr)
		if err != nil {
			b.Logger.Error("Failed to parse guild ID", zap.String("guildID", idStr), zap.Error(err))

			continue
		}
		guildIDs = append(guildIDs, discord.GuildID(sf))
	}

	return guildIDs
}
