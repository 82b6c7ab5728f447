// Package commands provides command infrastructure and Fx modules.
package commands

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state"
	"go.uber.org/fx"

	"github.com/Raikerian/go-adstudio/internal/studio"
	"github.com/Raikerian/go-adstudio/internal/voice"
)

// Module provides command-related dependencies.
var Module = fx.Module("commands",
	fx.Provide(
		NewCommandManager,
		func(s *studio.Studio) Studio { return s },
		func(out *voice.Output) VoiceRouter { return out },
		NewChannelLocator,
		// Command providers with proper grouping
		fx.Annotate(
			NewAdScriptCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewPreviewCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewExportCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewStopCommand,
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewStudioInfoCommand,
			fx.ResultTags(`group:"commands"`),
		),
	),
)

// NewChannelLocator looks voice channels up in the gateway state cache.
func NewChannelLocator(st *state.State) ChannelLocator {
	return func(guildID discord.GuildID, userID discord.UserID) (discord.ChannelID, error) {
		return voice.UserChannel(st, guildID, userID)
	}
}
