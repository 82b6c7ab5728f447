package voice

import (
	"context"
	"errors"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/voice"
	"github.com/diamondburned/arikawa/v3/voice/voicegateway"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"layeh.com/gopus"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// ErrNotInVoice is returned when a user asks for a preview outside a voice channel.
var ErrNotInVoice = errors.New("user is not in a voice channel")

// Module provides the Discord output and the live player that owns it.
var Module = fx.Module("voice",
	fx.Provide(
		NewDiscordOutput,
		NewPlayer,
	),
)

// OutputParams holds dependencies for NewDiscordOutput.
type OutputParams struct {
	fx.In

	Config *config.Config
	State  *state.State
	Logger *zap.Logger
	LC     fx.Lifecycle
}

// NewDiscordOutput creates the Opus encoder and an Output that joins
// channels through the gateway state.
func NewDiscordOutput(params OutputParams) (*Output, error) {
	enc, err := gopus.NewEncoder(audio.DiscordSampleRate, audio.DiscordChannels, gopus.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}
	enc.SetBitrate(params.Config.Discord.VoiceBitrate)

	out := NewOutput(params.Logger, stateDialer(params.State), enc)

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return out.Close(ctx)
		},
	})

	return out, nil
}

// NewPlayer creates the process-wide live player on top of out.
func NewPlayer(cfg *config.Config, logger *zap.Logger, out *Output) *render.Player {
	return render.NewPlayer(logger, func() (render.Output, error) {
		return out, nil
	}, cfg.Mastering.PreviewTail)
}

// UserChannel returns the voice channel user is connected to in guild.
func UserChannel(st *state.State, guildID discord.GuildID, userID discord.UserID) (discord.ChannelID, error) {
	vs, err := st.VoiceState(guildID, userID)
	if err != nil || vs == nil || !vs.ChannelID.IsValid() {
		return 0, ErrNotInVoice
	}

	return vs.ChannelID, nil
}

func stateDialer(st *state.State) Dialer {
	return func(ctx context.Context, channelID discord.ChannelID) (Connection, error) {
		vs, err := voice.NewSession(st)
		if err != nil {
			return nil, fmt.Errorf("failed to create voice session: %w", err)
		}

		if err := vs.JoinChannel(ctx, channelID, false, true); err != nil {
			return nil, fmt.Errorf("failed to join voice channel: %w", err)
		}

		if err := vs.Speaking(ctx, voicegateway.Microphone); err != nil {
			_ = vs.Leave(ctx)

			return nil, fmt.Errorf("failed to set speaking mode: %w", err)
		}

		return vs, nil
	}
}
