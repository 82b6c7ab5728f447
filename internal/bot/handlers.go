package bot

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/commands"
)

// commandTimeout bounds one command, including TTS and the music download.
const commandTimeout = 3 * time.Minute

// Commands looks up slash commands by name.
type Commands interface {
	GetCommand(name string) (commands.Command, bool)
}

func handleInteraction(ctx context.Context, r commands.Responder, e *gateway.InteractionCreateEvent, cmds Commands, logger *zap.Logger) {
	data, ok := e.Data.(*discord.CommandInteraction)
	if !ok {
		logger.Debug("Received unhandled interaction type", zap.Any("type", e.Data))

		return
	}

	logger = logger.With(zap.String("command", data.Name), zap.Stringer("user", e.SenderID()))
	logger.Info("Received slash command")

	cmd, ok := cmds.GetCommand(data.Name)
	if !ok {
		logger.Warn("Unknown command")
		if err := reply(r, e, "Command not found."); err != nil {
			logger.Error("Failed to respond to unknown command", zap.Error(err))
		}

		return
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	start := time.Now()
	if err := cmd.Execute(ctx, r, e, data); err != nil {
		logger.Error("Error executing command", zap.Error(err))
		if errResp := reply(r, e, "An error occurred while executing the command."); errResp != nil {
			logger.Debug("Failed to send error response", zap.Error(errResp))
		}

		return
	}

	logger.Info("Command executed successfully", zap.Duration("took", time.Since(start)))
}

// reply answers the interaction, or edits the answer if one was already sent.
func reply(r commands.Responder, e *gateway.InteractionCreateEvent, content string) error {
	err := r.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(content),
			Flags:   discord.EphemeralMessage,
		},
	})
	if err == nil {
		return nil
	}

	_, err = r.EditInteractionResponse(e.AppID, e.Token, api.EditInteractionResponseData{
		Content: option.NewNullableString(content),
	})

	return err
}
