package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/studio"
)

// ExportCommand masters a take into a downloadable WAV.
type ExportCommand struct {
	logger *zap.Logger
	studio Studio
}

// NewExportCommand creates the /export command.
func NewExportCommand(logger *zap.Logger, st Studio) Command {
	return &ExportCommand{
		logger: logger.Named("export_command"),
		studio: st,
	}
}

func (c *ExportCommand) Name() string { return "export" }

func (c *ExportCommand) Description() string {
	return "Master a script with its music bed into a WAV file."
}

func (c *ExportCommand) Options() []discord.CommandOption { return takeOptions() }

func (c *ExportCommand) Execute(ctx context.Context, r Responder, e *gateway.InteractionCreateEvent, data *discord.CommandInteraction) error {
	take, err := parseTake(e, data)
	if err != nil {
		return respondEphemeral(r, e, "❌ "+err.Error())
	}

	if err := deferReply(r, e); err != nil {
		return err
	}

	wav, err := c.studio.Export(ctx, take, c.statusReporter(r, e))
	if err != nil {
		c.logger.Warn("Export failed", zap.Stringer("take", take), zap.Error(err))

		return editReply(r, e, "❌ "+studio.UserMessage(err))
	}

	if err := editReply(r, e, fmt.Sprintf("✅ Ready: `%s` (%s)", wav.Name, wav.Duration)); err != nil {
		return err
	}

	_, err = r.FollowUpInteraction(e.AppID, e.Token, api.InteractionResponseData{
		Content: option.NewNullableString("🎧 " + wav.Name),
		Files: []sendpart.File{
			{Name: wav.Name, Reader: bytes.NewReader(wav.Data)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", wav.Name, err)
	}

	c.logger.Info("Export delivered",
		zap.Stringer("take", take),
		zap.String("file", wav.Name),
		zap.Int("bytes", len(wav.Data)),
	)

	return nil
}

// statusReporter edits the deferred reply whenever the visible status
// text changes.
func (c *ExportCommand) statusReporter(r Responder, e *gateway.InteractionCreateEvent) mastering.StageFunc {
	var last string

	return func(stage mastering.Stage) {
		if stage == mastering.StageReady || stage == mastering.StageFailed {
			return
		}
		status := stage.Status()
		if status == "" || status == last {
			return
		}
		last = status

		if err := editReply(r, e, "⏳ "+status); err != nil {
			c.logger.Debug("Failed to edit export status", zap.Error(err))
		}
	}
}
