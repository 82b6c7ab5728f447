package commands

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/studio"
)

// VoiceRouter chooses the channel the live output plays into.
type VoiceRouter interface {
	Route(channelID discord.ChannelID)
}

// ChannelLocator finds the voice channel a user sits in.
type ChannelLocator func(guildID discord.GuildID, userID discord.UserID) (discord.ChannelID, error)

// PreviewCommand plays a take live in the caller's voice channel.
type PreviewCommand struct {
	logger  *zap.Logger
	studio  Studio
	router  VoiceRouter
	locator ChannelLocator
}

// NewPreviewCommand creates the /preview command.
func NewPreviewCommand(logger *zap.Logger, st Studio, router VoiceRouter, locator ChannelLocator) Command {
	return &PreviewCommand{
		logger:  logger.Named("preview_command"),
		studio:  st,
		router:  router,
		locator: locator,
	}
}

func (c *PreviewCommand) Name() string { return "preview" }

func (c *PreviewCommand) Description() string {
	return "Play a script over its music bed in your voice channel. Run it again to stop."
}

func (c *PreviewCommand) Options() []discord.CommandOption { return takeOptions() }

func (c *PreviewCommand) Execute(ctx context.Context, r Responder, e *gateway.InteractionCreateEvent, data *discord.CommandInteraction) error {
	take, err := parseTake(e, data)
	if err != nil {
		return respondEphemeral(r, e, "❌ "+err.Error())
	}

	if !e.GuildID.IsValid() {
		return respondEphemeral(r, e, "❌ Previews play in a voice channel, so run this in a server.")
	}

	channelID, err := c.locator(e.GuildID, e.SenderID())
	if err != nil {
		return respondEphemeral(r, e, "❌ Join a voice channel first.")
	}

	if err := deferReply(r, e); err != nil {
		return err
	}

	c.router.Route(channelID)

	res, err := c.studio.Preview(ctx, take, nil)
	if err != nil {
		c.logger.Warn("Preview failed", zap.Stringer("take", take), zap.Error(err))

		return editReply(r, e, "❌ "+studio.UserMessage(err))
	}

	if res.Stopped {
		return editReply(r, e, "⏹️ Preview stopped.")
	}

	if err := editReply(r, e, fmt.Sprintf("▶️ Playing **%s** (%s) in <#%s>", res.Script.Title, take.Style, channelID)); err != nil {
		return err
	}
	go c.reportEnd(r, e, take, res)

	return nil
}

// reportEnd edits the status once the playback is over.
func (c *PreviewCommand) reportEnd(r Responder, e *gateway.InteractionCreateEvent, take studio.Take, res *studio.PreviewResult) {
	<-res.Playback.Done()

	var msg string
	select {
	case <-res.Playback.VoiceDone():
		msg = fmt.Sprintf("✅ Finished **%s** (%s).", res.Script.Title, take.Style)
	default:
		msg = fmt.Sprintf("⏹️ Stopped **%s** (%s).", res.Script.Title, take.Style)
	}
	if err := res.Playback.Err(); err != nil {
		c.logger.Warn("Preview playback ended with error", zap.Stringer("take", take), zap.Error(err))
		msg = "❌ " + studio.UserMessage(err)
	}

	if err := editReply(r, e, msg); err != nil {
		c.logger.Debug("Failed to edit preview status", zap.Error(err))
	}
}
