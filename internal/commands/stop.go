package commands

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

// StopCommand halts the live preview.
type StopCommand struct {
	studio Studio
}

// NewStopCommand creates the /stop command.
func NewStopCommand(st Studio) Command {
	return &StopCommand{studio: st}
}

func (c *StopCommand) Name() string { return "stop" }

func (c *StopCommand) Description() string { return "Stop the preview that is playing." }

func (c *StopCommand) Options() []discord.CommandOption { return nil }

func (c *StopCommand) Execute(_ context.Context, r Responder, e *gateway.InteractionCreateEvent, _ *discord.CommandInteraction) error {
	if _, playing := c.studio.NowPlaying(); !playing {
		return respondEphemeral(r, e, "Nothing is playing.")
	}

	c.studio.Stop()

	return respond(r, e, "⏹️ Preview stopped.")
}
