package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
)

// AppVersion is the version of the application, should be set during build time.
var AppVersion = "dev"

// StudioInfoCommand lists what the studio offers and what is playing.
type StudioInfoCommand struct {
	studio Studio
	voices []string
}

// NewStudioInfoCommand creates the /studio command.
func NewStudioInfoCommand(cfg *config.Config, st Studio) Command {
	return &StudioInfoCommand{studio: st, voices: cfg.OpenAI.Voices}
}

func (c *StudioInfoCommand) Name() string { return "studio" }

func (c *StudioInfoCommand) Description() string {
	return "Show the studio version, vibes, voices and styles."
}

func (c *StudioInfoCommand) Options() []discord.CommandOption { return nil }

func (c *StudioInfoCommand) Execute(_ context.Context, r Responder, e *gateway.InteractionCreateEvent, _ *discord.CommandInteraction) error {
	return respondEphemeral(r, e, c.describe())
}

func (c *StudioInfoCommand) describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎙️ **Ad Studio** `%s`\n\n**Vibes**\n", AppVersion)
	for _, v := range c.studio.Catalog().All() {
		fmt.Fprintf(&b, "• `%s` %s: %s\n", v.ID, v.Name, v.Description)
	}

	styles := make([]string, 0, len(speech.Styles()))
	for _, st := range speech.Styles() {
		styles = append(styles, "`"+st.String()+"`")
	}
	formats := make([]string, 0, len(scripts.Formats()))
	for _, f := range scripts.Formats() {
		formats = append(formats, "`"+string(f)+"`")
	}

	fmt.Fprintf(&b, "\n**Styles** %s\n**Formats** %s\n", strings.Join(styles, " "), strings.Join(formats, " "))
	if len(c.voices) > 0 {
		fmt.Fprintf(&b, "**Voices** `%s`\n", strings.Join(c.voices, "` `"))
	}

	if take, ok := c.studio.NowPlaying(); ok {
		fmt.Fprintf(&b, "\n▶️ Now playing script %d (%s)", take.Script, take.Style)
	}

	return b.String()
}
