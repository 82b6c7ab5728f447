package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/studio"
)

// AdScriptCommand writes three alternative scripts for a brief.
type AdScriptCommand struct {
	logger *zap.Logger
	studio Studio
	voices []string
}

// NewAdScriptCommand creates the /adscript command.
func NewAdScriptCommand(logger *zap.Logger, cfg *config.Config, st Studio) Command {
	return &AdScriptCommand{
		logger: logger.Named("adscript_command"),
		studio: st,
		voices: cfg.OpenAI.Voices,
	}
}

func (c *AdScriptCommand) Name() string { return "adscript" }

func (c *AdScriptCommand) Description() string {
	return "Write three radio ad scripts for your project."
}

func (c *AdScriptCommand) Options() []discord.CommandOption {
	vibes := c.studio.Catalog().All()
	vibeChoices := make([]discord.StringChoice, len(vibes))
	for i, v := range vibes {
		vibeChoices[i] = discord.StringChoice{Name: v.Name, Value: v.ID}
	}

	formats := scripts.Formats()
	formatChoices := make([]discord.StringChoice, len(formats))
	for i, f := range formats {
		formatChoices[i] = discord.StringChoice{Name: string(f), Value: string(f)}
	}

	opts := []discord.CommandOption{
		&discord.StringOption{
			OptionName:  "category",
			Description: "Business category, e.g. bakery",
			Required:    true,
		},
		&discord.StringOption{
			OptionName:  "briefing",
			Description: "The idea or offer to promote",
			Required:    true,
		},
		&discord.StringOption{
			OptionName:  "name",
			Description: "Project name, used for the download",
		},
		&discord.StringOption{
			OptionName:  "location",
			Description: "Town or region",
		},
		&discord.StringOption{
			OptionName:  "vibe",
			Description: "Music bed",
			Choices:     vibeChoices,
		},
		&discord.StringOption{
			OptionName:  "format",
			Description: "Kind of spot",
			Choices:     formatChoices,
		},
	}

	if len(c.voices) > 0 {
		voiceChoices := make([]discord.StringChoice, len(c.voices))
		for i, v := range c.voices {
			voiceChoices[i] = discord.StringChoice{Name: v, Value: v}
		}
		opts = append(opts, &discord.StringOption{
			OptionName:  "voice",
			Description: "Narrator voice",
			Choices:     voiceChoices,
		})
	}

	return opts
}

func (c *AdScriptCommand) Execute(ctx context.Context, r Responder, e *gateway.InteractionCreateEvent, data *discord.CommandInteraction) error {
	format, err := scripts.ParseFormat(optionString(data, "format"))
	if err != nil {
		return respondEphemeral(r, e, "❌ "+err.Error())
	}

	project := scripts.Project{
		Name:     optionString(data, "name"),
		Category: optionString(data, "category"),
		Location: optionString(data, "location"),
		Vibe:     optionString(data, "vibe"),
		Briefing: optionString(data, "briefing"),
		Format:   format,
		Voice:    optionString(data, "voice"),
	}
	if err := project.Validate(); err != nil {
		return respondEphemeral(r, e, "❌ "+studio.UserMessage(err))
	}

	if err := deferReply(r, e); err != nil {
		return err
	}

	user := userKey(e)
	c.logger.Info("Writing scripts",
		zap.String("user", user),
		zap.String("category", project.Category),
		zap.String("format", string(format)),
	)

	session, err := c.studio.Write(ctx, user, project)
	if err != nil {
		c.logger.Warn("Script generation failed", zap.String("user", user), zap.Error(err))

		return editReply(r, e, "❌ "+studio.UserMessage(err))
	}

	return editLongReply(r, e, FormatSession(session))
}

// FormatSession renders the scripts of a session as a Discord message.
func FormatSession(s *scripts.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **%s**", s.Project.DisplayName())
	if s.Project.Vibe != "" {
		fmt.Fprintf(&b, " · vibe `%s`", s.Project.Vibe)
	}
	b.WriteString("\n")

	for i, sc := range s.Scripts {
		fmt.Fprintf(&b, "\n**%d. %s**\n%s\n", i+1, sc.Title, sc.Text)
		if sc.SFX != "" {
			fmt.Fprintf(&b, "🔊 _%s_\n", sc.SFX)
		}
		if sc.Tone != "" {
			fmt.Fprintf(&b, "🎭 _%s_\n", sc.Tone)
		}
	}

	b.WriteString("\nUse /preview or /export with a script number and a style.")

	return b.String()
}
