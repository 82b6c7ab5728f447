package commands

import (
	"context"
	"strconv"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/music"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
	"github.com/Raikerian/go-adstudio/internal/studio"
)

// Studio is what the slash commands drive.
type Studio interface {
	Write(ctx context.Context, user string, p scripts.Project) (*scripts.Session, error)
	Export(ctx context.Context, take studio.Take, onStage mastering.StageFunc) (*mastering.WavFile, error)
	Preview(ctx context.Context, take studio.Take, onStage mastering.StageFunc) (*studio.PreviewResult, error)
	Stop()
	NowPlaying() (studio.Take, bool)
	Catalog() *music.Catalog
}

// takeOptions are shared by /preview and /export.
func takeOptions() []discord.CommandOption {
	scriptChoices := make([]discord.IntegerChoice, scripts.ScriptCount)
	for i := range scriptChoices {
		scriptChoices[i] = discord.IntegerChoice{Name: strconv.Itoa(i + 1), Value: i + 1}
	}

	styles := speech.Styles()
	styleChoices := make([]discord.StringChoice, len(styles))
	for i, st := range styles {
		styleChoices[i] = discord.StringChoice{Name: st.String(), Value: st.String()}
	}

	return []discord.CommandOption{
		&discord.IntegerOption{
			OptionName:  "script",
			Description: "Script number from your last /adscript",
			Required:    true,
			Choices:     scriptChoices,
		},
		&discord.StringOption{
			OptionName:  "style",
			Description: "Delivery style",
			Required:    true,
			Choices:     styleChoices,
		},
	}
}

func parseTake(e *gateway.InteractionCreateEvent, data *discord.CommandInteraction) (studio.Take, error) {
	n, err := optionInt(data, "script")
	if err != nil {
		return studio.Take{}, err
	}

	style, err := speech.ParseStyle(optionString(data, "style"))
	if err != nil {
		return studio.Take{}, err
	}

	return studio.Take{User: userKey(e), Script: n, Style: style}, nil
}
