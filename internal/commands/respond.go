package commands

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

const discordMaxMessageLength = 2000

func respond(r Responder, e *gateway.InteractionCreateEvent, content string) error {
	return r.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(content),
		},
	})
}

func respondEphemeral(r Responder, e *gateway.InteractionCreateEvent, content string) error {
	return r.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(content),
			Flags:   discord.EphemeralMessage,
		},
	})
}

// deferReply acknowledges the interaction so the work may take longer
// than the three second response window.
func deferReply(r Responder, e *gateway.InteractionCreateEvent) error {
	return r.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
	})
}

func editReply(r Responder, e *gateway.InteractionCreateEvent, content string) error {
	_, err := r.EditInteractionResponse(e.AppID, e.Token, api.EditInteractionResponseData{
		Content: option.NewNullableString(content),
	})

	return err
}

// editLongReply puts the first chunk in the deferred reply and the rest
// in follow-ups.
func editLongReply(r Responder, e *gateway.InteractionCreateEvent, content string) error {
	parts := splitMessage(content, discordMaxMessageLength)
	if len(parts) == 0 {
		return nil
	}

	if err := editReply(r, e, parts[0]); err != nil {
		return err
	}

	for i, part := range parts[1:] {
		_, err := r.FollowUpInteraction(e.AppID, e.Token, api.InteractionResponseData{
			Content: option.NewNullableString(part),
		})
		if err != nil {
			return fmt.Errorf("failed to send message part %d/%d: %w", i+2, len(parts), err)
		}
	}

	return nil
}

// splitMessage cuts content into chunks of at most limit bytes, preferring
// newlines, then spaces, as cut points. Empty chunks are dropped.
func splitMessage(content string, limit int) []string {
	var parts []string
	remaining := strings.TrimSpace(content)
	for len(remaining) > 0 {
		if len(remaining) <= limit {
			parts = append(parts, remaining)

			break
		}

		splitAt := limit
		if i := strings.LastIndex(remaining[:limit], "\n"); i > 0 {
			splitAt = i
		} else if i := strings.LastIndex(remaining[:limit], " "); i > 0 {
			splitAt = i
		}

		if part := strings.TrimSpace(remaining[:splitAt]); part != "" {
			parts = append(parts, part)
		}
		remaining = strings.TrimSpace(remaining[splitAt:])
	}

	return parts
}

func optionString(data *discord.CommandInteraction, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name {
			return strings.TrimSpace(opt.String())
		}
	}

	return ""
}

func optionInt(data *discord.CommandInteraction, name string) (int, error) {
	for _, opt := range data.Options {
		if opt.Name == name {
			v, err := opt.IntValue()
			if err != nil {
				return 0, fmt.Errorf("option %s: %w", name, err)
			}

			return int(v), nil
		}
	}

	return 0, fmt.Errorf("option %s is missing", name)
}

// userKey identifies the sender across guilds and DMs.
func userKey(e *gateway.InteractionCreateEvent) string {
	return e.SenderID().String()
}
