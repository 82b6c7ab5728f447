package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-adstudio/internal/commands"
	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/pkg/test"
)

type responder struct {
	responded  []string
	edited     []string
	respondErr error
}

func (r *responder) RespondInteraction(_ discord.InteractionID, _ string, resp api.InteractionResponse) error {
	if r.respondErr != nil {
		return r.respondErr
	}
	r.responded = append(r.responded, resp.Data.Content.Val)

	return nil
}

func (r *responder) EditInteractionResponse(_ discord.AppID, _ string, data api.EditInteractionResponseData) (*discord.Message, error) {
	r.edited = append(r.edited, data.Content.Val)

	return &discord.Message{}, nil
}

func (r *responder) FollowUpInteraction(discord.AppID, string, api.InteractionResponseData) (*discord.Message, error) {
	return &discord.Message{}, nil
}

type commandSet map[string]commands.Command

func (c commandSet) GetCommand(name string) (commands.Command, bool) {
	cmd, ok := c[name]

	return cmd, ok
}

func interaction(name string) (*gateway.InteractionCreateEvent, *discord.CommandInteraction) {
	data := &discord.CommandInteraction{Name: name}

	return &gateway.InteractionCreateEvent{
		InteractionEvent: discord.InteractionEvent{
			ID:     1,
			AppID:  2,
			Token:  "token",
			Data:   data,
			Member: &discord.Member{User: discord.User{ID: 9}},
		},
	}, data
}

func TestHandleInteraction_Executes(t *testing.T) {
	cmd := test.NewMockCommand(t)
	e, data := interaction("export")
	r := &responder{}

	cmd.On("Execute", mock.Anything, r, e, data).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).
		Return(nil)

	handleInteraction(context.Background(), r, e, commandSet{"export": cmd}, zaptest.NewLogger(t))

	assert.Empty(t, r.responded)
}

func TestHandleInteraction_UnknownCommand(t *testing.T) {
	e, _ := interaction("nope")
	r := &responder{}

	handleInteraction(context.Background(), r, e, commandSet{}, zaptest.NewLogger(t))

	assert.Equal(t, []string{"Command not found."}, r.responded)
}

func TestHandleInteraction_ErrorAfterDefer(t *testing.T) {
	cmd := test.NewMockCommand(t)
	e, data := interaction("export")
	r := &responder{respondErr: errors.New("already acknowledged")}

	cmd.On("Execute", mock.Anything, r, e, data).Return(errors.New("boom"))

	handleInteraction(context.Background(), r, e, commandSet{"export": cmd}, zaptest.NewLogger(t))

	assert.Equal(t, []string{"An error occurred while executing the command."}, r.edited)
}

func TestHandleInteraction_IgnoresOtherInteractions(t *testing.T) {
	r := &responder{}
	e := &gateway.InteractionCreateEvent{
		InteractionEvent: discord.InteractionEvent{Data: &discord.PingInteraction{}},
	}

	handleInteraction(context.Background(), r, e, commandSet{}, zaptest.NewLogger(t))

	assert.Empty(t, r.responded)
	assert.Empty(t, r.edited)
}

func TestBot_GuildIDsAndHealth(t *testing.T) {
	b := &Bot{
		Config: &config.Config{Discord: config.DiscordConfig{GuildIDs: []string{"123", "bad", "456"}}},
		Logger: zaptest.NewLogger(t),
	}

	assert.Equal(t, []discord.GuildID{123, 456}, b.guildIDs())

	require.ErrorIs(t, b.Healthy(context.Background()), ErrNotReady)
	b.ready.Store(true)
	assert.NoError(t, b.Healthy(context.Background()))
}
