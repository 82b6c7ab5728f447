package commands_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-adstudio/internal/commands"
	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/mixer"
	"github.com/Raikerian/go-adstudio/internal/music"
	"github.com/Raikerian/go-adstudio/internal/render"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
	"github.com/Raikerian/go-adstudio/internal/studio"
	"github.com/Raikerian/go-adstudio/pkg/audio"
	"github.com/Raikerian/go-adstudio/pkg/test"
)

const userID = discord.UserID(7)

type reply struct {
	kind    string // respond, defer, edit, followup
	content string
	flags   discord.MessageFlags
	files   []string
}

// recorder is a Responder that keeps every call.
type recorder struct {
	mu      sync.Mutex
	replies []reply
}

func (r *recorder) add(rep reply) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, rep)
}

func (r *recorder) all() []reply {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]reply(nil), r.replies...)
}

func (r *recorder) last() reply {
	all := r.all()
	if len(all) == 0 {
		return reply{}
	}

	return all[len(all)-1]
}

func (r *recorder) RespondInteraction(_ discord.InteractionID, _ string, resp api.InteractionResponse) error {
	if resp.Type == api.DeferredMessageInteractionWithSource {
		r.add(reply{kind: "defer"})

		return nil
	}
	r.add(reply{kind: "respond", content: resp.Data.Content.Val, flags: resp.Data.Flags})

	return nil
}

func (r *recorder) EditInteractionResponse(_ discord.AppID, _ string, data api.EditInteractionResponseData) (*discord.Message, error) {
	r.add(reply{kind: "edit", content: data.Content.Val})

	return &discord.Message{}, nil
}

func (r *recorder) FollowUpInteraction(_ discord.AppID, _ string, data api.InteractionResponseData) (*discord.Message, error) {
	rep := reply{kind: "followup", content: data.Content.Val}
	for _, f := range data.Files {
		_, _ = io.Copy(io.Discard, f.Reader)
		rep.files = append(rep.files, f.Name)
	}
	r.add(rep)

	return &discord.Message{}, nil
}

func event() *gateway.InteractionCreateEvent {
	return &gateway.InteractionCreateEvent{
		InteractionEvent: discord.InteractionEvent{
			ID:      1,
			AppID:   2,
			Token:   "token",
			GuildID: 3,
			Member:  &discord.Member{User: discord.User{ID: userID}},
		},
	}
}

func str(name, value string) discord.CommandInteractionOption {
	return discord.CommandInteractionOption{
		Type:  discord.StringOptionType,
		Name:  name,
		Value: json.Raw(`"` + value + `"`),
	}
}

func integer(name, value string) discord.CommandInteractionOption {
	return discord.CommandInteractionOption{
		Type:  discord.IntegerOptionType,
		Name:  name,
		Value: json.Raw(value),
	}
}

func takeData(script, style string) *discord.CommandInteraction {
	return &discord.CommandInteraction{
		Options: discord.CommandInteractionOptions{integer("script", script), str("style", style)},
	}
}

func wantTake(n int, style speech.Style) studio.Take {
	return studio.Take{User: userID.String(), Script: n, Style: style}
}

func TestAdScript_WritesScripts(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewAdScriptCommand(zaptest.NewLogger(t), config.Default(), st)

	want := scripts.Project{Name: "La Espiga", Category: "Bakery", Briefing: "Fresh bread daily", Format: scripts.FormatAd}
	st.On("Write", mock.Anything, userID.String(), want).Return(&scripts.Session{
		Project: want,
		Scripts: []scripts.Script{
			{Title: "Morning", Text: "Wake up to bread.", SFX: "oven door"},
			{Title: "Evening", Text: "Bread for dinner."},
		},
	}, nil)

	data := &discord.CommandInteraction{Options: discord.CommandInteractionOptions{
		str("category", "Bakery"), str("briefing", "Fresh bread daily"), str("name", " La Espiga "),
	}}
	require.NoError(t, cmd.Execute(context.Background(), rec, event(), data))

	replies := rec.all()
	require.Len(t, replies, 2)
	assert.Equal(t, "defer", replies[0].kind)
	assert.Equal(t, "edit", replies[1].kind)
	assert.Contains(t, replies[1].content, "**1. Morning**")
	assert.Contains(t, replies[1].content, "oven door")
	assert.Contains(t, replies[1].content, "**2. Evening**")
}

func TestAdScript_RejectsIncompleteBrief(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewAdScriptCommand(zaptest.NewLogger(t), config.Default(), st)

	data := &discord.CommandInteraction{Options: discord.CommandInteractionOptions{str("category", "Bakery")}}
	require.NoError(t, cmd.Execute(context.Background(), rec, event(), data))

	got := rec.last()
	assert.Equal(t, "respond", got.kind)
	assert.Equal(t, discord.EphemeralMessage, got.flags)
	st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdScript_Options(t *testing.T) {
	st := test.NewMockStudio(t)
	st.On("Catalog").Return(music.NewCatalog(nil))
	cmd := commands.NewAdScriptCommand(zaptest.NewLogger(t), config.Default(), st)

	names := make([]string, 0)
	for _, opt := range cmd.Options() {
		names = append(names, opt.Name())
	}
	assert.Equal(t, []string{"category", "briefing", "name", "location", "vibe", "format", "voice"}, names)
}

func TestExport_UploadsWav(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewExportCommand(zaptest.NewLogger(t), st)

	st.On("Export", mock.Anything, wantTake(2, speech.StyleSales), mock.Anything).
		Run(func(args mock.Arguments) {
			onStage := args.Get(2).(mastering.StageFunc)
			for _, s := range []mastering.Stage{
				mastering.StageVoiceDecoding, mastering.StageMusicLoading, mastering.StageMixing,
				mastering.StageRendering, mastering.StageSerializing, mastering.StageReady,
			} {
				onStage(s)
			}
		}).
		Return(&mastering.WavFile{Name: "Summer_sales.wav", Data: make([]byte, 44), Duration: 35 * time.Second}, nil)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("2", "Sales")))

	replies := rec.all()
	require.Len(t, replies, 5)
	assert.Equal(t, "defer", replies[0].kind)
	assert.Equal(t, "⏳ Mastering…", replies[1].content)
	assert.Equal(t, "⏳ Rendering…", replies[2].content)
	assert.True(t, strings.HasPrefix(replies[3].content, "✅ Ready: `Summer_sales.wav`"))
	assert.Equal(t, "followup", replies[4].kind)
	assert.Equal(t, []string{"Summer_sales.wav"}, replies[4].files)
}

func TestExport_ReportsFault(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewExportCommand(zaptest.NewLogger(t), st)

	fault := &mastering.Fault{Kind: mastering.AssetFault, Stage: mastering.StageMusicLoading, Err: errors.New("404")}
	st.On("Export", mock.Anything, wantTake(1, speech.StyleFriendly), mock.Anything).Return(nil, fault)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("1", "friendly")))

	got := rec.last()
	assert.Equal(t, "edit", got.kind)
	assert.Equal(t, "❌ "+studio.UserMessage(fault), got.content)
}

func TestExport_RejectsUnknownStyle(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewExportCommand(zaptest.NewLogger(t), st)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("1", "shouty")))
	assert.Equal(t, discord.EphemeralMessage, rec.last().flags)
}

type router struct{ routed []discord.ChannelID }

func (r *router) Route(ch discord.ChannelID) { r.routed = append(r.routed, ch) }

func inChannel(ch discord.ChannelID) commands.ChannelLocator {
	return func(discord.GuildID, discord.UserID) (discord.ChannelID, error) { return ch, nil }
}

type fastOutput struct{}

func (fastOutput) SampleRate() int                             { return 48000 }
func (fastOutput) FrameSize() int                              { return 960 }
func (fastOutput) Resume(context.Context) error                { return nil }
func (fastOutput) WriteFrame(context.Context, []float32) error { return nil }

func shortPlayback(t *testing.T) *render.Playback {
	t.Helper()

	player := render.NewPlayer(zaptest.NewLogger(t), func() (render.Output, error) {
		return fastOutput{}, nil
	}, time.Millisecond)
	voice := audio.NewSampleBuffer(make([]float32, 4800), 48000)
	plan, err := mixer.NewScheduler(nil).Plan(voice, nil, mixer.PreviewProfile())
	require.NoError(t, err)

	pb, err := player.Play(context.Background(), plan)
	require.NoError(t, err)

	return pb
}

func TestPreview_PlaysInCallerChannel(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	rt := &router{}
	cmd := commands.NewPreviewCommand(zaptest.NewLogger(t), st, rt, inChannel(55))

	st.On("Preview", mock.Anything, wantTake(1, speech.StyleInstitutional), mock.Anything).
		Return(&studio.PreviewResult{Playback: shortPlayback(t), Script: scripts.Script{Title: "Morning"}}, nil)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("1", "institutional")))

	assert.Equal(t, []discord.ChannelID{55}, rt.routed)
	assert.Contains(t, rec.all()[1].content, "▶️ Playing **Morning**")
	assert.Eventually(t, func() bool {
		return strings.HasPrefix(rec.last().content, "✅ Finished **Morning**")
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPreview_TogglesOff(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewPreviewCommand(zaptest.NewLogger(t), st, &router{}, inChannel(55))

	st.On("Preview", mock.Anything, wantTake(1, speech.StyleSales), mock.Anything).
		Return(&studio.PreviewResult{Stopped: true}, nil)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("1", "sales")))
	assert.Equal(t, "⏹️ Preview stopped.", rec.last().content)
}

func TestPreview_NeedsVoiceChannel(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	rt := &router{}
	notInVoice := func(discord.GuildID, discord.UserID) (discord.ChannelID, error) {
		return 0, errors.New("not in voice")
	}
	cmd := commands.NewPreviewCommand(zaptest.NewLogger(t), st, rt, notInVoice)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("1", "sales")))

	assert.Equal(t, discord.EphemeralMessage, rec.last().flags)
	assert.Empty(t, rt.routed)
}

func TestPreview_ReportsError(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	cmd := commands.NewPreviewCommand(zaptest.NewLogger(t), st, &router{}, inChannel(55))

	st.On("Preview", mock.Anything, wantTake(3, speech.StyleSales), mock.Anything).
		Return(nil, scripts.ErrNoSession)

	require.NoError(t, cmd.Execute(context.Background(), rec, event(), takeData("3", "sales")))
	assert.Equal(t, "❌ "+studio.UserMessage(scripts.ErrNoSession), rec.last().content)
}

func TestStop(t *testing.T) {
	t.Run("NothingPlaying", func(t *testing.T) {
		st := test.NewMockStudio(t)
		rec := &recorder{}
		st.On("NowPlaying").Return(studio.Take{}, false)

		require.NoError(t, commands.NewStopCommand(st).Execute(context.Background(), rec, event(), nil))
		assert.Equal(t, discord.EphemeralMessage, rec.last().flags)
		st.AssertNotCalled(t, "Stop")
	})

	t.Run("Playing", func(t *testing.T) {
		st := test.NewMockStudio(t)
		rec := &recorder{}
		st.On("NowPlaying").Return(wantTake(1, speech.StyleSales), true)
		st.On("Stop").Return()

		require.NoError(t, commands.NewStopCommand(st).Execute(context.Background(), rec, event(), nil))
		assert.Equal(t, "⏹️ Preview stopped.", rec.last().content)
	})
}

func TestStudioInfo(t *testing.T) {
	st := test.NewMockStudio(t)
	rec := &recorder{}
	st.On("Catalog").Return(music.NewCatalog(nil))
	st.On("NowPlaying").Return(wantTake(2, speech.StyleFriendly), true)

	cfg := config.Default()
	require.NoError(t, commands.NewStudioInfoCommand(cfg, st).Execute(context.Background(), rec, event(), nil))

	got := rec.last().content
	assert.Contains(t, got, "`litoral`")
	assert.Contains(t, got, "`institutional`")
	assert.Contains(t, got, "`radio_id`")
	assert.Contains(t, got, "`"+cfg.OpenAI.Voices[0]+"`")
	assert.Contains(t, got, "Now playing script 2 (friendly)")
}

func TestFormatSession(t *testing.T) {
	got := commands.FormatSession(&scripts.Session{
		Project: scripts.Project{Category: "Bakery", Vibe: "chill"},
		Scripts: []scripts.Script{{Title: "One", Text: "Bread.", Tone: "warm"}},
	})

	assert.Contains(t, got, "📝 **Bakery** · vibe `chill`")
	assert.Contains(t, got, "**1. One**\nBread.\n🎭 _warm_")
}
