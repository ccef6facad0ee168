package reactionrole

import (
	"encoding/json"
	"errors"
	"testing"

	discordmocks "github.com/banana-club/discord-banana-bot/app/discordgo/mocks"
	"github.com/banana-club/discord-banana-bot/app/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func reactionMessage(t *testing.T, payload events.ReactionEventPayload) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func installedBinding() Binding {
	return Binding{ChannelID: 100, MessageID: 500, RoleID: 200, Emoji: "✅"}
}

func matchingPayload() events.ReactionEventPayload {
	return events.ReactionEventPayload{
		GuildID:   "900",
		ChannelID: "100",
		MessageID: "500",
		UserID:    "300",
		EmojiName: "✅",
	}
}

func Test_matchManager_HandleReactionAdded(t *testing.T) {
	tests := []struct {
		name    string
		binding *Binding
		payload events.ReactionEventPayload
		setup   func(mockSession *discordmocks.MockSession)
	}{
		{
			name:    "matching reaction grants the bound role",
			binding: ptrBinding(installedBinding()),
			payload: matchingPayload(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().
					GuildMemberRoleAdd("900", "300", "200").
					Return(nil).
					Times(1)
			},
		},
		{
			name:    "no binding configured means the reaction is ignored",
			binding: nil,
			payload: matchingPayload(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().GuildMemberRoleAdd(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:    "reaction on a different message is ignored",
			binding: ptrBinding(installedBinding()),
			payload: func() events.ReactionEventPayload {
				p := matchingPayload()
				p.MessageID = "501"
				return p
			}(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().GuildMemberRoleAdd(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:    "different emoji on the bound message is ignored",
			binding: ptrBinding(Binding{MessageID: 500, RoleID: 200, Emoji: "🍌"}),
			payload: func() events.ReactionEventPayload {
				p := matchingPayload()
				p.EmojiName = "🍋"
				return p
			}(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().GuildMemberRoleAdd(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:    "matching reaction in a DM is ignored",
			binding: ptrBinding(installedBinding()),
			payload: func() events.ReactionEventPayload {
				p := matchingPayload()
				p.GuildID = ""
				return p
			}(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().GuildMemberRoleAdd(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:    "grant failure is absorbed",
			binding: ptrBinding(installedBinding()),
			payload: matchingPayload(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().
					GuildMemberRoleAdd("900", "300", "200").
					Return(errors.New("missing permissions")).
					Times(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSession := discordmocks.NewMockSession(ctrl)
			tt.setup(mockSession)

			state := NewState()
			if tt.binding != nil {
				state.Replace(*tt.binding)
			}

			manager := NewMatchManager(mockSession, state, testLogger(), nil)

			err := manager.HandleReactionAdded(reactionMessage(t, tt.payload))
			assert.NoError(t, err, "reaction handlers never ask the router to retry")
		})
	}
}

func Test_matchManager_HandleReactionRemoved(t *testing.T) {
	tests := []struct {
		name    string
		payload events.ReactionEventPayload
		setup   func(mockSession *discordmocks.MockSession)
	}{
		{
			name:    "matching removal revokes the bound role",
			payload: matchingPayload(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().
					GuildMemberRoleRemove("900", "300", "200").
					Return(nil).
					Times(1)
			},
		},
		{
			name: "removal of a different emoji is ignored",
			payload: func() events.ReactionEventPayload {
				p := matchingPayload()
				p.EmojiName = "🍌"
				return p
			}(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().GuildMemberRoleRemove(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:    "revoke failure is absorbed",
			payload: matchingPayload(),
			setup: func(mockSession *discordmocks.MockSession) {
				mockSession.EXPECT().
					GuildMemberRoleRemove("900", "300", "200").
					Return(errors.New("missing permissions")).
					Times(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSession := discordmocks.NewMockSession(ctrl)
			tt.setup(mockSession)

			state := NewState()
			state.Replace(installedBinding())

			manager := NewMatchManager(mockSession, state, testLogger(), nil)

			err := manager.HandleReactionRemoved(reactionMessage(t, tt.payload))
			assert.NoError(t, err)
		})
	}
}

func Test_matchManager_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSession := discordmocks.NewMockSession(ctrl)
	mockSession.EXPECT().GuildMemberRoleAdd(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	state := NewState()
	state.Replace(installedBinding())

	manager := NewMatchManager(mockSession, state, testLogger(), nil)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	assert.NoError(t, manager.HandleReactionAdded(msg))
}

func Test_matchManager_CustomEmojiMatchesByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSession := discordmocks.NewMockSession(ctrl)
	mockSession.EXPECT().
		GuildMemberRoleAdd("900", "300", "200").
		Return(nil).
		Times(1)

	state := NewState()
	state.Replace(Binding{MessageID: 500, RoleID: 200, Emoji: "banana"})

	manager := NewMatchManager(mockSession, state, testLogger(), nil)

	payload := matchingPayload()
	payload.EmojiName = "banana"
	payload.EmojiID = "123456789"

	assert.NoError(t, manager.HandleReactionAdded(reactionMessage(t, payload)))
}

func Test_matchManager_ReplacedBindingGoverns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSession := discordmocks.NewMockSession(ctrl)
	mockSession.EXPECT().
		GuildMemberRoleAdd("900", "300", "777").
		Return(nil).
		Times(1)

	state := NewState()
	state.Replace(installedBinding())
	// A second /reactionrole supersedes the first entirely.
	state.Replace(Binding{MessageID: 600, RoleID: 777, Emoji: "✅"})

	manager := NewMatchManager(mockSession, state, testLogger(), nil)

	stale := matchingPayload()
	assert.NoError(t, manager.HandleReactionAdded(reactionMessage(t, stale)))

	fresh := matchingPayload()
	fresh.MessageID = "600"
	assert.NoError(t, manager.HandleReactionAdded(reactionMessage(t, fresh)))
}

func ptrBinding(b Binding) *Binding { return &b }
