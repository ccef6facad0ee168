package reactionrole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinding_MatchesReaction(t *testing.T) {
	binding := Binding{
		ChannelID: 100,
		MessageID: 500,
		RoleID:    200,
		Emoji:     "🍌",
	}

	tests := []struct {
		name      string
		messageID uint64
		emojiName string
		emojiID   string
		want      bool
	}{
		{
			name:      "matching message and emoji",
			messageID: 500,
			emojiName: "🍌",
			want:      true,
		},
		{
			name:      "message id mismatch regardless of emoji",
			messageID: 501,
			emojiName: "🍌",
			want:      false,
		},
		{
			name:      "emoji mismatch on the right message",
			messageID: 500,
			emojiName: "🍋",
			want:      false,
		},
		{
			name:      "custom emoji with no name never matches",
			messageID: 500,
			emojiName: "",
			emojiID:   "123456789",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := binding.MatchesReaction(tt.messageID, tt.emojiName, tt.emojiID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinding_MatchesReaction_CustomEmojiByName(t *testing.T) {
	binding := Binding{MessageID: 500, RoleID: 200, Emoji: "banana"}

	assert.True(t, binding.MatchesReaction(500, "banana", "123456789"))
	assert.False(t, binding.MatchesReaction(500, "apple", "123456789"))
}

func TestBinding_Valid(t *testing.T) {
	assert.True(t, Binding{ChannelID: 1, MessageID: 2, RoleID: 3, Emoji: "🍌"}.Valid())
	assert.True(t, Binding{MessageID: 2, RoleID: 3, Emoji: "🍌"}.Valid(), "channel id is informational only")
	assert.False(t, Binding{RoleID: 3, Emoji: "🍌"}.Valid())
	assert.False(t, Binding{MessageID: 2, Emoji: "🍌"}.Valid())
	assert.False(t, Binding{MessageID: 2, RoleID: 3}.Valid())
	assert.False(t, Binding{}.Valid())
}
