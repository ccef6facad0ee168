// Package events defines the topics and payloads carried on the in-process
// message bus between the gateway handlers and the reaction-role matcher.
package events

const (
	ReactionAddedTopic   = "discord.reaction.added"
	ReactionRemovedTopic = "discord.reaction.removed"
)

// ReactionEventPayload mirrors the fields of a gateway reaction notification
// that the matcher needs. IDs stay in Discord's string snowflake form until
// the matcher parses them.
type ReactionEventPayload struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	EmojiName string `json:"emoji_name"`
	EmojiID   string `json:"emoji_id"`
}
