package reactionrole

// Binding links one message + emoji to one role. At most one binding is
// active at a time; creating a new one replaces the old outright.
type Binding struct {
	ChannelID uint64 `json:"channel_id"`
	MessageID uint64 `json:"message_id"`
	RoleID    uint64 `json:"role_id"`
	Emoji     string `json:"emoji"`
}

// Valid reports whether the record carries enough to ever match a reaction.
// A zero message ID, zero role ID, or empty emoji can only come from a
// malformed state file and is treated as "no binding".
func (b Binding) Valid() bool {
	return b.MessageID != 0 && b.RoleID != 0 && b.Emoji != ""
}

// MatchesReaction reports whether a reaction event corresponds to this
// binding. The event matches iff the message IDs are equal and the emoji
// matches: standard symbols compare by exact string equality, custom emojis
// by display name. A custom emoji with no name never matches. The channel ID
// is recorded but deliberately not revalidated here.
func (b Binding) MatchesReaction(messageID uint64, emojiName, emojiID string) bool {
	if messageID != b.MessageID {
		return false
	}
	if emojiID != "" {
		return emojiName != "" && emojiName == b.Emoji
	}
	return emojiName == b.Emoji
}
