package reactionrole

import (
	"regexp"
	"strings"
)

// Emoji is the parsed form of an operator-supplied emoji input: either a
// standard Unicode symbol or a custom guild emoji referenced by its
// <:name:id> markup.
type Emoji struct {
	Name     string
	ID       string
	Animated bool
}

var customEmojiPattern = regexp.MustCompile(`^<(a?):([A-Za-z0-9_~]+):([0-9]+)>$`)

// ParseEmoji parses raw input as custom-emoji markup first and falls back to
// treating the whole string as a standard symbol literal.
func ParseEmoji(raw string) Emoji {
	raw = strings.TrimSpace(raw)
	if m := customEmojiPattern.FindStringSubmatch(raw); m != nil {
		return Emoji{Name: m[2], ID: m[3], Animated: m[1] == "a"}
	}
	return Emoji{Name: raw}
}

// IsCustom reports whether the emoji is a custom guild emoji.
func (e Emoji) IsCustom() bool {
	return e.ID != ""
}

// APIName returns the emoji in the form the Discord reaction endpoints
// expect: "name:id" for custom emojis, the symbol itself otherwise.
func (e Emoji) APIName() string {
	if e.IsCustom() {
		return e.Name + ":" + e.ID
	}
	return e.Name
}

// StorageName returns the form persisted in a binding: the display name for
// a custom emoji, the symbol itself for a standard one. Gateway reaction
// events carry the same form in their emoji name field, so matching is a
// plain string comparison.
func (e Emoji) StorageName() string {
	return e.Name
}
