package reactionrole

import (
	"encoding/json"
	"log/slog"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/app/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// GatewayHandler turns raw gateway reaction notifications into messages on
// the in-process bus. It performs no matching itself; the matcher owns every
// matching decision.
type GatewayHandler struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(publisher message.Publisher, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{publisher: publisher, logger: logger}
}

// HandleReactionAdd publishes a reaction-added notification.
func (g *GatewayHandler) HandleReactionAdd(_ discord.Session, r *discordgo.MessageReactionAdd) {
	g.publish(events.ReactionAddedTopic, r.MessageReaction)
}

// HandleReactionRemove publishes a reaction-removed notification.
func (g *GatewayHandler) HandleReactionRemove(_ discord.Session, r *discordgo.MessageReactionRemove) {
	g.publish(events.ReactionRemovedTopic, r.MessageReaction)
}

func (g *GatewayHandler) publish(topic string, r *discordgo.MessageReaction) {
	payload := events.ReactionEventPayload{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		EmojiName: r.Emoji.Name,
		EmojiID:   r.Emoji.ID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error("Failed to marshal reaction event payload", slog.Any("error", err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("correlation_id", uuid.NewString())
	msg.Metadata.Set("topic", topic)

	if err := g.publisher.Publish(topic, msg); err != nil {
		g.logger.Error("Failed to publish reaction event",
			slog.String("topic", topic),
			slog.Any("error", err))
	}
}
