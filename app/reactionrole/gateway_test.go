package reactionrole

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/banana-club/discord-banana-bot/app/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayHandler_PublishesReactionEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	added, err := pubSub.Subscribe(ctx, events.ReactionAddedTopic)
	require.NoError(t, err)
	removed, err := pubSub.Subscribe(ctx, events.ReactionRemovedTopic)
	require.NoError(t, err)

	gateway := NewGatewayHandler(pubSub, testLogger())

	reaction := &discordgo.MessageReaction{
		GuildID:   "900",
		ChannelID: "100",
		MessageID: "500",
		UserID:    "300",
		Emoji:     discordgo.Emoji{Name: "✅"},
	}

	gateway.HandleReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction})
	gateway.HandleReactionRemove(nil, &discordgo.MessageReactionRemove{MessageReaction: reaction})

	want := events.ReactionEventPayload{
		GuildID:   "900",
		ChannelID: "100",
		MessageID: "500",
		UserID:    "300",
		EmojiName: "✅",
	}

	select {
	case msg := <-added:
		var got events.ReactionEventPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, want, got)
		assert.NotEmpty(t, msg.Metadata.Get("correlation_id"))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no reaction-added event published")
	}

	select {
	case msg := <-removed:
		var got events.ReactionEventPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, want, got)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no reaction-removed event published")
	}
}
