// app/reactionrole/module.go
package reactionrole

import (
	"context"
	"log/slog"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/app/events"
	"github.com/banana-club/discord-banana-bot/app/interactions"
	"github.com/banana-club/discord-banana-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
)

// InitializeReactionRoleModule sets up the reaction-role module: seeds the
// binding state from the store, registers the /reactionrole command handler,
// wires the gateway publisher into the reaction registry, and attaches the
// matcher handlers to the router.
func InitializeReactionRoleModule(
	ctx context.Context,
	session discord.Session,
	router *message.Router,
	interactionRegistry *interactions.Registry,
	reactionRegistry *interactions.ReactionRegistry,
	publisher message.Publisher,
	subscriber message.Subscriber,
	logger *slog.Logger,
	cfg *config.Config,
) error {
	tracer := otel.Tracer("reactionrole-module")

	store := NewFileStore(cfg.GetStateFile(), logger)
	state := NewState()
	state.Seed(store)
	if binding, ok := state.Get(); ok {
		logger.InfoContext(ctx, "Loaded reaction-role binding",
			slog.Uint64("message_id", binding.MessageID),
			slog.Uint64("role_id", binding.RoleID),
			slog.String("emoji", binding.Emoji))
	} else {
		logger.InfoContext(ctx, "No reaction-role binding configured yet")
	}

	creator := NewCreateManager(session, logger, store, state, tracer)
	RegisterHandlers(interactionRegistry, creator)

	gateway := NewGatewayHandler(publisher, logger)
	reactionRegistry.RegisterMessageReactionAddHandler(gateway.HandleReactionAdd)
	reactionRegistry.RegisterMessageReactionRemoveHandler(gateway.HandleReactionRemove)

	matcher := NewMatchManager(session, state, logger, tracer)
	router.AddNoPublisherHandler(
		"reactionrole.grant",
		events.ReactionAddedTopic,
		subscriber,
		matcher.HandleReactionAdded,
	)
	router.AddNoPublisherHandler(
		"reactionrole.revoke",
		events.ReactionRemovedTopic,
		subscriber,
		matcher.HandleReactionRemoved,
	)

	return nil
}
