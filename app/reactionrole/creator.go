package reactionrole

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/app/interactions"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// CreateManager handles the /reactionrole command.
type CreateManager interface {
	HandleReactionRoleCommand(ctx context.Context, i *discordgo.InteractionCreate) (OperationResult, error)
}

type createManager struct {
	session          discord.Session
	logger           *slog.Logger
	store            Store
	state            *State
	tracer           trace.Tracer
	operationWrapper func(ctx context.Context, opName string, fn operationFunc) (OperationResult, error)
}

// NewCreateManager creates a new CreateManager instance.
func NewCreateManager(
	session discord.Session,
	logger *slog.Logger,
	store Store,
	state *State,
	tracer trace.Tracer,
) CreateManager {
	return &createManager{
		session: session,
		logger:  logger,
		store:   store,
		state:   state,
		tracer:  tracer,
		operationWrapper: func(ctx context.Context, opName string, fn operationFunc) (OperationResult, error) {
			return wrapReactionRoleOperation(ctx, opName, fn, logger, tracer)
		},
	}
}

// RegisterHandlers registers the /reactionrole command handler.
func RegisterHandlers(registry *interactions.Registry, manager CreateManager) {
	registry.RegisterHandler(discord.ReactionRoleCommandName, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_, _ = manager.HandleReactionRoleCommand(ctx, i)
	})
}

// HandleReactionRoleCommand posts the reaction-role message, seeds it with
// the marker reaction, persists the binding, and installs it. Any failure
// aborts the remaining steps; a binding is never installed unless it was
// durably saved first.
func (cm *createManager) HandleReactionRoleCommand(ctx context.Context, i *discordgo.InteractionCreate) (OperationResult, error) {
	return cm.operationWrapper(ctx, "create_reaction_role", func(ctx context.Context) (OperationResult, error) {
		correlationID := uuid.NewString()

		channelID, roleID, emojiInput, messageBody, ok := extractCommandOptions(i)
		if !ok {
			cm.respondEphemeral(ctx, i, "Usage: /reactionrole requires a channel, a role, an emoji, and a message.")
			return OperationResult{Failure: "missing required option"}, nil
		}

		channelNum, chErr := strconv.ParseUint(channelID, 10, 64)
		roleNum, roleErr := strconv.ParseUint(roleID, 10, 64)
		if chErr != nil || roleErr != nil {
			cm.respondEphemeral(ctx, i, "Usage: /reactionrole received an invalid channel or role.")
			return OperationResult{Failure: "invalid channel or role ID"}, nil
		}

		emoji := ParseEmoji(emojiInput)

		posted, err := cm.session.ChannelMessageSend(channelID, messageBody)
		if err != nil {
			cm.logger.ErrorContext(ctx, "Failed to post reaction-role message",
				slog.String("correlation_id", correlationID),
				slog.String("channel_id", channelID),
				slog.Any("error", err))
			cm.respondEphemeral(ctx, i, "Failed to post the reaction-role message.")
			return OperationResult{Error: fmt.Errorf("failed to post reaction-role message: %w", err)}, nil
		}

		if err := cm.session.MessageReactionAdd(channelID, posted.ID, emoji.APIName()); err != nil {
			// The message stays in place; there is no compensating delete.
			cm.logger.ErrorContext(ctx, "Failed to add marker reaction, posted message is orphaned",
				slog.String("correlation_id", correlationID),
				slog.String("channel_id", channelID),
				slog.String("message_id", posted.ID),
				slog.String("emoji", emoji.APIName()),
				slog.Any("error", err))
			cm.respondEphemeral(ctx, i, "Posted the message but failed to attach the reaction.")
			return OperationResult{Error: fmt.Errorf("failed to add marker reaction: %w", err)}, nil
		}

		messageNum, err := strconv.ParseUint(posted.ID, 10, 64)
		if err != nil {
			cm.respondEphemeral(ctx, i, "Discord returned an unexpected message ID.")
			return OperationResult{Error: fmt.Errorf("failed to parse posted message ID %q: %w", posted.ID, err)}, nil
		}

		binding := Binding{
			ChannelID: channelNum,
			MessageID: messageNum,
			RoleID:    roleNum,
			Emoji:     emoji.StorageName(),
		}

		if err := cm.store.Save(binding); err != nil {
			// Persist-then-install: the in-memory state is left untouched so
			// it never diverges from disk.
			cm.logger.ErrorContext(ctx, "Failed to persist reaction-role binding",
				slog.String("correlation_id", correlationID),
				slog.Any("error", err))
			cm.respondEphemeral(ctx, i, "Failed to save the reaction-role binding.")
			return OperationResult{Error: err}, nil
		}

		cm.state.Replace(binding)

		cm.logger.InfoContext(ctx, "Reaction-role binding created",
			slog.String("correlation_id", correlationID),
			slog.Uint64("channel_id", binding.ChannelID),
			slog.Uint64("message_id", binding.MessageID),
			slog.Uint64("role_id", binding.RoleID),
			slog.String("emoji", binding.Emoji))

		cm.respondEphemeral(ctx, i, fmt.Sprintf(
			"Reaction-role post created in <#%s>: reacting with %s grants <@&%s>.",
			channelID, emojiInput, roleID))

		return OperationResult{Success: "binding created"}, nil
	})
}

// extractCommandOptions pulls the four required options out of the
// interaction. The command definition marks them all required, but absence
// is still treated as a usage error rather than trusted.
func extractCommandOptions(i *discordgo.InteractionCreate) (channelID, roleID, emoji, messageBody string, ok bool) {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt == nil {
			continue
		}
		switch opt.Name {
		case "channel":
			channelID, _ = opt.Value.(string)
		case "role":
			roleID, _ = opt.Value.(string)
		case "emoji":
			emoji, _ = opt.Value.(string)
		case "message":
			messageBody, _ = opt.Value.(string)
		}
	}
	ok = channelID != "" && roleID != "" && emoji != "" && messageBody != ""
	return channelID, roleID, emoji, messageBody, ok
}

// respondEphemeral sends a caller-only-visible response to the invoking
// operator. A failed response is logged and otherwise dropped.
func (cm *createManager) respondEphemeral(ctx context.Context, i *discordgo.InteractionCreate, content string) {
	err := cm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		cm.logger.ErrorContext(ctx, "Failed to respond to interaction", slog.Any("error", err))
	}
}
