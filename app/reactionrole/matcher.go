package reactionrole

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/app/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// MatchManager consumes reaction notifications and grants or revokes the
// bound role when one matches the current binding. It never mutates state.
type MatchManager interface {
	HandleReactionAdded(msg *message.Message) error
	HandleReactionRemoved(msg *message.Message) error
}

type matchManager struct {
	session          discord.Session
	state            *State
	logger           *slog.Logger
	tracer           trace.Tracer
	operationWrapper func(ctx context.Context, opName string, fn operationFunc) (OperationResult, error)
}

// NewMatchManager creates a new MatchManager instance.
func NewMatchManager(
	session discord.Session,
	state *State,
	logger *slog.Logger,
	tracer trace.Tracer,
) MatchManager {
	return &matchManager{
		session: session,
		state:   state,
		logger:  logger,
		tracer:  tracer,
		operationWrapper: func(ctx context.Context, opName string, fn operationFunc) (OperationResult, error) {
			return wrapReactionRoleOperation(ctx, opName, fn, logger, tracer)
		},
	}
}

// HandleReactionAdded grants the bound role for a matching reaction-added
// notification. It always returns nil: grant failures are observability-only
// and must not trigger a router retry.
func (mm *matchManager) HandleReactionAdded(msg *message.Message) error {
	mm.handle(msg, "grant_reaction_role", true)
	return nil
}

// HandleReactionRemoved revokes the bound role for a matching
// reaction-removed notification. Same no-retry contract as added.
func (mm *matchManager) HandleReactionRemoved(msg *message.Message) error {
	mm.handle(msg, "revoke_reaction_role", false)
	return nil
}

func (mm *matchManager) handle(msg *message.Message, opName string, grant bool) {
	ctx := msg.Context()

	var payload events.ReactionEventPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		mm.logger.ErrorContext(ctx, "Failed to unmarshal reaction event payload",
			slog.String("message_uuid", msg.UUID),
			slog.Any("error", err))
		return
	}

	_, _ = mm.operationWrapper(ctx, opName, func(ctx context.Context) (OperationResult, error) {
		binding, ok := mm.state.Get()
		if !ok {
			// Normal "feature not yet configured" case.
			mm.logger.DebugContext(ctx, "No reaction-role binding configured, ignoring reaction")
			return OperationResult{Failure: "no binding configured"}, nil
		}

		messageID, err := strconv.ParseUint(payload.MessageID, 10, 64)
		if err != nil {
			mm.logger.DebugContext(ctx, "Reaction event carries a non-numeric message ID, ignoring",
				slog.String("message_id", payload.MessageID))
			return OperationResult{Failure: "unparseable message ID"}, nil
		}

		if !binding.MatchesReaction(messageID, payload.EmojiName, payload.EmojiID) {
			mm.logger.DebugContext(ctx, "Reaction does not match the current binding",
				slog.String("message_id", payload.MessageID),
				slog.String("emoji", payload.EmojiName))
			return OperationResult{Failure: "no match"}, nil
		}

		if payload.GuildID == "" || payload.UserID == "" {
			// A DM reaction has no guild scope; role operations are
			// meaningless there.
			mm.logger.DebugContext(ctx, "Matching reaction outside a guild, ignoring")
			return OperationResult{Failure: "reaction outside a guild"}, nil
		}

		roleID := strconv.FormatUint(binding.RoleID, 10)
		if grant {
			err = mm.session.GuildMemberRoleAdd(payload.GuildID, payload.UserID, roleID)
		} else {
			err = mm.session.GuildMemberRoleRemove(payload.GuildID, payload.UserID, roleID)
		}
		if err != nil {
			// Observability only: no retry, no rollback, no user feedback.
			mm.logger.ErrorContext(ctx, "Failed to update role for reacting user",
				slog.String("guild_id", payload.GuildID),
				slog.String("user_id", payload.UserID),
				slog.String("role_id", roleID),
				slog.Bool("grant", grant),
				slog.Any("error", err))
			return OperationResult{Error: fmt.Errorf("failed to update role: %w", err)}, nil
		}

		mm.logger.InfoContext(ctx, "Updated role for reacting user",
			slog.String("guild_id", payload.GuildID),
			slog.String("user_id", payload.UserID),
			slog.String("role_id", roleID),
			slog.Bool("grant", grant))

		if grant {
			return OperationResult{Success: "role granted"}, nil
		}
		return OperationResult{Success: "role revoked"}, nil
	})
}
