package guild

import (
	"context"
	"log/slog"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/config"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace"
)

// MembershipManager handles guild membership events: the auto-role for new
// members and the allow-list enforcement for guilds the bot is added to.
type MembershipManager interface {
	HandleGuildMemberAdd(ctx context.Context, m *discordgo.GuildMemberAdd)
	HandleGuildCreate(ctx context.Context, g *discordgo.GuildCreate)
}

type membershipManager struct {
	session discord.Session
	logger  *slog.Logger
	config  *config.Config
	tracer  trace.Tracer
}

// NewMembershipManager creates a new MembershipManager instance.
func NewMembershipManager(
	session discord.Session,
	logger *slog.Logger,
	cfg *config.Config,
	tracer trace.Tracer,
) MembershipManager {
	return &membershipManager{
		session: session,
		logger:  logger,
		config:  cfg,
		tracer:  tracer,
	}
}

// HandleGuildMemberAdd grants the configured auto-role to a newly joined
// member. Failures are absorbed; the member simply keeps no extra role.
func (mm *membershipManager) HandleGuildMemberAdd(ctx context.Context, m *discordgo.GuildMemberAdd) {
	if m.User == nil {
		return
	}
	err := mm.session.GuildMemberRoleAdd(m.GuildID, m.User.ID, mm.config.GetAutoRoleID())
	if err != nil {
		mm.logger.DebugContext(ctx, "Failed to assign auto-role",
			slog.String("guild_id", m.GuildID),
			slog.String("user", m.User.Username),
			slog.Any("error", err))
		return
	}
	mm.logger.DebugContext(ctx, "Assigned auto-role",
		slog.String("guild_id", m.GuildID),
		slog.String("user", m.User.Username))
}

// HandleGuildCreate leaves any guild that is not on the allow-list. Discord
// delivers GuildCreate both at connect time for existing guilds and when the
// bot is newly added, so this covers both paths.
func (mm *membershipManager) HandleGuildCreate(ctx context.Context, g *discordgo.GuildCreate) {
	if mm.config.IsGuildAllowed(g.ID) {
		return
	}
	mm.logger.DebugContext(ctx, "Leaving unauthorized guild",
		slog.String("guild_id", g.ID),
		slog.String("guild_name", g.Name))
	if err := mm.session.GuildLeave(g.ID); err != nil {
		mm.logger.DebugContext(ctx, "Failed to leave guild",
			slog.String("guild_id", g.ID),
			slog.Any("error", err))
	}
}
