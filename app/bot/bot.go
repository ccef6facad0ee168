package bot

import (
	"context"
	"log/slog"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/app/guild"
	"github.com/banana-club/discord-banana-bot/app/interactions"
	"github.com/banana-club/discord-banana-bot/app/reactionrole"
	"github.com/banana-club/discord-banana-bot/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel"
)

// DiscordBot wires the gateway session, the in-process message router, and
// the feature modules together.
type DiscordBot struct {
	Session discord.Session
	Logger  *slog.Logger
	Config  *config.Config
	Router  *message.Router
	PubSub  *gochannel.GoChannel
}

// NewDiscordBot creates the Discord bot with its dependencies.
func NewDiscordBot(
	session discord.Session,
	cfg *config.Config,
	logger *slog.Logger,
	router *message.Router,
	pubSub *gochannel.GoChannel,
) (*DiscordBot, error) {
	return &DiscordBot{
		Session: session,
		Logger:  logger,
		Config:  cfg,
		Router:  router,
		PubSub:  pubSub,
	}, nil
}

// Run registers commands and handlers, opens the gateway connection, and
// starts the message router. It returns once the bot is running; shutdown is
// driven by cancelling ctx.
func (bot *DiscordBot) Run(ctx context.Context) error {
	// Slash commands are registered per allow-listed guild before the
	// gateway connection opens.
	for _, guildID := range bot.Config.Discord.AllowedGuildIDs {
		if err := discord.RegisterCommands(bot.Session, bot.Logger, guildID); err != nil {
			return err
		}
	}

	interactionRegistry := interactions.NewRegistry(bot.Logger)
	reactionRegistry := interactions.NewReactionRegistry()

	err := reactionrole.InitializeReactionRoleModule(
		ctx,
		bot.Session,
		bot.Router,
		interactionRegistry,
		reactionRegistry,
		bot.PubSub,
		bot.PubSub,
		bot.Logger,
		bot.Config,
	)
	if err != nil {
		bot.Logger.ErrorContext(ctx, "Failed to initialize reaction-role module", slog.Any("error", err))
		return err
	}

	membership := guild.NewMembershipManager(bot.Session, bot.Logger, bot.Config, otel.Tracer("guild-module"))

	bot.Session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
		go membership.HandleGuildMemberAdd(ctx, e)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildCreate) {
		go membership.HandleGuildCreate(ctx, e)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		interactionRegistry.HandleInteraction(s, i)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		bot.Logger.InfoContext(ctx, "Discord bot is connected and ready",
			slog.String("user", r.User.Username))
	})

	if sessionWrapper, ok := bot.Session.(*discord.DiscordSession); ok {
		reactionRegistry.RegisterWithSession(sessionWrapper.GetUnderlyingSession(), bot.Session)
	}

	if err := bot.Session.Open(); err != nil {
		bot.Logger.ErrorContext(ctx, "Error opening discord connection", slog.Any("error", err))
		return err
	}

	go func() {
		if err := bot.Router.Run(ctx); err != nil && ctx.Err() == nil {
			bot.Logger.Error("Message router stopped unexpectedly", slog.Any("error", err))
		}
	}()

	bot.Logger.InfoContext(ctx, "Discord bot is now running")
	return nil
}

// Close tears the bot down: the message router, the pub/sub, and the
// gateway session. In-flight per-event goroutines are not awaited.
func (bot *DiscordBot) Close() {
	bot.Logger.Info("Closing bot")
	if bot.Router != nil {
		if err := bot.Router.Close(); err != nil {
			bot.Logger.Error("Failed to close message router", slog.Any("error", err))
		}
	}
	if bot.PubSub != nil {
		if err := bot.PubSub.Close(); err != nil {
			bot.Logger.Error("Failed to close pub/sub", slog.Any("error", err))
		}
	}
	if err := bot.Session.Close(); err != nil {
		bot.Logger.Error("Failed to close Discord session", slog.Any("error", err))
	}
}
