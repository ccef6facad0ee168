package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// ReactionRoleCommandName is the slash command operators use to create a
// reaction-role post.
const ReactionRoleCommandName = "reactionrole"

// RegisterCommands registers the bot's slash commands for a single guild.
func RegisterCommands(s Session, logger *slog.Logger, guildID string) error {
	appUser, err := s.GetBotUser()
	if err != nil {
		return fmt.Errorf("failed to retrieve bot user: %w", err)
	}

	manageRoles := int64(discordgo.PermissionManageRoles)

	err = RetryDiscordAPI(logger, "register_reactionrole_command", func() error {
		_, cmdErr := s.ApplicationCommandCreate(appUser.ID, guildID, &discordgo.ApplicationCommand{
			Name:                     ReactionRoleCommandName,
			Description:              "Create a reaction-role post in a channel",
			DefaultMemberPermissions: &manageRoles,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "The channel to post the reaction-role message in",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "The role granted or revoked by reacting",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "The emoji users react with",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The message body to post",
					Required:    true,
				},
			},
		})
		return cmdErr
	})
	if err != nil {
		logger.Error("Failed to create '/reactionrole' command",
			slog.String("guild_id", guildID),
			slog.Any("error", err))
		return fmt.Errorf("failed to create '/reactionrole' command: %w", err)
	}
	logger.Info("registered command: /reactionrole", slog.String("guild_id", guildID))
	return nil
}
