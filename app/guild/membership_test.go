package guild

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	discord "github.com/banana-club/discord-banana-bot/app/discordgo"
	"github.com/banana-club/discord-banana-bot/config"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		Discord: config.DiscordConfig{
			Token:           "fake-token",
			AutoRoleID:      "400",
			AllowedGuildIDs: []string{"900"},
		},
	}
}

func TestMembershipManager_HandleGuildMemberAdd(t *testing.T) {
	t.Run("assigns the auto-role to a new member", func(t *testing.T) {
		fake := discord.NewFakeSession()
		var gotGuild, gotUser, gotRole string
		fake.GuildMemberRoleAddFunc = func(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
			gotGuild, gotUser, gotRole = guildID, userID, roleID
			return nil
		}

		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildMemberAdd(context.Background(), &discordgo.GuildMemberAdd{
			Member: &discordgo.Member{
				GuildID: "900",
				User:    &discordgo.User{ID: "300", Username: "banana-fan"},
			},
		})

		assert.Equal(t, "900", gotGuild)
		assert.Equal(t, "300", gotUser)
		assert.Equal(t, "400", gotRole)
	})

	t.Run("role assignment failure is absorbed", func(t *testing.T) {
		fake := discord.NewFakeSession()
		fake.GuildMemberRoleAddFunc = func(_, _, _ string, _ ...discordgo.RequestOption) error {
			return errors.New("missing permissions")
		}

		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildMemberAdd(context.Background(), &discordgo.GuildMemberAdd{
			Member: &discordgo.Member{
				GuildID: "900",
				User:    &discordgo.User{ID: "300"},
			},
		})

		assert.Equal(t, []string{"GuildMemberRoleAdd"}, fake.Trace())
	})

	t.Run("member without a user record is skipped", func(t *testing.T) {
		fake := discord.NewFakeSession()
		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildMemberAdd(context.Background(), &discordgo.GuildMemberAdd{
			Member: &discordgo.Member{GuildID: "900"},
		})

		assert.Empty(t, fake.Trace())
	})
}

func TestMembershipManager_HandleGuildCreate(t *testing.T) {
	t.Run("stays in an allowed guild", func(t *testing.T) {
		fake := discord.NewFakeSession()
		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildCreate(context.Background(), &discordgo.GuildCreate{
			Guild: &discordgo.Guild{ID: "900", Name: "Banana Club"},
		})

		assert.Empty(t, fake.Trace())
	})

	t.Run("leaves an unauthorized guild", func(t *testing.T) {
		fake := discord.NewFakeSession()
		var leftGuild string
		fake.GuildLeaveFunc = func(guildID string, _ ...discordgo.RequestOption) error {
			leftGuild = guildID
			return nil
		}

		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildCreate(context.Background(), &discordgo.GuildCreate{
			Guild: &discordgo.Guild{ID: "666", Name: "Imposter Club"},
		})

		assert.Equal(t, "666", leftGuild)
	})

	t.Run("leave failure is absorbed", func(t *testing.T) {
		fake := discord.NewFakeSession()
		fake.GuildLeaveFunc = func(_ string, _ ...discordgo.RequestOption) error {
			return errors.New("gateway hiccup")
		}

		manager := NewMembershipManager(fake, testLogger(), testConfig(), nil)
		manager.HandleGuildCreate(context.Background(), &discordgo.GuildCreate{
			Guild: &discordgo.Guild{ID: "666"},
		})

		assert.Equal(t, []string{"GuildLeave"}, fake.Trace())
	})
}
