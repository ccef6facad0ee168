package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Discord      DiscordConfig      `yaml:"discord"`
	ReactionRole ReactionRoleConfig `yaml:"reaction_role"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// DiscordConfig holds Discord configuration.
type DiscordConfig struct {
	Token           string   `yaml:"token"`
	AutoRoleID      string   `yaml:"auto_role_id"`
	AllowedGuildIDs []string `yaml:"allowed_guild_ids"`
}

// ReactionRoleConfig holds the reaction-role state file location.
type ReactionRoleConfig struct {
	StateFile string `yaml:"state_file"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

const defaultStateFile = "reaction_role.json"

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables for anything the file does not provide.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	return loadConfigFromEnv(&cfg)
}

// loadConfigFromEnv fills missing configuration values from environment
// variables and validates the result.
func loadConfigFromEnv(cfg *Config) (*Config, error) {
	if cfg.Discord.Token == "" {
		cfg.Discord.Token = os.Getenv("BANANABOT_DISCORD_TOKEN")
		if cfg.Discord.Token == "" {
			return nil, fmt.Errorf("BANANABOT_DISCORD_TOKEN environment variable not set")
		}
	}
	if cfg.Discord.AutoRoleID == "" {
		cfg.Discord.AutoRoleID = os.Getenv("BANANABOT_AUTO_ROLE_ID")
		if cfg.Discord.AutoRoleID == "" {
			return nil, fmt.Errorf("BANANABOT_AUTO_ROLE_ID environment variable not set")
		}
	}
	if _, err := strconv.ParseUint(cfg.Discord.AutoRoleID, 10, 64); err != nil {
		return nil, fmt.Errorf("BANANABOT_AUTO_ROLE_ID must be a valid uint64: %w", err)
	}
	if len(cfg.Discord.AllowedGuildIDs) == 0 {
		raw := os.Getenv("BANANABOT_ALLOWED_GUILD_IDS")
		if raw == "" {
			return nil, fmt.Errorf("BANANABOT_ALLOWED_GUILD_IDS environment variable not set")
		}
		for _, id := range strings.Split(raw, ",") {
			cfg.Discord.AllowedGuildIDs = append(cfg.Discord.AllowedGuildIDs, strings.TrimSpace(id))
		}
	}
	for _, id := range cfg.Discord.AllowedGuildIDs {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return nil, fmt.Errorf("allowed guild ID %q must be a valid uint64: %w", id, err)
		}
	}
	if cfg.ReactionRole.StateFile == "" {
		cfg.ReactionRole.StateFile = os.Getenv("BANANABOT_STATE_FILE")
	}
	if cfg.ReactionRole.StateFile == "" {
		cfg.ReactionRole.StateFile = defaultStateFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = os.Getenv("BANANABOT_LOG_LEVEL")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// IsGuildAllowed reports whether the bot may remain in the given guild.
func (c *Config) IsGuildAllowed(guildID string) bool {
	for _, id := range c.Discord.AllowedGuildIDs {
		if id == guildID {
			return true
		}
	}
	return false
}

// GetAutoRoleID returns the role granted to new guild members.
func (c *Config) GetAutoRoleID() string {
	return c.Discord.AutoRoleID
}

// GetStateFile returns the reaction-role state file path.
func (c *Config) GetStateFile() string {
	return c.ReactionRole.StateFile
}

// SlogLevel maps the configured level name to a slog level string form
// understood by the logger setup in main.
func (c *Config) GetLogLevel() string {
	return strings.ToLower(c.Logging.Level)
}
