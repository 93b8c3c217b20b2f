// Package config loads bot settings from the environment, after reading a
// .env file when one is present.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/command-core/pkg/help"
)

type Config struct {
	DiscordToken          string        `env:"DISCORD_TOKEN,required,notEmpty"`
	CommandPrefix         string        `env:"COMMAND_PREFIX" envDefault:"!"`
	StoragePath           string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DeveloperID           string        `env:"DEVELOPER_ID"`
	DiscordGuildBlacklist []string      `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	RegisterCommands      bool          `env:"REGISTER_COMMANDS" envDefault:"true"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	HelpPageSize          int           `env:"HELP_PAGE_SIZE" envDefault:"1900"`
	PagerTimeout          time.Duration `env:"PAGER_TIMEOUT" envDefault:"10m"`
	HelpEphemeral         bool          `env:"HELP_EPHEMERAL" envDefault:"true"`
	HelpShowContextMenu   bool          `env:"HELP_SHOW_CONTEXT_MENU" envDefault:"true"`
	HelpShowSubcommands   bool          `env:"HELP_SHOW_SUBCOMMANDS" envDefault:"false"`
	HelpFooter            string        `env:"HELP_FOOTER"`
}

// Load reads .env (if any) and parses the environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HelpPageSize < 1 || cfg.HelpPageSize > 1950 {
		return nil, fmt.Errorf("HELP_PAGE_SIZE must be between 1 and 1950, got %d", cfg.HelpPageSize)
	}
	return &cfg, nil
}

// IsDeveloper reports whether userID is the configured developer.
func (c *Config) IsDeveloper(userID string) bool {
	return c != nil && c.DeveloperID != "" && c.DeveloperID == userID
}

// IsGuildBlacklisted reports whether the bot should stay out of guildID.
func (c *Config) IsGuildBlacklisted(guildID string) bool {
	return slices.Contains(c.DiscordGuildBlacklist, guildID)
}

// Help builds the help renderer settings. prefix is the one shown in the
// default footer, usually the prefix resolved for the current guild.
func (c *Config) Help(prefix string) help.Config {
	footer := c.HelpFooter
	if footer == "" {
		footer = fmt.Sprintf("Type %shelp command for more info on a command.", prefix)
	}
	return help.Config{
		ExtraFooterText:         footer,
		Ephemeral:               c.HelpEphemeral,
		ShowContextMenuCommands: c.HelpShowContextMenu,
		ShowSubcommands:         c.HelpShowSubcommands,
		IncludeDescription:      true,
	}
}
