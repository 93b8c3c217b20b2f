package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "datastore.json", cfg.StoragePath)
	assert.Equal(t, 1900, cfg.HelpPageSize)
	assert.Equal(t, 10*time.Minute, cfg.PagerTimeout)
	assert.True(t, cfg.RegisterCommands)

	h := cfg.Help(cfg.CommandPrefix)
	assert.True(t, h.Ephemeral)
	assert.True(t, h.IncludeDescription)
	assert.True(t, h.ShowContextMenuCommands)
	assert.False(t, h.ShowSubcommands)
	assert.Equal(t, "Type !help command for more info on a command.", h.ExtraFooterText)
	assert.Equal(t, "Type ?help command for more info on a command.", cfg.Help("?").ExtraFooterText)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("DISCORD_GUILD_BLACKLIST", "1,2")
	t.Setenv("PAGER_TIMEOUT", "30s")
	t.Setenv("HELP_FOOTER", "bye")
	t.Setenv("DEVELOPER_ID", "99")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, 30*time.Second, cfg.PagerTimeout)
	assert.True(t, cfg.IsGuildBlacklisted("2"))
	assert.False(t, cfg.IsGuildBlacklisted("3"))
	assert.True(t, cfg.IsDeveloper("99"))
	assert.False(t, cfg.IsDeveloper(""))
	assert.Equal(t, "bye", cfg.Help("!").ExtraFooterText)
}

func TestParseRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParseRejectsOversizedPages(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("HELP_PAGE_SIZE", "5000")
	_, err := Parse()
	assert.Error(t, err)
}
