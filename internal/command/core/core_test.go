package core

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/help"
)

func TestCommandsBuildATree(t *testing.T) {
	tree, err := cmd.NewTree(Commands()...)
	require.NoError(t, err)

	m, ok := tree.Resolve("User info", true)
	require.True(t, ok)
	assert.Equal(t, "whois", m.Command.Name)
	assert.True(t, m.Command.HasContextMenu())

	for _, name := range []string{"help", "about", "ping", "prefix", "history"} {
		m, ok := tree.Resolve(name, true)
		require.True(t, ok, name)
		assert.True(t, m.Command.HasSlash() && m.Command.HasPrefix(), name)
	}
}

func TestHelpListingOfBuiltins(t *testing.T) {
	r := help.Renderer{
		Tree:        cmd.MustTree(Commands()...),
		Config:      help.Config{ShowContextMenuCommands: true, ExtraFooterText: "footer"},
		PrefixKnown: false,
	}
	out := r.All()

	assert.True(t, strings.HasPrefix(out, CategoryInformation+":\n"), out)
	assert.Contains(t, out, "  /help")
	assert.Contains(t, out, "\n"+CategorySettings+":\n")
	assert.Contains(t, out, "Context menu commands:\n  User info (on user)\n")
	assert.True(t, strings.HasSuffix(out, "\nfooter"), out)
}

func TestHelpFooterUsesGuildPrefix(t *testing.T) {
	c := &command.Context{
		Tree:        cmd.MustTree(Commands()...),
		Config:      &config.Config{CommandPrefix: "!"},
		Prefix:      "$",
		PrefixKnown: true,
	}
	assert.Equal(t, "Type $help command for more info on a command.", helpRenderer(c).Config.ExtraFooterText)

	c.Prefix, c.PrefixKnown = "", false
	assert.Equal(t, "Type <prefix>help command for more info on a command.", helpRenderer(c).Config.ExtraFooterText)

	c.Config.HelpFooter = "custom"
	assert.Equal(t, "custom", helpRenderer(c).Config.ExtraFooterText)
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, validatePrefix("?"))
	assert.NoError(t, validatePrefix("bot,"))
	for _, bad := range []string{"", "toolong", "a b", "/x"} {
		assert.ErrorIs(t, validatePrefix(bad), errInvalidPrefix, bad)
	}
}

func TestFormatHistoryNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := formatHistory([]storage.CommandHistoryRecord{
		{Username: "alice", Command: "ping", Surface: "slash", Datetime: base},
		{Username: "bob", Command: "admin ban", Surface: "prefix", Datetime: base.Add(time.Minute)},
	})

	assert.Equal(t,
		"2024-05-01 12:01   bob  admin ban (prefix)\n"+
			"2024-05-01 12:00   alice  ping (slash)\n",
		out)
}

func TestPermissionSummary(t *testing.T) {
	p := func(v int64) *cmd.Permissions {
		x := cmd.Permissions(v)
		return &x
	}

	assert.Equal(t, "Unknown outside a server", permissionSummary(nil))
	assert.Equal(t, "Administrator", permissionSummary(p(discordgo.PermissionAdministrator|discordgo.PermissionKickMembers)))
	assert.Equal(t, "None", permissionSummary(p(0)))
	assert.Equal(t, "Kick Members, Ban Members", permissionSummary(p(discordgo.PermissionKickMembers|discordgo.PermissionBanMembers)))
}

func TestUserInfoEmbed(t *testing.T) {
	e := buildUserInfoEmbed(&discordgo.User{ID: "175928847299117063", Username: "alice", GlobalName: "Alice"}, cmd.PermissionsInfo{})

	require.Len(t, e.Fields, 5)
	assert.Equal(t, "Alice (alice)", e.Fields[0].Value)
	assert.Equal(t, "2016-04-30", e.Fields[2].Value)
	assert.Equal(t, "Unknown outside a server", e.Fields[3].Value)
}
