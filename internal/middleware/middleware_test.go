package middleware

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
)

func perms(p int64) *cmd.Permissions {
	v := cmd.Permissions(p)
	return &v
}

func TestCheckPermissions(t *testing.T) {
	manage := &cmd.Command{Name: "prefix", RequiredPermissions: cmd.Permissions(discordgo.PermissionManageGuild)}
	embed := &cmd.Command{Name: "history", RequiredBotPermissions: cmd.Permissions(discordgo.PermissionEmbedLinks)}
	free := &cmd.Command{Name: "ping"}

	tests := []struct {
		name      string
		command   *cmd.Command
		info      cmd.PermissionsInfo
		developer bool
		want      string
	}{
		{name: "no requirements in DM", command: free},
		{name: "author has bit", command: manage, info: cmd.PermissionsInfo{Author: perms(discordgo.PermissionManageGuild), Bot: perms(0)}},
		{name: "administrator passes", command: manage, info: cmd.PermissionsInfo{Author: perms(discordgo.PermissionAdministrator), Bot: perms(0)}},
		{name: "developer passes", command: manage, info: cmd.PermissionsInfo{Author: perms(0), Bot: perms(0)}, developer: true},
		{
			name:    "author misses bit",
			command: manage,
			info:    cmd.PermissionsInfo{Author: perms(discordgo.PermissionSendMessages), Bot: perms(0)},
			want:    "You need the following permissions to run this command:\n`Manage Server`",
		},
		{name: "unknown author", command: manage, want: unverifiableNotice},
		{
			name:    "bot misses bit",
			command: embed,
			info:    cmd.PermissionsInfo{Author: perms(0), Bot: perms(discordgo.PermissionSendMessages)},
			want:    "I need the following permissions to run this command:\n`Embed Links`",
		},
		{name: "unknown bot", command: embed, want: unverifiableNotice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkPermissions(tt.command, tt.info, tt.developer))
		})
	}
}

func TestPermissionList(t *testing.T) {
	p := cmd.Permissions(discordgo.PermissionManageGuild | discordgo.PermissionKickMembers | 1<<62)
	assert.Equal(t, []string{"Kick Members", "Manage Server", "0x4000000000000000"}, PermissionList(p))
	assert.Empty(t, PermissionList(0))
}

func guildContext() *command.Context {
	return &command.Context{
		Interaction: &discordgo.Interaction{
			GuildID:   "g1",
			ChannelID: "c1",
			Member:    &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "alice"}},
		},
	}
}

func TestCommandLoggerRecordsHistory(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ran := false
	action := cmd.Apply(func(context.Context, *cmd.Invocation) error {
		ran = true
		return nil
	}, WithCommandLogger(store))

	inv := &cmd.Invocation{
		Command: &cmd.Command{Name: "ban"},
		Path:    []string{"admin", "ban"},
		Surface: cmd.SurfaceSlash,
		Data:    guildContext(),
	}
	require.NoError(t, action(context.Background(), inv))
	assert.True(t, ran)

	history, err := store.FetchCommandHistory("g1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "admin ban", history[0].Command)
	assert.Equal(t, "slash", history[0].Surface)
	assert.Equal(t, "alice", history[0].Username)
	assert.Equal(t, "c1", history[0].ChannelID)
}

func TestMiddlewaresPassThrough(t *testing.T) {
	cfg := &config.Config{}
	calls := 0
	action := cmd.Apply(func(context.Context, *cmd.Invocation) error {
		calls++
		return nil
	}, WithGuildOnly(), WithPermissionCheck(cfg))

	guildOnly := &cmd.Command{Name: "prefix", GuildOnly: true}
	require.NoError(t, action(context.Background(), &cmd.Invocation{Command: guildOnly, Data: guildContext()}))

	dm := &command.Context{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "u1"}}}
	require.NoError(t, action(context.Background(), &cmd.Invocation{Command: &cmd.Command{Name: "ping"}, Data: dm}))

	// Invocations without a Discord context are left alone.
	require.NoError(t, action(context.Background(), &cmd.Invocation{Command: guildOnly}))

	assert.Equal(t, 3, calls)
}
