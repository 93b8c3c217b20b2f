package core

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/help"
)

func historyCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}

		records, err := c.Storage.FetchCommandHistory(c.GuildID())
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		if len(records) == 0 {
			return c.Reply("No commands recorded yet.", true)
		}
		return c.Paginate(ctx, formatHistory(records), c.Config.HelpPageSize, true)
	}

	return &cmd.Command{
		Name:                "history",
		Category:            CategoryMaintenance,
		Description:         "Show recently used commands",
		GuildOnly:           true,
		RequiredPermissions: cmd.Permissions(discordgo.PermissionManageGuild),
		Slash:               run,
		Prefix:              run,
	}
}

// formatHistory lists records newest first.
func formatHistory(records []storage.CommandHistoryRecord) string {
	var list help.TwoColumnList
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		list.AddRow(r.Datetime.UTC().Format("2006-01-02 15:04"), fmt.Sprintf("%s  %s (%s)", r.Username, r.Command, r.Surface))
	}
	return list.String()
}
