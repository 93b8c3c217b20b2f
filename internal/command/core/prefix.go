package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/pkg/cmd"
)

const maxPrefixLength = 5

var errInvalidPrefix = errors.New("invalid prefix")

func prefixCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}
		guildID := c.GuildID()

		if len(inv.Args) == 0 {
			return c.Reply(fmt.Sprintf("Current prefix is `%s`", c.Prefix), true)
		}

		value := inv.Args[0]
		if strings.EqualFold(value, "reset") {
			if err := c.Storage.SetPrefix(guildID, ""); err != nil {
				return fmt.Errorf("reset prefix: %w", err)
			}
			return c.Reply(fmt.Sprintf("Prefix reset to `%s`", c.Config.CommandPrefix), true)
		}

		if err := validatePrefix(value); err != nil {
			return c.Reply(err.Error(), true)
		}
		if err := c.Storage.SetPrefix(guildID, value); err != nil {
			return fmt.Errorf("set prefix: %w", err)
		}
		return c.Reply(fmt.Sprintf("Prefix set to `%s`", value), true)
	}

	return &cmd.Command{
		Name:        "prefix",
		Category:    CategorySettings,
		Description: "Show or change the text command prefix",
		HelpText:    "Without a value shows the current prefix. `reset` restores the default.",
		Parameters: []cmd.Parameter{
			{Name: "value", Description: "New prefix, or reset"},
		},
		GuildOnly:           true,
		RequiredPermissions: cmd.Permissions(discordgo.PermissionManageGuild),
		Slash:               run,
		Prefix:              run,
	}
}

func validatePrefix(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("%w: prefix cannot be empty", errInvalidPrefix)
	case utf8.RuneCountInString(p) > maxPrefixLength:
		return fmt.Errorf("%w: prefix can be at most %d characters", errInvalidPrefix, maxPrefixLength)
	case strings.IndexFunc(p, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: prefix cannot contain spaces", errInvalidPrefix)
	case strings.HasPrefix(p, "/"):
		return fmt.Errorf("%w: prefix cannot start with /", errInvalidPrefix)
	}
	return nil
}
