package core

import (
	"context"
	"strings"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/help"
)

func helpCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}

		r := helpRenderer(c)
		if len(inv.Args) > 0 {
			return c.Reply(r.Command(strings.Join(inv.Args, " ")), r.Config.Ephemeral)
		}
		return c.Paginate(ctx, r.All(), c.Config.HelpPageSize, r.Config.Ephemeral)
	}

	return &cmd.Command{
		Name:        "help",
		Category:    CategoryInformation,
		Description: "Show this menu",
		HelpText:    "Lists every command. Pass a command name, e.g. `help prefix`, for its details.",
		Parameters: []cmd.Parameter{
			{Name: "command", Description: "Specific command to show help about"},
		},
		Slash:  run,
		Prefix: run,
	}
}

// helpRenderer renders help with the prefix resolved for this invocation, so
// the footer points at the guild's own prefix.
func helpRenderer(c *command.Context) help.Renderer {
	shown := c.Prefix
	if !c.PrefixKnown {
		shown = help.PrefixPlaceholder
	}
	return help.Renderer{
		Tree:        c.Tree,
		Config:      c.Config.Help(shown),
		Prefix:      c.Prefix,
		PrefixKnown: c.PrefixKnown,
	}
}
