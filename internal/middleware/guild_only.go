package middleware

import (
	"context"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/pkg/cmd"
)

const guildOnlyNotice = "This command can only be used in a server."

// WithGuildOnly stops commands marked GuildOnly from running in direct messages.
func WithGuildOnly() cmd.Middleware {
	return func(next cmd.Action) cmd.Action {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			if !inv.Command.GuildOnly {
				return next(ctx, inv)
			}
			c, err := command.FromInvocation(inv)
			if err != nil {
				return next(ctx, inv)
			}
			if c.GuildID() == "" {
				return c.Reply(guildOnlyNotice, true)
			}
			return next(ctx, inv)
		}
	}
}
