package middleware

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
)

// WithCommandLogger logs every invocation and appends guild invocations to the
// guild's command history. The entry is written before the command runs, as
// paged replies keep the command busy until they expire.
func WithCommandLogger(store *storage.Storage) cmd.Middleware {
	return func(next cmd.Action) cmd.Action {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			c, err := command.FromInvocation(inv)
			if err != nil {
				return next(ctx, inv)
			}

			name := strings.Join(inv.Path, " ")
			user := c.Author()
			c.Log().Info("Command invoked",
				zap.String("command", name),
				zap.Stringer("surface", inv.Surface),
				zap.String("channel_id", c.ChannelID()),
			)

			if guildID := c.GuildID(); guildID != "" && store != nil {
				record := storage.CommandHistoryRecord{
					ChannelID: c.ChannelID(),
					UserID:    user.ID,
					Username:  user.Username,
					Command:   name,
					Surface:   inv.Surface.String(),
					Datetime:  time.Now(),
				}
				if err := store.AppendCommandToHistory(guildID, record); err != nil {
					c.Log().Warn("Failed to log command", zap.String("command", name), zap.Error(err))
				}
			}
			return next(ctx, inv)
		}
	}
}
