package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/pkg/cmd"
)

func (b *Bot) newContext(s *discordgo.Session, prefix string, prefixKnown bool) *command.Context {
	return &command.Context{
		Session:     s,
		Tree:        b.tree,
		Prefix:      prefix,
		PrefixKnown: prefixKnown,
		Config:      b.cfg,
		Storage:     b.storage,
		Pager:       b.pager,
		Logger:      b.logger,
	}
}

// execute evaluates permissions for a resolved command and runs the surface's
// action through the middleware chain.
func (b *Bot) execute(ctx context.Context, c *command.Context, m cmd.Match, surface cmd.Surface, args []string, src cmd.PermissionSource) {
	log := c.Log().With(
		zap.String("command", strings.Join(m.Names(), " ")),
		zap.Stringer("surface", surface),
	)

	perms, err := cmd.Evaluate(src)
	if err != nil {
		log.Error("Permission data unavailable", zap.Error(err))
		b.replyError(c, "Could not read permissions for this command, please try again.")
		return
	}
	c.Permissions = perms

	inv := &cmd.Invocation{
		Command: m.Command,
		Path:    m.Names(),
		Args:    args,
		Surface: surface,
		Data:    c,
	}
	action := cmd.Apply(m.Command.Action(surface), b.middlewares...)

	log.Debug("Running command", zap.Strings("args", args))
	if err := action(ctx, inv); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("Error running command", zap.Error(err))
		b.replyError(c, fmt.Sprintf("Error running command: %v", err))
	}
}

func (b *Bot) replyError(c *command.Context, msg string) {
	if err := c.ReplyEmbed(&discordgo.MessageEmbed{Title: "Error", Description: msg}, true); err != nil {
		c.Log().Warn("Failed to send error reply", zap.Error(err))
	}
}
