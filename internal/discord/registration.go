package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/retrylimit"
)

const (
	maxDescriptionLength = 100
	defaultDescription   = "No description"
)

// applicationCommands builds the Discord definitions for every top-level
// command: one chat command when the command or a descendant has a slash
// action, and one context-menu entry when it has a context-menu action.
func applicationCommands(tree *cmd.Tree) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range tree.Commands() {
		if hasSlash(c) {
			defs = append(defs, slashDefinition(c))
		}
		if c.HasContextMenu() {
			defs = append(defs, contextMenuDefinition(c))
		}
	}
	return defs
}

func slashDefinition(c *cmd.Command) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        strings.ToLower(c.Name),
		Description: description(c.Description),
		Options:     slashOptions(c, 0),
	}
	def.DefaultMemberPermissions = memberPermissions(c)
	return def
}

func contextMenuDefinition(c *cmd.Command) *discordgo.ApplicationCommand {
	typ := discordgo.UserApplicationCommand
	if c.ContextMenu.Target == cmd.TargetMessage {
		typ = discordgo.MessageApplicationCommand
	}
	return &discordgo.ApplicationCommand{
		Type:                     typ,
		Name:                     c.MenuName(),
		DefaultMemberPermissions: memberPermissions(c),
	}
}

// slashOptions maps subcommands onto Discord's two nesting levels: a child
// with slash children of its own becomes a group, any other slash child a
// subcommand. Deeper levels cannot be expressed and are left out. A command
// without slash children exposes its parameters instead.
func slashOptions(c *cmd.Command, depth int) []*discordgo.ApplicationCommandOption {
	var opts []*discordgo.ApplicationCommandOption
	for _, sub := range c.Subcommands {
		opt := &discordgo.ApplicationCommandOption{
			Name:        strings.ToLower(sub.Name),
			Description: description(sub.Description),
		}
		switch {
		case depth == 0 && hasSlashChild(sub):
			opt.Type = discordgo.ApplicationCommandOptionSubCommandGroup
			opt.Options = slashOptions(sub, depth+1)
		case sub.HasSlash():
			opt.Type = discordgo.ApplicationCommandOptionSubCommand
			opt.Options = parameterOptions(sub)
		default:
			continue
		}
		opts = append(opts, opt)
	}
	if len(opts) > 0 {
		return opts
	}
	return parameterOptions(c)
}

// parameterOptions registers every parameter as a string option. Discord
// requires required options to come first.
func parameterOptions(c *cmd.Command) []*discordgo.ApplicationCommandOption {
	var opts []*discordgo.ApplicationCommandOption
	for _, p := range c.Parameters {
		opts = append(opts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        strings.ToLower(p.Name),
			Description: description(p.Description),
			Required:    p.Required,
		})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Required && !opts[j].Required
	})
	return opts
}

func hasSlash(c *cmd.Command) bool {
	return c.HasSlash() || hasSlashChild(c)
}

func hasSlashChild(c *cmd.Command) bool {
	for _, sub := range c.Subcommands {
		if hasSlash(sub) {
			return true
		}
	}
	return false
}

func memberPermissions(c *cmd.Command) *int64 {
	if c.RequiredPermissions == 0 {
		return nil
	}
	p := int64(c.RequiredPermissions)
	return &p
}

func description(s string) string {
	if s == "" {
		return defaultDescription
	}
	r := []rune(s)
	if len(r) > maxDescriptionLength {
		return string(r[:maxDescriptionLength-1]) + "…"
	}
	return s
}

// registerCommands overwrites the guild's application commands with the
// tree's definitions. The set is skipped when it matches the hash stored for
// the guild by the previous registration.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	log := b.logger.With(zap.String("guild_id", guildID))

	defs := applicationCommands(b.tree)
	hash := hashCommands(defs)
	if prev, err := b.storage.GetCommandsHash(guildID); err == nil && prev == hash {
		log.Debug("Commands unchanged, registration skipped")
		return nil
	}

	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return fmt.Errorf("fetch application user: %w", err)
		}
		appID = user.ID
	}

	var registered []*discordgo.ApplicationCommand
	policy := retrylimit.Policy{Classify: classifyRESTError, Logger: log}
	err := retrylimit.Do(ctx, b.limiter, policy, func() error {
		var err error
		registered, err = b.dg.ApplicationCommandBulkOverwrite(appID, guildID, defs)
		return err
	})
	if err != nil {
		return fmt.Errorf("overwrite commands: %w", err)
	}
	if err := b.storage.SetCommandsHash(guildID, hash); err != nil {
		log.Warn("Failed to store commands hash", zap.Error(err))
	}

	log.Info("Commands registered", zap.Int("count", len(registered)))
	return nil
}

// classifyRESTError retries Discord rate limits and server errors.
func classifyRESTError(err error) retrylimit.Outcome {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return retrylimit.Fatal
	}
	switch code := restErr.Response.StatusCode; {
	case code == http.StatusTooManyRequests:
		return retrylimit.Throttled
	case code >= 500:
		return retrylimit.Transient
	}
	return retrylimit.Fatal
}
