package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/middleware"
	"github.com/keshon/command-core/pkg/cmd"
)

// maxFieldLength is Discord's limit for an embed field value.
const maxFieldLength = 1024

func userInfoCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}
		if len(inv.Args) == 0 {
			return fmt.Errorf("user info: no target")
		}

		target, err := resolveTarget(c, inv.Args[0])
		if err != nil {
			return err
		}
		return c.ReplyEmbed(buildUserInfoEmbed(target, c.Permissions), true)
	}

	return &cmd.Command{
		Name:            "whois",
		ContextMenuName: "User info",
		Category:        CategoryInformation,
		Description:     "Show who a user is and what this invocation may do",
		ContextMenu:     &cmd.ContextMenuAction{Target: cmd.TargetUser, Run: run},
	}
}

// resolveTarget prefers the user object Discord resolved in the payload and
// falls back to fetching it.
func resolveTarget(c *command.Context, userID string) (*discordgo.User, error) {
	if c.Interaction != nil {
		data := c.Interaction.ApplicationCommandData()
		if data.Resolved != nil {
			if u, ok := data.Resolved.Users[userID]; ok {
				return u, nil
			}
		}
	}
	u, err := c.Session.User(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	return u, nil
}

func buildUserInfoEmbed(u *discordgo.User, perms cmd.PermissionsInfo) *discordgo.MessageEmbed {
	name := u.Username
	if u.GlobalName != "" {
		name = fmt.Sprintf("%s (%s)", u.GlobalName, u.Username)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: name, Inline: true},
		{Name: "ID", Value: u.ID, Inline: true},
	}
	if created, err := discordgo.SnowflakeTimestamp(u.ID); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Created",
			Value:  created.UTC().Format("2006-01-02"),
			Inline: true,
		})
	}
	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Your permissions here", Value: permissionSummary(perms.Author)},
		&discordgo.MessageEmbedField{Name: "My permissions here", Value: permissionSummary(perms.Bot)},
	)

	return &discordgo.MessageEmbed{
		Title:  "User info",
		Fields: fields,
	}
}

func permissionSummary(p *cmd.Permissions) string {
	switch {
	case p == nil:
		return "Unknown outside a server"
	case p.Has(cmd.Permissions(discordgo.PermissionAdministrator)):
		return "Administrator"
	case *p == 0:
		return "None"
	}

	summary := strings.Join(middleware.PermissionList(*p), ", ")
	if r := []rune(summary); len(r) > maxFieldLength {
		summary = string(r[:maxFieldLength-1]) + "…"
	}
	return summary
}
