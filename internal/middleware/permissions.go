package middleware

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/pkg/cmd"
)

// PermissionNames maps permission bits to the names Discord shows in its UI.
var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:    "Create Instant Invite",
	discordgo.PermissionKickMembers:            "Kick Members",
	discordgo.PermissionBanMembers:             "Ban Members",
	discordgo.PermissionAdministrator:          "Administrator",
	discordgo.PermissionManageChannels:         "Manage Channels",
	discordgo.PermissionManageGuild:            "Manage Server",
	discordgo.PermissionAddReactions:           "Add Reactions",
	discordgo.PermissionViewAuditLogs:          "View Audit Logs",
	discordgo.PermissionViewChannel:            "View Channel",
	discordgo.PermissionSendMessages:           "Send Messages",
	discordgo.PermissionSendTTSMessages:        "Send TTS Messages",
	discordgo.PermissionManageMessages:         "Manage Messages",
	discordgo.PermissionEmbedLinks:             "Embed Links",
	discordgo.PermissionAttachFiles:            "Attach Files",
	discordgo.PermissionReadMessageHistory:     "Read Message History",
	discordgo.PermissionMentionEveryone:        "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:      "Use External Emojis",
	discordgo.PermissionUseApplicationCommands: "Use Application Commands",
	discordgo.PermissionManageThreads:          "Manage Threads",
	discordgo.PermissionCreatePublicThreads:    "Create Public Threads",
	discordgo.PermissionCreatePrivateThreads:   "Create Private Threads",
	discordgo.PermissionUseExternalStickers:    "Use External Stickers",
	discordgo.PermissionSendMessagesInThreads:  "Send Messages in Threads",
	discordgo.PermissionVoicePrioritySpeaker:   "Priority Speaker",
	discordgo.PermissionVoiceStreamVideo:       "Stream Video",
	discordgo.PermissionVoiceConnect:           "Connect to Voice Channel",
	discordgo.PermissionVoiceSpeak:             "Speak",
	discordgo.PermissionVoiceMuteMembers:       "Mute Members",
	discordgo.PermissionVoiceDeafenMembers:     "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:       "Move Members",
	discordgo.PermissionVoiceUseVAD:            "Use Voice Activity Detection",
	discordgo.PermissionVoiceRequestToSpeak:    "Request to Speak",
	discordgo.PermissionChangeNickname:         "Change Nickname",
	discordgo.PermissionManageNicknames:        "Manage Nicknames",
	discordgo.PermissionManageRoles:            "Manage Roles",
	discordgo.PermissionManageWebhooks:         "Manage Webhooks",
	discordgo.PermissionManageEvents:           "Manage Events",
	discordgo.PermissionViewGuildInsights:      "View Guild Insights",
	discordgo.PermissionModerateMembers:        "Moderate Members",
}

const unverifiableNotice = "I cannot verify permissions here, so this command is unavailable."

// WithPermissionCheck refuses a command when the author or the bot lacks the
// command's required permissions. Administrators and the configured developer
// pass the author check. A set that is unknown in this context only blocks
// commands that require something from it.
func WithPermissionCheck(cfg *config.Config) cmd.Middleware {
	return func(next cmd.Action) cmd.Action {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			c, err := command.FromInvocation(inv)
			if err != nil {
				return next(ctx, inv)
			}

			developer := cfg.IsDeveloper(c.Author().ID)
			if denial := checkPermissions(inv.Command, c.Permissions, developer); denial != "" {
				c.Log().Info("Command refused",
					zap.String("command", strings.Join(inv.Path, " ")),
					zap.String("reason", denial),
				)
				return c.ReplyEmbed(&discordgo.MessageEmbed{Description: denial}, true)
			}
			return next(ctx, inv)
		}
	}
}

// checkPermissions returns the refusal message for c, or "" when it may run.
func checkPermissions(c *cmd.Command, info cmd.PermissionsInfo, developer bool) string {
	if c.RequiredPermissions != 0 && !developer {
		if info.Author == nil {
			return unverifiableNotice
		}
		if !info.Author.Has(cmd.Permissions(discordgo.PermissionAdministrator)) {
			if missing := info.Author.Missing(c.RequiredPermissions); missing != 0 {
				return fmt.Sprintf("You need the following permissions to run this command:\n`%s`",
					strings.Join(PermissionList(missing), "`, `"))
			}
		}
	}

	if c.RequiredBotPermissions != 0 {
		if info.Bot == nil {
			return unverifiableNotice
		}
		if !info.Bot.Has(cmd.Permissions(discordgo.PermissionAdministrator)) {
			if missing := info.Bot.Missing(c.RequiredBotPermissions); missing != 0 {
				return fmt.Sprintf("I need the following permissions to run this command:\n`%s`",
					strings.Join(PermissionList(missing), "`, `"))
			}
		}
	}
	return ""
}

// PermissionList names every bit of p, lowest bit first.
func PermissionList(p cmd.Permissions) []string {
	var names []string
	for v := uint64(p); v != 0; v &= v - 1 {
		bit := int64(1) << bits.TrailingZeros64(v)
		name := PermissionNames[bit]
		if name == "" {
			name = fmt.Sprintf("0x%x", bit)
		}
		names = append(names, name)
	}
	return names
}
