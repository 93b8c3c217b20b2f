package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/pkg/cmd"
)

// interactionPermissions reads the permission sets Discord attaches to an
// interaction: the invoking member's resolved permissions and the
// application's permissions in the channel.
type interactionPermissions struct {
	i *discordgo.Interaction
}

func (p interactionPermissions) GuildScoped() bool { return p.i.GuildID != "" }

func (p interactionPermissions) AuthorPermissions() (cmd.Permissions, bool) {
	if p.i.Member == nil {
		return 0, false
	}
	return cmd.Permissions(p.i.Member.Permissions), true
}

// BotPermissions is always present: app_permissions is sent with every
// interaction and decodes to a plain integer.
func (p interactionPermissions) BotPermissions() (cmd.Permissions, bool) {
	return cmd.Permissions(p.i.AppPermissions), true
}

type channelPermissionsFunc func(userID, channelID string) (int64, error)

// messagePermissions computes channel permissions for a prefix command. The
// message itself carries none, so both sets are looked up.
type messagePermissions struct {
	m      *discordgo.Message
	botID  string
	lookup channelPermissionsFunc
}

func newMessagePermissions(s *discordgo.Session, m *discordgo.Message) messagePermissions {
	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	return messagePermissions{
		m:     m,
		botID: botID,
		lookup: func(userID, channelID string) (int64, error) {
			return s.UserChannelPermissions(userID, channelID)
		},
	}
}

func (p messagePermissions) GuildScoped() bool { return p.m.GuildID != "" }

func (p messagePermissions) AuthorPermissions() (cmd.Permissions, bool) {
	if p.m.Author == nil {
		return 0, false
	}
	return p.channel(p.m.Author.ID)
}

func (p messagePermissions) BotPermissions() (cmd.Permissions, bool) {
	if p.botID == "" {
		return 0, false
	}
	return p.channel(p.botID)
}

func (p messagePermissions) channel(userID string) (cmd.Permissions, bool) {
	perms, err := p.lookup(userID, p.m.ChannelID)
	if err != nil {
		return 0, false
	}
	return cmd.Permissions(perms), true
}
