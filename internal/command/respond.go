package command

import (
	"github.com/bwmarrin/discordgo"
)

const EmbedColor = 0xb01e66

// Reply answers the invocation with plain text. Ephemeral only applies to
// interactions; prefix invocations get a normal reply to the message.
func (c *Context) Reply(content string, ephemeral bool) error {
	return c.reply(&discordgo.InteractionResponseData{Content: content}, ephemeral)
}

// ReplyEmbed answers the invocation with an embed.
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return c.reply(&discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}, ephemeral)
}

func (c *Context) reply(data *discordgo.InteractionResponseData, ephemeral bool) error {
	if c.Interaction == nil {
		_, err := c.Session.ChannelMessageSendComplex(c.Message.ChannelID, &discordgo.MessageSend{
			Content:    data.Content,
			Embeds:     data.Embeds,
			Components: data.Components,
			Reference:  c.Message.Reference(),
		})
		return err
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if c.markResponded() {
		_, err := c.Session.FollowupMessageCreate(c.Interaction, true, &discordgo.WebhookParams{
			Content:    data.Content,
			Embeds:     data.Embeds,
			Components: data.Components,
			Flags:      data.Flags,
		})
		return err
	}
	return c.Session.InteractionRespond(c.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}
