package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/pkg/pager"
)

// PagerSink returns a pager.Sink that posts the paged message as the answer
// to this invocation.
func (c *Context) PagerSink(ephemeral bool) pager.Sink {
	return &discordSink{c: c, ephemeral: ephemeral}
}

type discordSink struct {
	c          *Context
	ephemeral  bool
	channelID  string
	messageID  string
	followupID string // set when the pages went out as a followup message
	// last is the most recent navigation press. Its token outlives the
	// invoking interaction's, which expires 15 minutes after the command.
	last *discordgo.Interaction
}

// editRoute is how the final edit reaches the paged message.
type editRoute int

const (
	editChannelMessage editRoute = iota
	editLastPress
	editFollowup
	editOriginalResponse
)

func (d *discordSink) Send(_ context.Context, p pager.Page) (string, error) {
	c := d.c
	data := &discordgo.InteractionResponseData{
		Content:    p.Text(),
		Components: NavigationComponents(p),
	}

	if c.Interaction == nil {
		msg, err := c.Session.ChannelMessageSendComplex(c.Message.ChannelID, &discordgo.MessageSend{
			Content:    data.Content,
			Components: data.Components,
			Reference:  c.Message.Reference(),
		})
		if err != nil {
			return "", err
		}
		d.channelID, d.messageID = msg.ChannelID, msg.ID
		return msg.ID, nil
	}

	if d.ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if c.markResponded() {
		msg, err := c.Session.FollowupMessageCreate(c.Interaction, true, &discordgo.WebhookParams{
			Content:    data.Content,
			Components: data.Components,
			Flags:      data.Flags,
		})
		if err != nil {
			return "", err
		}
		d.followupID = msg.ID
		d.channelID, d.messageID = msg.ChannelID, msg.ID
		return msg.ID, nil
	}

	err := c.Session.InteractionRespond(c.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return "", err
	}
	msg, err := c.Session.InteractionResponse(c.Interaction)
	if err != nil {
		return "", fmt.Errorf("fetch interaction response: %w", err)
	}
	d.channelID, d.messageID = msg.ChannelID, msg.ID
	return msg.ID, nil
}

func (d *discordSink) Update(_ context.Context, ev pager.Event, p pager.Page) error {
	i, ok := ev.Data.(*discordgo.Interaction)
	if !ok {
		return fmt.Errorf("navigation event without interaction")
	}
	d.last = i
	return d.c.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    p.Text(),
			Components: NavigationComponents(p),
		},
	})
}

func (d *discordSink) Edit(_ context.Context, content string) error {
	c := d.c
	components := []discordgo.MessageComponent{}

	edit := &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	}
	switch d.editRoute() {
	case editLastPress:
		_, err := c.Session.InteractionResponseEdit(d.last, edit)
		return err
	case editFollowup:
		_, err := c.Session.FollowupMessageEdit(c.Interaction, d.followupID, edit)
		return err
	case editOriginalResponse:
		_, err := c.Session.InteractionResponseEdit(c.Interaction, edit)
		return err
	}

	_, err := c.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         d.messageID,
		Channel:    d.channelID,
		Content:    &content,
		Components: &components,
	})
	return err
}

// editRoute picks the channel edit whenever the message is visible to the
// bot as a plain channel message. Ephemeral pages can only be reached through
// an interaction token, preferably the freshest one.
func (d *discordSink) editRoute() editRoute {
	switch {
	case d.c.Interaction == nil:
		return editChannelMessage
	case !d.ephemeral && d.channelID != "" && d.messageID != "":
		return editChannelMessage
	case d.last != nil:
		return editLastPress
	case d.followupID != "":
		return editFollowup
	default:
		return editOriginalResponse
	}
}

// NavigationComponents renders the page controls as one row of buttons.
func NavigationComponents(p pager.Page) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for _, ctl := range p.Controls() {
		buttons = append(buttons, discordgo.Button{
			Label:    ctl.Label,
			Style:    discordgo.PrimaryButton,
			CustomID: ctl.ID,
			Disabled: ctl.Disabled,
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}
