package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/internal/version"
	"github.com/keshon/command-core/pkg/cmd"
)

func aboutCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}
		return c.ReplyEmbed(buildAboutEmbed(len(c.Tree.Commands())), true)
	}

	return &cmd.Command{
		Name:        "about",
		Category:    CategoryInformation,
		Description: "Discover the origin of this bot",
		Slash:       run,
		Prefix:      run,
	}
}

func buildAboutEmbed(commands int) *discordgo.MessageEmbed {
	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		} else {
			buildDate = "invalid date"
		}
	}

	goVer := "unknown"
	if version.GoVersion != "" {
		goVer = strings.TrimPrefix(version.GoVersion, "go")
	}

	return &discordgo.MessageEmbed{
		Description: fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Release", Value: fmt.Sprintf("%s (Go %s)", buildDate, goVer)},
			{Name: "Commands", Value: fmt.Sprintf("%d", commands)},
		},
	}
}
