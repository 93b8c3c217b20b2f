package core

import (
	"context"
	"fmt"

	"github.com/keshon/command-core/internal/command"
	"github.com/keshon/command-core/pkg/cmd"
)

func pingCommand() *cmd.Command {
	run := func(ctx context.Context, inv *cmd.Invocation) error {
		c, err := command.FromInvocation(inv)
		if err != nil {
			return err
		}
		latency := c.Session.HeartbeatLatency().Milliseconds()
		return c.Reply(fmt.Sprintf("🏓 Pong! %dms", latency), false)
	}

	return &cmd.Command{
		Name:        "ping",
		Category:    CategoryMaintenance,
		Description: "Check bot latency",
		Slash:       run,
		Prefix:      run,
	}
}
