// Package core holds the built-in commands every deployment ships with.
package core

import (
	"github.com/keshon/command-core/pkg/cmd"
)

const (
	CategoryInformation = "🕯️ Information"
	CategorySettings    = "⚙️ Settings"
	CategoryMaintenance = "🛠️ Maintenance"
)

// Commands returns the built-in commands in listing order.
func Commands() []*cmd.Command {
	return []*cmd.Command{
		helpCommand(),
		aboutCommand(),
		userInfoCommand(),
		prefixCommand(),
		pingCommand(),
		historyCommand(),
	}
}
