package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/command-core/pkg/cmd"
)

// slashPath flattens subcommand and group options into a name path and
// returns the options that belong to the innermost subcommand.
func slashPath(data discordgo.ApplicationCommandInteractionData) ([]string, []*discordgo.ApplicationCommandInteractionDataOption) {
	path := []string{data.Name}
	opts := data.Options
	for len(opts) == 1 && isSubcommandOption(opts[0].Type) {
		path = append(path, opts[0].Name)
		opts = opts[0].Options
	}
	return path, opts
}

func isSubcommandOption(t discordgo.ApplicationCommandOptionType) bool {
	return t == discordgo.ApplicationCommandOptionSubCommand ||
		t == discordgo.ApplicationCommandOptionSubCommandGroup
}

// slashArgs orders option values by the command's parameter list. Options
// the user left out are skipped.
func slashArgs(c *cmd.Command, opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		byName[strings.ToLower(o.Name)] = o
	}

	var args []string
	for _, p := range c.Parameters {
		if o, ok := byName[strings.ToLower(p.Name)]; ok {
			args = append(args, optionString(o))
		}
	}
	return args
}

func optionString(o *discordgo.ApplicationCommandInteractionDataOption) string {
	if s, ok := o.Value.(string); ok {
		return s
	}
	return fmt.Sprint(o.Value)
}
