package help

// Config controls how help output looks.
type Config struct {
	// ExtraFooterText is appended after the command list.
	ExtraFooterText string
	// Ephemeral asks the transport to show the reply only to the caller.
	Ephemeral bool
	// ShowContextMenuCommands appends a list of context-menu commands.
	ShowContextMenuCommands bool
	// ShowSubcommands lists one level of subcommands under each command.
	ShowSubcommands bool
	// IncludeDescription puts the short description above the help text.
	IncludeDescription bool
}

// DefaultConfig returns an ephemeral config that includes descriptions.
func DefaultConfig() Config {
	return Config{
		Ephemeral:          true,
		IncludeDescription: true,
	}
}
