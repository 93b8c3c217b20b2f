package cmd

import "strings"

// Match is the result of a successful name resolution.
type Match struct {
	Command *Command
	// Path holds the matched commands from the top level down to Command.
	Path  []*Command
	Depth int
	// Rest holds the tokens left after the deepest matched name.
	Rest []string
}

// Names returns the canonical name path of the match, e.g. ["admin", "ban"].
func (m Match) Names() []string {
	names := make([]string, len(m.Path))
	for i, c := range m.Path {
		names[i] = c.Name
	}
	return names
}

// Resolve maps a raw name to a command. Context-menu names take priority and
// are never split into subcommand paths. Otherwise the name is split on
// whitespace and matched case-insensitively level by level; with
// allowSubcommands false only the top level is considered. Intermediate
// levels match by name alone, so a group without an action of its own still
// leads to its subcommands. The match ends on the deepest node that is
// invocable or has an invocable descendant.
func (t *Tree) Resolve(name string, allowSubcommands bool) (Match, bool) {
	if strings.TrimSpace(name) == "" {
		return Match{}, false
	}

	for _, c := range t.commands {
		if c.HasContextMenu() && c.ContextMenuName != "" && strings.EqualFold(c.ContextMenuName, name) {
			return Match{Command: c, Path: []*Command{c}}, true
		}
	}

	tokens := strings.Fields(name)
	limit := 1
	if allowSubcommands {
		limit = len(tokens)
	}

	var path []*Command
	level := t.commands
	for _, tok := range tokens[:limit] {
		c := findByName(level, tok)
		if c == nil {
			break
		}
		path = append(path, c)
		level = c.Subcommands
	}

	for len(path) > 0 && !reachable(path[len(path)-1]) {
		path = path[:len(path)-1]
	}
	if len(path) == 0 {
		return Match{}, false
	}

	return Match{
		Command: path[len(path)-1],
		Path:    path,
		Depth:   len(path) - 1,
		Rest:    tokens[len(path):],
	}, true
}

func findByName(commands []*Command, name string) *Command {
	for _, c := range commands {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// reachable reports whether c or one of its descendants can be invoked.
func reachable(c *Command) bool {
	if c.Invocable() {
		return true
	}
	for _, sub := range c.Subcommands {
		if reachable(sub) {
			return true
		}
	}
	return false
}
