// Package cmd provides a transport-agnostic command core: a tree of commands,
// each exposing any mix of slash, prefix and context-menu behaviour, plus name
// resolution and permission evaluation over that tree. How commands reach a
// chat platform is defined by adapters that consume this package.
package cmd

import (
	"context"
	"fmt"
)

// Action runs a command body for one invocation.
type Action func(ctx context.Context, inv *Invocation) error

// ContextMenuTarget is what a context-menu command is invoked on.
type ContextMenuTarget int

const (
	TargetUser ContextMenuTarget = iota + 1
	TargetMessage
)

func (t ContextMenuTarget) String() string {
	switch t {
	case TargetUser:
		return "user"
	case TargetMessage:
		return "message"
	default:
		return "unknown"
	}
}

// ContextMenuAction is the right-click behaviour of a command.
type ContextMenuAction struct {
	Target ContextMenuTarget
	Run    Action
}

// Parameter describes one argument of a command.
type Parameter struct {
	Name        string
	Description string
	Required    bool
}

// Command is a node of the command tree. Each invocation surface is an
// independent optional field; a nil field means the surface is not offered.
type Command struct {
	Name        string
	Category    string
	Description string
	HelpText    string

	Slash  Action
	Prefix Action

	ContextMenuName string
	ContextMenu     *ContextMenuAction

	Parameters  []Parameter
	Subcommands []*Command

	Hidden    bool
	GuildOnly bool

	RequiredPermissions    Permissions
	RequiredBotPermissions Permissions
}

// HasSlash reports whether the command can be invoked as a slash command.
func (c *Command) HasSlash() bool { return c.Slash != nil }

// HasPrefix reports whether the command can be invoked with a text prefix.
func (c *Command) HasPrefix() bool { return c.Prefix != nil }

// HasContextMenu reports whether the command has a usable context-menu action.
// A context-menu name without an action is inert.
func (c *Command) HasContextMenu() bool {
	return c.ContextMenu != nil && c.ContextMenu.Run != nil
}

// Invocable reports whether at least one surface is implemented.
func (c *Command) Invocable() bool {
	return c.HasSlash() || c.HasPrefix() || c.HasContextMenu()
}

// MenuName is the name shown in the context menu, falling back to Name.
func (c *Command) MenuName() string {
	if c.ContextMenuName != "" {
		return c.ContextMenuName
	}
	return c.Name
}

// ContextMenuLabel formats the command as "name (on user)". ok is false when
// the command has no context-menu action.
func (c *Command) ContextMenuLabel() (label string, ok bool) {
	if !c.HasContextMenu() {
		return "", false
	}
	return fmt.Sprintf("%s (on %s)", c.MenuName(), c.ContextMenu.Target), true
}

// Action returns the behaviour registered for the given surface, or nil.
func (c *Command) Action(s Surface) Action {
	switch s {
	case SurfaceSlash:
		return c.Slash
	case SurfacePrefix:
		return c.Prefix
	case SurfaceContextMenu:
		if c.HasContextMenu() {
			return c.ContextMenu.Run
		}
	}
	return nil
}

// Parameter returns the parameter with the given name.
func (c *Command) Parameter(name string) (Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
