package cmd

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCommand is returned by NewTree when two siblings share a name.
var ErrDuplicateCommand = errors.New("duplicate command name")

// Tree is the registry of top-level commands. It does not perform dispatch;
// adapters resolve names against it and invoke commands with their own context.
// A Tree is never mutated after NewTree, so concurrent reads need no locking.
type Tree struct {
	commands []*Command
}

// NewTree validates the commands and returns a tree keeping registration order.
func NewTree(commands ...*Command) (*Tree, error) {
	if err := validateLevel(commands, ""); err != nil {
		return nil, err
	}
	list := make([]*Command, len(commands))
	copy(list, commands)
	return &Tree{commands: list}, nil
}

// MustTree is NewTree for statically known command sets.
func MustTree(commands ...*Command) *Tree {
	t, err := NewTree(commands...)
	if err != nil {
		panic(err)
	}
	return t
}

func validateLevel(commands []*Command, parent string) error {
	seen := make(map[string]bool, len(commands))
	for _, c := range commands {
		if c == nil {
			return fmt.Errorf("nil command under %q", parent)
		}
		if strings.TrimSpace(c.Name) == "" || strings.ContainsAny(c.Name, " \t\n") {
			return fmt.Errorf("invalid command name %q under %q", c.Name, parent)
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateCommand, c.Name, parent)
		}
		seen[key] = true
		if err := validateLevel(c.Subcommands, strings.TrimSpace(parent+" "+c.Name)); err != nil {
			return err
		}
	}
	return nil
}

// Commands returns the top-level commands in registration order.
func (t *Tree) Commands() []*Command {
	list := make([]*Command, len(t.commands))
	copy(list, t.commands)
	return list
}
