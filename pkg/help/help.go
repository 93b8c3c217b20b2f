// Package help renders command help text from a command tree: either the full
// help of one command or a categorized listing of every visible command.
package help

import (
	"fmt"
	"strings"

	"github.com/keshon/command-core/pkg/cmd"
)

const (
	// PrefixPlaceholder stands in for a prefix that cannot be resolved in the
	// current context, e.g. a per-guild prefix asked for from a DM.
	PrefixPlaceholder = "<prefix>"
	defaultCategory   = "Commands"
	noHelp            = "No help available"
)

// Renderer formats help for one invocation. Prefix is the resolved text
// prefix; PrefixKnown is false when it could not be resolved.
type Renderer struct {
	Tree        *cmd.Tree
	Config      Config
	Prefix      string
	PrefixKnown bool
}

// Command renders the full help of the command named name, which may be a
// context-menu name or a space separated subcommand path. An unknown name
// yields a short notice, never an error.
func (r Renderer) Command(name string) string {
	m, ok := r.Tree.Resolve(name, true)
	if !ok {
		return fmt.Sprintf("No such command `%s`", name)
	}
	c := m.Command
	qualified := strings.Join(m.Names(), " ")

	var invocations []string
	subprefix := ""
	if c.HasSlash() {
		invocations = append(invocations, fmt.Sprintf("`/%s`", qualified))
		subprefix = "  /" + qualified
	}
	if c.HasPrefix() {
		prefix := r.Prefix
		if !r.PrefixKnown {
			prefix = PrefixPlaceholder
		}
		invocations = append(invocations, fmt.Sprintf("`%s%s`", prefix, qualified))
		if subprefix == "" {
			subprefix = "  " + prefix + qualified
		}
	}
	if label, ok := c.ContextMenuLabel(); ok {
		invocations = append(invocations, label)
		if subprefix == "" {
			subprefix = "  "
		}
	}

	if len(invocations) == 0 {
		// A group with no action of its own.
		invocations = append(invocations, fmt.Sprintf("`%s`", qualified))
		subprefix = "  " + qualified
	}

	text := r.body(c)

	if len(c.Parameters) > 0 {
		var params TwoColumnList
		for _, p := range c.Parameters {
			kind := "optional"
			if p.Required {
				kind = "required"
			}
			params.AddRow(p.Name, fmt.Sprintf("(%s) %s", kind, p.Description))
		}
		text += "\n\n```\nParameters:\n" + params.String() + "```"
	}

	if len(c.Subcommands) > 0 {
		var subs TwoColumnList
		addSubcommands(&subs, c, subprefix)
		if subs.Len() > 0 {
			text += "\n\n```\nSubcommands:\n" + subs.String() + "```"
		}
	}

	return fmt.Sprintf("**%s**\n\n%s", strings.Join(invocations, "\n"), text)
}

func (r Renderer) body(c *cmd.Command) string {
	switch {
	case c.Description != "" && c.HelpText != "":
		if r.Config.IncludeDescription {
			return c.Description + "\n\n" + c.HelpText
		}
		return c.HelpText
	case c.Description != "":
		return c.Description
	case c.HelpText != "":
		return c.HelpText
	default:
		return noHelp
	}
}

// All renders every visible slash or prefix command grouped by category.
// Categories appear in the order their first visible command was registered.
func (r Renderer) All() string {
	var order []string
	byCategory := make(map[string][]*cmd.Command)
	for _, c := range r.Tree.Commands() {
		if c.Hidden || !(c.HasSlash() || c.HasPrefix()) {
			continue
		}
		cat := c.Category
		if cat == "" {
			cat = defaultCategory
		}
		if _, seen := byCategory[cat]; !seen {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], c)
	}

	var list TwoColumnList
	for _, cat := range order {
		list.AddHeading(cat)
		for _, c := range byCategory[cat] {
			r.addCommand(&list, c, "  ")
		}
	}

	var sb strings.Builder
	sb.WriteString(list.String())

	if r.Config.ShowContextMenuCommands {
		sb.WriteString("\nContext menu commands:\n")
		for _, c := range r.Tree.Commands() {
			label, ok := c.ContextMenuLabel()
			if !ok || c.Hidden {
				continue
			}
			sb.WriteString("  " + label + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(r.Config.ExtraFooterText)
	return sb.String()
}

func (r Renderer) addCommand(list *TwoColumnList, c *cmd.Command, indent string) {
	surface := "/"
	if !c.HasSlash() {
		surface = ""
		if r.PrefixKnown {
			surface = r.Prefix
		}
	}
	label := indent + surface + c.Name
	list.AddRow(label, c.Description)
	if r.Config.ShowSubcommands {
		addSubcommands(list, c, label)
	}
}

// addSubcommands lists one level of subcommands. Deeper levels are shown when
// help is asked for the subcommand itself. Context-menu parents have no
// hierarchy in the client, so their children are listed by menu label.
func addSubcommands(list *TwoColumnList, c *cmd.Command, prefix string) {
	asContextMenu := c.HasContextMenu() && !c.HasSlash() && !c.HasPrefix()
	for _, sub := range c.Subcommands {
		if sub.Hidden || !sub.Invocable() {
			continue
		}
		label := prefix + " " + sub.Name
		if asContextMenu {
			l, ok := sub.ContextMenuLabel()
			if !ok {
				continue
			}
			label = l
		}
		list.AddRow(label, sub.Description)
	}
}
