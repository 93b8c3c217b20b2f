package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/command-core/internal/command/core"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/help"
)

const readmePrefix = "!"

func main() {
	if err := run("README.md.tmpl", "README.md"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(tmplPath, outPath string) error {
	tree, err := cmd.NewTree(core.Commands()...)
	if err != nil {
		return err
	}

	tmplData, err := os.ReadFile(tmplPath)
	if err != nil {
		return err
	}
	tmpl, err := template.New("readme").Parse(string(tmplData))
	if err != nil {
		return err
	}

	data := map[string]any{
		"CommandSections": commandSections(tree),
		"HelpListing":     helpListing(tree),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return err
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}

// commandSections lists top-level commands per category, in registration order.
func commandSections(tree *cmd.Tree) string {
	var order []string
	sections := make(map[string][]*cmd.Command)
	for _, c := range tree.Commands() {
		if c.Hidden {
			continue
		}
		if _, ok := sections[c.Category]; !ok {
			order = append(order, c.Category)
		}
		sections[c.Category] = append(sections[c.Category], c)
	}

	var buf bytes.Buffer
	for _, cat := range order {
		fmt.Fprintf(&buf, "### %s\n\n", cat)
		for _, c := range sections[cat] {
			fmt.Fprintf(&buf, "* **%s**\n  %s\n\n", strings.Join(invocations(c), ", "), c.Description)
		}
	}
	return buf.String()
}

func invocations(c *cmd.Command) []string {
	var forms []string
	if c.HasSlash() {
		forms = append(forms, "`/"+c.Name+"`")
	}
	if c.HasPrefix() {
		forms = append(forms, "`"+readmePrefix+c.Name+"`")
	}
	if label, ok := c.ContextMenuLabel(); ok {
		forms = append(forms, "`"+label+"`")
	}
	return forms
}

func helpListing(tree *cmd.Tree) string {
	cfg := help.DefaultConfig()
	cfg.ShowContextMenuCommands = true
	cfg.ExtraFooterText = fmt.Sprintf("Type %shelp command for more info on a command.", readmePrefix)
	r := help.Renderer{Tree: tree, Config: cfg, Prefix: readmePrefix, PrefixKnown: true}
	return "```\n" + r.All() + "\n```"
}
