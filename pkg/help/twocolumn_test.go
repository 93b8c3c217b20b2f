package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwoColumnListAlignment(t *testing.T) {
	var l TwoColumnList
	l.AddHeading("General")
	l.AddRow("ping", "desc")
	l.AddRow("pong", "longer desc")
	l.AddHeading("Other")
	l.AddRow("ab", "short")

	lines := strings.Split(strings.TrimSuffix(l.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"General:",
		"ping   desc",
		"pong   longer desc",
		"",
		"Other:",
		"ab     short",
	}, lines)

	for _, line := range []string{lines[1], lines[2], lines[5]} {
		assert.Equal(t, len("ping")+3, strings.IndexAny(line, "dls"), line)
	}
}

func TestTwoColumnListHeadingsDoNotWiden(t *testing.T) {
	var l TwoColumnList
	l.AddHeading("A very long heading that is not paired")
	l.AddRow("x", "y")
	assert.Equal(t, "A very long heading that is not paired:\nx   y\n", l.String())
}

func TestTwoColumnListEmpty(t *testing.T) {
	var l TwoColumnList
	assert.Equal(t, "", l.String())
	assert.Equal(t, 0, l.Len())
}
