package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTransitions(t *testing.T) {
	s := NewState(4)
	assert.Equal(t, 0, s.Page())

	assert.True(t, s.Apply(ControlNext))
	assert.Equal(t, 1, s.Page())
	assert.True(t, s.Apply(ControlLast))
	assert.Equal(t, 3, s.Page())
	assert.True(t, s.Apply(ControlPrevious))
	assert.Equal(t, 2, s.Page())
	assert.True(t, s.Apply(ControlFirst))
	assert.Equal(t, 0, s.Page())
}

func TestStateClampsAtBoundaries(t *testing.T) {
	s := NewState(3)
	for i := 0; i < 5; i++ {
		s.Apply(ControlNext)
	}
	assert.Equal(t, 2, s.Page())

	for i := 0; i < 5; i++ {
		s.Apply(ControlPrevious)
	}
	assert.Equal(t, 0, s.Page())
}

func TestStateIgnoresUnknownControls(t *testing.T) {
	s := NewState(3)
	s.Apply(ControlNext)
	for _, id := range []string{"", "next", ">>>", "«", "NEXT"} {
		assert.False(t, IsControl(id), id)
		assert.False(t, s.Apply(id), id)
	}
	assert.True(t, IsControl(ControlLast))
	assert.Equal(t, 1, s.Page())
}

func TestStateMinimumOnePage(t *testing.T) {
	s := NewState(0)
	assert.Equal(t, 1, s.NumPages())
	assert.True(t, s.Apply(ControlLast))
	assert.Equal(t, 0, s.Page())
	only := Page{Index: s.Page(), Total: s.NumPages()}
	assert.True(t, only.AtFirst())
	assert.True(t, only.AtLast())
}

func TestPageControls(t *testing.T) {
	first := Page{Index: 0, Total: 3}.Controls()
	assert.True(t, first[0].Disabled)
	assert.True(t, first[1].Disabled)
	assert.False(t, first[2].Disabled)
	assert.False(t, first[3].Disabled)

	last := Page{Index: 2, Total: 3}.Controls()
	assert.False(t, last[0].Disabled)
	assert.True(t, last[3].Disabled)

	assert.Equal(t, "```\nbody\nPage 2/3\n```", Page{Index: 1, Total: 3, Body: "body"}.Text())
}
