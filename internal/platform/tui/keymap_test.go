package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"x", runeKey('x'), core.ActionRotate, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.want, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame))
	assert.True(t, frame.Has(core.ActionLeft))
	assert.True(t, frame.Has(core.ActionRotate))

	assert.True(t, km.MapKeyToFrame(runeKey('q'), &frame))
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey('k')))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionReplays, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey('q')))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey('z')))
}
