package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

var difficultyOptions = []difficultyOption{
	{"", "Default (from config)"},
	{config.DifficultyEasy, "Easy    - 1000ms, speeds up"},
	{config.DifficultyNormal, "Normal  - 500ms, speeds up"},
	{config.DifficultyHard, "Hard    - 300ms, speeds up"},
	{config.DifficultyFixed, "Fixed   - constant speed"},
}

// DifficultyModel lets users choose a difficulty preset before a round.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a new difficulty selection model.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficultyOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-28s", cursor, opt.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the difficulty selection. A nil preset means
// the user went back or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (*config.DifficultyPreset, error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
