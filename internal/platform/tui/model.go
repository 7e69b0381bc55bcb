package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recorder is implemented by games that can hand out a replayable journal.
type Recorder interface {
	Recording() core.Recording
}

// Resizer is implemented by games that can follow terminal resizes
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store // Optional, replays are not saved when nil
	logger      *log.Logger    // Optional
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	backToMenu  bool
	replaySaved bool // Whether the replay has been saved for the current game over
	lastReplay  int64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger returns a copy of the model that logs saved replays.
func (m Model) WithLogger(logger *log.Logger) Model {
	m.logger = logger
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is filled on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only outside active play
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.replaySaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		if !m.replaySaved {
			m.saveReplay()
			m.replaySaved = true
		}
	} else {
		m.replaySaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveReplay stores the finished round. Best effort: the game continues
// regardless of storage errors.
func (m *Model) saveReplay() {
	rec, ok := m.game.(Recorder)
	if !ok || m.store == nil {
		return
	}
	id, err := m.store.SaveReplay(m.game.ID(), rec.Recording())
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("could not save replay", "game", m.game.ID(), "error", err)
		}
		return
	}
	m.lastReplay = id
	if m.logger != nil {
		m.logger.Info("replay saved", "game", m.game.ID(), "id", id, "score", m.gameState.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastReplayID returns the ID of the most recently saved replay, or 0.
func (m Model) LastReplayID() int64 {
	return m.lastReplay
}

// Outcome describes how a game session ended.
type Outcome struct {
	BackToMenu bool
	ReplayID   int64
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Outcome, error) {
	model := NewModel(game, store, cfg).WithLogger(logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{}, nil
	}
	return Outcome{BackToMenu: m.BackToMenu(), ReplayID: m.LastReplayID()}, nil
}
