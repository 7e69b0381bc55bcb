package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show variant list sidebar
	sidebarWidth       = 22  // Width of variant list sidebar
	maxReplays         = 100 // Max replays to load
)

// allGames is the pseudo filter that lists every variant.
const allGames = ""

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Select, k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel is the Bubble Tea model for the replay browser.
type ReplayBrowserModel struct {
	filters     []registry.GameInfo // allGames first, then every variant
	filter      int
	store       *storage.Store
	replays     []storage.ReplayEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ReplayKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	selectedID  int64
	showSidebar bool
}

// NewReplayBrowserModel creates a new replay browser model.
func NewReplayBrowserModel(store *storage.Store, width, height int) ReplayBrowserModel {
	filters := []registry.GameInfo{{ID: allGames, Title: "All variants"}}
	filters = append(filters, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := ReplayBrowserModel{
		filters:     filters,
		store:       store,
		keys:        DefaultReplayKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 15},
		{Title: "Score", Width: 7},
		{Title: "Lines", Width: 6},
		{Title: "Moves", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays loads replays for the current filter.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays, m.loadErr = nil, nil
	if m.store != nil {
		gameID := m.filters[m.filter].ID
		if gameID == allGames {
			m.replays, m.loadErr = m.store.RecentReplays(maxReplays)
		} else {
			m.replays, m.loadErr = m.store.ReplaysForGame(gameID, maxReplays)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current replays.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.GameID,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Lines),
			strconv.Itoa(len(r.Commands)),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// currentID returns the ID of the highlighted replay, or 0.
func (m ReplayBrowserModel) currentID() int64 {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return 0
	}
	return m.replays[i].ID
}

// Init initializes the replay browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if id := m.currentID(); id != 0 {
				m.selectedID = id
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if id := m.currentID(); id != 0 && m.store != nil {
				if err := m.store.DeleteReplay(id); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadReplays()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.loadReplays()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack || m.selectedID != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("REPLAYS - %s", m.filters[m.filter].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a sidebar of variants.
func (m ReplayBrowserModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Variants\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.filters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.filter {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := g.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the browser with the filter above the table.
func (m ReplayBrowserModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.filters[m.filter].Title), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ReplayBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load replays:\n" + m.loadErr.Error())
	case m.store == nil:
		return emptyStyle.Render("Replay database unavailable.")
	case len(m.replays) == 0:
		return emptyStyle.Render("No replays recorded yet.\nFinish a round to record one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// SelectedID returns the replay chosen with Enter, or 0.
func (m ReplayBrowserModel) SelectedID() int64 {
	return m.selectedID
}

// BrowserResult holds the result of running the replay browser.
type BrowserResult struct {
	ReplayID int64
	Back     bool
}

// RunReplayBrowser runs the replay browser screen.
func RunReplayBrowser(store *storage.Store, width, height int) (BrowserResult, error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return BrowserResult{}, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return BrowserResult{}, nil
	}
	return BrowserResult{ReplayID: m.SelectedID(), Back: m.IsGoingBack()}, nil
}
