package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/escoba/internal/storage"
)

// History layout constants
const (
	maxHistoryRows = 100 // Max rows to load per view
)

// historyView selects what the history table shows.
type historyView int

const (
	viewRecent historyView = iota
	viewLeaderboard
	numHistoryViews
)

func (v historyView) title() string {
	if v == viewLeaderboard {
		return "LEADERBOARD"
	}
	return "RECENT MATCHES"
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	store *storage.Store
	view  historyView
	table table.Model
	rows  []table.Row
	err   error
	help  help.Model
	keys  HistoryKeyMap

	width  int
	height int

	embedded  bool // Inside the game screen: back returns instead of quitting
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a new history model. store may be nil.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// columns returns the table columns for the current view.
func (m HistoryModel) columns() []table.Column {
	if m.view == viewLeaderboard {
		return []table.Column{
			{Title: "Player", Width: 16},
			{Title: "Games", Width: 6},
			{Title: "W-D-L", Width: 10},
			{Title: "Best", Width: 5},
			{Title: "Avg", Width: 5},
			{Title: "Escobas", Width: 8},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Player 1", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Player 2", Width: 14},
		{Title: "Winner", Width: 14},
		{Title: "Seed", Width: 20},
	}
}

// load queries the store for the current view and rebuilds the table.
func (m *HistoryModel) load() {
	m.rows, m.err = nil, nil
	if m.store != nil {
		if m.view == viewLeaderboard {
			m.rows, m.err = leaderboardRows(m.store)
		} else {
			m.rows, m.err = recentRows(m.store)
		}
	}
	m.table = m.createTable()
}

func recentRows(store *storage.Store) ([]table.Row, error) {
	entries, err := store.RecentMatches(maxHistoryRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		winner := e.Winner
		if e.IsDraw() {
			winner = "draw"
		}
		rows[i] = table.Row{
			e.CreatedAt.Format("Jan 02 15:04"),
			e.Player1,
			fmt.Sprintf("%d - %d", e.Score1, e.Score2),
			e.Player2,
			winner,
			fmt.Sprintf("%d", e.Seed),
		}
	}
	return rows, nil
}

func leaderboardRows(store *storage.Store) ([]table.Row, error) {
	stats, err := store.Leaderboard(maxHistoryRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		rows[i] = table.Row{
			s.Name,
			fmt.Sprintf("%d", s.Games),
			fmt.Sprintf("%d-%d-%d", s.Wins, s.Draws, s.Losses),
			fmt.Sprintf("%d", s.BestScore),
			fmt.Sprintf("%.1f", s.AvgScore),
			fmt.Sprintf("%d", s.Escobas),
		}
	}
	return rows, nil
}

// createTable creates a new table with the current columns and rows.
func (m HistoryModel) createTable() table.Model {
	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(height),
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

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, func() tea.Msg { return historyClosedMsg{} }
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.view = (m.view + 1) % numHistoryViews
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.view = (m.view + numHistoryViews - 1) % numHistoryViews
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.view.title(), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Match history is disabled.")
	case m.err != nil:
		return emptyStyle.Render("Could not load history:\n" + m.err.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user closed the screen with back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen on its own.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
