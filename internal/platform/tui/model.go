// Package tui provides the Bubble Tea front end for Escoba.
// Each player gets a pane with their view of the game and a command line;
// both panes drive the same match.Match.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/escoba/internal/config"
	"github.com/vovakirdan/escoba/internal/escoba"
	"github.com/vovakirdan/escoba/internal/match"
	"github.com/vovakirdan/escoba/internal/storage"
)

// Layout constants
const (
	minWidthForSideBySide = 100 // Below this the panes are stacked
	maxLogLines           = 200 // Message history kept per pane
)

// pane is one player's window: a message log and a command line.
type pane struct {
	input textinput.Model
	log   []string
}

func newPane(name string) pane {
	ti := textinput.New()
	ti.Placeholder = "play 1 take 2 3  |  help"
	ti.Prompt = name + "> "
	ti.CharLimit = 64
	return pane{input: ti}
}

func (p *pane) appendLog(lines ...string) {
	p.log = append(p.log, lines...)
	if len(p.log) > maxLogLines {
		p.log = p.log[len(p.log)-maxLogLines:]
	}
}

// Model is the Bubble Tea model for a two-player game.
type Model struct {
	match *match.Match
	store *storage.Store
	theme Theme
	keys  GameKeyMap
	help  help.Model

	panes [escoba.NumPlayers]pane
	focus int

	history     HistoryModel
	showHistory bool

	width    int
	height   int
	quitting bool
}

// NewModel creates the game model. The match must already be started.
// store may be nil when history is disabled.
func NewModel(m *match.Match, store *storage.Store, theme config.ThemeConfig, width, height int) Model {
	snap := m.Snapshot()

	model := Model{
		match:  m,
		store:  store,
		theme:  NewTheme(theme),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i := range model.panes {
		model.panes[i] = newPane(snap.Players[i].Name)
		model.panes[i].appendLog("Welcome to Escoba de 15! Type 'help' for commands.")
	}
	model.focus = snap.Current
	model.panes[model.focus].input.Focus()
	return model
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		return m.updateHistory(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.panes[m.focus].input, cmd = m.panes[m.focus].input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		m.setFocus(1 - m.focus)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.History):
		m.history = NewHistoryModel(m.store, m.width, m.height)
		m.history.embedded = true
		m.showHistory = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.panes[m.focus].input, cmd = m.panes[m.focus].input.Update(msg)
	return m, cmd
}

// submit sends the focused pane's command line to the match.
func (m Model) submit() (tea.Model, tea.Cmd) {
	player := m.focus
	p := &m.panes[player]
	line := strings.TrimSpace(p.input.Value())
	p.input.SetValue("")
	if line == "" {
		return m, nil
	}

	p.appendLog(p.input.Prompt + line)
	out := m.match.Submit(player, line)

	if out.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	if out.Public {
		for i := range m.panes {
			m.panes[i].appendLog(out.Lines...)
		}
	} else {
		p.appendLog(out.Lines...)
	}

	// Hand the keyboard to whoever moves next.
	if out.Public {
		if snap := m.match.Snapshot(); !snap.GameOver() {
			m.setFocus(snap.Current)
		}
	}
	return m, nil
}

func (m *Model) setFocus(player int) {
	if player == m.focus {
		return
	}
	m.panes[m.focus].input.Blur()
	m.focus = player
	m.panes[m.focus].input.Focus()
}

// historyClosedMsg is sent by an embedded history screen when the user
// goes back.
type historyClosedMsg struct{}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyClosedMsg:
		m.showHistory = false
		return m, textinput.Blink
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	updated, cmd := m.history.Update(msg)
	m.history = updated.(HistoryModel)
	if m.history.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.history.View()
	}

	snap := m.match.Snapshot()

	sideBySide := m.width >= minWidthForSideBySide
	paneWidth := m.width - 4
	if sideBySide {
		paneWidth = m.width/2 - 4
	}
	paneHeight := m.height - 4
	if !sideBySide {
		paneHeight = m.height/2 - 3
	}

	rendered := make([]string, len(m.panes))
	for i := range m.panes {
		rendered[i] = m.renderPane(snap, i, paneWidth, paneHeight)
	}

	var body string
	if sideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], " ", rendered[1])
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, rendered[0], rendered[1])
	}

	return body + "\n" + m.theme.Help.Render(m.help.View(m.keys))
}

func (m Model) renderPane(snap escoba.Snapshot, player, width, height int) string {
	p := m.panes[player]
	board := m.theme.boardLines(snap, player)

	// Board, separator, log, input line.
	logRoom := height - len(board) - 3
	var logLines []string
	for _, line := range tail(p.log, logRoom) {
		logLines = append(logLines, m.theme.styleLogLine(line))
	}

	content := strings.Join(board, "\n") + "\n" +
		m.theme.Dim.Render(strings.Repeat("-", max(width-4, 0))) + "\n" +
		strings.Join(logLines, "\n") + "\n" +
		p.input.View()

	style := m.theme.Panes[player].Box
	if player == m.focus {
		style = m.theme.Panes[player].Focused
	}
	if width > 0 {
		style = style.Width(width)
	}
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(content)
}

// IsQuitting returns true if the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a started match.
func Run(m *match.Match, store *storage.Store, theme config.ThemeConfig, width, height int) error {
	model := NewModel(m, store, theme, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
