package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/escoba/internal/cards"
	"github.com/vovakirdan/escoba/internal/config"
	"github.com/vovakirdan/escoba/internal/escoba"
)

// Theme contains all visual styles for the game screen.
type Theme struct {
	Panes [escoba.NumPlayers]PaneStyles

	// Card colors by suit
	Suits map[cards.Suit]lipgloss.Style

	Title  lipgloss.Style
	Label  lipgloss.Style
	Dim    lipgloss.Style
	Error  lipgloss.Style
	Escoba lipgloss.Style
	Help   lipgloss.Style
}

// PaneStyles are the styles of one player's pane.
type PaneStyles struct {
	Box     lipgloss.Style // Unfocused frame
	Focused lipgloss.Style // Frame while the pane has keyboard focus
	Turn    lipgloss.Style // "your turn" banner
}

// NewTheme builds the theme from the configured pane colors.
func NewTheme(cfg config.ThemeConfig) Theme {
	return Theme{
		Panes: [escoba.NumPlayers]PaneStyles{
			paneStyles(cfg.Player1),
			paneStyles(cfg.Player2),
		},
		Suits: map[cards.Suit]lipgloss.Style{
			cards.Golds:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true), // Gold
			cards.Cups:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // Red
			cards.Swords: lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),  // Steel blue
			cards.Batons: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true), // Green
		},
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Label:  lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Escoba: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func paneStyles(p config.PaneTheme) PaneStyles {
	bg, fg := lipgloss.Color(p.Background), lipgloss.Color(p.Foreground)
	box := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return PaneStyles{
		Box:     box,
		Focused: box.BorderForeground(fg),
		Turn:    lipgloss.NewStyle().Bold(true).Foreground(bg).Background(fg).Padding(0, 1),
	}
}

// Card renders a card in its suit color, e.g. "[7G]".
func (t Theme) Card(c cards.Card) string {
	style, ok := t.Suits[c.Suit]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render("[" + c.Short() + "]")
}
