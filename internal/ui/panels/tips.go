// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/content"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

// =============================================================================
// FINANCE TIPS PANEL
// =============================================================================

// TipsModel renders the static finance tips with a daily spotlight.
type TipsModel struct {
	theme    *styles.Theme
	tips     []content.Tip
	selected int
	width    int
	height   int
	now      func() time.Time
}

// NewTips creates the tips panel.
func NewTips(theme *styles.Theme) TipsModel {
	return TipsModel{
		theme: theme,
		tips:  content.Tips(),
		now:   time.Now,
	}
}

// Init implements tea.Model.
func (m TipsModel) Init() tea.Cmd { return nil }

// SetSize updates the panel dimensions.
func (m *TipsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model.
func (m TipsModel) Update(msg tea.Msg) (TipsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.tips)-1 {
				m.selected++
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m TipsModel) View() string {
	daily := content.TipOfTheDay(m.now())

	spotlight := m.theme.Card.BorderForeground(styles.Purple).Render(
		m.theme.CardTitle.Render("Tip of the Day: "+daily.Title) + "\n\n" + daily.Content,
	)

	var rows []string
	for i, tip := range m.tips {
		title := m.theme.CardLabel.Render("[" + tip.Category + "] ")
		if i == m.selected {
			title = m.theme.SidebarItemActive.Render("["+tip.Category+"] ") + " "
		}
		line := title + tip.Title
		if i == m.selected {
			line += "\n  " + tip.Content
		}
		rows = append(rows, line)
	}

	list := m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	hint := m.theme.ShortcutDesc.Render("↑/↓: browse tips")

	return lipgloss.JoinVertical(lipgloss.Left, spotlight, list, hint)
}
