// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/content"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

// =============================================================================
// TAX CHECKLIST PANEL
// =============================================================================

// ChecklistModel renders the tax document checklist with toggleable items.
type ChecklistModel struct {
	theme     *styles.Theme
	checklist *content.Checklist
	section   int
	item      int
	width     int
	height    int
}

// NewChecklist creates the checklist panel.
func NewChecklist(theme *styles.Theme) ChecklistModel {
	return ChecklistModel{
		theme:     theme,
		checklist: content.NewChecklist(),
	}
}

// Init implements tea.Model.
func (m ChecklistModel) Init() tea.Cmd { return nil }

// SetSize updates the panel dimensions.
func (m *ChecklistModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model.
func (m ChecklistModel) Update(msg tea.Msg) (ChecklistModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sections := m.checklist.Sections()
	switch key.String() {
	case "up", "k":
		if m.item > 0 {
			m.item--
		} else if m.section > 0 {
			m.section--
			m.item = len(sections[m.section].Items) - 1
		}
	case "down", "j":
		if m.item < len(sections[m.section].Items)-1 {
			m.item++
		} else if m.section < len(sections)-1 {
			m.section++
			m.item = 0
		}
	case "enter", " ":
		m.checklist.Toggle(m.section, m.item)
	}
	return m, nil
}

// View implements tea.Model.
func (m ChecklistModel) View() string {
	progress := fmt.Sprintf("%d of %d documents collected (%d%%)",
		m.checklist.CompletedItems(), m.checklist.TotalItems(), m.checklist.CompletionPercent())

	header := m.theme.Card.BorderForeground(styles.Purple).Render(
		m.theme.CardTitle.Render("Tax Document Checklist") + "\n" +
			m.theme.ProgressDone.Render(progress),
	)

	var cards []string
	for si, section := range m.checklist.Sections() {
		body := m.theme.CardTitle.Render(section.Title) + "\n"
		for ii, item := range section.Items {
			mark := m.theme.ChecklistOff.Render("[ ]")
			if m.checklist.Checked(si, ii) {
				mark = m.theme.ChecklistOn.Render("[x]")
			}
			cursor := "  "
			if si == m.section && ii == m.item {
				cursor = m.theme.InputPrompt.Render("> ")
			}
			body += fmt.Sprintf("%s%s %s\n", cursor, mark, item)
		}
		cards = append(cards, m.theme.Card.Render(body))
	}

	hint := m.theme.ShortcutDesc.Render("↑/↓: move  enter/space: toggle")
	parts := append([]string{header}, cards...)
	parts = append(parts, hint)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
