// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/model"
	"github.com/finmentor/finmentor-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderPersonaRow())
	sections = append(sections, m.viewport.View())

	if m.session.Pending() {
		sections = append(sections, m.spinner.View()+m.theme.ThinkingText.Render(" FinMentor is thinking..."))
	}

	if stack := components.RenderToastStack(m.theme, m.toasts.Tick(), m.width); stack != "" {
		sections = append(sections, stack)
	}

	sections = append(sections, m.theme.InputContainer.Width(m.width-2).Render(
		m.theme.InputPrompt.Render("> ")+m.input.View(),
	))
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPersonaRow renders the persona switcher chips.
func (m Model) renderPersonaRow() string {
	active := m.session.ActivePersona()

	chips := []string{m.theme.PersonaLabel.Render("Mode:")}
	for _, p := range m.personas {
		style := m.theme.PersonaChip
		if p.ID == active.ID {
			style = m.theme.PersonaActive
		}
		chips = append(chips, style.Render(p.DisplayName+" · "+p.Description))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, chips...)
}

// renderStatusBar renders the bottom bar.
func (m Model) renderStatusBar() string {
	bar := components.StatusBar{
		Persona:  m.session.ActivePersona().DisplayName,
		KeyState: m.keyState,
		Pending:  m.session.Pending(),
		Width:    m.width,
		Shortcuts: []components.Shortcut{
			{Key: "tab", Desc: "persona"},
			{Key: "pgup/pgdn", Desc: "scroll"},
			{Key: "esc", Desc: "sections"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
	return bar.Render(m.theme)
}

// refreshViewport re-renders the message log into the viewport.
func (m *Model) refreshViewport() {
	msgs := m.session.Messages()

	width := m.markdownWidth
	if m.width > 0 && m.width-10 < width {
		width = m.width - 10
	}
	if width < 20 {
		width = 20
	}

	var blocks []string
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
}

// renderMessage renders one message bubble.
func (m *Model) renderMessage(msg *model.Message, width int) string {
	var header string
	if m.showTimestamps {
		header = m.theme.Timestamp.Render(msg.Role.DisplayName() + " · " + msg.CreatedAt.Format("15:04"))
	} else {
		header = m.theme.Timestamp.Render(msg.Role.DisplayName())
	}

	if msg.Role == model.RoleUser {
		bubble := m.theme.UserBubble.MaxWidth(width).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Right, header, bubble)
	}

	rendered := components.RenderMarkdown(msg.Content, width)
	bubble := m.theme.AssistantBubble.MaxWidth(width + 8).Render(strings.TrimSpace(rendered))
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}
