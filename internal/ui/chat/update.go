// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finmentor/finmentor-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Header, persona row, input, status bar.
	chrome := 8
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6
	m.refreshViewport()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := m.input.Value()
			if m.session.Pending() {
				// The session would reject anyway; surface it as a toast.
				m.toasts.Add(components.ToastKindWarning, "Hold on, still thinking about the last one.")
				return m, nil
			}
			m.input.Reset()
			return m, m.sendCmd(text)

		case "tab":
			m.cyclePersona(1)
			return m, nil

		case "shift+tab":
			m.cyclePersona(-1)
			return m, nil

		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}

	case replyMsg:
		// Success and failure both land here; the session already appended
		// the assistant turn (reply or fallback notice).
		m.drainNotifications()
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.Pending() {
			// The user turn is appended by the send goroutine after the
			// enter keypress returns, so the transcript must be rebuilt
			// while the request is in flight or the just-sent message
			// stays invisible until the reply lands.
			m.refreshViewport()
			m.viewport.GotoBottom()
		}
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// cyclePersona steps through the persona list in display order.
func (m *Model) cyclePersona(step int) {
	active := m.session.ActivePersona()
	idx := 0
	for i, p := range m.personas {
		if p.ID == active.ID {
			idx = i
			break
		}
	}
	next := m.personas[(idx+step+len(m.personas))%len(m.personas)]
	m.session.ChangePersona(next.ID)
}
