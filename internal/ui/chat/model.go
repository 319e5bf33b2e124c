// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/finmentor/finmentor-tui/internal/chat"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/persona"
	"github.com/finmentor/finmentor-tui/internal/ui/components"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	session  *chatcore.Session
	personas []persona.Persona
	keyState string

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	toasts  *components.ToastManager
	notifCh chan chatcore.Notification

	showTimestamps bool
	markdownWidth  int
}

// replyMsg reports that a send finished, success or failure.
type replyMsg struct{ err error }

// New creates the chat view over an injected credential store and completion
// client.
func New(theme *styles.Theme, store credential.Store, client gemini.Completer, defaultPersona string, showTimestamps bool, markdownWidth int) Model {
	notifCh := make(chan chatcore.Notification, 8)

	session := chatcore.NewSession(store, client,
		chatcore.WithPersona(persona.ID(defaultPersona)),
		chatcore.WithWelcome(),
		chatcore.WithNotify(func(n chatcore.Notification) {
			select {
			case notifCh <- n:
			default:
			}
		}),
	)

	ti := textinput.New()
	ti.Placeholder = "Ask me anything about finance, taxes, investments..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	keyState := "no key"
	if cred, err := store.Resolve(); err == nil && cred.Present() {
		keyState = "key: " + cred.Fingerprint()
	}

	return Model{
		theme:          theme,
		session:        session,
		personas:       persona.List(),
		keyState:       keyState,
		viewport:       viewport.New(80, 20),
		input:          ti,
		spinner:        sp,
		toasts:         components.NewToastManager(),
		notifCh:        notifCh,
		showTimestamps: showTimestamps,
		markdownWidth:  markdownWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, components.ToastTickCmd())
}

// Session exposes the underlying conversation session.
func (m Model) Session() *chatcore.Session { return m.session }

// sendCmd dispatches the typed message on a background goroutine. The
// session enforces single-flight and append ordering internally.
func (m Model) sendCmd(text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return replyMsg{err: session.Send(context.Background(), text)}
	}
}

// drainNotifications converts queued session notifications into toasts.
func (m *Model) drainNotifications() {
	for {
		select {
		case n := <-m.notifCh:
			kind := components.ToastKindError
			if n.Kind == chatcore.NoticeGenericFailure {
				kind = components.ToastKindWarning
			}
			m.toasts.Add(kind, n.Text)
		default:
			return
		}
	}
}
