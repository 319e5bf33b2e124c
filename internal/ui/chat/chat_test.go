// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/persona"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

type scriptedClient struct {
	reply string
	err   error
	calls int
}

func (c *scriptedClient) Complete(ctx context.Context, req gemini.Request, cred credential.Credential) (string, error) {
	c.calls++
	return c.reply, c.err
}

func newTestModel(client gemini.Completer) Model {
	m := New(styles.NewTheme(), credential.NewStaticStore("key"), client, "ca", true, 80)
	m.SetSize(100, 30)
	return m
}

func TestNew_StartsWithWelcome(t *testing.T) {
	m := newTestModel(&scriptedClient{reply: "hi"})

	msgs := m.Session().Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "FinMentor")
	assert.Equal(t, persona.CA, m.Session().ActivePersona().ID)
}

func TestUpdate_EnterSendsMessage(t *testing.T) {
	client := &scriptedClient{reply: "Use ELSS and PPF."}
	m := newTestModel(client)

	for _, r := range "How do I save tax?" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Run the send command synchronously and feed the result back.
	msg := cmd()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)
	m, _ = m.Update(reply)

	msgs := m.Session().Messages()
	require.Len(t, msgs, 3) // welcome + user + assistant
	assert.Equal(t, "How do I save tax?", msgs[1].Content)
	assert.Equal(t, "Use ELSS and PPF.", msgs[2].Content)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, m.input.Value(), "input clears after send")
}

// blockingClient stalls Complete until released, so tests can observe the
// view mid-flight.
type blockingClient struct {
	release chan struct{}
	reply   string
}

func (c *blockingClient) Complete(ctx context.Context, req gemini.Request, cred credential.Credential) (string, error) {
	<-c.release
	return c.reply, nil
}

func TestUpdate_UserMessageVisibleWhilePending(t *testing.T) {
	client := &blockingClient{release: make(chan struct{}), reply: "ok"}
	m := newTestModel(client)

	for _, r := range "What is an ELSS fund?" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	require.Eventually(t, m.Session().Pending, time.Second, time.Millisecond,
		"send should be in flight")

	// A spinner tick arrives while the request is outstanding; the
	// transcript must already show the user's turn.
	m, _ = m.Update(spinner.TickMsg{Time: time.Now()})
	assert.Contains(t, m.View(), "What is an ELSS fund?",
		"sent message renders before the reply lands")

	close(client.release)
	m, _ = m.Update(<-done)

	msgs := m.Session().Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, m.View(), "ok")
}

func TestUpdate_FailureShowsToast(t *testing.T) {
	client := &scriptedClient{err: gemini.ErrAuthFailed}
	m := newTestModel(client)

	for _, r := range "hello" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	m, _ = m.Update(msg)

	assert.True(t, m.toasts.HasToasts(), "auth failure should surface a toast")
	view := m.View()
	assert.Contains(t, view, "Check your API key")
}

func TestUpdate_TabCyclesPersona(t *testing.T) {
	m := newTestModel(&scriptedClient{reply: "ok"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, persona.Advisor, m.Session().ActivePersona().ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, persona.Auditor, m.Session().ActivePersona().ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, persona.CA, m.Session().ActivePersona().ID, "cycles back to the first persona")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, persona.Auditor, m.Session().ActivePersona().ID, "shift+tab cycles backwards")
}

func TestView_RendersChrome(t *testing.T) {
	m := newTestModel(&scriptedClient{reply: "ok"})

	view := m.View()
	for _, want := range []string{"CA Expert", "Advisor", "Auditor", "Tax & Compliance"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
	assert.Contains(t, view, "key: sha256:", "status bar shows the key fingerprint")
	assert.NotContains(t, view, "key: key", "raw key value must never render")
}
