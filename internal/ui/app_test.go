// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
)

type stubCompleter struct {
	reply string
}

func (s *stubCompleter) Complete(_ context.Context, _ gemini.Request, _ credential.Credential) (string, error) {
	return s.reply, nil
}

func newTestApp(t *testing.T) App {
	t.Helper()
	app := NewApp(config.Default(), credential.NewStaticStore("test-key"), &stubCompleter{reply: "ok"})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return m.(App)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestApp_SectionLabels(t *testing.T) {
	assert.Equal(t, "Chat", SectionChat.String())
	assert.Equal(t, "Calculators", SectionCalculators.String())
	assert.Equal(t, "Tips", SectionTips.String())
	assert.Equal(t, "Documents", SectionChecklist.String())
}

func TestApp_DefaultSectionIsChat(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, SectionChat, app.section)
	assert.Contains(t, app.View(), "FinMentor")
}

func TestApp_EscEntersSectionBar(t *testing.T) {
	app := newTestApp(t)

	m, _ := app.Update(keyMsg("esc"))
	app = m.(App)
	assert.True(t, app.switching)

	m, _ = app.Update(keyMsg("right"))
	app = m.(App)
	assert.Equal(t, SectionCalculators, app.section)

	m, _ = app.Update(keyMsg("enter"))
	app = m.(App)
	assert.False(t, app.switching)
	assert.Contains(t, app.View(), "SIP Calculator")
}

func TestApp_SectionWrapsAround(t *testing.T) {
	app := newTestApp(t)

	m, _ := app.Update(keyMsg("esc"))
	app = m.(App)
	m, _ = app.Update(keyMsg("left"))
	app = m.(App)
	assert.Equal(t, SectionChecklist, app.section)

	m, _ = app.Update(keyMsg("right"))
	app = m.(App)
	assert.Equal(t, SectionChat, app.section)
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HeaderShowsAllSections(t *testing.T) {
	app := newTestApp(t)
	view := app.View()
	for s := Section(0); s < sectionCount; s++ {
		assert.Contains(t, view, s.String())
	}
}

func TestApp_KeysReachActivePanel(t *testing.T) {
	app := newTestApp(t)

	// Move to the checklist section.
	m, _ := app.Update(keyMsg("esc"))
	app = m.(App)
	m, _ = app.Update(keyMsg("left"))
	app = m.(App)
	m, _ = app.Update(keyMsg("enter"))
	app = m.(App)

	require.True(t, strings.Contains(app.View(), "0 of 18"))

	m, _ = app.Update(keyMsg(" "))
	app = m.(App)
	assert.Contains(t, app.View(), "1 of 18")
}
