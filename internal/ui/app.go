// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the top-level application shell: a section switcher
// over the chat view and the static panels.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	chatview "github.com/finmentor/finmentor-tui/internal/ui/chat"
	"github.com/finmentor/finmentor-tui/internal/ui/panels"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

// =============================================================================
// SECTIONS
// =============================================================================

// Section identifies one area of the app.
type Section int

const (
	SectionChat Section = iota
	SectionCalculators
	SectionTips
	SectionChecklist
	sectionCount
)

// String returns the sidebar label.
func (s Section) String() string {
	switch s {
	case SectionChat:
		return "Chat"
	case SectionCalculators:
		return "Calculators"
	case SectionTips:
		return "Tips"
	case SectionChecklist:
		return "Documents"
	default:
		return "?"
	}
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	theme   *styles.Theme
	section Section

	chat        chatview.Model
	calculators panels.CalculatorsModel
	tips        panels.TipsModel
	checklist   panels.ChecklistModel

	width  int
	height int

	// switching is set while the section bar has focus (after esc).
	switching bool
}

// NewApp assembles the shell from the loaded config and injected
// dependencies.
func NewApp(cfg *config.Config, store credential.Store, client gemini.Completer) App {
	theme := styles.NewTheme()

	return App{
		theme:       theme,
		chat:        chatview.New(theme, store, client, cfg.Chat.DefaultPersona, cfg.UI.ShowTimestamps, cfg.UI.MarkdownWidth),
		calculators: panels.NewCalculators(theme),
		tips:        panels.NewTips(theme),
		checklist:   panels.NewChecklist(theme),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.chat.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		inner := msg.Height - 3
		a.chat.SetSize(msg.Width, inner)
		a.calculators.SetSize(msg.Width, inner)
		a.tips.SetSize(msg.Width, inner)
		a.checklist.SetSize(msg.Width, inner)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "esc":
			a.switching = !a.switching
			return a, nil
		}

		if a.switching {
			switch msg.String() {
			case "left", "h":
				a.section = (a.section + sectionCount - 1) % sectionCount
			case "right", "l", "tab":
				a.section = (a.section + 1) % sectionCount
			case "enter":
				a.switching = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
	}

	return a.updateSection(msg)
}

// updateSection routes messages to whichever section is active. Non-key
// messages (ticks, replies) always reach the chat model so in-flight sends
// finish even while another panel is showing.
func (a App) updateSection(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	_, isKey := msg.(tea.KeyMsg)

	if !isKey || a.section == SectionChat {
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !isKey || a.section != SectionChat {
		var cmd tea.Cmd
		switch a.section {
		case SectionCalculators:
			a.calculators, cmd = a.calculators.Update(msg)
		case SectionTips:
			a.tips, cmd = a.tips.Update(msg)
		case SectionChecklist:
			a.checklist, cmd = a.checklist.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a App) View() string {
	header := a.renderHeader()

	var body string
	switch a.section {
	case SectionChat:
		body = a.chat.View()
	case SectionCalculators:
		body = a.calculators.View()
	case SectionTips:
		body = a.tips.View()
	case SectionChecklist:
		body = a.checklist.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderHeader renders the brand line and section tabs.
func (a App) renderHeader() string {
	brand := a.theme.HeaderTitle.Render("FinMentor")
	subtitle := a.theme.HeaderSubtitle.Render(" your friendly financial guide")

	var tabs []string
	for s := Section(0); s < sectionCount; s++ {
		style := a.theme.SidebarItem
		if s == a.section {
			style = a.theme.SidebarItemActive
		}
		label := s.String()
		if a.switching && s == a.section {
			label = "[" + label + "]"
		}
		tabs = append(tabs, style.Render(label))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		brand+subtitle,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}
