// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels provides the static side panels: financial calculators,
// finance tips, and the tax document checklist.
package panels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/calc"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
	"github.com/finmentor/finmentor-tui/internal/util"
)

// =============================================================================
// CALCULATOR PANEL
// =============================================================================

// calcKind selects which calculator is active.
type calcKind int

const (
	calcSIP calcKind = iota
	calcTax
	calcSavings
	calcKindCount
)

// calcForm is one calculator's input fields and result line.
type calcForm struct {
	title  string
	inputs []textinput.Model
	result string
	isTax  bool
}

// CalculatorsModel is the Bubble Tea model for the calculators panel.
type CalculatorsModel struct {
	theme  *styles.Theme
	active calcKind
	field  int
	forms  []calcForm
	width  int
	height int
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 20
	return ti
}

// NewCalculators creates the calculators panel.
func NewCalculators(theme *styles.Theme) CalculatorsModel {
	forms := []calcForm{
		{
			title: "SIP Calculator",
			inputs: []textinput.Model{
				newInput("Monthly amount (₹)"),
				newInput("Expected return (% p.a.)"),
				newInput("Period (years)"),
			},
		},
		{
			title: "Tax Calculator",
			isTax: true,
			inputs: []textinput.Model{
				newInput("Annual income (₹)"),
				newInput("Deductions (₹)"),
			},
		},
		{
			title: "Savings Goal",
			inputs: []textinput.Model{
				newInput("Target amount (₹)"),
				newInput("Current savings (₹)"),
				newInput("Timeframe (years)"),
			},
		},
	}
	forms[0].inputs[0].Focus()

	return CalculatorsModel{theme: theme, forms: forms}
}

// Init implements tea.Model.
func (m CalculatorsModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the panel dimensions.
func (m *CalculatorsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model.
func (m CalculatorsModel) Update(msg tea.Msg) (CalculatorsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.nextCalculator()
			return m, nil
		case "up", "shift+tab":
			m.focusField(m.field - 1)
			return m, nil
		case "down":
			m.focusField(m.field + 1)
			return m, nil
		case "enter":
			m.compute()
			return m, nil
		}
	}

	form := &m.forms[m.active]
	var cmd tea.Cmd
	form.inputs[m.field], cmd = form.inputs[m.field].Update(msg)
	return m, cmd
}

func (m *CalculatorsModel) nextCalculator() {
	m.forms[m.active].inputs[m.field].Blur()
	m.active = (m.active + 1) % calcKindCount
	m.field = 0
	m.forms[m.active].inputs[0].Focus()
}

func (m *CalculatorsModel) focusField(idx int) {
	form := &m.forms[m.active]
	if idx < 0 || idx >= len(form.inputs) {
		return
	}
	form.inputs[m.field].Blur()
	m.field = idx
	form.inputs[m.field].Focus()
}

// compute runs the active calculator over its parsed inputs.
func (m *CalculatorsModel) compute() {
	form := &m.forms[m.active]

	vals := make([]float64, len(form.inputs))
	for i, in := range form.inputs {
		vals[i] = util.ParseFloatOrZero(in.Value())
	}

	var (
		amount float64
		err    error
	)
	switch m.active {
	case calcSIP:
		amount, err = calc.SIPMaturity(vals[0], vals[1], vals[2])
		if err == nil {
			form.result = "Maturity amount: " + calc.FormatRupees(amount)
		}
	case calcTax:
		amount, err = calc.IncomeTax(vals[0], vals[1])
		if err == nil {
			form.result = "Estimated tax: " + calc.FormatRupees(amount)
		}
	case calcSavings:
		amount, err = calc.SavingsGoal(vals[0], vals[1], vals[2])
		if err == nil {
			form.result = "Save monthly: " + calc.FormatRupees(amount)
		}
	}
	if err != nil {
		form.result = "Please fill in valid positive numbers."
	}
}

// View implements tea.Model.
func (m CalculatorsModel) View() string {
	var sections []string

	// Calculator switcher.
	var tabs []string
	for i, form := range m.forms {
		style := m.theme.SidebarItem
		if calcKind(i) == m.active {
			style = m.theme.SidebarItemActive
		}
		tabs = append(tabs, style.Render(form.title))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	form := m.forms[m.active]
	var body string
	body += m.theme.CardTitle.Render(form.title) + "\n\n"
	for i, in := range form.inputs {
		cursor := "  "
		if i == m.field {
			cursor = m.theme.InputPrompt.Render("> ")
		}
		body += fmt.Sprintf("%s%s\n", cursor, in.View())
	}
	if form.result != "" {
		style := m.theme.ResultValue
		if form.isTax {
			style = m.theme.ResultTax
		}
		body += "\n" + style.Render(form.result) + "\n"
	}
	body += "\n" + m.theme.ShortcutDesc.Render("tab: switch calculator  ↑/↓: fields  enter: calculate")

	sections = append(sections, m.theme.Card.Render(body))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
