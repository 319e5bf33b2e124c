// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/ui/styles"
	"github.com/finmentor/finmentor-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: persona and key state on the left, key
// hints on the right.
type StatusBar struct {
	Persona   string
	KeyState  string // e.g. "key: sha256:ab12cd34" or "no key"
	Pending   bool
	Shortcuts []Shortcut
	Width     int
}

// Render renders the bar at the configured width.
func (s StatusBar) Render(theme *styles.Theme) string {
	left := s.Persona
	if s.KeyState != "" {
		left += "  " + s.KeyState
	}
	if s.Pending {
		left += "  thinking..."
	}

	var hints []string
	for _, sc := range s.Shortcuts {
		hints = append(hints, theme.ShortcutKey.Render(sc.Key)+" "+theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		left = util.TruncateWidth(left, s.Width-lipgloss.Width(right)-3)
		gap = 1
	}

	return theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}
