// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring and output styles for the command handlers.
package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/persona"
	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	okStyle = lipgloss.NewStyle().
		Foreground(styles.Emerald)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// =============================================================================
// WIRING
// =============================================================================

// NewCredentialStore builds the file-backed credential store under the
// config directory. Falls back to an in-memory store when the home
// directory cannot be resolved, so the CLI still works in degraded mode.
func NewCredentialStore() credential.Store {
	dir, err := config.ConfigDir()
	if err != nil {
		return credential.NewStaticStore(os.Getenv(credential.EnvVar))
	}
	return credential.NewFileStore(dir)
}

// NewCompleter builds the Gemini client from the loaded config.
func NewCompleter(cfg *config.Config) *gemini.Client {
	return gemini.NewClient().
		WithBaseURL(cfg.Gemini.BaseURL).
		WithModel(cfg.Gemini.Model).
		WithTimeout(cfg.Gemini.Timeout())
}

// resolvePersona picks the persona for this run: the --persona flag wins,
// then the configured default, with registry fallback for unknown ids.
func resolvePersona(cfg *config.Config, args Args) persona.Persona {
	id := args.Persona
	if id == "" {
		id = cfg.Chat.DefaultPersona
	}
	return persona.GetOrDefault(persona.ID(id))
}

