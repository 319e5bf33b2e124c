// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler for the finmentor CLI.
//
// Handles "finmentor status": shows the effective configuration, the
// credential source and fingerprint, and the available personas.
package cli

import (
	"fmt"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/persona"
)

// HandleStatus prints the current system status.
func HandleStatus(cfg *config.Config, args Args) error {
	fmt.Println(headerStyle.Render("FinMentor status"))
	fmt.Println()

	fmt.Println(headerStyle.Render("Model"))
	printRow("Endpoint", cfg.Gemini.BaseURL)
	printRow("Model", cfg.Gemini.Model)
	printRow("Timeout", cfg.Gemini.Timeout().String())
	fmt.Println()

	fmt.Println(headerStyle.Render("API key"))
	store := NewCredentialStore()
	cred, err := store.Resolve()
	switch {
	case err != nil:
		fmt.Printf("  %s %v\n", errorStyle.Render("error:"), err)
	case !cred.Present():
		fmt.Printf("  %s\n", warningStyle.Render("not configured (run 'finmentor setup' or set GEMINI_API_KEY)"))
	default:
		printRow("Source", describeSource(cred.Source))
		printRow("Fingerprint", cred.Fingerprint())
	}
	fmt.Println()

	fmt.Println(headerStyle.Render("Personas"))
	for _, p := range persona.List() {
		marker := "  "
		if string(p.ID) == cfg.Chat.DefaultPersona {
			marker = okStyle.Render("> ")
		}
		fmt.Printf("%s%-8s %s\n", marker, valueStyle.Render(string(p.ID)), labelStyle.Render(p.Description))
	}
	fmt.Println()

	if path, err := config.ConfigPath(); err == nil {
		fmt.Println(mutedStyle.Render("Config: " + path))
	}
	return nil
}

func printRow(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), valueStyle.Render(value))
}

func describeSource(s credential.Source) string {
	switch s {
	case credential.SourcePersisted:
		return "stored (encrypted at rest)"
	case credential.SourceEnv:
		return "environment (GEMINI_API_KEY)"
	default:
		return "none"
	}
}
