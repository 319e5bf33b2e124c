// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - First-run setup command handler for the finmentor CLI.
//
// SECURITY: The key is read without echo and is never printed back; only
// its fingerprint is shown for confirmation.
//
// Handles "finmentor setup": prompts for the Gemini API key and stores it
// encrypted under the config directory.
//
// Subcommands:
//   finmentor setup          Prompt for and store the API key
//   finmentor setup clear    Remove the stored key
package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
)

// HandleSetup runs the setup flow.
func HandleSetup(cfg *config.Config, args Args) error {
	store := NewCredentialStore()

	if strings.EqualFold(args.Subcommand, "clear") {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear credential: %w", err)
		}
		fmt.Println(okStyle.Render("Stored API key removed."))
		return nil
	}

	fmt.Println(headerStyle.Render("FinMentor setup"))
	fmt.Println(labelStyle.Render("Your key is stored encrypted in the config directory."))
	fmt.Println(labelStyle.Render("Get a key at https://aistudio.google.com/apikey"))
	fmt.Println()

	cred, err := store.Resolve()
	if err == nil && cred.Source == credential.SourcePersisted {
		fmt.Printf("%s %s\n",
			labelStyle.Render("A key is already stored:"),
			valueStyle.Render(cred.Fingerprint()))
		if !promptYesNo("Replace it?", false) {
			fmt.Println(mutedStyle.Render("Keeping existing key."))
			return nil
		}
	}

	key := promptSecure("Gemini API key")
	if key == "" {
		return fmt.Errorf("no key entered")
	}

	if err := store.Set(key); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	stored, err := store.Resolve()
	if err != nil {
		return fmt.Errorf("stored key could not be read back: %w", err)
	}

	fmt.Printf("%s %s\n",
		okStyle.Render("Key stored."),
		mutedStyle.Render(stored.Fingerprint()))
	return nil
}

// promptSecure prompts for sensitive input without echoing.
// Uses golang.org/x/term for cross-platform hidden input.
func promptSecure(prompt string) string {
	if prompt != "" {
		fmt.Print(prompt)
		if !strings.HasSuffix(prompt, ": ") && !strings.HasSuffix(prompt, " ") {
			fmt.Print(": ")
		}
	}

	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return ""
	}
	fmt.Println()

	return strings.TrimSpace(string(keyBytes))
}

// promptYesNo prompts for a yes/no answer on stdin.
func promptYesNo(prompt string, defaultYes bool) bool {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	fmt.Printf("%s %s: ", prompt, suffix)
	var input string
	fmt.Scanln(&input)
	input = strings.ToLower(strings.TrimSpace(input))

	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}
