// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the finmentor CLI.
//
// USABILITY: Markdown rendering for readable answers in the terminal.
//
// Handles "finmentor ask", which sends one question through the active
// persona and prints the answer to stdout.
//
// Examples:
//   finmentor ask "How much tax do I pay on 8 lakh?"
//   finmentor ask --persona advisor "SIP or lump sum?"
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/prompt"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse displays a response with markdown rendering when appropriate.
// Only renders markdown when stdout is a TTY to avoid corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}

// =============================================================================
// HANDLER
// =============================================================================

// HandleAsk processes a single question and prints the answer.
func HandleAsk(cfg *config.Config, args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return fmt.Errorf("no question provided (usage: finmentor ask \"question\")")
	}

	p := resolvePersona(cfg, args)

	store := NewCredentialStore()
	cred, err := store.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve credential: %w", err)
	}
	if !cred.Present() {
		fmt.Fprintln(os.Stderr, warningStyle.Render(
			"No API key configured. Run 'finmentor setup' or set "+credentialEnvHint+"."))
		return errors.New("missing API key")
	}

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, mutedStyle.Render(
			fmt.Sprintf("[%s · %s]", p.DisplayName, cfg.Gemini.Model)))
	}

	client := NewCompleter(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.Timeout())
	defer cancel()

	start := time.Now()
	reply, err := client.Complete(ctx, prompt.Build(p, question), cred)
	if err != nil {
		if gemini.IsAuthError(err) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(
				"The API rejected your key. Check your API key and try again."))
		}
		return err
	}

	if args.Verbose {
		fmt.Fprintln(os.Stderr, mutedStyle.Render(
			fmt.Sprintf("[answered in %v]", time.Since(start).Round(time.Millisecond))))
	}

	displayResponse(reply)
	return nil
}

const credentialEnvHint = "GEMINI_API_KEY"
