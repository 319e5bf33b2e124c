// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the finmentor CLI.
//
// USABILITY: Readline-style line editing and persistent input history.
//
// Handles "finmentor chat": a plain REPL over the same conversation engine
// the TUI uses, for terminals where a full-screen interface is unwanted.
//
// Slash commands:
//   /persona NAME   Switch persona (ca, advisor, auditor)
//   /personas       List available personas
//   /clear          Clear the screen
//   /help           Show chat commands
//   /exit, /quit    Leave the chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	chatcore "github.com/finmentor/finmentor-tui/internal/chat"
	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/persona"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI wraps liner with history persistence under the config directory.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// HANDLER
// =============================================================================

// HandleChat runs the interactive chat REPL.
func HandleChat(cfg *config.Config, args Args) error {
	store := NewCredentialStore()
	client := NewCompleter(cfg)

	session := chatcore.NewSession(store, client,
		chatcore.WithPersona(resolvePersona(cfg, args).ID),
		chatcore.WithNotify(func(n chatcore.Notification) {
			fmt.Fprintln(os.Stderr, warningStyle.Render(n.Text))
		}),
	)

	input := NewChatCLI()
	defer input.Close()

	if !args.Quiet {
		fmt.Println(headerStyle.Render("FinMentor") + mutedStyle.Render(" · "+session.ActivePersona().DisplayName))
		fmt.Println(mutedStyle.Render(chatcore.WelcomeMessage))
		fmt.Println(mutedStyle.Render("Type /help for commands, /exit to leave."))
		fmt.Println()
	}

	for {
		line, err := input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C or EOF - exit gracefully
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := handleSlashCommand(session, line); done {
				return nil
			}
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.Timeout())
		err = session.Send(ctx, line)
		cancel()
		if err != nil {
			// The session already recorded a fallback turn and emitted a
			// notification; nothing more to print here.
			continue
		}

		msgs := session.Messages()
		if len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			fmt.Print(renderReply(last.Content))
		}
	}
}

// handleSlashCommand processes a /command. Returns true when the REPL
// should exit.
func handleSlashCommand(session *chatcore.Session, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/exit", "/quit", "/q":
		return true

	case "/persona":
		if len(fields) < 2 {
			fmt.Println(warningStyle.Render("Usage: /persona <ca|advisor|auditor>"))
			return false
		}
		if _, err := persona.Get(persona.ID(fields[1])); err != nil {
			fmt.Println(warningStyle.Render("Unknown persona: " + fields[1]))
			return false
		}
		session.ChangePersona(persona.ID(fields[1]))
		fmt.Println(okStyle.Render("Switched to " + session.ActivePersona().DisplayName))

	case "/personas":
		for _, p := range persona.List() {
			marker := "  "
			if p.ID == session.ActivePersona().ID {
				marker = okStyle.Render("> ")
			}
			fmt.Printf("%s%s - %s\n", marker, valueStyle.Render(string(p.ID)), labelStyle.Render(p.Description))
		}

	case "/clear":
		fmt.Print("\033[2J\033[H")

	case "/help":
		fmt.Println(`Chat commands:
  /persona NAME   Switch persona (ca, advisor, auditor)
  /personas       List available personas
  /clear          Clear the screen
  /exit, /quit    Leave the chat`)

	default:
		fmt.Println(warningStyle.Render("Unknown command: " + cmd + " (try /help)"))
	}

	return false
}

// renderReply renders an assistant reply for the terminal.
func renderReply(content string) string {
	if IsStdoutTTY() {
		return renderMarkdown(content)
	}
	return content + "\n"
}
