// FinMentor TUI - your friendly financial guide in the terminal.
//
// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finmentor/finmentor-tui/internal/cli"
	"github.com/finmentor/finmentor-tui/internal/config"
	"github.com/finmentor/finmentor-tui/internal/credential"
	"github.com/finmentor/finmentor-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Pick up GEMINI_API_KEY from a local .env before anything resolves
	// credentials.
	credential.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(cfg, args))
	case cli.CmdChat:
		exitOnError(cli.HandleChat(cfg, args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(cfg, args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(cfg, args))
	case cli.CmdSetup:
		exitOnError(cli.HandleSetup(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(cfg, args)
	}
}

// runTUI starts the full-screen interface.
func runTUI(cfg *config.Config, args cli.Args) {
	if args.Persona != "" {
		cfg.Chat.DefaultPersona = args.Persona
	}

	store := cli.NewCredentialStore()
	client := cli.NewCompleter(cfg)

	// Reload config on file changes while the TUI runs.
	watcher, err := config.NewWatcher(nil)
	if err == nil {
		if werr := watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	app := ui.NewApp(cfg, store, client)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
