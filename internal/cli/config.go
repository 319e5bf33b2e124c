// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command handler for the finmentor CLI.
//
// Handles "finmentor config":
//   finmentor config                 Show current configuration
//   finmentor config show            Show current configuration
//   finmentor config set KEY VALUE   Set and persist a value
//   finmentor config path            Print the config file path
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finmentor/finmentor-tui/internal/config"
)

// HandleConfig processes the config command.
func HandleConfig(cfg *config.Config, args Args) error {
	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		return configShow(cfg)
	case "set":
		return configSet(cfg, args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %s (try show, set, path)", args.Subcommand)
	}
}

func configShow(cfg *config.Config) error {
	fmt.Println(headerStyle.Render("Configuration"))
	printRow("gemini.base_url", cfg.Gemini.BaseURL)
	printRow("gemini.model", cfg.Gemini.Model)
	printRow("gemini.timeout_secs", strconv.Itoa(cfg.Gemini.TimeoutSecs))
	printRow("chat.default_persona", cfg.Chat.DefaultPersona)
	printRow("ui.show_timestamps", strconv.FormatBool(cfg.UI.ShowTimestamps))
	printRow("ui.markdown_width", strconv.Itoa(cfg.UI.MarkdownWidth))
	return nil
}

func configSet(cfg *config.Config, key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: finmentor config set KEY VALUE")
	}

	switch strings.ToLower(key) {
	case "gemini.base_url":
		cfg.Gemini.BaseURL = value
	case "gemini.model":
		cfg.Gemini.Model = value
	case "gemini.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", key, value)
		}
		cfg.Gemini.TimeoutSecs = n
	case "chat.default_persona":
		cfg.Chat.DefaultPersona = value
	case "ui.show_timestamps":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		cfg.UI.ShowTimestamps = b
	case "ui.markdown_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", key, value)
		}
		cfg.UI.MarkdownWidth = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s %s = %s\n", okStyle.Render("Saved"), key, value)
	return nil
}
