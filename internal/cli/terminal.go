// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection helpers shared by the command handlers.
package cli

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTTY returns true if stdout is a terminal.
// Used to decide between rendered markdown and plain text output.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
