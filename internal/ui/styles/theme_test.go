// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Every style group must render without panicking.
	for name, render := range map[string]func() string{
		"header":          func() string { return theme.Header.Render("FinMentor") },
		"user bubble":     func() string { return theme.UserBubble.Render("hello") },
		"assistant":       func() string { return theme.AssistantBubble.Render("hi") },
		"persona active":  func() string { return theme.PersonaActive.Render("CA Expert") },
		"toast error":     func() string { return theme.ToastError.Render("oops") },
		"card":            func() string { return theme.Card.Render("content") },
		"status bar":      func() string { return theme.StatusBar.Render("ready") },
	} {
		if render() == "" {
			t.Errorf("%s style rendered empty output", name)
		}
	}
}

func TestTheme_SetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize not applied: %dx%d", theme.Width, theme.Height)
	}
}
