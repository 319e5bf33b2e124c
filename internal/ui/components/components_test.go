// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/finmentor/finmentor-tui/internal/ui/styles"
)

func TestToastManager_AddAndTick(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("new manager should be empty")
	}

	m.Add(ToastKindError, "bad key")
	m.Add(ToastKindStatus, "sent")

	toasts := m.Tick()
	if len(toasts) != 2 {
		t.Fatalf("got %d toasts, want 2", len(toasts))
	}
	if toasts[0].Message != "sent" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Message)
	}
	if toasts[1].Kind != ToastKindError {
		t.Errorf("toast kind = %v, want error", toasts[1].Kind)
	}
	if toasts[1].Duration != ErrorToastDuration {
		t.Errorf("error toast duration = %v", toasts[1].Duration)
	}
}

func TestToastManager_Expiry(t *testing.T) {
	m := NewToastManager()
	m.Add(ToastKindStatus, "ephemeral")

	// Force expiry.
	m.mu.Lock()
	m.toasts[0].CreatedAt = time.Now().Add(-time.Minute)
	m.mu.Unlock()

	if got := m.Tick(); len(got) != 0 {
		t.Errorf("expired toast not dropped: %v", got)
	}
	if m.HasToasts() {
		t.Error("manager should be empty after expiry")
	}
}

func TestToastManager_MaxToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.Add(ToastKindStatus, "toast")
	}
	if got := len(m.Tick()); got != 3 {
		t.Errorf("stack size = %d, want 3", got)
	}
}

func TestRenderToastStack(t *testing.T) {
	theme := styles.NewTheme()

	if out := RenderToastStack(theme, nil, 80); out != "" {
		t.Error("empty stack should render nothing")
	}

	out := RenderToastStack(theme, []Toast{
		{Message: "first", Kind: ToastKindError},
		{Message: "second", Kind: ToastKindSuccess},
	}, 80)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("stack missing messages: %q", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Heading\n\nSome **bold** text.", 60)
	if !strings.Contains(out, "Heading") {
		t.Errorf("markdown output missing heading: %q", out)
	}

	// Degenerate widths fall back to the minimum, not a panic.
	if RenderMarkdown("text", 0) == "" {
		t.Error("narrow width should still render")
	}
}

func TestCodeBlock_Render(t *testing.T) {
	cb := NewCodeBlock("python", "print('hello')")
	out := cb.Render()
	if !strings.Contains(out, "python") {
		t.Error("rendered block missing language badge")
	}
	if !strings.Contains(out, "hello") {
		t.Error("rendered block missing code")
	}
}

func TestParseCodeBlocks(t *testing.T) {
	text := "Before\n```go\nfmt.Println(1)\n```\nAfter"
	out := ParseCodeBlocks(text, 80)
	if !strings.Contains(out, "Before") || !strings.Contains(out, "After") {
		t.Error("surrounding text lost")
	}
	if !strings.Contains(out, "fmt.Println") {
		t.Error("code content lost")
	}

	// Unclosed fence still renders.
	out = ParseCodeBlocks("```sh\necho hi", 80)
	if !strings.Contains(out, "echo hi") {
		t.Error("unclosed fence dropped its code")
	}
}

func TestStatusBar_Render(t *testing.T) {
	theme := styles.NewTheme()
	bar := StatusBar{
		Persona:  "CA Expert",
		KeyState: "key: sha256:ab12cd34",
		Width:    100,
		Shortcuts: []Shortcut{
			{Key: "tab", Desc: "persona"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}

	out := bar.Render(theme)
	for _, want := range []string{"CA Expert", "sha256:ab12cd34", "tab", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q", want)
		}
	}

	bar.Pending = true
	if !strings.Contains(bar.Render(theme), "thinking") {
		t.Error("pending state not shown")
	}
}
