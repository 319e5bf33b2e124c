// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gemini.BaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Errorf("unexpected base URL: %s", cfg.Gemini.BaseURL)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected model: %s", cfg.Gemini.Model)
	}
	if cfg.Chat.DefaultPersona != "ca" {
		t.Errorf("unexpected default persona: %s", cfg.Chat.DefaultPersona)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestGeminiConfig_Timeout(t *testing.T) {
	tests := []struct {
		name string
		secs int
		want time.Duration
	}{
		{"configured", 30, 30 * time.Second},
		{"zero falls back", 0, 60 * time.Second},
		{"negative falls back", -5, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GeminiConfig{TimeoutSecs: tt.secs}
			if got := g.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[gemini]
model = "gemini-1.5-pro"

[ui]
show_timestamps = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	cfg.fillDefaults()

	if cfg.Gemini.Model != "gemini-1.5-pro" {
		t.Errorf("model not overridden: %s", cfg.Gemini.Model)
	}
	if cfg.UI.ShowTimestamps {
		t.Error("show_timestamps should be false")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Gemini.BaseURL != Default().Gemini.BaseURL {
		t.Errorf("base URL should keep default: %s", cfg.Gemini.BaseURL)
	}
	if cfg.Chat.DefaultPersona != "ca" {
		t.Errorf("default persona should keep default: %s", cfg.Chat.DefaultPersona)
	}
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("[gemini\nmodel="), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(cfg, path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FINMENTOR_GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("FINMENTOR_DEFAULT_PERSONA", "advisor")
	t.Setenv("FINMENTOR_MARKDOWN_WIDTH", "100")

	cfg := Default()
	if err := cfg.ApplyEnvOverrides(); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("model override not applied: %s", cfg.Gemini.Model)
	}
	if cfg.Chat.DefaultPersona != "advisor" {
		t.Errorf("persona override not applied: %s", cfg.Chat.DefaultPersona)
	}
	if cfg.UI.MarkdownWidth != 100 {
		t.Errorf("width override not applied: %d", cfg.UI.MarkdownWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"valid defaults",
			func(c *Config) {},
			"",
		},
		{
			"relative base URL",
			func(c *Config) { c.Gemini.BaseURL = "generativelanguage.googleapis.com" },
			"gemini.base_url",
		},
		{
			"bad scheme",
			func(c *Config) { c.Gemini.BaseURL = "ftp://example.com" },
			"scheme must be http or https",
		},
		{
			"empty model",
			func(c *Config) { c.Gemini.Model = "  " },
			"gemini.model",
		},
		{
			"timeout out of range",
			func(c *Config) { c.Gemini.TimeoutSecs = 10000 },
			"gemini.timeout_secs",
		},
		{
			"width too narrow",
			func(c *Config) { c.UI.MarkdownWidth = 5 },
			"ui.markdown_width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "gemini.model", Message: "must not be empty"}
	if got := e.Error(); got != "gemini.model: must not be empty" {
		t.Errorf("unexpected message: %s", got)
	}
}

// TestConfig_ConcurrentAccess verifies Global/SetGlobal are race-free.
// Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
