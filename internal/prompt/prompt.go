// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt composes persona-conditioned completion requests.
package prompt

import (
	"strings"

	"github.com/finmentor/finmentor-tui/internal/gemini"
	"github.com/finmentor/finmentor-tui/internal/persona"
)

// questionLabel prefixes the user's message in the composed prompt.
const questionLabel = "User question: "

// Build composes the persona's system prompt and the user message into a
// completion request. Pure and deterministic: identical inputs always yield
// an identical request, and neither input is mutated.
func Build(p persona.Persona, userMessage string) gemini.Request {
	var b strings.Builder
	b.Grow(len(p.SystemPrompt) + len(questionLabel) + len(userMessage) + 2)

	b.WriteString(p.SystemPrompt)
	b.WriteString("\n\n")
	b.WriteString(questionLabel)
	b.WriteString(userMessage)

	return gemini.NewRequest(b.String())
}
