// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	mdMu       sync.Mutex
	mdRenderer *glamour.TermRenderer
	mdWidth    int
)

// RenderMarkdown renders assistant markdown for terminal display, word-wrapped
// to width. Falls back to the raw text if the renderer cannot be built.
func RenderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}

	mdMu.Lock()
	defer mdMu.Unlock()

	if mdRenderer == nil || mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return ParseCodeBlocks(text, width)
		}
		mdRenderer = r
		mdWidth = width
	}

	out, err := mdRenderer.Render(text)
	if err != nil {
		// Glamour choked on the input; still highlight any fenced code.
		return ParseCodeBlocks(text, width)
	}
	return out
}
