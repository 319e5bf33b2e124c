// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the generative-language API.
//
// The client performs a single generateContent call per invocation; retry
// policy belongs to the caller. Generation parameters are policy constants,
// not user-configurable.
package gemini

// =============================================================================
// GENERATION POLICY
// =============================================================================

// Fixed generation parameters sent with every request.
const (
	Temperature     = 0.7
	TopP            = 0.95
	TopK            = 40
	MaxOutputTokens = 1024
)

// =============================================================================
// REQUEST
// =============================================================================

// Part is one text fragment within a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-attributed block of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the sampling parameters.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Request is the generateContent request envelope.
type Request struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// NewRequest wraps a single composed prompt in the request envelope with the
// fixed generation policy.
func NewRequest(prompt string) Request {
	return Request{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     Temperature,
			TopP:            TopP,
			TopK:            TopK,
			MaxOutputTokens: MaxOutputTokens,
		},
	}
}

// =============================================================================
// RESPONSE
// =============================================================================

// Candidate is one generated answer.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// Response is the generateContent response envelope.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstText extracts the first generated text fragment, or "" when the
// response carries none.
func (r *Response) FirstText() string {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// apiErrorResponse is the error envelope returned on non-2xx statuses.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
