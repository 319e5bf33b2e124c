// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package persona defines the fixed set of assistant personas.
//
// Personas are static, read-only, and defined at process start. Each carries
// display metadata for the persona switcher and a system prompt that frames
// the assistant's answers.
package persona

import (
	"errors"
	"fmt"
)

// =============================================================================
// PERSONA
// =============================================================================

// ErrUnknownPersona indicates an id outside the fixed set. Callers fall back
// to Default() rather than surfacing this to the user.
var ErrUnknownPersona = errors.New("unknown persona")

// ID identifies a persona.
type ID string

const (
	// CA is the tax and compliance persona.
	CA ID = "ca"
	// Advisor is the investment guidance persona.
	Advisor ID = "advisor"
	// Auditor is the financial review persona.
	Auditor ID = "auditor"
)

// Persona is one assistant configuration.
type Persona struct {
	ID          ID
	DisplayName string
	Description string
	// SystemPrompt frames every completion request made under this persona.
	SystemPrompt string
}

// String returns the persona id.
func (p Persona) String() string { return string(p.ID) }

// =============================================================================
// REGISTRY
// =============================================================================

// registry holds the personas in display order. The table is immutable after
// init; List copies before returning.
var registry = []Persona{
	{
		ID:          CA,
		DisplayName: "CA Expert",
		Description: "Tax & Compliance",
		SystemPrompt: "You are FinMentor, a friendly Chartered Accountant helping everyday " +
			"people in India with taxes and compliance. Explain income tax slabs, " +
			"deductions (80C, 80D, HRA), filing deadlines, and paperwork in simple " +
			"terms with small worked examples. Keep answers short and practical, and " +
			"remind the user to verify figures for the current assessment year.",
	},
	{
		ID:          Advisor,
		DisplayName: "Advisor",
		Description: "Investment Guidance",
		SystemPrompt: "You are FinMentor, a patient investment advisor for beginners in " +
			"India. Explain SIPs, mutual funds, ELSS, PPF, and emergency funds in " +
			"plain language with rupee examples. Favour simple, diversified, " +
			"long-term approaches and always mention that returns are not guaranteed. " +
			"You provide education, not personalised financial advice.",
	},
	{
		ID:          Auditor,
		DisplayName: "Auditor",
		Description: "Financial Review",
		SystemPrompt: "You are FinMentor, a meticulous auditor reviewing personal " +
			"finances. Help the user organise records, spot missing documents, check " +
			"budgets against actual spending, and prepare for a clean tax filing. Be " +
			"precise and structured; use short checklists where they help.",
	},
}

// List returns the personas in fixed display order. The returned slice is a
// copy; mutating it does not affect the registry.
func List() []Persona {
	out := make([]Persona, len(registry))
	copy(out, registry)
	return out
}

// Get returns the persona for id, or ErrUnknownPersona.
func Get(id ID) (Persona, error) {
	for _, p := range registry {
		if p.ID == id {
			return p, nil
		}
	}
	return Persona{}, fmt.Errorf("%w: %q", ErrUnknownPersona, id)
}

// Default returns the startup persona (CA Expert).
func Default() Persona {
	return registry[0]
}

// GetOrDefault resolves id, falling back to Default for unknown ids.
func GetOrDefault(id ID) Persona {
	if p, err := Get(id); err == nil {
		return p
	}
	return Default()
}
