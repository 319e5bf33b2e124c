// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// =============================================================================
// TAX DOCUMENT CHECKLIST
// =============================================================================

// ChecklistSection is one group of documents to collect before filing.
type ChecklistSection struct {
	Title string
	Items []string
}

var checklistSections = []ChecklistSection{
	{
		Title: "Income Documents",
		Items: []string{
			"Form 16 from employer",
			"Bank interest certificates",
			"Dividend statements",
			"Rental income receipts",
			"Capital gains statements",
			"Other income proofs",
		},
	},
	{
		Title: "Investment Proofs",
		Items: []string{
			"ELSS mutual fund statements",
			"PPF account statements",
			"NSC certificates",
			"ULIP premium receipts",
			"NPS contributions",
			"Life insurance premiums",
		},
	},
	{
		Title: "Deduction Documents",
		Items: []string{
			"Home loan interest certificate",
			"Medical insurance premiums",
			"Education loan interest",
			"Donations (80G receipts)",
			"House rent receipts",
			"Medical expenses (parents)",
		},
	},
}

// ChecklistSections returns the sections in display order.
func ChecklistSections() []ChecklistSection {
	out := make([]ChecklistSection, len(checklistSections))
	copy(out, checklistSections)
	return out
}

// Checklist tracks which documents have been collected. Toggle state is
// in-memory only; it resets each run.
type Checklist struct {
	sections []ChecklistSection
	checked  map[string]bool
}

// NewChecklist creates a checklist with nothing collected.
func NewChecklist() *Checklist {
	return &Checklist{
		sections: ChecklistSections(),
		checked:  make(map[string]bool),
	}
}

// itemKey addresses one item by section and index.
func itemKey(section, item int) string {
	return fmt.Sprintf("%d-%d", section, item)
}

// Toggle flips an item's collected state. Out-of-range indexes are ignored.
func (c *Checklist) Toggle(section, item int) {
	if section < 0 || section >= len(c.sections) {
		return
	}
	if item < 0 || item >= len(c.sections[section].Items) {
		return
	}
	key := itemKey(section, item)
	c.checked[key] = !c.checked[key]
}

// Checked reports whether an item is collected.
func (c *Checklist) Checked(section, item int) bool {
	return c.checked[itemKey(section, item)]
}

// Sections returns the checklist sections.
func (c *Checklist) Sections() []ChecklistSection {
	return c.sections
}

// TotalItems returns the number of documents across all sections.
func (c *Checklist) TotalItems() int {
	return lo.SumBy(c.sections, func(s ChecklistSection) int { return len(s.Items) })
}

// CompletedItems returns the number of documents marked collected.
func (c *Checklist) CompletedItems() int {
	return lo.CountBy(lo.Values(c.checked), func(v bool) bool { return v })
}

// CompletionPercent returns collected/total rounded to whole percent.
func (c *Checklist) CompletionPercent() int {
	total := c.TotalItems()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(c.CompletedItems()) / float64(total) * 100))
}
