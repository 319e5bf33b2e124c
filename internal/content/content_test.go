// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"testing"
	"time"
)

func TestTips(t *testing.T) {
	all := Tips()
	if len(all) != 6 {
		t.Fatalf("Tips() returned %d tips, want 6", len(all))
	}
	for i, tip := range all {
		if tip.Title == "" || tip.Content == "" || tip.Category == "" {
			t.Errorf("tip %d has empty fields", i)
		}
	}

	// Returned slice is a copy.
	all[0].Title = "mutated"
	if Tips()[0].Title == "mutated" {
		t.Error("mutating Tips() result leaked into the table")
	}
}

func TestTipOfTheDay(t *testing.T) {
	// Sunday = weekday 0 -> first tip.
	sunday := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := TipOfTheDay(sunday); got.Title != "50-30-20 Rule" {
		t.Errorf("Sunday tip = %q", got.Title)
	}

	// Saturday = weekday 6 -> wraps to the first tip again (6 % 6).
	saturday := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	if got := TipOfTheDay(saturday); got.Title != "50-30-20 Rule" {
		t.Errorf("Saturday tip = %q", got.Title)
	}

	// Wednesday = weekday 3.
	wednesday := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	if got := TipOfTheDay(wednesday); got.Title != Tips()[3].Title {
		t.Errorf("Wednesday tip = %q, want %q", got.Title, Tips()[3].Title)
	}
}

func TestTipsByCategory(t *testing.T) {
	grouped := TipsByCategory()
	if len(grouped["Investment"]) != 2 {
		t.Errorf("Investment tips = %d, want 2", len(grouped["Investment"]))
	}
	for _, cat := range []string{"Budgeting", "Planning", "Credit", "Tax"} {
		if len(grouped[cat]) != 1 {
			t.Errorf("%s tips = %d, want 1", cat, len(grouped[cat]))
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	want := []string{"Budgeting", "Investment", "Planning", "Credit", "Tax"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v", cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestChecklistSections(t *testing.T) {
	sections := ChecklistSections()
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	titles := []string{"Income Documents", "Investment Proofs", "Deduction Documents"}
	for i, s := range sections {
		if s.Title != titles[i] {
			t.Errorf("section %d title = %q, want %q", i, s.Title, titles[i])
		}
		if len(s.Items) != 6 {
			t.Errorf("section %q has %d items, want 6", s.Title, len(s.Items))
		}
	}
}

func TestChecklist_ToggleAndProgress(t *testing.T) {
	c := NewChecklist()

	if c.TotalItems() != 18 {
		t.Fatalf("TotalItems() = %d, want 18", c.TotalItems())
	}
	if c.CompletedItems() != 0 || c.CompletionPercent() != 0 {
		t.Error("new checklist should start empty")
	}

	c.Toggle(0, 0)
	c.Toggle(1, 3)
	if !c.Checked(0, 0) || !c.Checked(1, 3) {
		t.Error("toggled items should be checked")
	}
	if c.CompletedItems() != 2 {
		t.Errorf("CompletedItems() = %d, want 2", c.CompletedItems())
	}
	if c.CompletionPercent() != 11 { // 2/18 = 11.1%
		t.Errorf("CompletionPercent() = %d, want 11", c.CompletionPercent())
	}

	// Toggling again unchecks.
	c.Toggle(0, 0)
	if c.Checked(0, 0) {
		t.Error("second toggle should uncheck")
	}
	if c.CompletedItems() != 1 {
		t.Errorf("CompletedItems() = %d, want 1", c.CompletedItems())
	}
}

func TestChecklist_ToggleOutOfRange(t *testing.T) {
	c := NewChecklist()
	c.Toggle(-1, 0)
	c.Toggle(0, -1)
	c.Toggle(99, 0)
	c.Toggle(0, 99)
	if c.CompletedItems() != 0 {
		t.Error("out-of-range toggles must be ignored")
	}
}

func TestChecklist_FullCompletion(t *testing.T) {
	c := NewChecklist()
	for si, s := range c.Sections() {
		for ii := range s.Items {
			c.Toggle(si, ii)
		}
	}
	if c.CompletionPercent() != 100 {
		t.Errorf("CompletionPercent() = %d, want 100", c.CompletionPercent())
	}
}
