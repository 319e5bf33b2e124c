// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content holds the static finance tips and tax document checklist.
package content

import (
	"time"

	"github.com/samber/lo"
)

// =============================================================================
// FINANCE TIPS
// =============================================================================

// Tip is one piece of static finance guidance.
type Tip struct {
	Title    string
	Content  string
	Category string
}

var tips = []Tip{
	{
		Title:    "50-30-20 Rule",
		Content:  "Allocate 50% for needs, 30% for wants, and 20% for savings and debt repayment. It's like having three different piggy banks!",
		Category: "Budgeting",
	},
	{
		Title:    "Start SIP Early",
		Content:  "Even ₹1000/month SIP started at 25 can become ₹1.5 crores by retirement. Time is your best friend in investing!",
		Category: "Investment",
	},
	{
		Title:    "Emergency Fund",
		Content:  "Keep 6-12 months of expenses in a liquid fund. Think of it as your financial umbrella for rainy days.",
		Category: "Planning",
	},
	{
		Title:    "Credit Card Wisdom",
		Content:  "Pay full amount before due date. Using only 30% of credit limit boosts your CIBIL score. Smart spending = smart borrowing!",
		Category: "Credit",
	},
	{
		Title:    "Tax Planning",
		Content:  "Don't wait for March! Plan taxes in April itself. ELSS, PPF, NPS - these aren't just tax savers, they're wealth builders.",
		Category: "Tax",
	},
	{
		Title:    "Diversify Like a Pro",
		Content:  "Don't put all eggs in one basket. Mix equity, debt, gold, and real estate. Balance is the key to long-term wealth.",
		Category: "Investment",
	},
}

// Tips returns all tips in display order.
func Tips() []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}

// TipOfTheDay rotates the spotlight tip by weekday.
func TipOfTheDay(now time.Time) Tip {
	return tips[int(now.Weekday())%len(tips)]
}

// TipsByCategory groups the tips by category, preserving in-category order.
func TipsByCategory() map[string][]Tip {
	return lo.GroupBy(Tips(), func(t Tip) string { return t.Category })
}

// Categories returns the distinct categories in first-appearance order.
func Categories() []string {
	return lo.Uniq(lo.Map(Tips(), func(t Tip, _ int) string { return t.Category }))
}
