// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calc implements the financial calculators: SIP maturity, simplified
// income tax, and savings goal. All functions are pure.
package calc

import (
	"errors"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidInput indicates a non-positive or otherwise unusable input.
var ErrInvalidInput = errors.New("invalid calculator input")

// =============================================================================
// SIP MATURITY
// =============================================================================

// SIPMaturity returns the maturity amount of a systematic investment plan:
// monthly contributions compounded monthly at the given annual rate.
func SIPMaturity(monthlyAmount, annualRatePct, years float64) (float64, error) {
	if monthlyAmount <= 0 || annualRatePct <= 0 || years <= 0 {
		return 0, ErrInvalidInput
	}

	r := annualRatePct / 100 / 12
	n := years * 12

	maturity := monthlyAmount * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	return math.Round(maturity), nil
}

// =============================================================================
// INCOME TAX
// =============================================================================

// Simplified old-regime slabs: nil to 3L, 10% to 5L, 20% to 10L, 30% above.
const (
	slabOne   = 300_000
	slabTwo   = 500_000
	slabThree = 1_000_000

	taxAtSlabTwo   = 50_000  // 10% of the 3L-5L band
	taxAtSlabThree = 150_000 // taxAtSlabTwo + 20% of the 5L-10L band
)

// IncomeTax returns the simplified tax liability on income after deductions.
// Negative deductions are treated as zero. This is an estimate for education,
// not a filing computation.
func IncomeTax(income, deductions float64) (float64, error) {
	if income <= 0 {
		return 0, ErrInvalidInput
	}
	if deductions < 0 {
		deductions = 0
	}

	taxable := income - deductions
	var tax float64
	switch {
	case taxable > slabThree:
		tax = (taxable-slabThree)*0.30 + taxAtSlabThree
	case taxable > slabTwo:
		tax = (taxable-slabTwo)*0.20 + taxAtSlabTwo
	case taxable > slabOne:
		tax = (taxable - slabOne) * 0.10
	}
	return math.Round(tax), nil
}

// =============================================================================
// SAVINGS GOAL
// =============================================================================

// SavingsGoal returns the monthly amount needed to reach target from current
// savings within the timeframe. A target already met returns zero.
func SavingsGoal(target, current, years float64) (float64, error) {
	if target <= 0 || years <= 0 {
		return 0, ErrInvalidInput
	}
	if current < 0 {
		current = 0
	}

	remaining := target - current
	if remaining <= 0 {
		return 0, nil
	}
	return math.Round(remaining / (years * 12)), nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// enIN groups digits the Indian way (1,50,000).
var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders an amount as a grouped rupee string.
func FormatRupees(amount float64) string {
	return enIN.Sprintf("₹%d", int64(math.Round(amount)))
}
