// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"math"
	"testing"
)

func TestSIPMaturity(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		rate    float64
		years   float64
		want    float64
		wantErr bool
	}{
		// 5000/month at 12% for 10 years: P*(((1+r)^n - 1)/r)*(1+r)
		{"typical plan", 5000, 12, 10, 1_161_695, false},
		{"one year", 1000, 12, 1, 12_809, false},
		{"zero amount", 0, 12, 10, 0, true},
		{"negative rate", 5000, -1, 10, 0, true},
		{"zero years", 5000, 12, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SIPMaturity(tt.monthly, tt.rate, tt.years)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Allow one rupee of rounding slack.
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("SIPMaturity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncomeTax(t *testing.T) {
	tests := []struct {
		name       string
		income     float64
		deductions float64
		want       float64
		wantErr    bool
	}{
		{"below first slab", 250_000, 0, 0, false},
		{"at first slab boundary", 300_000, 0, 0, false},
		{"middle slab", 400_000, 0, 10_000, false},
		{"at second boundary", 500_000, 0, 20_000, false},
		{"third slab", 800_000, 0, 110_000, false},
		{"at third boundary", 1_000_000, 0, 150_000, false},
		{"top slab", 1_500_000, 0, 300_000, false},
		{"deductions drop a slab", 1_200_000, 300_000, 130_000, false},
		{"deductions below threshold", 400_000, 150_000, 0, false},
		{"negative deductions ignored", 400_000, -50_000, 10_000, false},
		{"zero income", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IncomeTax(tt.income, tt.deductions)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IncomeTax(%v, %v) = %v, want %v", tt.income, tt.deductions, got, tt.want)
			}
		})
	}
}

func TestSavingsGoal(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		years   float64
		want    float64
		wantErr bool
	}{
		{"from zero", 1_200_000, 0, 10, 10_000, false},
		{"partial progress", 600_000, 120_000, 4, 10_000, false},
		{"already met", 500_000, 500_000, 5, 0, false},
		{"overshot", 500_000, 700_000, 5, 0, false},
		{"negative current treated as zero", 120_000, -10, 1, 10_000, false},
		{"zero target", 0, 0, 5, 0, true},
		{"zero years", 100_000, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SavingsGoal(tt.target, tt.current, tt.years)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SavingsGoal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{1000, "₹1,000"},
		{150000, "₹1,50,000"},
		{11616954, "₹1,16,16,954"},
	}

	for _, tt := range tests {
		if got := FormatRupees(tt.amount); got != tt.want {
			t.Errorf("FormatRupees(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
