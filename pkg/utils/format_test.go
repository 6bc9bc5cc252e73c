package utils

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{1234.56, "$1,234.56"},
		{-1234.56, "-$1,234.56"},
		{1000000, "$1,000,000.00"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(66.666); got != "+66.67%" {
		t.Errorf("FormatPercent(66.666) = %q", got)
	}
	if got := FormatPercent(-5); got != "-5.00%" {
		t.Errorf("FormatPercent(-5) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(50); got != "+$50.00" {
		t.Errorf("FormatPnL(50) = %q", got)
	}
	if got := FormatPnL(-50); got != "-$50.00" {
		t.Errorf("FormatPnL(-50) = %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(1500); got != "1,500" {
		t.Errorf("FormatQuantity(1500) = %q", got)
	}
	if got := FormatQuantity(2.5); got != "2.50" {
		t.Errorf("FormatQuantity(2.5) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "03-Mar-2025" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
}

func TestFormatHoldingDays(t *testing.T) {
	if got := FormatHoldingDays(1); got != "1 day" {
		t.Errorf("FormatHoldingDays(1) = %q", got)
	}
	if got := FormatHoldingDays(3); got != "3 days" {
		t.Errorf("FormatHoldingDays(3) = %q", got)
	}
}
