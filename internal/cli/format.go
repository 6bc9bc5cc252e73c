// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"strings"
	"time"

	"tradetrackr/pkg/utils"
)

// FormatCurrency formats a number as a currency amount.
func FormatCurrency(amount float64) string {
	return utils.FormatCurrency(amount)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	return utils.FormatPercent(value)
}

// FormatPnL formats P&L with sign.
func FormatPnL(pnl float64) string {
	return utils.FormatPnL(pnl)
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return utils.FormatDate(t)
}

// FormatDateTime formats a datetime.
func FormatDateTime(t time.Time) string {
	return utils.FormatDateTime(t)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
