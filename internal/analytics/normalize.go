// Package analytics computes derived performance views from closed trades.
package analytics

import (
	"math"

	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
)

// NormalizedTrade is a trade with derived per-trade fields attached.
// The embedded Trade is never mutated.
type NormalizedTrade struct {
	models.Trade
	HoldingDays   int
	PercentReturn float64
	IsWin         bool
	IsLoss        bool
}

// Normalize computes the derived fields for a single trade.
// It fails only for structurally invalid records: missing timestamps,
// exit before entry, non-positive prices or quantity.
func Normalize(t models.Trade) (NormalizedTrade, error) {
	if t.EntryTime.IsZero() || t.ExitTime.IsZero() {
		return NormalizedTrade{}, apperrors.NewValidationError("entry_time/exit_time", t.ID, "missing timestamp")
	}
	if t.ExitTime.Before(t.EntryTime) {
		return NormalizedTrade{}, apperrors.NewValidationError("exit_time", t.ID, "exit before entry")
	}
	if t.Quantity <= 0 {
		return NormalizedTrade{}, apperrors.NewValidationError("quantity", t.ID, "must be positive")
	}
	if t.EntryPrice <= 0 || t.ExitPrice <= 0 {
		return NormalizedTrade{}, apperrors.NewValidationError("price", t.ID, "must be positive")
	}

	holding := int(math.Ceil(t.ExitTime.Sub(t.EntryTime).Hours() / 24))

	// Direction-aware return: a falling price is a gain on a short.
	pctReturn := (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
	if t.Direction == models.DirectionShort {
		pctReturn = (t.EntryPrice - t.ExitPrice) / t.EntryPrice * 100
	}

	return NormalizedTrade{
		Trade:         t,
		HoldingDays:   holding,
		PercentReturn: pctReturn,
		IsWin:         t.ProfitLoss > 0,
		IsLoss:        t.ProfitLoss < 0,
	}, nil
}

// NormalizeAll normalizes a batch of trades, skipping invalid records.
// The second return value is the number of trades skipped; a bad record
// never aborts the batch.
func NormalizeAll(trades []models.Trade) ([]NormalizedTrade, int) {
	normalized := make([]NormalizedTrade, 0, len(trades))
	skipped := 0
	for _, t := range trades {
		nt, err := Normalize(t)
		if err != nil {
			skipped++
			continue
		}
		normalized = append(normalized, nt)
	}
	return normalized, skipped
}
