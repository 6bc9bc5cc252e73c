package analytics

import (
	"sort"
	"time"

	"tradetrackr/internal/models"
)

// TimeSeriesPoint is a single point on the equity curve, recorded
// after each closed trade.
type TimeSeriesPoint struct {
	Date            time.Time
	Equity          float64
	Drawdown        float64
	DrawdownPercent float64
	TradePnL        float64
}

// BuildEquityCurve replays closed trades in exit-time order and records
// running equity and drawdown after each one. Trades sharing an exit
// timestamp keep their input order. Invalid trades are skipped.
func BuildEquityCurve(trades []models.Trade, initialCapital float64) []TimeSeriesPoint {
	normalized, _ := NormalizeAll(trades)
	return buildEquityCurve(normalized, initialCapital)
}

func buildEquityCurve(trades []NormalizedTrade, initialCapital float64) []TimeSeriesPoint {
	if len(trades) == 0 {
		return nil
	}

	ordered := make([]NormalizedTrade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitTime.Before(ordered[j].ExitTime)
	})

	curve := make([]TimeSeriesPoint, 0, len(ordered))
	equity := initialCapital
	peak := initialCapital

	for _, t := range ordered {
		equity += t.ProfitLoss
		if equity > peak {
			peak = equity
		}
		drawdown := peak - equity
		ddPercent := 0.0
		if peak > 0 {
			ddPercent = drawdown / peak * 100
		}
		curve = append(curve, TimeSeriesPoint{
			Date:            t.ExitTime,
			Equity:          equity,
			Drawdown:        drawdown,
			DrawdownPercent: ddPercent,
			TradePnL:        t.ProfitLoss,
		})
	}

	return curve
}

// MaxDrawdown returns the largest peak-to-trough decline on the curve
// and the relative decline measured at that same point.
func MaxDrawdown(curve []TimeSeriesPoint) (amount, percent float64) {
	for _, p := range curve {
		if p.Drawdown > amount {
			amount = p.Drawdown
			percent = p.DrawdownPercent
		}
	}
	return amount, percent
}
