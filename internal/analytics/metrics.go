package analytics

import "tradetrackr/internal/models"

// RatioCap stands in for an infinite profit factor or risk/reward ratio
// when there are wins but no losses. Keeping the value finite keeps
// reports and JSON output well-formed.
const RatioCap = 9999.0

// PerformanceMetrics is the aggregate scorecard over a set of trades.
// AverageLoss is reported as a positive magnitude.
type PerformanceMetrics struct {
	TotalTrades        int
	WinningTrades      int
	LosingTrades       int
	WinRate            float64
	TotalPnL           float64
	AverageWin         float64
	AverageLoss        float64
	ProfitFactor       float64
	RiskRewardRatio    float64
	Expectancy         float64
	AverageReturn      float64
	AverageHoldingDays float64
	MaxDrawdown        float64
	MaxDrawdownPercent float64
}

// CalculateMetrics computes aggregate performance over the given trades.
// Breakeven trades count toward totals but toward neither wins nor
// losses. Invalid trades are skipped.
func CalculateMetrics(trades []models.Trade, initialCapital float64) PerformanceMetrics {
	normalized, _ := NormalizeAll(trades)
	return calculateMetrics(normalized, initialCapital)
}

func calculateMetrics(trades []NormalizedTrade, initialCapital float64) PerformanceMetrics {
	m := PerformanceMetrics{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return m
	}

	var grossProfit, grossLoss float64
	var totalReturn, totalHolding float64
	for _, t := range trades {
		m.TotalPnL += t.ProfitLoss
		totalReturn += t.PercentReturn
		totalHolding += float64(t.HoldingDays)
		switch {
		case t.IsWin:
			m.WinningTrades++
			grossProfit += t.ProfitLoss
		case t.IsLoss:
			m.LosingTrades++
			grossLoss += t.ProfitLoss
		}
	}

	decided := m.WinningTrades + m.LosingTrades
	if decided > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(decided) * 100
	}
	if m.WinningTrades > 0 {
		m.AverageWin = grossProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = -grossLoss / float64(m.LosingTrades)
	}

	m.ProfitFactor = cappedRatio(grossProfit, -grossLoss)
	m.RiskRewardRatio = cappedRatio(m.AverageWin, m.AverageLoss)

	winP := m.WinRate / 100
	m.Expectancy = winP*m.AverageWin - (1-winP)*m.AverageLoss
	m.AverageReturn = totalReturn / float64(len(trades))
	m.AverageHoldingDays = totalHolding / float64(len(trades))

	curve := buildEquityCurve(trades, initialCapital)
	m.MaxDrawdown, m.MaxDrawdownPercent = MaxDrawdown(curve)

	return m
}

// cappedRatio divides numerator by denominator, returning 0 when the
// numerator is zero and RatioCap when only the denominator is zero.
func cappedRatio(numerator, denominator float64) float64 {
	if numerator <= 0 {
		return 0
	}
	if denominator <= 0 {
		return RatioCap
	}
	ratio := numerator / denominator
	if ratio > RatioCap {
		return RatioCap
	}
	return ratio
}
