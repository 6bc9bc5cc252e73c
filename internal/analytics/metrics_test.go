package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"tradetrackr/internal/models"
)

const testCapital = 10000.0

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// testTrade builds a valid closed trade with the given P&L, exiting at
// the given time. Prices are kept consistent with the direction.
func testTrade(id string, pnl float64, exit time.Time) models.Trade {
	entry := 100.0
	qty := 10.0
	return models.Trade{
		ID:         id,
		Symbol:     "AAPL",
		Direction:  models.DirectionLong,
		EntryPrice: entry,
		ExitPrice:  entry + pnl/qty,
		Quantity:   qty,
		EntryTime:  exit.Add(-4 * time.Hour),
		ExitTime:   exit,
		ProfitLoss: pnl,
	}
}

func testTrades(pnls ...float64) []models.Trade {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, len(pnls))
	for i, pnl := range pnls {
		trades[i] = testTrade(fmt.Sprintf("t-%d", i), pnl, base.Add(time.Duration(i)*24*time.Hour))
	}
	return trades
}

func TestCalculateMetricsMixed(t *testing.T) {
	m := CalculateMetrics(testTrades(100, -50, 30), testCapital)

	if m.TotalTrades != 3 {
		t.Fatalf("TotalTrades = %d, want 3", m.TotalTrades)
	}
	if m.WinningTrades != 2 || m.LosingTrades != 1 {
		t.Errorf("wins/losses = %d/%d, want 2/1", m.WinningTrades, m.LosingTrades)
	}
	if !floatEqual(m.TotalPnL, 80, 1e-9) {
		t.Errorf("TotalPnL = %v, want 80", m.TotalPnL)
	}
	if !floatEqual(m.WinRate, 200.0/3.0, 1e-9) {
		t.Errorf("WinRate = %v, want %v", m.WinRate, 200.0/3.0)
	}
	if !floatEqual(m.AverageWin, 65, 1e-9) {
		t.Errorf("AverageWin = %v, want 65", m.AverageWin)
	}
	if !floatEqual(m.AverageLoss, 50, 1e-9) {
		t.Errorf("AverageLoss = %v, want 50", m.AverageLoss)
	}
	if !floatEqual(m.ProfitFactor, 2.6, 1e-9) {
		t.Errorf("ProfitFactor = %v, want 2.6", m.ProfitFactor)
	}
}

func TestCalculateMetricsAllWins(t *testing.T) {
	m := CalculateMetrics(testTrades(10, 20, 30), testCapital)

	if m.WinRate != 100 {
		t.Errorf("WinRate = %v, want 100", m.WinRate)
	}
	if m.ProfitFactor != RatioCap {
		t.Errorf("ProfitFactor = %v, want cap %v", m.ProfitFactor, RatioCap)
	}
	if m.RiskRewardRatio != RatioCap {
		t.Errorf("RiskRewardRatio = %v, want cap %v", m.RiskRewardRatio, RatioCap)
	}
	if m.AverageLoss != 0 {
		t.Errorf("AverageLoss = %v, want 0", m.AverageLoss)
	}
	if m.MaxDrawdown != 0 {
		t.Errorf("MaxDrawdown = %v, want 0", m.MaxDrawdown)
	}
}

func TestCalculateMetricsAllLosses(t *testing.T) {
	m := CalculateMetrics(testTrades(-10, -20), testCapital)

	if m.WinRate != 0 {
		t.Errorf("WinRate = %v, want 0", m.WinRate)
	}
	if m.ProfitFactor != 0 {
		t.Errorf("ProfitFactor = %v, want 0", m.ProfitFactor)
	}
	if !floatEqual(m.AverageLoss, 15, 1e-9) {
		t.Errorf("AverageLoss = %v, want 15", m.AverageLoss)
	}
	if !floatEqual(m.MaxDrawdown, 30, 1e-9) {
		t.Errorf("MaxDrawdown = %v, want 30", m.MaxDrawdown)
	}
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m := CalculateMetrics(nil, testCapital)

	if m.TotalTrades != 0 || m.WinRate != 0 || m.ProfitFactor != 0 {
		t.Errorf("empty input should yield zero metrics, got %+v", m)
	}
}

func TestCalculateMetricsBreakeven(t *testing.T) {
	// Breakeven trades count toward totals but not the win rate.
	m := CalculateMetrics(testTrades(100, 0, -100), testCapital)

	if m.TotalTrades != 3 {
		t.Fatalf("TotalTrades = %d, want 3", m.TotalTrades)
	}
	if m.WinningTrades+m.LosingTrades != 2 {
		t.Errorf("decided trades = %d, want 2", m.WinningTrades+m.LosingTrades)
	}
	if !floatEqual(m.WinRate, 50, 1e-9) {
		t.Errorf("WinRate = %v, want 50", m.WinRate)
	}
}

func TestCalculateMetricsSkipsInvalid(t *testing.T) {
	trades := testTrades(100, -50)
	trades = append(trades, models.Trade{ID: "bad", Symbol: "MSFT"})

	m := CalculateMetrics(trades, testCapital)
	if m.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want invalid trade skipped", m.TotalTrades)
	}
}

func TestCappedRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"normal", 130, 50, 2.6},
		{"no wins", 0, 50, 0},
		{"no losses", 130, 0, RatioCap},
		{"both zero", 0, 0, 0},
		{"over cap", 1e9, 1, RatioCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cappedRatio(tt.num, tt.den); !floatEqual(got, tt.want, 1e-9) {
				t.Errorf("cappedRatio(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}
