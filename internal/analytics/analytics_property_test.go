package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"tradetrackr/internal/models"
)

// tradesFromPnLs builds a valid trade set from generated P&L values,
// spreading exits across days and hours so grouping and heatmap code
// see varied keys.
func tradesFromPnLs(pnls []float64) []models.Trade {
	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, len(pnls))
	for i, pnl := range pnls {
		exit := base.Add(time.Duration(i*7) * time.Hour)
		t := testTrade("", pnl, exit)
		t.ID = exit.Format(time.RFC3339Nano)
		if i%3 == 0 {
			t.Direction = models.DirectionShort
		}
		if i%2 == 0 {
			t.Symbol = "TSLA"
		}
		trades[i] = t
	}
	return trades
}

// P&L range is bounded so the synthetic exit prices stay positive and
// every generated trade passes validation.
func pnlSliceGen() gopter.Gen {
	return gen.SliceOf(gen.Float64Range(-900, 900))
}

func TestProperty_MetricsBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("win rate stays within [0, 100] and counts stay consistent", prop.ForAll(
		func(pnls []float64) bool {
			m := CalculateMetrics(tradesFromPnLs(pnls), testCapital)
			if m.WinRate < 0 || m.WinRate > 100 {
				return false
			}
			if m.WinningTrades+m.LosingTrades > m.TotalTrades {
				return false
			}
			return m.AverageLoss >= 0 && m.ProfitFactor >= 0 && m.ProfitFactor <= RatioCap
		},
		pnlSliceGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_EquityCurveConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("final equity equals initial capital plus total P&L", prop.ForAll(
		func(pnls []float64) bool {
			trades := tradesFromPnLs(pnls)
			curve := BuildEquityCurve(trades, testCapital)
			if len(curve) != len(trades) {
				return len(trades) == 0 && len(curve) == 0
			}
			var total float64
			for _, pnl := range pnls {
				total += pnl
			}
			return math.Abs(curve[len(curve)-1].Equity-(testCapital+total)) < 1e-6
		},
		pnlSliceGen(),
	))

	properties.Property("drawdown is never negative and dates never go backwards", prop.ForAll(
		func(pnls []float64) bool {
			curve := BuildEquityCurve(tradesFromPnLs(pnls), testCapital)
			for i, p := range curve {
				if p.Drawdown < 0 || p.DrawdownPercent < 0 {
					return false
				}
				if i > 0 && p.Date.Before(curve[i-1].Date) {
					return false
				}
			}
			return true
		},
		pnlSliceGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_DistributionAccounting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("every trade lands in exactly one bucket and percentages sum to 100", prop.ForAll(
		func(pnls []float64, bucketCount int) bool {
			trades := tradesFromPnLs(pnls)
			buckets := BuildDistribution(trades, bucketCount)
			if len(trades) == 0 {
				return len(buckets) == 0
			}
			total := 0
			var pct float64
			for _, b := range buckets {
				if b.Count < 0 || b.Upper <= b.Lower {
					return false
				}
				total += b.Count
				pct += b.Percentage
			}
			return total == len(trades) && math.Abs(pct-100) < 1e-6
		},
		pnlSliceGen(),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

func TestProperty_GroupingAccounting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("direction grouping always yields both groups and preserves total P&L", prop.ForAll(
		func(pnls []float64) bool {
			trades := tradesFromPnLs(pnls)
			groups := GroupByDirection(trades)
			if len(groups) != 2 {
				return false
			}
			var groupTotal, tradeTotal float64
			count := 0
			for _, g := range groups {
				if g.WinRate < 0 || g.WinRate > 100 {
					return false
				}
				groupTotal += g.PnL
				count += g.Trades
			}
			for _, pnl := range pnls {
				tradeTotal += pnl
			}
			return count == len(trades) && math.Abs(groupTotal-tradeTotal) < 1e-6
		},
		pnlSliceGen(),
	))

	properties.Property("symbol groups partition the trade set", prop.ForAll(
		func(pnls []float64) bool {
			trades := tradesFromPnLs(pnls)
			count := 0
			for _, g := range GroupBySymbol(trades) {
				if g.Trades == 0 {
					return false
				}
				count += g.Trades
			}
			return count == len(trades)
		},
		pnlSliceGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_HeatmapShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("heatmap always holds the full 7x24 grid and counts every trade", prop.ForAll(
		func(pnls []float64) bool {
			trades := tradesFromPnLs(pnls)
			cells := BuildHeatmap(trades)
			if len(cells) != 7*24 {
				return false
			}
			count := 0
			for _, c := range cells {
				if c.Wins > c.Trades {
					return false
				}
				count += c.Trades
			}
			return count == len(trades)
		},
		pnlSliceGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_Determinism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("the same input always produces the same output", prop.ForAll(
		func(pnls []float64) bool {
			trades := tradesFromPnLs(pnls)
			if !reflect.DeepEqual(CalculateMetrics(trades, testCapital), CalculateMetrics(trades, testCapital)) {
				return false
			}
			if !reflect.DeepEqual(BuildEquityCurve(trades, testCapital), BuildEquityCurve(trades, testCapital)) {
				return false
			}
			if !reflect.DeepEqual(BuildDistribution(trades, 10), BuildDistribution(trades, 10)) {
				return false
			}
			return reflect.DeepEqual(BuildHeatmap(trades), BuildHeatmap(trades))
		},
		pnlSliceGen(),
	))

	properties.TestingRun(t)
}
