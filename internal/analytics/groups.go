package analytics

import (
	"sort"

	"tradetrackr/internal/models"
)

// UnlabeledStrategy is the group key used for trades logged without a
// strategy name.
const UnlabeledStrategy = "Unlabeled"

// GroupedPerformance is the per-group scorecard produced by the
// grouping reports.
type GroupedPerformance struct {
	Key           string
	Trades        int
	WinRate       float64
	PnL           float64
	AverageReturn float64
	ProfitFactor  float64
}

// GroupByMonth aggregates performance per calendar month of the exit
// time, in chronological order.
func GroupByMonth(trades []models.Trade) []GroupedPerformance {
	normalized, _ := NormalizeAll(trades)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].ExitTime.Before(normalized[j].ExitTime)
	})
	return groupBy(normalized, func(t NormalizedTrade) string {
		return t.ExitTime.Format("Jan 2006")
	}, nil)
}

// GroupByStrategy aggregates performance per strategy label. Trades
// without a strategy fall under UnlabeledStrategy.
func GroupByStrategy(trades []models.Trade) []GroupedPerformance {
	normalized, _ := NormalizeAll(trades)
	return groupBy(normalized, func(t NormalizedTrade) string {
		if t.Strategy == "" {
			return UnlabeledStrategy
		}
		return t.Strategy
	}, nil)
}

// GroupBySymbol aggregates performance per traded symbol.
func GroupBySymbol(trades []models.Trade) []GroupedPerformance {
	normalized, _ := NormalizeAll(trades)
	return groupBy(normalized, func(t NormalizedTrade) string {
		return t.Symbol
	}, nil)
}

// GroupByDirection aggregates performance for long versus short trades.
// Both groups are always present, zero-valued when empty.
func GroupByDirection(trades []models.Trade) []GroupedPerformance {
	normalized, _ := NormalizeAll(trades)
	seed := []string{string(models.DirectionLong), string(models.DirectionShort)}
	return groupBy(normalized, func(t NormalizedTrade) string {
		return string(t.Direction)
	}, seed)
}

// GroupByTimeOfDay aggregates performance per trading session, keyed by
// the entry time's hour. Sessions must cover all 24 hours.
func GroupByTimeOfDay(trades []models.Trade, sessions []Session) []GroupedPerformance {
	if len(sessions) == 0 {
		sessions = DefaultSessions()
	}
	normalized, _ := NormalizeAll(trades)
	return groupBy(normalized, func(t NormalizedTrade) string {
		return sessionLabel(sessions, t.EntryTime.Hour())
	}, nil)
}

// groupBy partitions trades by key and computes a scorecard per group.
// Groups appear in first-seen order; seed keys, when given, are emitted
// first and guarantee a (possibly empty) group for each.
func groupBy(trades []NormalizedTrade, keyFn func(NormalizedTrade) string, seed []string) []GroupedPerformance {
	type acc struct {
		trades      []NormalizedTrade
		grossProfit float64
		grossLoss   float64
	}

	order := make([]string, 0, len(seed))
	groups := make(map[string]*acc)
	for _, key := range seed {
		order = append(order, key)
		groups[key] = &acc{}
	}

	for _, t := range trades {
		key := keyFn(t)
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.trades = append(g.trades, t)
		if t.IsWin {
			g.grossProfit += t.ProfitLoss
		} else if t.IsLoss {
			g.grossLoss += t.ProfitLoss
		}
	}

	result := make([]GroupedPerformance, 0, len(order))
	for _, key := range order {
		g := groups[key]
		gp := GroupedPerformance{Key: key, Trades: len(g.trades)}
		if len(g.trades) > 0 {
			wins, losses := 0, 0
			var totalReturn float64
			for _, t := range g.trades {
				gp.PnL += t.ProfitLoss
				totalReturn += t.PercentReturn
				if t.IsWin {
					wins++
				} else if t.IsLoss {
					losses++
				}
			}
			if wins+losses > 0 {
				gp.WinRate = float64(wins) / float64(wins+losses) * 100
			}
			gp.AverageReturn = totalReturn / float64(len(g.trades))
			gp.ProfitFactor = cappedRatio(g.grossProfit, -g.grossLoss)
		}
		result = append(result, gp)
	}

	return result
}
