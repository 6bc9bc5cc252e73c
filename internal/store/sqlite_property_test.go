package store

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"tradetrackr/internal/models"
)

// Property: saving a trade and reading it back through the filtered
// query must produce equivalent data, for any valid field combination.
func TestProperty_TradeRoundTripConsistency(t *testing.T) {
	store := newTestStore(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	symbols := []string{"AAPL", "TSLA", "MSFT", "NVDA", "AMD", "SPY", "QQQ", "META", "AMZN", "GOOG"}
	strategies := []string{"Breakout", "Reversal", "Pullback", "Scalp", ""}

	idSeq := 0

	properties.Property("trade round trip: save then retrieve produces equivalent data", prop.ForAll(
		func(symbolIdx, strategyIdx int, short bool, entryPrice, qty, pnl float64, holdHours int) bool {
			ctx := context.Background()
			idSeq++

			direction := models.DirectionLong
			if short {
				direction = models.DirectionShort
			}
			exit := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC).Add(time.Duration(idSeq) * time.Minute)

			trade := models.Trade{
				ID:         fmt.Sprintf("prop-%d", idSeq),
				Symbol:     symbols[symbolIdx%len(symbols)],
				Direction:  direction,
				EntryPrice: entryPrice,
				ExitPrice:  entryPrice + pnl/qty*direction.Sign(),
				Quantity:   qty,
				EntryTime:  exit.Add(-time.Duration(holdHours) * time.Hour),
				ExitTime:   exit,
				ProfitLoss: pnl,
				Strategy:   strategies[strategyIdx%len(strategies)],
				Tags:       []string{"prop"},
			}

			if err := store.SaveTrade(ctx, &trade); err != nil {
				return false
			}
			got, err := store.GetTradeByID(ctx, trade.ID)
			if err != nil {
				return false
			}

			return got.Symbol == trade.Symbol &&
				got.Direction == trade.Direction &&
				math.Abs(got.EntryPrice-trade.EntryPrice) < 1e-9 &&
				math.Abs(got.ProfitLoss-trade.ProfitLoss) < 1e-9 &&
				got.Strategy == trade.Strategy &&
				got.EntryTime.Equal(trade.EntryTime) &&
				got.ExitTime.Equal(trade.ExitTime)
		},
		gen.IntRange(0, 9),
		gen.IntRange(0, 4),
		gen.Bool(),
		gen.Float64Range(1.0, 5000.0),
		gen.Float64Range(1.0, 1000.0),
		gen.Float64Range(-2000.0, 2000.0),
		gen.IntRange(1, 240),
	))

	properties.TestingRun(t)
}
