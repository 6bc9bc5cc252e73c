package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrade(id string, exit time.Time) models.Trade {
	return models.Trade{
		ID:         id,
		Symbol:     "AAPL",
		Direction:  models.DirectionLong,
		EntryPrice: 150.25,
		ExitPrice:  155.75,
		Quantity:   10,
		EntryTime:  exit.Add(-3 * time.Hour),
		ExitTime:   exit,
		ProfitLoss: 55,
		Strategy:   "Breakout",
		Tags:       []string{"gap-up", "earnings"},
		Notes:      "clean setup",
		RiskAmount: 75,
		RMultiple:  0.73,
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exit := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)
	trade := sampleTrade("t1", exit)
	if err := store.SaveTrade(ctx, &trade); err != nil {
		t.Fatalf("SaveTrade() error = %v", err)
	}

	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID() error = %v", err)
	}
	if got.Symbol != trade.Symbol || got.Direction != trade.Direction {
		t.Errorf("round trip changed symbol/direction: %+v", got)
	}
	if got.ProfitLoss != trade.ProfitLoss || got.Strategy != trade.Strategy {
		t.Errorf("round trip changed pnl/strategy: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "gap-up" {
		t.Errorf("round trip changed tags: %v", got.Tags)
	}
	if !got.ExitTime.Equal(trade.ExitTime) {
		t.Errorf("exit time = %v, want %v", got.ExitTime, trade.ExitTime)
	}
}

func TestGetTradeByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTradeByID(context.Background(), "missing")
	if !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestGetTradesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)
	trades := []models.Trade{
		sampleTrade("t1", base),
		sampleTrade("t2", base.Add(24*time.Hour)),
		sampleTrade("t3", base.Add(48*time.Hour)),
	}
	trades[1].Symbol = "TSLA"
	trades[1].Strategy = "Reversal"
	trades[2].Direction = models.DirectionShort
	if err := store.SaveTrades(ctx, trades); err != nil {
		t.Fatalf("SaveTrades() error = %v", err)
	}

	tests := []struct {
		name   string
		filter TradeFilter
		want   int
	}{
		{"all", TradeFilter{}, 3},
		{"by symbol", TradeFilter{Symbol: "TSLA"}, 1},
		{"by strategy", TradeFilter{Strategy: "Breakout"}, 2},
		{"by direction", TradeFilter{Direction: "Short"}, 1},
		{"by tag", TradeFilter{Tag: "earnings"}, 3},
		{"by date", TradeFilter{StartDate: base.Add(12 * time.Hour)}, 2},
		{"with limit", TradeFilter{Limit: 2}, 2},
		{"no match", TradeFilter{Symbol: "NVDA"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetTrades(ctx, tt.filter)
			if err != nil {
				t.Fatalf("GetTrades() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("GetTrades() returned %d trades, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGetTradesOrderedByExitTime(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)
	for _, trade := range []models.Trade{
		sampleTrade("late", base.Add(48*time.Hour)),
		sampleTrade("early", base),
		sampleTrade("mid", base.Add(24*time.Hour)),
	} {
		if err := store.SaveTrade(ctx, &trade); err != nil {
			t.Fatalf("SaveTrade() error = %v", err)
		}
	}

	got, err := store.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades() error = %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ExitTime.Before(got[i-1].ExitTime) {
			t.Errorf("trades not ordered by exit time: %v before %v", got[i].ExitTime, got[i-1].ExitTime)
		}
	}
}

func TestUpdateAndDeleteTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1", time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC))
	if err := store.SaveTrade(ctx, &trade); err != nil {
		t.Fatalf("SaveTrade() error = %v", err)
	}

	trade.Notes = "revised"
	trade.ProfitLoss = 60
	if err := store.UpdateTrade(ctx, &trade); err != nil {
		t.Fatalf("UpdateTrade() error = %v", err)
	}
	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID() error = %v", err)
	}
	if got.Notes != "revised" || got.ProfitLoss != 60 {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := store.DeleteTrade(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrade() error = %v", err)
	}
	if err := store.DeleteTrade(ctx, "t1"); !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("second delete error = %v, want ErrTradeNotFound", err)
	}

	missing := sampleTrade("ghost", time.Now().UTC())
	if err := store.UpdateTrade(ctx, &missing); !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("update of missing trade error = %v, want ErrTradeNotFound", err)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := models.JournalEntry{
		ID:      "j1",
		TradeID: "t1",
		Date:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Content: "Forced the entry before confirmation.",
		Tags:    []string{"discipline"},
		Mood:    "frustrated",
	}
	if err := store.SaveJournalEntry(ctx, &entry); err != nil {
		t.Fatalf("SaveJournalEntry() error = %v", err)
	}

	got, err := store.GetJournal(ctx, JournalFilter{TradeID: "t1"})
	if err != nil {
		t.Fatalf("GetJournal() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetJournal() returned %d entries, want 1", len(got))
	}
	if got[0].Content != entry.Content || got[0].Mood != entry.Mood {
		t.Errorf("round trip changed entry: %+v", got[0])
	}

	// Saving the same ID again updates in place.
	entry.Content = "Revised after review."
	if err := store.SaveJournalEntry(ctx, &entry); err != nil {
		t.Fatalf("SaveJournalEntry() update error = %v", err)
	}
	got, err = store.GetJournal(ctx, JournalFilter{TradeID: "t1"})
	if err != nil {
		t.Fatalf("GetJournal() error = %v", err)
	}
	if len(got) != 1 || got[0].Content != "Revised after review." {
		t.Errorf("upsert did not update in place: %+v", got)
	}

	if err := store.DeleteJournalEntry(ctx, "j1"); err != nil {
		t.Fatalf("DeleteJournalEntry() error = %v", err)
	}
	if err := store.DeleteJournalEntry(ctx, "j1"); !apperrors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("second delete error = %v, want ErrNoteNotFound", err)
	}
}
