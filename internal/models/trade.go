package models

import "time"

// Trade represents a closed trade as recorded in the journal.
// ProfitLoss is supplied by the user (or broker import) rather than
// recomputed from prices, since fees and slippage apply.
type Trade struct {
	ID         string
	Symbol     string
	Direction  Direction
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	EntryTime  time.Time
	ExitTime   time.Time
	ProfitLoss float64
	Strategy   string
	Tags       []string
	Notes      string
	RiskAmount float64
	RMultiple  float64
	CreatedAt  time.Time
}

// JournalEntry represents a free-form dated journal note,
// optionally tied to a trade.
type JournalEntry struct {
	ID        string
	TradeID   string
	Date      time.Time
	Content   string
	Tags      []string
	Mood      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
