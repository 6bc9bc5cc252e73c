// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradetrackr/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	SaveTrades(ctx context.Context, trades []models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id string) error

	// Journal
	SaveJournalEntry(ctx context.Context, entry *models.JournalEntry) error
	GetJournal(ctx context.Context, filter JournalFilter) ([]models.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	Strategy  string
	Direction string
	Tag       string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// JournalFilter represents filters for querying journal entries.
type JournalFilter struct {
	TradeID   string
	StartDate time.Time
	EndDate   time.Time
	Tags      []string
	Limit     int
}
