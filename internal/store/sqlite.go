// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table for closed trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		quantity REAL NOT NULL,
		entry_time DATETIME NOT NULL,
		exit_time DATETIME NOT NULL,
		pnl REAL NOT NULL,
		strategy TEXT,
		tags TEXT,
		notes TEXT,
		risk_amount REAL,
		r_multiple REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Journal entries table
	CREATE TABLE IF NOT EXISTS journal (
		id TEXT PRIMARY KEY,
		trade_id TEXT,
		date DATE NOT NULL,
		content TEXT NOT NULL,
		tags TEXT,
		mood TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy);
	CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
	CREATE INDEX IF NOT EXISTS idx_journal_date ON journal(date);
	CREATE INDEX IF NOT EXISTS idx_journal_trade ON journal(trade_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Trades Methods
// ============================================================================

// SaveTrade saves a trade to the database.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	tags, _ := json.Marshal(trade.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (id, symbol, direction, entry_price, exit_price, quantity, entry_time, exit_time, pnl, strategy, tags, notes, risk_amount, r_multiple)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Symbol, string(trade.Direction), trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.EntryTime, trade.ExitTime, trade.ProfitLoss, trade.Strategy, string(tags), trade.Notes, trade.RiskAmount, trade.RMultiple)
	if err != nil {
		return apperrors.Wrapf(err, "failed to save trade %s", trade.ID)
	}
	return nil
}

// SaveTrades saves a batch of trades in a single transaction.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO trades (id, symbol, direction, entry_price, exit_price, quantity, entry_time, exit_time, pnl, strategy, tags, notes, risk_amount, r_multiple)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		tags, _ := json.Marshal(t.Tags)
		_, err := stmt.ExecContext(ctx, t.ID, t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice, t.Quantity, t.EntryTime, t.ExitTime, t.ProfitLoss, t.Strategy, string(tags), t.Notes, t.RiskAmount, t.RMultiple)
		if err != nil {
			return apperrors.Wrapf(err, "failed to insert trade %s", t.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const tradeColumns = "id, symbol, direction, entry_price, exit_price, quantity, entry_time, exit_time, pnl, strategy, tags, notes, risk_amount, r_multiple, created_at"

// GetTrades retrieves trades from the database.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if filter.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filter.Direction)
	}
	if filter.Tag != "" {
		query += " AND tags LIKE ?"
		args = append(args, "%\""+filter.Tag+"\"%")
	}
	if !filter.StartDate.IsZero() {
		query += " AND exit_time >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND exit_time <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY exit_time ASC, created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// GetTradeByID retrieves a single trade by its ID.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query trade: %w", err)
		}
		return nil, apperrors.NewTradeError(id, "", "get", "not found", apperrors.ErrTradeNotFound)
	}

	t, err := scanTrade(rows)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTrade overwrites an existing trade record.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	tags, _ := json.Marshal(trade.Tags)

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades
		SET symbol = ?, direction = ?, entry_price = ?, exit_price = ?, quantity = ?, entry_time = ?, exit_time = ?, pnl = ?, strategy = ?, tags = ?, notes = ?, risk_amount = ?, r_multiple = ?
		WHERE id = ?
	`, trade.Symbol, string(trade.Direction), trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.EntryTime, trade.ExitTime, trade.ProfitLoss, trade.Strategy, string(tags), trade.Notes, trade.RiskAmount, trade.RMultiple, trade.ID)
	if err != nil {
		return apperrors.Wrapf(err, "failed to update trade %s", trade.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewTradeError(trade.ID, trade.Symbol, "update", "not found", apperrors.ErrTradeNotFound)
	}
	return nil
}

// DeleteTrade removes a trade by its ID.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrapf(err, "failed to delete trade %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewTradeError(id, "", "delete", "not found", apperrors.ErrTradeNotFound)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (models.Trade, error) {
	var t models.Trade
	var direction, tagsJSON string
	var strategy, notes sql.NullString
	var riskAmount, rMultiple sql.NullFloat64

	err := row.Scan(&t.ID, &t.Symbol, &direction, &t.EntryPrice, &t.ExitPrice, &t.Quantity, &t.EntryTime, &t.ExitTime, &t.ProfitLoss, &strategy, &tagsJSON, &notes, &riskAmount, &rMultiple, &t.CreatedAt)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to scan trade: %w", err)
	}

	t.Direction = models.Direction(direction)
	t.Strategy = strategy.String
	t.Notes = notes.String
	t.RiskAmount = riskAmount.Float64
	t.RMultiple = rMultiple.Float64
	if tagsJSON != "" && tagsJSON != "null" {
		if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
			return models.Trade{}, fmt.Errorf("failed to decode trade tags: %w", err)
		}
	}

	return t, nil
}

// ============================================================================
// Journal Methods
// ============================================================================

// SaveJournalEntry saves or updates a journal entry.
func (s *SQLiteStore) SaveJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	tags, _ := json.Marshal(entry.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (id, trade_id, date, content, tags, mood)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			tags = excluded.tags,
			mood = excluded.mood,
			updated_at = CURRENT_TIMESTAMP
	`, entry.ID, entry.TradeID, entry.Date, entry.Content, string(tags), entry.Mood)
	if err != nil {
		return apperrors.Wrapf(err, "failed to save journal entry %s", entry.ID)
	}
	return nil
}

// GetJournal retrieves journal entries from the database.
func (s *SQLiteStore) GetJournal(ctx context.Context, filter JournalFilter) ([]models.JournalEntry, error) {
	query := "SELECT id, trade_id, date, content, tags, mood, created_at, updated_at FROM journal WHERE 1=1"
	args := []interface{}{}

	if filter.TradeID != "" {
		query += " AND trade_id = ?"
		args = append(args, filter.TradeID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}
	for _, tag := range filter.Tags {
		query += " AND tags LIKE ?"
		args = append(args, "%\""+tag+"\"%")
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var tradeID, tagsJSON, mood sql.NullString

		if err := rows.Scan(&e.ID, &tradeID, &e.Date, &e.Content, &tagsJSON, &mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.TradeID = tradeID.String
		e.Mood = mood.String
		if raw := strings.TrimSpace(tagsJSON.String); raw != "" && raw != "null" {
			if err := json.Unmarshal([]byte(raw), &e.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode journal tags: %w", err)
			}
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal: %w", err)
	}

	return entries, nil
}

// DeleteJournalEntry removes a journal entry by its ID.
func (s *SQLiteStore) DeleteJournalEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM journal WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrapf(err, "failed to delete journal entry %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.Wrap(apperrors.ErrNoteNotFound, id)
	}
	return nil
}
