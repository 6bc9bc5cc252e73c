// Package export reads and writes trade data in CSV and JSON form.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"tradetrackr/internal/analytics"
	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
)

// tradeRecord is the flat CSV shape of a trade.
type tradeRecord struct {
	ID         string  `csv:"id"`
	Symbol     string  `csv:"symbol"`
	Direction  string  `csv:"direction"`
	EntryPrice float64 `csv:"entry_price"`
	ExitPrice  float64 `csv:"exit_price"`
	Quantity   float64 `csv:"quantity"`
	EntryTime  string  `csv:"entry_time"`
	ExitTime   string  `csv:"exit_time"`
	PnL        float64 `csv:"pnl"`
	Strategy   string  `csv:"strategy"`
	Tags       string  `csv:"tags"`
	Notes      string  `csv:"notes"`
}

func toRecord(t models.Trade) tradeRecord {
	return tradeRecord{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Direction:  string(t.Direction),
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Quantity:   t.Quantity,
		EntryTime:  t.EntryTime.Format(time.RFC3339),
		ExitTime:   t.ExitTime.Format(time.RFC3339),
		PnL:        t.ProfitLoss,
		Strategy:   t.Strategy,
		Tags:       strings.Join(t.Tags, ";"),
		Notes:      t.Notes,
	}
}

func (r tradeRecord) toTrade() (models.Trade, error) {
	entryTime, err := parseTime(r.EntryTime)
	if err != nil {
		return models.Trade{}, fmt.Errorf("entry_time: %w", err)
	}
	exitTime, err := parseTime(r.ExitTime)
	if err != nil {
		return models.Trade{}, fmt.Errorf("exit_time: %w", err)
	}

	var tags []string
	if r.Tags != "" {
		tags = strings.Split(r.Tags, ";")
	}

	return models.Trade{
		ID:         r.ID,
		Symbol:     r.Symbol,
		Direction:  models.Direction(r.Direction),
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Quantity:   r.Quantity,
		EntryTime:  entryTime,
		ExitTime:   exitTime,
		ProfitLoss: r.PnL,
		Strategy:   r.Strategy,
		Tags:       tags,
		Notes:      r.Notes,
	}, nil
}

// parseTime accepts RFC3339 and the common broker-export layouts.
func parseTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// WriteTradesCSV writes trades to a CSV file.
func WriteTradesCSV(path string, trades []models.Trade) error {
	records := make([]tradeRecord, len(trades))
	for i, t := range trades {
		records[i] = toRecord(t)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewExportError("csv", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return apperrors.NewExportError("csv", path, err)
	}
	return nil
}

// ReadTradesCSV reads trades from a CSV file. Rows that cannot be
// parsed or that fail validation are skipped; the second return value
// is the number of rows skipped.
func ReadTradesCSV(path string) ([]models.Trade, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrImportFailed, path)
	}
	defer f.Close()

	var records []tradeRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, 0, apperrors.NewImportError(path, 0, "malformed CSV", err)
	}

	trades := make([]models.Trade, 0, len(records))
	skipped := 0
	for _, r := range records {
		t, err := r.toTrade()
		if err != nil {
			skipped++
			continue
		}
		if !t.Direction.Valid() {
			skipped++
			continue
		}
		if _, err := analytics.Normalize(t); err != nil {
			skipped++
			continue
		}
		trades = append(trades, t)
	}

	return trades, skipped, nil
}

// WriteTradesJSON writes trades to a JSON file.
func WriteTradesJSON(path string, trades []models.Trade) error {
	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return apperrors.NewExportError("json", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewExportError("json", path, err)
	}
	return nil
}

// WriteReportJSON writes an arbitrary report payload to a JSON file.
func WriteReportJSON(path string, report interface{}) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewExportError("json", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewExportError("json", path, err)
	}
	return nil
}
