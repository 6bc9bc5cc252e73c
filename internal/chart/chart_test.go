package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradetrackr/internal/analytics"
	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
)

func chartTrades(pnls ...float64) []models.Trade {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, len(pnls))
	for i, pnl := range pnls {
		exit := base.Add(time.Duration(i) * 24 * time.Hour)
		trades[i] = models.Trade{
			ID:         exit.Format(time.RFC3339),
			Symbol:     "AAPL",
			Direction:  models.DirectionLong,
			EntryPrice: 100,
			ExitPrice:  100 + pnl/10,
			Quantity:   10,
			EntryTime:  exit.Add(-2 * time.Hour),
			ExitTime:   exit,
			ProfitLoss: pnl,
		}
	}
	return trades
}

func TestSaveEquityCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.png")
	curve := analytics.BuildEquityCurve(chartTrades(100, -50, 30), 10000)

	if err := SaveEquityCurve(curve, 10000, path); err != nil {
		t.Fatalf("SaveEquityCurve() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("output file is empty")
	}
}

func TestSaveEquityCurveEmpty(t *testing.T) {
	err := SaveEquityCurve(nil, 10000, filepath.Join(t.TempDir(), "equity.png"))
	if !apperrors.Is(err, apperrors.ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}

func TestSaveDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.png")
	buckets := analytics.BuildDistribution(chartTrades(-100, -20, 30, 80, 150), 5)

	if err := SaveDistribution(buckets, path); err != nil {
		t.Fatalf("SaveDistribution() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("output file missing or empty: %v", err)
	}
}

func TestSaveDistributionEmpty(t *testing.T) {
	err := SaveDistribution(nil, filepath.Join(t.TempDir(), "dist.png"))
	if !apperrors.Is(err, apperrors.ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}
