package analytics

import (
	"tradetrackr/internal/models"
)

// HeatmapCell is one weekday/hour slot of the timing heatmap. Weekday
// follows time.Weekday numbering, 0 for Sunday.
type HeatmapCell struct {
	Weekday int
	Hour    int
	Trades  int
	Wins    int
	PnL     float64
	WinRate float64
}

// BuildHeatmap buckets trades by entry weekday and hour. The result
// always holds all 7x24 cells in row-major order (weekday, then hour)
// so renderers never have to fill gaps. Invalid trades are skipped.
func BuildHeatmap(trades []models.Trade) []HeatmapCell {
	normalized, _ := NormalizeAll(trades)

	cells := make([]HeatmapCell, 7*24)
	for i := range cells {
		cells[i].Weekday = i / 24
		cells[i].Hour = i % 24
	}

	for _, t := range normalized {
		idx := int(t.EntryTime.Weekday())*24 + t.EntryTime.Hour()
		c := &cells[idx]
		c.Trades++
		c.PnL += t.ProfitLoss
		if t.IsWin {
			c.Wins++
		}
	}

	for i := range cells {
		if cells[i].Trades > 0 {
			cells[i].WinRate = float64(cells[i].Wins) / float64(cells[i].Trades) * 100
		}
	}

	return cells
}
