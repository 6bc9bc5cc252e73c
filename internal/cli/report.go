package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradetrackr/internal/analytics"
	"tradetrackr/internal/logging"
	"tradetrackr/internal/models"
)

// addReportCommands adds performance report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports",
		Long:  "Aggregate performance reports over the trade journal. All reports honor the shared filter flags.",
	}

	cmd.AddCommand(newReportSummaryCmd(app))
	cmd.AddCommand(newReportGroupCmd(app, "monthly", "Monthly performance breakdown", func(trades []models.Trade) []analytics.GroupedPerformance {
		return analytics.GroupByMonth(trades)
	}))
	cmd.AddCommand(newReportGroupCmd(app, "strategy", "Performance by strategy", func(trades []models.Trade) []analytics.GroupedPerformance {
		return analytics.GroupByStrategy(trades)
	}))
	cmd.AddCommand(newReportGroupCmd(app, "symbol", "Performance by symbol", func(trades []models.Trade) []analytics.GroupedPerformance {
		return analytics.GroupBySymbol(trades)
	}))
	cmd.AddCommand(newReportGroupCmd(app, "direction", "Long versus short performance", func(trades []models.Trade) []analytics.GroupedPerformance {
		return analytics.GroupByDirection(trades)
	}))
	cmd.AddCommand(newReportGroupCmd(app, "timeofday", "Performance by trading session", func(trades []models.Trade) []analytics.GroupedPerformance {
		return analytics.GroupByTimeOfDay(trades, app.Config.TradingSessions())
	}))
	cmd.AddCommand(newReportEquityCmd(app))
	cmd.AddCommand(newReportDistributionCmd(app))
	cmd.AddCommand(newReportHeatmapCmd(app))

	rootCmd.AddCommand(cmd)
}

// warnSkipped reports trades that were dropped from a report because
// they failed validation.
func warnSkipped(output *Output, skipped int) {
	if skipped > 0 && !output.IsJSON() {
		output.Warning("Skipped %d invalid trade(s)", skipped)
	}
}

func newReportSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate performance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}

			started := time.Now()
			_, skipped := analytics.NormalizeAll(trades)
			metrics := analytics.CalculateMetrics(trades, app.Config.Account.InitialCapital)
			logging.LogReport(app.Logger, "summary", metrics.TotalTrades, skipped, time.Since(started))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"metrics": metrics,
					"skipped": skipped,
				})
			}

			warnSkipped(output, skipped)
			if metrics.TotalTrades == 0 {
				output.Info("No trades found.")
				return nil
			}

			output.Bold("Performance Summary")
			output.Printf("  Total Trades:     %d\n", metrics.TotalTrades)
			output.Printf("  Winning Trades:   %d\n", metrics.WinningTrades)
			output.Printf("  Losing Trades:    %d\n", metrics.LosingTrades)
			output.Printf("  Win Rate:         %.1f%%\n", metrics.WinRate)
			output.Printf("  Net P&L:          %s\n", output.FormatPnL(metrics.TotalPnL))
			output.Println()

			output.Bold("Averages")
			output.Printf("  Avg Win:          %s\n", output.Green(FormatCurrency(metrics.AverageWin)))
			output.Printf("  Avg Loss:         %s\n", output.Red(FormatCurrency(metrics.AverageLoss)))
			output.Printf("  Avg Return:       %s\n", FormatPercent(metrics.AverageReturn))
			output.Printf("  Avg Holding:      %.1f days\n", metrics.AverageHoldingDays)
			output.Printf("  Expectancy:       %s\n", output.FormatPnL(metrics.Expectancy))
			output.Println()

			output.Bold("Ratios")
			output.Printf("  Profit Factor:    %s\n", formatRatioCapped(metrics.ProfitFactor))
			output.Printf("  Risk/Reward:      %s\n", formatRatioCapped(metrics.RiskRewardRatio))
			output.Println()

			output.Bold("Drawdown")
			output.Printf("  Max Drawdown:     %s (%.2f%%)\n", FormatCurrency(metrics.MaxDrawdown), metrics.MaxDrawdownPercent)
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}

// formatRatioCapped renders the infinite-ratio sentinel as "inf".
func formatRatioCapped(ratio float64) string {
	if ratio >= analytics.RatioCap {
		return "inf"
	}
	return fmt.Sprintf("%.2f", ratio)
}

func newReportGroupCmd(app *App, use, short string, groupFn func([]models.Trade) []analytics.GroupedPerformance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}

			started := time.Now()
			_, skipped := analytics.NormalizeAll(trades)
			groups := groupFn(trades)
			logging.LogReport(app.Logger, use, len(trades), skipped, time.Since(started))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"groups":  groups,
					"skipped": skipped,
				})
			}

			warnSkipped(output, skipped)
			if len(groups) == 0 {
				output.Info("No trades found.")
				return nil
			}

			output.Bold(short)
			table := NewTable(output, "Group", "Trades", "Win Rate", "P&L", "Avg Return", "Profit Factor")
			for _, g := range groups {
				table.AddRow(
					g.Key,
					fmt.Sprintf("%d", g.Trades),
					fmt.Sprintf("%.1f%%", g.WinRate),
					output.FormatPnL(g.PnL),
					FormatPercent(g.AverageReturn),
					formatRatioCapped(g.ProfitFactor),
				)
			}
			table.Render()
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}

func newReportEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Equity curve with drawdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}

			_, skipped := analytics.NormalizeAll(trades)
			curve := analytics.BuildEquityCurve(trades, app.Config.Account.InitialCapital)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"curve":   curve,
					"skipped": skipped,
				})
			}

			warnSkipped(output, skipped)
			if len(curve) == 0 {
				output.Info("No trades found.")
				return nil
			}

			maxDD, maxDDPct := analytics.MaxDrawdown(curve)

			output.Bold("Equity Curve")
			drawEquityCurve(output, curve, app.Config.Account.InitialCapital)
			output.Println()
			output.Printf("  Start:        %s\n", FormatCurrency(app.Config.Account.InitialCapital))
			output.Printf("  End:          %s\n", FormatCurrency(curve[len(curve)-1].Equity))
			output.Printf("  Max Drawdown: %s (%.2f%%)\n", FormatCurrency(maxDD), maxDDPct)
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}

// drawEquityCurve renders a compact ASCII chart of the equity curve.
func drawEquityCurve(output *Output, curve []analytics.TimeSeriesPoint, startCapital float64) {
	if len(curve) < 2 {
		output.Println("  Insufficient data for equity curve")
		return
	}

	minEquity := startCapital
	maxEquity := startCapital
	for _, p := range curve {
		if p.Equity < minEquity {
			minEquity = p.Equity
		}
		if p.Equity > maxEquity {
			maxEquity = p.Equity
		}
	}

	padding := (maxEquity - minEquity) * 0.1
	if padding == 0 {
		padding = startCapital * 0.05
	}
	minEquity -= padding
	maxEquity += padding

	width := 50
	height := 10

	chart := make([][]rune, height)
	for i := range chart {
		chart[i] = make([]rune, width)
		for j := range chart[i] {
			chart[i][j] = ' '
		}
	}

	for i, p := range curve {
		x := i * width / len(curve)
		y := int((p.Equity - minEquity) / (maxEquity - minEquity) * float64(height-1))
		if y >= 0 && y < height && x >= 0 && x < width {
			chart[height-1-y][x] = '█'
		}
	}

	for i := 0; i < height; i++ {
		label := strings.Repeat(" ", 10)
		if i == 0 {
			label = PadLeft(FormatCurrency(maxEquity), 10)
		} else if i == height-1 {
			label = PadLeft(FormatCurrency(minEquity), 10)
		}
		output.Printf("  %s │%s\n", label, string(chart[i]))
	}
	output.Printf("  %s └%s\n", strings.Repeat(" ", 10), strings.Repeat("─", width))
}

func newReportDistributionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "P&L distribution histogram",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}

			buckets, _ := cmd.Flags().GetInt("buckets")
			if buckets <= 0 {
				buckets = app.Config.Analytics.DistributionBuckets
			}

			_, skipped := analytics.NormalizeAll(trades)
			distribution := analytics.BuildDistribution(trades, buckets)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"buckets": distribution,
					"skipped": skipped,
				})
			}

			warnSkipped(output, skipped)
			if len(distribution) == 0 {
				output.Info("No trades found.")
				return nil
			}

			maxCount := 0
			for _, b := range distribution {
				if b.Count > maxCount {
					maxCount = b.Count
				}
			}

			output.Bold("P&L Distribution")
			barWidth := 30
			for _, b := range distribution {
				bar := ""
				if maxCount > 0 {
					bar = strings.Repeat("█", b.Count*barWidth/maxCount)
				}
				if b.Winning {
					bar = output.Green(bar)
				} else {
					bar = output.Red(bar)
				}
				label := fmt.Sprintf("%s .. %s", PadLeft(FormatCurrency(b.Lower), 12), PadLeft(FormatCurrency(b.Upper), 12))
				output.Printf("  %s │%s %d (%.1f%%)\n", label, bar, b.Count, b.Percentage)
			}
			return nil
		},
	}
	tradeFilterFlags(cmd)
	cmd.Flags().Int("buckets", 0, "number of histogram buckets (default from config)")
	return cmd
}

func newReportHeatmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Weekday/hour timing heatmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}

			_, skipped := analytics.NormalizeAll(trades)
			cells := analytics.BuildHeatmap(trades)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"cells":   cells,
					"skipped": skipped,
				})
			}

			warnSkipped(output, skipped)

			output.Bold("Timing Heatmap (entry weekday x hour)")
			header := "      "
			for h := 0; h < 24; h += 2 {
				header += fmt.Sprintf("%-4d", h)
			}
			output.Println(output.DimText(header))

			for d := 0; d < 7; d++ {
				row := fmt.Sprintf("  %s ", time.Weekday(d).String()[:3])
				for h := 0; h < 24; h++ {
					cell := cells[d*24+h]
					row += output.ColoredString(heatmapColor(cell), heatmapGlyph(cell))
					row += " "
				}
				output.Println(row)
			}
			output.Println()
			output.Dim("  . no trades   - loss   + gain   # 3+ trades")
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}

func heatmapGlyph(cell analytics.HeatmapCell) string {
	switch {
	case cell.Trades == 0:
		return "."
	case cell.Trades >= 3:
		return "#"
	case cell.PnL < 0:
		return "-"
	default:
		return "+"
	}
}

func heatmapColor(cell analytics.HeatmapCell) string {
	switch {
	case cell.Trades == 0:
		return ColorDim
	case cell.PnL > 0:
		return ColorGreen
	case cell.PnL < 0:
		return ColorRed
	default:
		return ColorWhite
	}
}
