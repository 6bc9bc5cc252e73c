package cli

import (
	"context"

	"github.com/spf13/cobra"

	"tradetrackr/internal/analytics"
	"tradetrackr/internal/chart"
	"tradetrackr/internal/logging"
)

// addChartCommands adds PNG chart commands.
func addChartCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render analytics as PNG charts",
	}

	cmd.AddCommand(newChartEquityCmd(app))
	cmd.AddCommand(newChartDistributionCmd(app))

	rootCmd.AddCommand(cmd)
}

func newChartEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Render the equity curve as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")

			curve := analytics.BuildEquityCurve(trades, app.Config.Account.InitialCapital)
			if err := chart.SaveEquityCurve(curve, app.Config.Account.InitialCapital, out); err != nil {
				return err
			}
			logging.LogExport(app.Logger, "png", out, len(curve))

			if output.IsJSON() {
				return output.JSON(map[string]string{"file": out})
			}
			output.Success("Equity curve saved to %s", out)
			return nil
		},
	}
	tradeFilterFlags(cmd)
	cmd.Flags().String("out", "equity_curve.png", "output PNG file path")
	return cmd
}

func newChartDistributionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Render the P&L histogram as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			bucketCount, _ := cmd.Flags().GetInt("buckets")
			if bucketCount <= 0 {
				bucketCount = app.Config.Analytics.DistributionBuckets
			}

			buckets := analytics.BuildDistribution(trades, bucketCount)
			if err := chart.SaveDistribution(buckets, out); err != nil {
				return err
			}
			logging.LogExport(app.Logger, "png", out, len(buckets))

			if output.IsJSON() {
				return output.JSON(map[string]string{"file": out})
			}
			output.Success("Distribution chart saved to %s", out)
			return nil
		},
	}
	tradeFilterFlags(cmd)
	cmd.Flags().String("out", "pnl_distribution.png", "output PNG file path")
	cmd.Flags().Int("buckets", 0, "number of histogram buckets (default from config)")
	return cmd
}
