package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/export"
	"tradetrackr/internal/logging"
	"tradetrackr/internal/models"
	"tradetrackr/internal/performance"
)

// addDataCommands adds import and export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file into the journal.

Expected columns: id, symbol, direction, entry_price, exit_price, quantity,
entry_time, exit_time, pnl, strategy, tags, notes. Rows that fail validation
are skipped and reported; they never abort the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			path := args[0]
			trades, skipped, err := export.ReadTradesCSV(path)
			if err != nil {
				return err
			}

			writer := performance.NewBatchWriter(performance.DefaultBatchSize, func(batch []models.Trade) error {
				return app.Store.SaveTrades(ctx, batch)
			})
			for _, trade := range trades {
				if err := writer.Add(trade); err != nil {
					return err
				}
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			logging.LogImport(app.Logger, path, len(trades), skipped)

			if output.IsJSON() {
				return output.JSON(map[string]int{
					"imported": len(trades),
					"skipped":  skipped,
				})
			}
			output.Success("Imported %d trade(s) from %s", len(trades), path)
			if skipped > 0 {
				output.Warning("Skipped %d invalid row(s)", skipped)
			}
			return nil
		},
	}
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv|file.json>",
		Short: "Export trades to CSV or JSON",
		Long:  "Export journal trades to a file. The format follows the file extension.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}
			if len(trades) == 0 {
				return apperrors.Wrap(apperrors.ErrEmptyDataset, "export")
			}

			path := args[0]
			var format string
			switch {
			case strings.HasSuffix(path, ".json"):
				format = "json"
				err = export.WriteTradesJSON(path, trades)
			case strings.HasSuffix(path, ".csv"):
				format = "csv"
				err = export.WriteTradesCSV(path, trades)
			default:
				return apperrors.NewValidationError("file", path, "extension must be .csv or .json")
			}
			if err != nil {
				return err
			}
			logging.LogExport(app.Logger, format, path, len(trades))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"file":    path,
					"format":  format,
					"records": len(trades),
				})
			}
			output.Success("Exported %d trade(s) to %s", len(trades), path)
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}
