package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/logging"
	"tradetrackr/internal/models"
	"tradetrackr/internal/store"
)

// addTradeCommands adds trade journal commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Log and manage journal trades",
	}

	cmd.AddCommand(newTradeLogCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

// timeLayouts accepted by the --entry-time and --exit-time flags.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use e.g. 2006-01-02 15:04)", value)
}

func newTradeLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a closed trade",
		Example: `  tradetrackr trade log --symbol AAPL --direction long --entry 150.25 --exit 155.75 --qty 10 \
      --entry-time "2025-03-03 09:45" --exit-time "2025-03-03 14:30" --strategy Breakout --tags gap-up,earnings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			symbol, _ := cmd.Flags().GetString("symbol")
			directionFlag, _ := cmd.Flags().GetString("direction")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			qty, _ := cmd.Flags().GetFloat64("qty")
			entryTimeFlag, _ := cmd.Flags().GetString("entry-time")
			exitTimeFlag, _ := cmd.Flags().GetString("exit-time")
			strategy, _ := cmd.Flags().GetString("strategy")
			tagsFlag, _ := cmd.Flags().GetString("tags")
			notes, _ := cmd.Flags().GetString("notes")
			risk, _ := cmd.Flags().GetFloat64("risk")

			direction, err := parseDirection(directionFlag)
			if err != nil {
				return err
			}
			entryTime, err := parseTimeFlag(entryTimeFlag)
			if err != nil {
				return apperrors.NewValidationError("entry-time", entryTimeFlag, err.Error())
			}
			exitTime, err := parseTimeFlag(exitTimeFlag)
			if err != nil {
				return apperrors.NewValidationError("exit-time", exitTimeFlag, err.Error())
			}

			pnl := (exit - entry) * qty * direction.Sign()
			if cmd.Flags().Changed("pnl") {
				pnl, _ = cmd.Flags().GetFloat64("pnl")
			}

			var tags []string
			if tagsFlag != "" {
				tags = strings.Split(tagsFlag, ",")
			}

			trade := models.Trade{
				ID:         fmt.Sprintf("%s-%d", strings.ToUpper(symbol), exitTime.UnixNano()),
				Symbol:     strings.ToUpper(symbol),
				Direction:  direction,
				EntryPrice: entry,
				ExitPrice:  exit,
				Quantity:   qty,
				EntryTime:  entryTime,
				ExitTime:   exitTime,
				ProfitLoss: pnl,
				Strategy:   strategy,
				Tags:       tags,
				Notes:      notes,
				RiskAmount: risk,
			}
			if risk > 0 {
				trade.RMultiple = pnl / risk
			}

			if err := validateTrade(trade); err != nil {
				return err
			}

			if err := app.Store.SaveTrade(ctx, &trade); err != nil {
				return err
			}
			logging.LogTradeLogged(app.Logger, trade.ID, trade.Symbol, string(trade.Direction), trade.ProfitLoss)

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade logged: %s", trade.ID)
			output.Printf("  %s %s  %s -> %s  qty %.2f  P&L %s\n",
				trade.Symbol, trade.Direction,
				FormatCurrency(trade.EntryPrice), FormatCurrency(trade.ExitPrice),
				trade.Quantity, output.FormatPnL(trade.ProfitLoss))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "traded symbol (required)")
	cmd.Flags().String("direction", "long", "trade direction: long or short")
	cmd.Flags().Float64("entry", 0, "entry price (required)")
	cmd.Flags().Float64("exit", 0, "exit price (required)")
	cmd.Flags().Float64("qty", 0, "quantity (required)")
	cmd.Flags().String("entry-time", "", "entry timestamp (required)")
	cmd.Flags().String("exit-time", "", "exit timestamp (required)")
	cmd.Flags().Float64("pnl", 0, "override computed P&L (for fees/slippage)")
	cmd.Flags().String("strategy", "", "strategy label")
	cmd.Flags().String("tags", "", "comma-separated tags")
	cmd.Flags().String("notes", "", "freeform notes")
	cmd.Flags().Float64("risk", 0, "amount risked on the trade")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("entry")
	cmd.MarkFlagRequired("exit")
	cmd.MarkFlagRequired("qty")
	cmd.MarkFlagRequired("entry-time")
	cmd.MarkFlagRequired("exit-time")

	return cmd
}

func parseDirection(value string) (models.Direction, error) {
	switch strings.ToLower(value) {
	case "long", "l", "buy":
		return models.DirectionLong, nil
	case "short", "s", "sell":
		return models.DirectionShort, nil
	}
	return "", apperrors.NewValidationError("direction", value, "must be long or short")
}

func validateTrade(t models.Trade) error {
	if t.Symbol == "" {
		return apperrors.NewValidationError("symbol", t.Symbol, "must not be empty")
	}
	if t.EntryPrice <= 0 || t.ExitPrice <= 0 {
		return apperrors.NewValidationError("price", t.ID, "must be positive")
	}
	if t.Quantity <= 0 {
		return apperrors.NewValidationError("qty", t.Quantity, "must be positive")
	}
	if t.ExitTime.Before(t.EntryTime) {
		return apperrors.NewValidationError("exit-time", t.ExitTime, "exit before entry")
	}
	return nil
}

// tradeFilterFlags registers the shared filter flags used by list,
// report, export, and chart commands.
func tradeFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().String("direction", "", "filter by direction (long/short)")
	cmd.Flags().String("tag", "", "filter by tag")
	cmd.Flags().String("from", "", "start date (inclusive)")
	cmd.Flags().String("to", "", "end date (inclusive)")
	cmd.Flags().Int("limit", 0, "maximum number of trades")
}

func tradeFilterFromFlags(cmd *cobra.Command) (store.TradeFilter, error) {
	filter := store.TradeFilter{}
	filter.Symbol, _ = cmd.Flags().GetString("symbol")
	filter.Symbol = strings.ToUpper(filter.Symbol)
	filter.Strategy, _ = cmd.Flags().GetString("strategy")
	filter.Tag, _ = cmd.Flags().GetString("tag")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if v, _ := cmd.Flags().GetString("direction"); v != "" {
		direction, err := parseDirection(v)
		if err != nil {
			return filter, err
		}
		filter.Direction = string(direction)
	}
	if v, _ := cmd.Flags().GetString("from"); v != "" {
		t, err := parseTimeFlag(v)
		if err != nil {
			return filter, apperrors.NewValidationError("from", v, err.Error())
		}
		filter.StartDate = t
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		t, err := parseTimeFlag(v)
		if err != nil {
			return filter, apperrors.NewValidationError("to", v, err.Error())
		}
		// Make the end date inclusive of the whole day.
		filter.EndDate = t.Add(24*time.Hour - time.Nanosecond)
	}

	return filter, nil
}

// fetchTrades loads trades matching the command's filter flags.
func (app *App) fetchTrades(ctx context.Context, cmd *cobra.Command) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
	}
	filter, err := tradeFilterFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	return app.Store.GetTrades(ctx, filter)
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trades, err := app.fetchTrades(ctx, cmd)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "Symbol", "Dir", "Entry", "Exit", "Qty", "P&L", "Strategy", "Exited")
			for _, t := range trades {
				strategy := t.Strategy
				if strategy == "" {
					strategy = "-"
				}
				table.AddRow(
					TruncateString(t.ID, 22),
					t.Symbol,
					string(t.Direction),
					FormatCurrency(t.EntryPrice),
					FormatCurrency(t.ExitPrice),
					fmt.Sprintf("%.2f", t.Quantity),
					output.FormatPnL(t.ProfitLoss),
					strategy,
					FormatDateTime(t.ExitTime),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trades", len(trades))
			return nil
		},
	}
	tradeFilterFlags(cmd)
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a single trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			trade, err := app.Store.GetTradeByID(ctx, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("%s  %s %s", trade.ID, trade.Symbol, trade.Direction)
			output.Printf("  Entry:     %s at %s\n", FormatCurrency(trade.EntryPrice), FormatDateTime(trade.EntryTime))
			output.Printf("  Exit:      %s at %s\n", FormatCurrency(trade.ExitPrice), FormatDateTime(trade.ExitTime))
			output.Printf("  Quantity:  %.2f\n", trade.Quantity)
			output.Printf("  P&L:       %s\n", output.FormatPnL(trade.ProfitLoss))
			if trade.Strategy != "" {
				output.Printf("  Strategy:  %s\n", trade.Strategy)
			}
			if len(trade.Tags) > 0 {
				output.Printf("  Tags:      %s\n", strings.Join(trade.Tags, ", "))
			}
			if trade.RiskAmount > 0 {
				output.Printf("  Risk:      %s (%.2fR)\n", FormatCurrency(trade.RiskAmount), trade.RMultiple)
			}
			if trade.Notes != "" {
				output.Printf("  Notes:     %s\n", trade.Notes)
			}
			return nil
		},
	}
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("Deleted trade %s", args[0])
			return nil
		},
	}
}
