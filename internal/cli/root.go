// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradetrackr/internal/config"
	"tradetrackr/internal/logging"
	"tradetrackr/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-03-01"
)

// defaultTimeout bounds store-backed commands.
const defaultTimeout = 30 * time.Second

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Account.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Account.DatabasePath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tradetrackr",
		Short: "TradeTrackr - trading journal and performance analytics CLI",
		Long: `TradeTrackr is a personal trading journal with performance analytics.

Log closed trades, then slice your performance by month, strategy, symbol,
direction, and time of day. Reports include an equity curve with drawdown,
a P&L distribution histogram, and a weekday/hour timing heatmap.

Use 'tradetrackr help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradetrackr)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addNoteCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addChartCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("TradeTrackr v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Account")
	output.Printf("  Initial Capital: %s\n", FormatCurrency(cfg.Account.InitialCapital))
	output.Printf("  Currency:        %s\n", cfg.Account.Currency)
	output.Printf("  Database:        %s\n", cfg.Account.DatabasePath)
	output.Println()

	output.Bold("Analytics")
	output.Printf("  Distribution Buckets: %d\n", cfg.Analytics.DistributionBuckets)
	output.Println()

	output.Bold("Sessions")
	for _, s := range cfg.TradingSessions() {
		output.Printf("  %-10s %02d:00-%02d:00\n", s.Label, s.StartHour, s.EndHour)
	}
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level: %s\n", cfg.Logging.Level)
	output.Printf("  File:  %s\n", cfg.Logging.File)

	return nil
}
