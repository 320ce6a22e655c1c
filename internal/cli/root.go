// Package cli provides the command-line interface for the analytics
// application.
package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"deriverse-cli/internal/config"
	"deriverse-cli/internal/data"
	"deriverse-cli/internal/logging"
	"deriverse-cli/internal/models"
	"deriverse-cli/internal/session"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-09-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Session *session.Session
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "deriverse",
		Short: "Deriverse - trading analytics CLI",
		Long: `Deriverse is a trading analytics CLI for derivatives traders.

It computes performance metrics, adaptive thresholds, symbol correlations
and a behavioral trader profile from your closed-trade history. Trades come
from a deterministic mock generator or a JSON export of your own history.

Use 'deriverse help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return app.initSession(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/deriverse)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("data", "", "JSON trade file (overrides configured source)")
	rootCmd.PersistentFlags().Int64("seed", 0, "mock generator seed (overrides configured seed)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newMetricsCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newHeatmapCmd(app))
	rootCmd.AddCommand(newThresholdsCmd(app))
	rootCmd.AddCommand(newCorrelationCmd(app))
	rootCmd.AddCommand(newProfileCmd(app))
	rootCmd.AddCommand(newInsightCmd(app))
	rootCmd.AddCommand(newJournalCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newGenerateCmd(app))

	return rootCmd
}

// initSession loads the trade history and builds the session state. Every
// command runs against a fully computed session.
func (a *App) initSession(cmd *cobra.Command) error {
	start := time.Now()

	dataFile, _ := cmd.Flags().GetString("data")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = a.Config.Data.Seed
	}

	var trades []models.Trade
	var portfolio models.PortfolioState
	var err error

	switch {
	case dataFile != "":
		trades, err = data.LoadTrades(dataFile)
	case a.Config.Data.Source == "file":
		trades, err = data.LoadTrades(a.Config.Data.File)
	default:
		trades = data.GenerateTrades(seed)
		portfolio = data.GeneratePortfolio()
	}
	if err != nil {
		return err
	}

	a.Session = session.New(trades, portfolio)
	logging.LogRecompute(a.Logger, len(trades), time.Since(start))
	return nil
}

// applyFilter reads the shared filter flags and narrows the session view.
func (a *App) applyFilter(cmd *cobra.Command) error {
	var f models.FilterState

	if v, _ := cmd.Flags().GetString("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", v, err)
		}
		f.From = t
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid --to date %q: %w", v, err)
		}
		// Inclusive end of day.
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if vs, _ := cmd.Flags().GetStringSlice("instrument"); len(vs) > 0 {
		for _, v := range vs {
			f.Instruments = append(f.Instruments, models.Instrument(v))
		}
	}
	if vs, _ := cmd.Flags().GetStringSlice("symbol"); len(vs) > 0 {
		f.Symbols = vs
	}
	if v, _ := cmd.Flags().GetString("side"); v != "" {
		f.Sides = []models.Side{models.Side(v)}
	}

	a.Session.SetFilter(f)
	return nil
}

// addFilterFlags registers the shared trade filter flags on a command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringSlice("instrument", nil, "instrument filter (spot, perpetual, options, futures)")
	cmd.Flags().StringSlice("symbol", nil, "symbol filter")
	cmd.Flags().String("side", "", "side filter (long, short)")
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
				output.Printf("Deriverse v%s\n", Version)
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
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Data Configuration")
	output.Printf("  Source:          %s\n", cfg.Data.Source)
	if cfg.Data.File != "" {
		output.Printf("  File:            %s\n", cfg.Data.File)
	}
	output.Printf("  Seed:            %d\n", cfg.Data.Seed)
	output.Println()

	output.Bold("Profile Detection")
	output.Printf("  Revenge Limit:   %d tagged trades\n", cfg.Profile.RevengeTradeLimit)
	output.Printf("  Overtrading:     %d high-activity days\n", cfg.Profile.OvertradingHighDays)
	output.Printf("  Cuts Winners:    %.2fx loss duration\n", cfg.Profile.CutsWinnersRatio)
	output.Printf("  Holds Losers:    %.2fx win duration\n", cfg.Profile.HoldsLosersRatio)
	output.Printf("  Size CV Limit:   %.2f\n", cfg.Profile.SizeCVLimit)
	output.Println()

	output.Bold("Export")
	output.Printf("  Directory:       %s\n", cfg.Export.Directory)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		output.Printf("  File:            %s\n", cfg.Logging.File)
	}

	return nil
}
