package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/solatis/playcall/internal/core/config"
	"github.com/solatis/playcall/internal/core/db"
	"github.com/solatis/playcall/internal/rules"
	"github.com/solatis/playcall/internal/types"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "playcall",
	Short: "playcall real-time gameplay suggestion engine",
	Long:  `playcall evaluates game state snapshots against declarative rule catalogs and produces ranked, bounded suggestion lists.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setupLogging installs the process-wide slog handler per the persistent
// flags. Logs go to stderr so stdout stays clean for rendered passes.
func setupLogging() error {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch logFormat {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format: %s", logFormat)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// resolveCatalog picks the active catalog by precedence:
// catalog file from config > database rules table > embedded builtin.
func resolveCatalog(cfg *config.AdvisorConfig) (*rules.Catalog, error) {
	if cfg.Catalog != "" {
		return rules.LoadCatalogFile(cfg.Catalog)
	}

	if dbURL != "" {
		database, err := db.Open(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		queries, err := db.LoadQueries(database)
		if err != nil {
			return nil, fmt.Errorf("failed to load queries: %w", err)
		}

		catalog, err := db.LoadCatalog(queries)
		if err == nil {
			return catalog, nil
		}
		if !errors.Is(err, types.ErrNoCatalog) {
			return nil, fmt.Errorf("failed to load stored catalog: %w", err)
		}
		// Empty rules table falls through to the builtin.
	}

	return rules.Builtin(), nil
}
