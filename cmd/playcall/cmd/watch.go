package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solatis/playcall/internal/core/config"
	"github.com/solatis/playcall/internal/core/db"
	"github.com/solatis/playcall/internal/core/loop"
	"github.com/solatis/playcall/internal/core/recorder"
	"github.com/solatis/playcall/internal/core/source"
	"github.com/solatis/playcall/internal/rules"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the advisor loop over a snapshot feed",
	Long:  `Reads newline-delimited JSON state snapshots (the detector boundary), evaluates each against the active catalog on a fixed interval, and renders ranked suggestions.`,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("input", "-", "snapshot JSONL feed path, or - for stdin")
	watchCmd.Flags().String("format", loop.FormatText, "output format (text, json)")
	watchCmd.Flags().Bool("record", false, "record passes to the data dir and database")
	watchCmd.Flags().String("domain", "", "domain key (default from config)")
	watchCmd.Flags().Duration("interval", 0, "cycle interval (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("domain") {
		domain, _ := cmd.Flags().GetString("domain")
		cfg.Domain = domain
	}
	if cmd.Flags().Changed("interval") {
		interval, _ := cmd.Flags().GetDuration("interval")
		cfg.Interval = interval
	}

	logger := slog.Default()

	catalog, err := resolveCatalog(cfg)
	if err != nil {
		return err
	}
	engine := rules.NewEngine(catalog, rules.WithTopK(cfg.TopK), rules.WithLogger(logger))

	input, _ := cmd.Flags().GetString("input")
	feed, err := source.OpenJSONL(input, logger)
	if err != nil {
		return err
	}
	defer feed.Close()

	var rec *recorder.Recorder
	record, _ := cmd.Flags().GetBool("record")
	if record {
		var queries *db.Queries
		if dbURL != "" {
			database, err := db.Open(dbURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close()

			queries, err = db.LoadQueries(database)
			if err != nil {
				return fmt.Errorf("failed to load queries: %w", err)
			}
		}

		rec, err = recorder.NewRecorder(queries, cfg.DataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to create recorder: %w", err)
		}
	}

	format, _ := cmd.Flags().GetString("format")
	advisor, err := loop.New(loop.Options{
		Engine:   engine,
		Source:   feed,
		Recorder: rec,
		Domain:   cfg.Domain,
		Interval: cfg.Interval,
		Output:   os.Stdout,
		Format:   format,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting playcall advisor",
		"version", Version,
		"domain", cfg.Domain,
		"interval", cfg.Interval,
		"input", input,
	)

	ctx := context.Background()
	errChan := make(chan error, 1)
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		errChan <- advisor.Run(loopCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		logger.Info("shutting down gracefully")
		cancel()
		select {
		case err := <-errChan:
			return err
		case <-time.After(5 * time.Second):
			return fmt.Errorf("graceful shutdown timeout")
		}
	}
}
