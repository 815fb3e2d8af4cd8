package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/solatis/playcall/internal/core/config"
	"github.com/solatis/playcall/internal/rules"
	"github.com/solatis/playcall/internal/types"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single state snapshot and print ranked suggestions",
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("state", "-", "snapshot JSON file path, or - for stdin")
	evalCmd.Flags().String("domain", "", "domain key (default from config)")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("domain") {
		domain, _ := cmd.Flags().GetString("domain")
		cfg.Domain = domain
	}

	statePath, _ := cmd.Flags().GetString("state")
	data, err := readAll(statePath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap, err := types.ParseSnapshot(data)
	if err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	catalog, err := resolveCatalog(cfg)
	if err != nil {
		return err
	}

	engine := rules.NewEngine(catalog, rules.WithTopK(cfg.TopK))
	suggestions := engine.GetSuggestions(snap, cfg.Domain)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(suggestions)
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
