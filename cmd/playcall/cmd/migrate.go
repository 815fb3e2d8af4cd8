package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/solatis/playcall/internal/core/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("status", false, "show migration status instead of applying")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}

	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	status, _ := cmd.Flags().GetBool("status")
	if status {
		statuses, err := db.MigrateStatus(database)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tAPPLIED\tEXECUTION")
		for _, s := range statuses {
			applied := "pending"
			execution := "-"
			if s.Applied {
				applied = "applied"
				execution = fmt.Sprintf("%dms", s.ExecutionMs)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, applied, execution)
		}
		return w.Flush()
	}

	if err := db.MigrateUp(database); err != nil {
		return err
	}

	fmt.Println("migrations applied")
	return nil
}
