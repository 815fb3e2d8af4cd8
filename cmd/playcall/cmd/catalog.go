package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/solatis/playcall/internal/core/config"
	"github.com/solatis/playcall/internal/core/db"
	"github.com/solatis/playcall/internal/rules"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the suggestion rule catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Store a catalog in the database (replaces the stored catalog)",
	Long:  `Imports a catalog JSON document into the rules table. With --builtin the embedded default catalog is stored instead of a file.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogImport,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the active catalog as JSON",
	RunE:  runCatalogExport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list [domain]",
	Short: "List catalog rules, optionally for one domain",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogList,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogImportCmd.Flags().Bool("builtin", false, "import the embedded default catalog")
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}

	useBuiltin, _ := cmd.Flags().GetBool("builtin")

	var catalog *rules.Catalog
	switch {
	case useBuiltin && len(args) > 0:
		return fmt.Errorf("--builtin and a file argument are mutually exclusive")
	case useBuiltin:
		catalog = rules.Builtin()
	case len(args) == 1:
		var err error
		catalog, err = rules.LoadCatalogFile(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("catalog file argument or --builtin required")
	}

	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	if err := db.SaveCatalog(queries, catalog); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	total := 0
	for _, domain := range catalog.Domains() {
		total += len(catalog.RulesFor(domain))
	}
	fmt.Printf("stored %d rules across %d domains\n", total, len(catalog.Domains()))
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	catalog, err := activeCatalog()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(catalog)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	catalog, err := activeCatalog()
	if err != nil {
		return err
	}

	domains := catalog.Domains()
	if len(args) == 1 {
		domains = []string{args[0]}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tRULE\tPRIORITY\tCONDITIONS\tTEXT")
	for _, domain := range domains {
		for _, r := range catalog.RulesFor(domain) {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", domain, r.ID, r.Priority, len(r.Conditions), r.Text)
		}
	}
	return w.Flush()
}

// activeCatalog resolves the catalog the other commands would evaluate
// against, honoring the same file > database > builtin precedence.
func activeCatalog() (*rules.Catalog, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveCatalog(cfg)
}
