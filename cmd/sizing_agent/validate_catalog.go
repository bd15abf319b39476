package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/sizing-assistant/internal/observability"
)

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog",
	Short: "Validate the catalog data files",
	Long:  "Checks client_profiles.json and product_catalog.json in the data directory (set with --data) against their JSON schemas and field rules, then prints catalog statistics.",
	RunE:  runValidateCatalog,
}

func init() {
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintCatalogStats(store.ClientStats(), store.ProductStats())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Catalog in %s is valid: %d clients, %d products\n",
		cfg.DataDir, len(store.AllClients()), len(store.AllProducts()))
	return nil
}
