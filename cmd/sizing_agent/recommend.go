package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/sizing-assistant/internal/observability"
	"github.com/jonathan/sizing-assistant/internal/ranking"
)

var (
	recommendClient  string
	recommendProduct string
	recommendOutput  string
	recommendVerbose bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a size for a client and a product",
	Long:  "Runs the deterministic recommendation engine for one client/product pair and writes the SizeRecommendation JSON to stdout or a file. No language model is involved.",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendClient, "client", "c", "", "Client id, e.g. C0001 (required)")
	recommendCmd.Flags().StringVarP(&recommendProduct, "product", "p", "", "Product id, e.g. P001 (required)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the per-size scores")

	if err := recommendCmd.MarkFlagRequired("client"); err != nil {
		panic(fmt.Sprintf("failed to mark client flag as required: %v", err))
	}
	if err := recommendCmd.MarkFlagRequired("product"); err != nil {
		panic(fmt.Sprintf("failed to mark product flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	client := store.GetClient(recommendClient)
	if client == nil {
		return fmt.Errorf("client not found: %s", recommendClient)
	}
	product := store.GetProduct(recommendProduct)
	if product == nil {
		return fmt.Errorf("product not found: %s", recommendProduct)
	}

	rec := ranking.RecommendSize(client, product)

	if recommendVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendation(&rec)
	}

	jsonOutput, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation to JSON: %w", err)
	}

	if recommendOutput == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return err
	}

	outputDir := filepath.Dir(recommendOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(recommendOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write recommendation to output file %s: %w", recommendOutput, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recommended size %s for %s in %s (confidence %.2f), written to %s\n",
		rec.RecommendedSize, client.ClientID, product.ProductID, rec.Confidence, recommendOutput)
	return nil
}
