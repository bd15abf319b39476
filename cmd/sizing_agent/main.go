// Package main provides the sizing_agent CLI: the HTTP API server, an interactive chat and
// offline tools for the recommendation engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "sizing_agent",
	Short: "Clothing size recommendation assistant",
	Long:  "sizing_agent recommends garment sizes from body measurements, purchase history and fit preferences, through a conversational assistant or an HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Catalog data directory (overrides config and SIZING_DATA_DIR)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
