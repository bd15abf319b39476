package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/sizing-assistant/internal/observability"
	"github.com/jonathan/sizing-assistant/internal/parsing"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/types"
)

var (
	parseQueryText     string
	parseQueryRetrieve bool
	parseQueryVerbose  bool
)

var parseQueryCmd = &cobra.Command{
	Use:   "parse-query",
	Short: "Show how a message is interpreted",
	Long:  "Parses a user message into intent, ids, keywords and flags. With --retrieve it also resolves the catalog context the assistant would use.",
	RunE:  runParseQuery,
}

func init() {
	parseQueryCmd.Flags().StringVarP(&parseQueryText, "text", "t", "", "Message to parse (required)")
	parseQueryCmd.Flags().BoolVar(&parseQueryRetrieve, "retrieve", false, "Also retrieve catalog context")
	parseQueryCmd.Flags().BoolVarP(&parseQueryVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	if err := parseQueryCmd.MarkFlagRequired("text"); err != nil {
		panic(fmt.Sprintf("failed to mark text flag as required: %v", err))
	}

	rootCmd.AddCommand(parseQueryCmd)
}

type parseQueryOutput struct {
	ParsedQuery      types.ParsedQuery       `json:"parsed_query"`
	RetrievedContext *types.RetrievedContext `json:"retrieved_context,omitempty"`
}

func runParseQuery(cmd *cobra.Command, _ []string) error {
	out := parseQueryOutput{ParsedQuery: parsing.Parse(parseQueryText)}
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if parseQueryVerbose {
		printer.PrintParsedQuery(out.ParsedQuery)
	}

	if parseQueryRetrieve {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		rc := retrieval.New(store).Retrieve(out.ParsedQuery)
		out.RetrievedContext = &rc
		if parseQueryVerbose {
			printer.PrintRetrievedContext(rc)
		}
	}

	jsonOutput, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parsed query to JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	return err
}
