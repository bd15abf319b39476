// Package observability provides structured logging setup and formatted output for verbose
// CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintParsedQuery outputs how a message was read.
func (p *Printer) PrintParsedQuery(pq types.ParsedQuery) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Query:     %s\n", pq.OriginalQuery))
	sb.WriteString(fmt.Sprintf("Intent:    %s\n", pq.Intent))
	sb.WriteString(fmt.Sprintf("Products:  %s\n", listOrDash(pq.ProductIDs)))
	sb.WriteString(fmt.Sprintf("Clients:   %s\n", listOrDash(pq.ClientIDs)))
	sb.WriteString(fmt.Sprintf("Keywords:  %s\n", listOrDash(pq.Keywords)))

	var flags []string
	if pq.HasVisualIntent {
		flags = append(flags, "visual")
	}
	if pq.IsContinuation {
		flags = append(flags, "continuation")
	}
	sb.WriteString(fmt.Sprintf("Flags:     %s", listOrDash(flags)))

	p.printBox("PARSED QUERY", sb.String())
}

// PrintRetrievedContext outputs the catalog evidence for a query.
func (p *Printer) PrintRetrievedContext(rc types.RetrievedContext) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Intent:      %s\n", rc.Intent))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", rc.Confidence))

	if len(rc.Clients) > 0 {
		sb.WriteString("\nClients:\n")
		for _, c := range rc.Clients {
			sb.WriteString(fmt.Sprintf("  • %s  %s (%s)\n", c.ClientID, c.Name, c.PreferredFit))
		}
	}

	if len(rc.Products) > 0 {
		sb.WriteString("\nProducts:\n")
		count := min(len(rc.Products), maxItemsToShow)
		for i := 0; i < count; i++ {
			prod := rc.Products[i]
			sb.WriteString(fmt.Sprintf("  • %s  %s [%s, %s]\n", prod.ProductID, prod.Name, prod.Fit, prod.Fabric))
		}
		if len(rc.Products) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rc.Products)-maxItemsToShow))
		}
	}

	p.printBox("RETRIEVED CONTEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs a size recommendation with its per-size scores.
func (p *Printer) PrintRecommendation(rec *types.SizeRecommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Size:        %s\n", rec.RecommendedSize))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", rec.Confidence))

	alternatives := make([]string, 0, len(rec.AlternativeSizes))
	for _, s := range rec.AlternativeSizes {
		alternatives = append(alternatives, string(s))
	}
	sb.WriteString(fmt.Sprintf("Alternatives: %s\n", listOrDash(alternatives)))

	if len(rec.Scores) > 0 {
		sb.WriteString("\nScores:\n")
		for _, size := range types.SizeOrder {
			score, ok := rec.Scores[size]
			if !ok {
				continue
			}
			marker := " "
			if size == rec.RecommendedSize {
				marker = "★"
			}
			sb.WriteString(fmt.Sprintf("  %s %-3s %.3f\n", marker, size, score))
		}
	}

	if rec.FitNotes != "" {
		sb.WriteString("\nNotes:\n")
		sb.WriteString(wrap(rec.FitNotes, boxWidth-6, "  "))
	}

	p.printBox("SIZE RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalogStats outputs catalog totals and distributions.
func (p *Printer) PrintCatalogStats(clients catalog.ClientStats, products catalog.ProductStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Clients:   %d\n", clients.TotalClients))
	writeCounts(&sb, clients.FitPreferences)
	sb.WriteString(fmt.Sprintf("\nProducts:  %d\n", products.TotalProducts))
	writeCounts(&sb, products.FitTypes)
	sb.WriteString("\nFabrics:\n")
	writeCounts(&sb, products.Fabrics)

	p.printBox("CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

func writeCounts(sb *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  • %-12s %d\n", k, counts[k]))
	}
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// wrap breaks text into indented lines of at most width runes.
func wrap(text string, width int, indent string) string {
	var sb strings.Builder
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
			sb.WriteString(indent + line + "\n")
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		sb.WriteString(indent + line + "\n")
	}
	return sb.String()
}
