package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/export"
	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
	"github.com/nexus-group/quote-intel/internal/pipeline"
)

var compareCmd = &cobra.Command{
	Use:   "compare <quotations.json>",
	Short: "Rank competing vendor quotations",
	Long: `Normalize a cohort of quotations, score each against the others, and
rank them best first with a recommendation and savings estimate.

The file holds a JSON array of at least two quotations.

Examples:
  # Rank a cohort and print the table
  compare quotes.json

  # Persist the analyses and export the ranking
  compare quotes.json --save --format csv --output ranking.csv
  compare quotes.json --format xlsx --output ranking.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("format", "table", "output format: table, json, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for csv and xlsx)")
	f.Bool("save", false, "persist the analyses to the store")
	priorityFlags(compareCmd)

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	switch format {
	case "table", "json":
	case "csv", "xlsx":
		if outputPath == "" {
			return eris.Errorf("compare: --output is required for format %q", format)
		}
	default:
		return eris.Errorf("compare: --format must be table, json, csv, or xlsx (got %q)", format)
	}

	quotes, err := loadQuotations(args[0])
	if err != nil {
		return err
	}

	env, err := initAnalysis(ctx, "analyze")
	if err != nil {
		return err
	}
	defer env.Close()

	report, err := env.Analyzer.Compare(ctx, quotes, prioritiesFromFlags(cmd))
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := env.Store.SaveAnalyses(ctx, report.Analyses); err != nil {
			return eris.Wrap(err, "compare: save")
		}
		_ = env.Store.AppendAudit(ctx, model.AuditEntry{
			Action:  "COMPARISON",
			Details: map[string]any{"vendors": len(report.Analyses), "source": "cli"},
		})
		zap.L().Info("analyses saved", zap.Int("count", len(report.Analyses)))
	}

	return outputComparison(cmd, report, format, outputPath)
}

func outputComparison(cmd *cobra.Command, report *pipeline.ComparisonReport, format, outputPath string) error {
	switch format {
	case "csv":
		return export.WriteComparisonCSV(report.Result, outputPath)
	case "xlsx":
		return export.WriteComparisonXLSX(report.Result, outputPath)
	}

	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if format == "json" {
		out := struct {
			Comparison     model.ComparisonResult  `json:"comparison"`
			VendorAnalyses []*model.VendorAnalysis `json:"vendor_analyses"`
		}{report.Result, report.Analyses}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(out), "compare: encode output")
	}

	return writeComparisonTable(w, report.Result)
}

func writeComparisonTable(w *os.File, result model.ComparisonResult) error {
	header := fmt.Sprintf("%-5s %-40s %7s %16s %-9s\n",
		"Rank", "Vendor", "Score", "Landed Cost", "Risk")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "compare: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 81)); err != nil {
		return eris.Wrap(err, "compare: write table separator")
	}

	for _, v := range result.Vendors {
		name := v.VendorName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		line := fmt.Sprintf("%-5d %-40s %7.1f %16s %-9s\n",
			v.Rank, name, v.NexusTrustScore, money.FormatUSD(v.TotalLandedCost), v.RiskLevel)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "compare: write table row")
		}
	}

	fmt.Fprintf(w, "\nRecommended:  %s\n", result.Comparison.RecommendedVendor)
	fmt.Fprintf(w, "Why:          %s\n", result.Comparison.RecommendationJustification)
	fmt.Fprintf(w, "Savings:      %s vs most expensive\n",
		money.FormatUSD(result.Comparison.SavingsVsMostExpensive))
	return nil
}
