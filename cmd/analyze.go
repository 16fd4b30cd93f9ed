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

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <quotation.json>",
	Short: "Score a single vendor quotation",
	Long: `Normalize one raw quotation and compute its Nexus Trust Score.

The file holds a single quotation object. Cohort quotations, when given,
stretch the envelope the cost and speed scores are measured against; a
solo vendor takes 100 on both.

Examples:
  # Score one quotation with default buyer priorities
  analyze quote.json

  # Score against a cohort with market context
  analyze quote.json --cohort rivals.json --market market.json

  # Cost-heavy buyer, persist the result
  analyze quote.json --cost-weight 0.6 --quality-weight 0.2 --speed-weight 0.1 --risk-weight 0.1 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("cohort", "", "JSON file of competing quotations for relative scoring")
	f.String("market", "", "JSON file with market intelligence context")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "persist the analysis to the store")
	priorityFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("analyze: --format must be table or json (got %q)", format)
	}

	quotes, err := loadQuotations(args[0])
	if err != nil {
		return err
	}
	if len(quotes) != 1 {
		return eris.Errorf("analyze: %s holds %d quotations, use compare for a cohort", args[0], len(quotes))
	}

	var cohort []model.Quotation
	if path, _ := cmd.Flags().GetString("cohort"); path != "" {
		cohort, err = loadQuotations(path)
		if err != nil {
			return err
		}
	}

	marketPath, _ := cmd.Flags().GetString("market")
	intel, err := loadMarket(marketPath)
	if err != nil {
		return err
	}

	env, err := initAnalysis(ctx, "analyze")
	if err != nil {
		return err
	}
	defer env.Close()

	pr := prioritiesFromFlags(cmd)
	analysis, err := env.Analyzer.AnalyzeOne(ctx, quotes[0], intel, pr, cohort)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := env.Store.SaveAnalysis(ctx, analysis); err != nil {
			return eris.Wrap(err, "analyze: save")
		}
		_ = env.Store.AppendAudit(ctx, model.AuditEntry{
			Action:  "SINGLE_ANALYSIS",
			Details: map[string]any{"vendor": analysis.VendorName, "source": "cli"},
		})
		zap.L().Info("analysis saved", zap.String("analysis_id", analysis.ID))
	}

	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "analyze: encode output")
	}

	printAnalysis(w, analysis, pr)
	return nil
}

// openOutput resolves the --output flag to a writer, defaulting to stdout.
func openOutput(cmd *cobra.Command) (*os.File, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func printAnalysis(w *os.File, a *model.VendorAnalysis, pr model.BuyerPriorities) {
	fmt.Fprintf(w, "Vendor:       %s\n", a.VendorName)
	fmt.Fprintf(w, "Trust Score:  %.1f / 100\n", a.NexusTrustScore)
	fmt.Fprintf(w, "Landed Cost:  %s\n", money.FormatUSD(a.Commercial.TotalLandedUSD))
	if a.Commercial.Currency != "USD" && a.Commercial.Currency != "" {
		fmt.Fprintf(w, "Original:     %.2f %s (rate %.2f)\n",
			a.Commercial.TotalOriginal, a.Commercial.Currency, a.Commercial.ConversionRate)
	}
	fmt.Fprintf(w, "Delivery:     %d days\n", a.Terms.DeliveryDays)
	fmt.Fprintf(w, "Risk:         %s (%d points)\n", a.Risk.RiskLevel, a.Risk.RiskPoints)

	fmt.Fprintln(w, "\nBreakdown:")
	fmt.Fprintf(w, "  %-10s %6.1f  (weight %.2f)\n", "cost", a.ScoreBreakdown.CostScore, pr.Cost)
	fmt.Fprintf(w, "  %-10s %6.1f  (weight %.2f)\n", "quality", a.ScoreBreakdown.QualityScore, pr.Quality)
	fmt.Fprintf(w, "  %-10s %6.1f  (weight %.2f)\n", "speed", a.ScoreBreakdown.SpeedScore, pr.Speed)
	fmt.Fprintf(w, "  %-10s %6.1f  (weight %.2f)\n", "risk", a.ScoreBreakdown.RiskScore, pr.Risk)

	fmt.Fprintf(w, "\nNegotiation:  press on %s (%.1f)\n",
		a.Copilot.WeakestDimension, a.Copilot.DimensionScore)

	if a.Metadata.Expired {
		fmt.Fprintf(w, "Warning:      quotation expired on %s\n", a.Metadata.ValidUntil)
	}
	if len(a.Metadata.IntegrityFlags) > 0 {
		fmt.Fprintf(w, "Flags:        %s\n", strings.Join(a.Metadata.IntegrityFlags, "; "))
	}
}
